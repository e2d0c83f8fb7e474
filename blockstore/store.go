package blockstore

import (
	"errors"
	"fmt"
	"io"
	"os"
	"sync"

	"github.com/ic-timon/blockfile/blockstore/layout"
)

// Store is an index-addressed record store over one file of fixed-size slots.
//
// Get and Put may be called concurrently. The store does not order operations
// on the same index; wrap it in a Serial for that.
type Store[T any] struct {
	cfg Config

	// mu guards f against Close; Get and Put hold it shared.
	mu sync.RWMutex
	f  *os.File
}

// Open creates or truncates path and returns a store with slots of blockSize bytes.
func Open[T any](blockSize int, path, label string) (*Store[T], error) {
	cfg := DefaultConfig()
	cfg.BlockSize = blockSize
	cfg.Path = path
	cfg.Label = label
	return OpenConfig[T](cfg)
}

// OpenConfig opens a store from cfg. cfg is copied before defaults are
// filled, so the caller's Config is never modified and later changes have no effect.
func OpenConfig[T any](cfg *Config) (*Store[T], error) {
	c := *DefaultConfig()
	if cfg != nil {
		c = *cfg
	}
	c.OrDefault()
	if err := c.Validate(); err != nil {
		return nil, err
	}
	f, err := os.OpenFile(c.Path, os.O_RDWR|os.O_CREATE|os.O_TRUNC, c.Perm)
	if err != nil {
		return nil, fmt.Errorf("open block store: %w", err)
	}
	return &Store[T]{cfg: c, f: f}, nil
}

// Label returns the store's display name.
func (s *Store[T]) Label() string {
	return s.cfg.Label
}

func (s *Store[T]) String() string {
	return s.cfg.Label
}

// BlockSize returns the slot width in bytes.
func (s *Store[T]) BlockSize() int {
	return s.cfg.BlockSize
}

// Path returns the backing file path.
func (s *Store[T]) Path() string {
	return s.cfg.Path
}

// Offset returns the byte offset of slot index, or false if it is negative or overflows.
func (s *Store[T]) Offset(index int64) (int64, bool) {
	return layout.Offset(index, int64(s.cfg.BlockSize))
}

// Get returns the value stored at index. ok is false when the slot was never
// written or index maps to a negative offset; in that case no read is issued.
func (s *Store[T]) Get(index int64) (value T, ok bool, err error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.f == nil {
		return value, false, ErrClosed
	}
	off, valid := s.Offset(index)
	if !valid {
		return value, false, nil
	}
	buf := make([]byte, s.cfg.BlockSize)
	// Bytes past EOF stay zero, which reads as an empty slot.
	if _, err := s.f.ReadAt(buf, off); err != nil && !errors.Is(err, io.EOF) {
		return value, false, fmt.Errorf("read slot %d: %w", index, err)
	}
	text := layout.Strip(buf)
	if len(text) == 0 {
		return value, false, nil
	}
	if err := layout.DecodeEnvelope(text, &value); err != nil {
		var zero T
		return zero, false, fmt.Errorf("slot %d: %w", index, err)
	}
	return value, true, nil
}

// Put writes value into slot index, replacing its previous content, and
// flushes the file before returning. Nothing is written when the encoded
// value does not fit in one slot.
func (s *Store[T]) Put(index int64, value T) error {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.f == nil {
		return ErrClosed
	}
	off, valid := s.Offset(index)
	if !valid {
		return fmt.Errorf("%w: %d", ErrInvalidIndex, index)
	}
	enc, err := layout.EncodeEnvelope(value)
	if err != nil {
		return fmt.Errorf("encode slot %d: %w", index, err)
	}
	slot, err := layout.Pad(enc, s.cfg.BlockSize)
	if err != nil {
		return fmt.Errorf("slot %d: %w", index, err)
	}
	if _, err := s.f.WriteAt(slot, off); err != nil {
		return fmt.Errorf("write slot %d: %w", index, err)
	}
	if err := syncFile(s.f, s.cfg.Sync); err != nil {
		return fmt.Errorf("sync slot %d: %w", index, err)
	}
	return nil
}

// View maps the backing file read-only at its current length. Later Puts to
// slots inside the mapping are visible through it; slots past it are not.
// Close the view before the store.
func (s *Store[T]) View() (layout.SlotView, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.f == nil {
		return nil, ErrClosed
	}
	return layout.OpenMmap(s.cfg.Path, s.cfg.BlockSize)
}

// Close closes the backing file and deletes it. The store is unusable
// afterwards, even if an error is returned.
func (s *Store[T]) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.f == nil {
		return ErrClosed
	}
	f := s.f
	s.f = nil
	var errs []error
	if err := f.Close(); err != nil {
		errs = append(errs, fmt.Errorf("close block store: %w", err))
	}
	if err := os.Remove(s.cfg.Path); err != nil {
		errs = append(errs, fmt.Errorf("remove block store: %w", err))
	}
	return errors.Join(errs...)
}
