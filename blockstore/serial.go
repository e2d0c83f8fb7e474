package blockstore

import (
	"encoding/binary"
	"sync"

	"github.com/cespare/xxhash/v2"
)

// DefaultStripes is the lock stripe count used when NewSerial is given a non-positive count.
const DefaultStripes = 64

// Serial serializes operations per index on top of a Store.
// Indices hash to one of a fixed set of mutexes, so two indices may share a
// stripe; operations on different stripes run in parallel.
type Serial[T any] struct {
	s       *Store[T]
	stripes []sync.Mutex
}

// NewSerial wraps s with the given number of lock stripes.
func NewSerial[T any](s *Store[T], stripes int) *Serial[T] {
	if stripes <= 0 {
		stripes = DefaultStripes
	}
	return &Serial[T]{
		s:       s,
		stripes: make([]sync.Mutex, stripes),
	}
}

// Store returns the wrapped store.
func (p *Serial[T]) Store() *Store[T] {
	return p.s
}

func (p *Serial[T]) stripe(index int64) *sync.Mutex {
	var b [8]byte
	binary.LittleEndian.PutUint64(b[:], uint64(index))
	return &p.stripes[xxhash.Sum64(b[:])%uint64(len(p.stripes))]
}

// Get reads index after any in-flight Put or Update on the same index.
func (p *Serial[T]) Get(index int64) (T, bool, error) {
	mu := p.stripe(index)
	mu.Lock()
	defer mu.Unlock()
	return p.s.Get(index)
}

// Put writes index after any in-flight operation on the same index.
func (p *Serial[T]) Put(index int64, value T) error {
	mu := p.stripe(index)
	mu.Lock()
	defer mu.Unlock()
	return p.s.Put(index, value)
}

// Update reads index, passes the current value to fn and writes back its
// result, all under the index's stripe lock. When fn returns an error nothing
// is written.
func (p *Serial[T]) Update(index int64, fn func(old T, ok bool) (T, error)) error {
	mu := p.stripe(index)
	mu.Lock()
	defer mu.Unlock()
	old, ok, err := p.s.Get(index)
	if err != nil {
		return err
	}
	next, err := fn(old, ok)
	if err != nil {
		return err
	}
	return p.s.Put(index, next)
}
