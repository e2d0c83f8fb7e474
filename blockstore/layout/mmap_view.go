package layout

import (
	"errors"
	"fmt"
	"os"

	"github.com/edsrzf/mmap-go"
)

// MmapSlotView is a SlotView backed by an mmap'd file.
type MmapSlotView struct {
	f         *os.File
	data      mmap.MMap
	blockSize int
}

// OpenMmap maps the store file at path read-only and addresses it in slots of blockSize bytes.
func OpenMmap(path string, blockSize int) (SlotView, error) {
	if blockSize <= 0 {
		return nil, errors.New("block size must be positive")
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	fi, err := f.Stat()
	if err != nil {
		f.Close()
		return nil, err
	}
	v := &MmapSlotView{f: f, blockSize: blockSize}
	// mmap rejects zero-length mappings; an empty file is simply zero slots.
	if fi.Size() == 0 {
		return v, nil
	}
	m, err := mmap.Map(f, mmap.RDONLY, 0)
	if err != nil {
		f.Close()
		return nil, fmt.Errorf("mmap %s: %w", path, err)
	}
	v.data = m
	return v, nil
}

// Bytes returns the full mapped file.
func (v *MmapSlotView) Bytes() []byte {
	if v.data == nil {
		return nil
	}
	return v.data
}

// BlockSize returns the slot width.
func (v *MmapSlotView) BlockSize() int {
	return v.blockSize
}

// NumSlots returns the number of whole slots in the mapping.
func (v *MmapSlotView) NumSlots() int64 {
	return int64(len(v.data)) / int64(v.blockSize)
}

// Slot returns the bytes of slot index.
// The slice is valid until Close. Caller must not modify it.
func (v *MmapSlotView) Slot(index int64) []byte {
	if v.data == nil {
		return nil
	}
	off, ok := Offset(index, int64(v.blockSize))
	if !ok || off > int64(len(v.data))-int64(v.blockSize) {
		return nil
	}
	return v.data[off : off+int64(v.blockSize)]
}

// Close unmaps the file and closes it.
func (v *MmapSlotView) Close() error {
	if v.data != nil {
		if err := v.data.Unmap(); err != nil {
			return err
		}
		v.data = nil
	}
	if v.f != nil {
		err := v.f.Close()
		v.f = nil
		return err
	}
	return nil
}
