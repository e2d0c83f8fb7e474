// Package layout describes the on-disk slot format shared by the block store
// and its readers, and provides a read-only mmap view of a store file.
//
// A store file is a flat run of equal-sized slots with no header:
//   - Slot i occupies bytes [i*blockSize, i*blockSize+blockSize)
//   - A slot holds the JSON envelope {"value":<payload>}
//   - The envelope is right-padded with 0x00 to exactly blockSize bytes
//   - An all-zero slot is empty
package layout
