package layout

// SlotView provides read-only, slot-addressed access to a store file.
type SlotView interface {
	// Slot returns the raw blockSize bytes of slot index, padding included.
	// It returns nil when index is negative or past the last whole slot.
	// The slice is valid until Close is called. Caller must not modify it.
	Slot(index int64) []byte
	// NumSlots returns the number of whole slots in the file.
	NumSlots() int64
	// BlockSize returns the slot width in bytes.
	BlockSize() int
	// Bytes returns the full mapped file, or nil for an empty file.
	Bytes() []byte
	// Close releases resources (e.g. unmaps the file).
	Close() error
}
