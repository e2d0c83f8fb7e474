package blockstore

import (
	"errors"

	"github.com/ic-timon/blockfile/blockstore/layout"
)

var (
	// ErrClosed is returned by every operation on a store after Close.
	ErrClosed = errors.New("store closed")

	// ErrInvalidBlockSize is returned when the configured block size is not positive.
	ErrInvalidBlockSize = errors.New("block size must be positive")

	// ErrInvalidPath is returned when no backing file path is configured.
	ErrInvalidPath = errors.New("file path is empty")

	// ErrInvalidIndex is returned by Put when the slot offset is negative or overflows.
	ErrInvalidIndex = errors.New("invalid slot index")

	// ErrPayloadTooLarge is returned by Put when the encoded envelope exceeds the block size.
	ErrPayloadTooLarge = layout.ErrPayloadTooLarge

	// ErrMalformedEnvelope is returned by Get when a slot does not hold a valid envelope.
	ErrMalformedEnvelope = layout.ErrMalformedEnvelope
)
