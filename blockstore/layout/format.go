package layout

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"math"
)

// EnvelopeKey is the single field every slot envelope carries.
const EnvelopeKey = "value"

var (
	// ErrPayloadTooLarge is returned when an encoded envelope does not fit in one slot.
	ErrPayloadTooLarge = errors.New("payload exceeds block size")

	// ErrMalformedEnvelope is returned when slot text is not a {"value": ...} object.
	ErrMalformedEnvelope = errors.New("malformed envelope")
)

// Offset returns the byte offset of slot index. ok is false when the offset
// would be negative or does not fit in an int64.
func Offset(index, blockSize int64) (off int64, ok bool) {
	if blockSize <= 0 || index < 0 {
		return 0, false
	}
	if index > math.MaxInt64/blockSize {
		return 0, false
	}
	return index * blockSize, true
}

// Pad right-pads src with zero bytes to exactly blockSize bytes.
// src is returned unchanged when it is already blockSize long.
func Pad(src []byte, blockSize int) ([]byte, error) {
	if len(src) > blockSize {
		return nil, fmt.Errorf("%w: %d > %d", ErrPayloadTooLarge, len(src), blockSize)
	}
	if len(src) == blockSize {
		return src, nil
	}
	padded := make([]byte, blockSize)
	copy(padded, src)
	return padded, nil
}

// Strip removes every zero byte from src.
func Strip(src []byte) []byte {
	if bytes.IndexByte(src, 0) < 0 {
		return src
	}
	return bytes.ReplaceAll(src, []byte{0}, nil)
}

// EncodeEnvelope serializes v wrapped as {"value": v}.
func EncodeEnvelope(v any) ([]byte, error) {
	var w bytes.Buffer
	enc := json.NewEncoder(&w)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(map[string]any{EnvelopeKey: v}); err != nil {
		return nil, err
	}
	// Encoder terminates each value with a newline.
	return bytes.TrimSuffix(w.Bytes(), []byte{'\n'}), nil
}

// DecodeEnvelope parses src as {"value": ...} and decodes the value into out.
func DecodeEnvelope(src []byte, out any) error {
	var env map[string]json.RawMessage
	if err := json.Unmarshal(src, &env); err != nil {
		return fmt.Errorf("%w: %v", ErrMalformedEnvelope, err)
	}
	raw, ok := env[EnvelopeKey]
	if !ok {
		return fmt.Errorf("%w: missing %q field", ErrMalformedEnvelope, EnvelopeKey)
	}
	if err := json.Unmarshal(raw, out); err != nil {
		return fmt.Errorf("decode value: %w", err)
	}
	return nil
}
