package wire

import (
	"encoding/binary"
	"fmt"
	"io"
)

// maxOpaqueLength bounds a single length-prefixed field to protect against
// malicious or corrupt length prefixes driving huge allocations.
const maxOpaqueLength = 4 * 1024 * 1024

// DecodeOpaque decodes a [length:uint32][data][padding] field written by WriteOpaque.
func DecodeOpaque(r io.Reader) ([]byte, error) {
	length, err := DecodeUint32(r)
	if err != nil {
		return nil, fmt.Errorf("read opaque length: %w", err)
	}
	if length > maxOpaqueLength {
		return nil, fmt.Errorf("opaque length %d exceeds maximum %d", length, maxOpaqueLength)
	}

	data := make([]byte, length)
	if _, err := io.ReadFull(r, data); err != nil {
		return nil, fmt.Errorf("read opaque data: %w", err)
	}

	padding := (4 - (length % 4)) % 4
	if padding > 0 {
		var padBuf [3]byte
		if _, err := io.ReadFull(r, padBuf[:padding]); err != nil {
			return nil, fmt.Errorf("skip opaque padding: %w", err)
		}
	}
	return data, nil
}

// DecodeFixed reads exactly len(out) bytes with no length prefix and no padding.
func DecodeFixed(r io.Reader, out []byte) error {
	if _, err := io.ReadFull(r, out); err != nil {
		return fmt.Errorf("read fixed[%d]: %w", len(out), err)
	}
	return nil
}

// DecodeUint8 reads a single byte.
func DecodeUint8(r io.Reader) (uint8, error) {
	var b [1]byte
	if _, err := io.ReadFull(r, b[:]); err != nil {
		return 0, fmt.Errorf("read uint8: %w", err)
	}
	return b[0], nil
}

// DecodeUint32 reads a big-endian 32-bit unsigned integer.
func DecodeUint32(r io.Reader) (uint32, error) {
	var v uint32
	if err := binary.Read(r, binary.BigEndian, &v); err != nil {
		return 0, fmt.Errorf("read uint32: %w", err)
	}
	return v, nil
}

// DecodeUint64 reads a big-endian 64-bit unsigned integer.
func DecodeUint64(r io.Reader) (uint64, error) {
	var v uint64
	if err := binary.Read(r, binary.BigEndian, &v); err != nil {
		return 0, fmt.Errorf("read uint64: %w", err)
	}
	return v, nil
}

// DecodeBool reads an XDR-style boolean (0 = false, anything else = true).
func DecodeBool(r io.Reader) (bool, error) {
	v, err := DecodeUint32(r)
	if err != nil {
		return false, err
	}
	return v != 0, nil
}
