// Package wire implements the low-level encoding primitives shared by every
// DAP wire message: big-endian fixed-width integers and length-prefixed
// variable-length fields, aligned to 4-byte boundaries in the style of
// RFC 4506 (XDR).
package wire

import (
	"bytes"
	"encoding/binary"
	"fmt"
)

// WriteOpaque encodes a variable-length byte string as [length:uint32][data][padding].
//
// Padding brings the total to a multiple of 4 bytes, matching the framing
// every other length-prefixed DAP field uses.
func WriteOpaque(buf *bytes.Buffer, data []byte) error {
	if err := WriteUint32(buf, uint32(len(data))); err != nil {
		return fmt.Errorf("write opaque length: %w", err)
	}
	if _, err := buf.Write(data); err != nil {
		return fmt.Errorf("write opaque data: %w", err)
	}
	return WritePadding(buf, uint32(len(data)))
}

// WriteFixed writes a fixed-size byte array verbatim, with no length prefix
// and no padding. Used for identifiers (TaskID, BatchID, ReportID, ...) whose
// size is determined entirely by their type.
func WriteFixed(buf *bytes.Buffer, data []byte) error {
	if _, err := buf.Write(data); err != nil {
		return fmt.Errorf("write fixed: %w", err)
	}
	return nil
}

// WritePadding writes zero bytes until dataLen is aligned to a 4-byte boundary.
func WritePadding(buf *bytes.Buffer, dataLen uint32) error {
	padding := (4 - (dataLen % 4)) % 4
	if padding == 0 {
		return nil
	}
	var padBytes [3]byte
	if _, err := buf.Write(padBytes[:padding]); err != nil {
		return fmt.Errorf("write padding: %w", err)
	}
	return nil
}

// WriteUint8 encodes a single byte.
func WriteUint8(buf *bytes.Buffer, v uint8) error {
	return buf.WriteByte(v)
}

// WriteUint32 encodes a 32-bit unsigned integer, big-endian.
func WriteUint32(buf *bytes.Buffer, v uint32) error {
	if err := binary.Write(buf, binary.BigEndian, v); err != nil {
		return fmt.Errorf("write uint32: %w", err)
	}
	return nil
}

// WriteUint64 encodes a 64-bit unsigned integer, big-endian.
func WriteUint64(buf *bytes.Buffer, v uint64) error {
	if err := binary.Write(buf, binary.BigEndian, v); err != nil {
		return fmt.Errorf("write uint64: %w", err)
	}
	return nil
}

// WriteBool encodes a boolean as a uint32, 0 = false, 1 = true.
func WriteBool(buf *bytes.Buffer, v bool) error {
	var val uint32
	if v {
		val = 1
	}
	return WriteUint32(buf, val)
}
