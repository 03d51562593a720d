package wire_test

import (
	"bytes"
	"testing"

	"github.com/marmos91/dapcore/internal/wire"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOpaqueRoundTrip(t *testing.T) {
	cases := [][]byte{
		{},
		{0x01},
		{0x01, 0x02, 0x03},
		{0x01, 0x02, 0x03, 0x04},
		bytes.Repeat([]byte{0xAB}, 257),
	}

	for _, data := range cases {
		var buf bytes.Buffer
		require.NoError(t, wire.WriteOpaque(&buf, data))
		assert.Equal(t, 0, buf.Len()%4, "encoded opaque must be 4-byte aligned")

		got, err := wire.DecodeOpaque(&buf)
		require.NoError(t, err)
		assert.Equal(t, data, got)
		assert.Equal(t, 0, buf.Len(), "no trailing bytes")
	}
}

func TestUint32RoundTrip(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, wire.WriteUint32(&buf, 1664850074))
	assert.Equal(t, 4, buf.Len())

	got, err := wire.DecodeUint32(&buf)
	require.NoError(t, err)
	assert.Equal(t, uint32(1664850074), got)
}

func TestUint64RoundTrip(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, wire.WriteUint64(&buf, 1664850074))
	got, err := wire.DecodeUint64(&buf)
	require.NoError(t, err)
	assert.Equal(t, uint64(1664850074), got)
}

func TestBoolRoundTrip(t *testing.T) {
	for _, v := range []bool{true, false} {
		var buf bytes.Buffer
		require.NoError(t, wire.WriteBool(&buf, v))
		got, err := wire.DecodeBool(&buf)
		require.NoError(t, err)
		assert.Equal(t, v, got)
	}
}

func TestDecodeOpaqueRejectsOversizedLength(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, wire.WriteUint32(&buf, 1<<30))
	_, err := wire.DecodeOpaque(&buf)
	assert.Error(t, err)
}

func TestFixedRoundTrip(t *testing.T) {
	var buf bytes.Buffer
	in := bytes.Repeat([]byte{0x11}, 32)
	require.NoError(t, wire.WriteFixed(&buf, in))

	out := make([]byte, 32)
	require.NoError(t, wire.DecodeFixed(&buf, out))
	assert.Equal(t, in, out)
}
