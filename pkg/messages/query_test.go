package messages

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEncodeDecodePartialBatchSelectorTimeInterval(t *testing.T) {
	buf := &bytes.Buffer{}
	require.NoError(t, EncodePartialBatchSelector(buf, TimeIntervalPartialSelector{}))

	got, err := DecodePartialBatchSelector(buf)
	require.NoError(t, err)
	assert.Equal(t, TimeIntervalPartialSelector{}, got)
}

func TestEncodeDecodePartialBatchSelectorFixedSize(t *testing.T) {
	var batchID BatchID
	batchID[0] = 9
	sel := FixedSizePartialSelector{BatchID: batchID}

	buf := &bytes.Buffer{}
	require.NoError(t, EncodePartialBatchSelector(buf, sel))

	got, err := DecodePartialBatchSelector(buf)
	require.NoError(t, err)
	assert.Equal(t, sel, got)
}

func TestDecodePartialBatchSelectorRejectsUnknownTag(t *testing.T) {
	buf := bytes.NewBuffer([]byte{0xff})
	_, err := DecodePartialBatchSelector(buf)
	assert.Error(t, err)
}

func TestEncodePartialBatchSelectorRejectsUnknownType(t *testing.T) {
	buf := &bytes.Buffer{}
	err := EncodePartialBatchSelector(buf, nil)
	assert.Error(t, err)
}
