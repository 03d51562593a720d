package messages

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTaskIDEncodeDecodeRoundTrip(t *testing.T) {
	var id TaskID
	for i := range id {
		id[i] = byte(i)
	}
	buf := &bytes.Buffer{}
	require.NoError(t, id.Encode(buf))
	assert.Len(t, buf.Bytes(), TaskIDLen)

	got, err := DecodeTaskID(buf)
	require.NoError(t, err)
	assert.True(t, id.Equal(got))
}

func TestReportIDEncodeDecodeRoundTrip(t *testing.T) {
	var id ReportID
	id[0] = 0xff
	buf := &bytes.Buffer{}
	require.NoError(t, id.Encode(buf))
	assert.Len(t, buf.Bytes(), ReportIDLen)

	got, err := DecodeReportID(buf)
	require.NoError(t, err)
	assert.True(t, id.Equal(got))
}

func TestAggregationJobIDEncodeDecodeRoundTrip(t *testing.T) {
	var id AggregationJobID
	id[15] = 7
	buf := &bytes.Buffer{}
	require.NoError(t, id.Encode(buf))

	got, err := DecodeAggregationJobID(buf)
	require.NoError(t, err)
	assert.True(t, id.Equal(got))
}

func TestBatchIDString(t *testing.T) {
	var id BatchID
	id[0] = 0xde
	id[1] = 0xad
	assert.Equal(t, "dead", id.String()[:4])
}

func TestIdentifierEqualIsByteWise(t *testing.T) {
	var a, b TaskID
	a[5] = 1
	assert.False(t, a.Equal(b))
	b[5] = 1
	assert.True(t, a.Equal(b))
}
