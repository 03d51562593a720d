package messages

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReportMetadataEncodeDecodeRoundTripWithExtensions(t *testing.T) {
	var id ReportID
	id[0] = 1
	meta := ReportMetadata{
		ID:   id,
		Time: Time(1234),
		Extensions: []Extension{
			{Type: 1, Data: []byte("abc")},
			{Type: 2, Data: nil},
		},
	}

	buf := &bytes.Buffer{}
	require.NoError(t, meta.Encode(buf))

	got, err := DecodeReportMetadata(buf)
	require.NoError(t, err)
	assert.Equal(t, meta.ID, got.ID)
	assert.Equal(t, meta.Time, got.Time)
	require.Len(t, got.Extensions, 2)
	assert.Equal(t, uint16(1), got.Extensions[0].Type)
	assert.Equal(t, []byte("abc"), got.Extensions[0].Data)
}

func TestReportEncodeDecodeRoundTripWithTaskID(t *testing.T) {
	var taskID TaskID
	taskID[0] = 0xaa
	var reportID ReportID
	reportID[0] = 1

	rep := Report{
		TaskID:        taskID,
		TaskIDPresent: true,
		Metadata: ReportMetadata{
			ID:   reportID,
			Time: Time(42),
		},
		PublicShare:          []byte("public"),
		EncryptedInputShares: [2][]byte{[]byte("leader-share"), []byte("helper-share")},
	}

	buf := &bytes.Buffer{}
	require.NoError(t, rep.Encode(buf))

	got, err := DecodeReport(buf)
	require.NoError(t, err)
	assert.True(t, got.TaskIDPresent)
	assert.True(t, got.TaskID.Equal(taskID))
	assert.Equal(t, rep.PublicShare, got.PublicShare)
	assert.Equal(t, rep.EncryptedInputShares, got.EncryptedInputShares)
}

func TestReportEncodeDecodeRoundTripWithoutTaskID(t *testing.T) {
	rep := Report{
		TaskIDPresent:        false,
		PublicShare:          []byte{},
		EncryptedInputShares: [2][]byte{{}, {}},
	}

	buf := &bytes.Buffer{}
	require.NoError(t, rep.Encode(buf))

	got, err := DecodeReport(buf)
	require.NoError(t, err)
	assert.False(t, got.TaskIDPresent)
	assert.True(t, got.TaskID.Equal(TaskID{}))
}
