package durable

import (
	"encoding/hex"
	"strings"
	"testing"

	"github.com/marmos91/dapcore/pkg/batch"
	"github.com/marmos91/dapcore/pkg/messages"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// repeatedTaskIDHex builds the hex of a TaskIDLen-byte identifier with every
// byte set to b, such as the 0x11*32 task ID the concrete scenarios use.
func repeatedTaskIDHex(b byte) string {
	return strings.Repeat(hex.EncodeToString([]byte{b}), messages.TaskIDLen)
}

// TestQueueNameScenario is scenario 1: durable name for queue shard.
func TestQueueNameScenario(t *testing.T) {
	assert.Equal(t, "queue/1234", QueueName(1234))
}

// TestReportStoreNameScenario is scenario 2: durable name for report store
// (TimeInterval bucket).
func TestReportStoreNameScenario(t *testing.T) {
	taskIDHex := repeatedTaskIDHex(0x11)
	name := ReportStoreName(messages.Draft02, taskIDHex, messages.Time(1664850074), 1234)
	assert.Equal(t, "v02/task/"+taskIDHex+"/epoch/00000000001664850074/shard/1234", name)
}

// TestAggregateStoreNameScenario is scenario 3: durable name for agg store
// (FixedSize bucket).
func TestAggregateStoreNameScenario(t *testing.T) {
	taskIDHex := repeatedTaskIDHex(0x11)
	var batchID messages.BatchID
	for i := range batchID {
		batchID[i] = 0x22
	}
	name := AggregateStoreName(messages.Draft02, taskIDHex, batch.FixedSizeBucket{BatchID: batchID})
	assert.Equal(t, "v02/task/"+taskIDHex+"/batch/"+batchID.String(), name)
}

func TestAggregateStoreNameTimeInterval(t *testing.T) {
	name := AggregateStoreName(messages.Draft03, "aabb", batch.TimeIntervalBucket{BatchWindow: 60})
	assert.Equal(t, "v03/task/aabb/window/60", name)
}

func TestAggregateStoreNamePanicsOnUnknownBucket(t *testing.T) {
	assert.Panics(t, func() {
		AggregateStoreName(messages.Draft03, "aabb", nil)
	})
}

func TestReportIDHexFromReport(t *testing.T) {
	versionPrefix := "01"
	taskIDHex := hex.EncodeToString(make([]byte, messages.TaskIDLen))
	var reportID messages.ReportID
	reportID[0] = 0xff
	reportHex := reportID.String() + "00"

	handle := versionPrefix + taskIDHex + reportHex
	got, err := ReportIDHexFromReport(handle)
	require.NoError(t, err)
	assert.Equal(t, reportID.String(), got)
}

func TestReportIDHexFromReportRejectsShortHandle(t *testing.T) {
	_, err := ReportIDHexFromReport("00")
	assert.Error(t, err)
}
