// Package durable implements the naming scheme used to address external
// per-shard, per-task, and per-bucket storage objects. The core itself
// never talks to a store; it only computes the name a caller's store
// implementation should use as a key.
package durable

import (
	"fmt"

	"github.com/marmos91/dapcore/pkg/batch"
	"github.com/marmos91/dapcore/pkg/messages"
)

// QueueName returns the durable name of a work-queue shard.
func QueueName(shard uint64) string {
	return fmt.Sprintf("queue/%d", shard)
}

// ReportStoreName returns the durable name of the report-replay shard
// holding reports for taskIDHex near the given time.
func ReportStoreName(version messages.ProtocolVersion, taskIDHex string, t messages.Time, shard uint64) string {
	return fmt.Sprintf("%s/task/%s/epoch/%020d/shard/%d", version, taskIDHex, uint64(t), shard)
}

// AggregateStoreName returns the durable name of the aggregate-share object
// backing bucket under taskIDHex.
func AggregateStoreName(version messages.ProtocolVersion, taskIDHex string, b batch.Bucket) string {
	switch bucket := b.(type) {
	case batch.FixedSizeBucket:
		return fmt.Sprintf("%s/task/%s/batch/%s", version, taskIDHex, bucket.BatchID.String())
	case batch.TimeIntervalBucket:
		return fmt.Sprintf("%s/task/%s/window/%d", version, taskIDHex, uint64(bucket.BatchWindow))
	default:
		panic(fmt.Sprintf("durable: unknown bucket variant %T", b))
	}
}

// reportIDHexOffset is the number of hex characters preceding the
// report ID within a durable report handle: a 1-byte version prefix plus a
// 32-byte task ID, both in hex, regardless of protocol version — Draft02
// embeds the task ID inside the report's own encoding while later drafts
// carry it alongside, but the handle format places it at the same offset
// either way.
const (
	versionPrefixHexLen = 2
	taskIDHexLen        = messages.TaskIDLen * 2
	reportIDHexOffset   = versionPrefixHexLen + taskIDHexLen
	reportIDHexLen      = messages.ReportIDLen * 2
)

// ReportIDHexFromReport extracts the hex-encoded report ID from a durable
// report handle (version-prefix + task-ID-hex + report-hex) without fully
// decoding the report, so that changes to the report wire format can be
// checked against this fixed offset.
func ReportIDHexFromReport(doHex string) (string, error) {
	if len(doHex) < reportIDHexOffset+reportIDHexLen {
		return "", fmt.Errorf("durable: handle too short to contain a report id (%d bytes)", len(doHex))
	}
	return doHex[reportIDHexOffset : reportIDHexOffset+reportIDHexLen], nil
}
