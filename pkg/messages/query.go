package messages

import (
	"bytes"
	"fmt"
	"io"

	"github.com/marmos91/dapcore/internal/wire"
)

// QueryConfig is a task's query-mode configuration: a tagged union of
// TimeInterval and FixedSize.
type QueryConfig interface {
	isQueryConfig()
}

// TimeIntervalQueryConfig selects TimeInterval query mode: reports are
// bucketed by truncated timestamp.
type TimeIntervalQueryConfig struct{}

func (TimeIntervalQueryConfig) isQueryConfig() {}

// FixedSizeQueryConfig selects FixedSize query mode: reports are assigned
// to a batch named by BatchID, capped at MaxBatchSize.
type FixedSizeQueryConfig struct {
	MaxBatchSize uint64
}

func (FixedSizeQueryConfig) isQueryConfig() {}

// Interval is a half-open time range [Start, Start+Duration).
type Interval struct {
	Start    Time
	Duration Duration
}

// PartialBatchSelector identifies which bucket a single report or output
// share belongs to, at the granularity the query mode requires. Its shape
// must match the task's QueryConfig kind; a mismatch is the caller's Fatal
// to raise.
type PartialBatchSelector interface {
	isPartialBatchSelector()
}

// TimeIntervalPartialSelector carries no extra data: the bucket is derived
// from each report's own timestamp.
type TimeIntervalPartialSelector struct{}

func (TimeIntervalPartialSelector) isPartialBatchSelector() {}

// FixedSizePartialSelector names the batch all reports in this job belong
// to.
type FixedSizePartialSelector struct {
	BatchID BatchID
}

func (FixedSizePartialSelector) isPartialBatchSelector() {}

// queryTagTimeInterval and queryTagFixedSize discriminate the wire encoding
// of PartialBatchSelector. Values match the query-mode tag used elsewhere
// on the wire.
const (
	queryTagTimeInterval uint8 = 1
	queryTagFixedSize    uint8 = 2
)

// EncodePartialBatchSelector writes a one-byte kind tag followed by the
// selector's own fields, if any.
func EncodePartialBatchSelector(buf *bytes.Buffer, sel PartialBatchSelector) error {
	switch s := sel.(type) {
	case TimeIntervalPartialSelector:
		return wire.WriteUint8(buf, queryTagTimeInterval)
	case FixedSizePartialSelector:
		if err := wire.WriteUint8(buf, queryTagFixedSize); err != nil {
			return err
		}
		return s.BatchID.Encode(buf)
	default:
		return fmt.Errorf("messages: encode partial batch selector: unknown type %T", sel)
	}
}

// DecodePartialBatchSelector reads a selector written by
// EncodePartialBatchSelector.
func DecodePartialBatchSelector(r io.Reader) (PartialBatchSelector, error) {
	tag, err := wire.DecodeUint8(r)
	if err != nil {
		return nil, fmt.Errorf("messages: decode partial batch selector tag: %w", err)
	}
	switch tag {
	case queryTagTimeInterval:
		return TimeIntervalPartialSelector{}, nil
	case queryTagFixedSize:
		batchID, err := DecodeBatchID(r)
		if err != nil {
			return nil, fmt.Errorf("messages: decode partial batch selector batch id: %w", err)
		}
		return FixedSizePartialSelector{BatchID: batchID}, nil
	default:
		return nil, fmt.Errorf("messages: decode partial batch selector: unknown tag %d", tag)
	}
}

// BatchSelector is a Collector's batch-query shape: a tagged union mirroring
// QueryConfig but carrying the query's own parameters (the time interval to
// collect, or the batch ID to collect).
type BatchSelector interface {
	isBatchSelector()
}

// TimeIntervalBatchSelector selects every bucket covering Interval.
type TimeIntervalBatchSelector struct {
	Interval Interval
}

func (TimeIntervalBatchSelector) isBatchSelector() {}

// FixedSizeBatchSelector selects the single bucket named by BatchID.
type FixedSizeBatchSelector struct {
	BatchID BatchID
}

func (FixedSizeBatchSelector) isBatchSelector() {}
