package batch

import (
	"github.com/marmos91/dapcore/pkg/abort"
	"github.com/marmos91/dapcore/pkg/aggregate"
	"github.com/marmos91/dapcore/pkg/messages"
)

// BucketFor maps a report's timestamp to its bucket, given the task's query
// mode and (for FixedSize) the job's partial batch selector. sel's shape
// must match query's kind; a mismatch is Fatal, since it can only result
// from the core itself routing a job to the wrong bucketing function.
func BucketFor(query messages.QueryConfig, sel messages.PartialBatchSelector, timePrecision messages.Duration, reportTime messages.Time) (Bucket, *abort.Fault) {
	switch query.(type) {
	case messages.TimeIntervalQueryConfig:
		s, ok := sel.(messages.TimeIntervalPartialSelector)
		if !ok {
			return nil, abort.Fatalf("batch: partial batch selector %T does not match TimeInterval query", sel)
		}
		_ = s
		window := reportTime - messages.Time(uint64(reportTime)%uint64(timePrecision))
		return TimeIntervalBucket{BatchWindow: window}, nil
	case messages.FixedSizeQueryConfig:
		s, ok := sel.(messages.FixedSizePartialSelector)
		if !ok {
			return nil, abort.Fatalf("batch: partial batch selector %T does not match FixedSize query", sel)
		}
		return FixedSizeBucket{BatchID: s.BatchID}, nil
	default:
		return nil, abort.Fatalf("batch: unrecognized query config %T", query)
	}
}

// SpanForOutShares folds each output share into its bucket's aggregate
// share via Merge, returning one Share per bucket touched.
func SpanForOutShares(query messages.QueryConfig, sel messages.PartialBatchSelector, timePrecision messages.Duration, outShares []aggregate.OutputShare) (map[Bucket]*aggregate.Share, *abort.Fault) {
	spans := make(map[Bucket]*aggregate.Share)
	for _, out := range outShares {
		bucket, fault := BucketFor(query, sel, timePrecision, out.Time)
		if fault != nil {
			return nil, fault
		}
		existing, ok := spans[bucket]
		if !ok {
			share := aggregate.FromOutputShare(out)
			spans[bucket] = &share
			continue
		}
		if fault := existing.Merge(aggregate.FromOutputShare(out)); fault != nil {
			return nil, fault
		}
	}
	return spans, nil
}

// SpanForSelector enumerates every bucket a Collector's batch selector
// covers. For TimeInterval it returns one bucket per timePrecision-sized
// window in the interval; for FixedSize it returns the single named batch.
// Precondition: timePrecision divides both the interval's start and
// duration; violating it is Fatal, since the caller should have validated
// the selector against the task config before reaching here.
func SpanForSelector(sel messages.BatchSelector, timePrecision messages.Duration) (map[Bucket]struct{}, *abort.Fault) {
	switch s := sel.(type) {
	case messages.TimeIntervalBatchSelector:
		if uint64(s.Interval.Start)%uint64(timePrecision) != 0 || uint64(s.Interval.Duration)%uint64(timePrecision) != 0 {
			return nil, abort.Fatalf("batch: time_precision %d does not divide interval start=%d duration=%d", timePrecision, s.Interval.Start, s.Interval.Duration)
		}
		windows := uint64(s.Interval.Duration) / uint64(timePrecision)
		out := make(map[Bucket]struct{}, windows)
		for i := uint64(0); i < windows; i++ {
			out[TimeIntervalBucket{BatchWindow: s.Interval.Start.Add(messages.Duration(i * uint64(timePrecision)))}] = struct{}{}
		}
		return out, nil
	case messages.FixedSizeBatchSelector:
		return map[Bucket]struct{}{FixedSizeBucket{BatchID: s.BatchID}: {}}, nil
	default:
		return nil, abort.Fatalf("batch: unrecognized batch selector %T", sel)
	}
}

// SpanForMeta groups report metadata by bucket, analogous to
// SpanForOutShares but without aggregation.
func SpanForMeta(query messages.QueryConfig, sel messages.PartialBatchSelector, timePrecision messages.Duration, metas []messages.ReportMetadata) (map[Bucket][]messages.ReportMetadata, *abort.Fault) {
	out := make(map[Bucket][]messages.ReportMetadata)
	for _, meta := range metas {
		bucket, fault := BucketFor(query, sel, timePrecision, meta.Time)
		if fault != nil {
			return nil, fault
		}
		out[bucket] = append(out[bucket], meta)
	}
	return out, nil
}

// IsReportCountCompatible reports whether a batch of n reports may be
// collected under query: FixedSize rejects n exceeding maxBatchSize with
// InvalidBatchSize; both modes additionally require n >= minBatchSize.
func IsReportCountCompatible(query messages.QueryConfig, minBatchSize uint64, n uint64) (bool, *abort.Error) {
	if fs, ok := query.(messages.FixedSizeQueryConfig); ok {
		if n > fs.MaxBatchSize {
			return false, abort.NewInvalidBatchSizeError()
		}
	}
	return n >= minBatchSize, nil
}
