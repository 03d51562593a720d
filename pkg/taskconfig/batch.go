package taskconfig

import (
	"github.com/marmos91/dapcore/pkg/abort"
	"github.com/marmos91/dapcore/pkg/aggregate"
	"github.com/marmos91/dapcore/pkg/batch"
	"github.com/marmos91/dapcore/pkg/messages"
)

// BatchSpanForOutShares folds outShares into their buckets' aggregate
// shares under this task's query mode.
func (t *TaskConfig) BatchSpanForOutShares(sel messages.PartialBatchSelector, outShares []aggregate.OutputShare) (map[batch.Bucket]*aggregate.Share, *abort.Fault) {
	return batch.SpanForOutShares(t.Query, sel, t.TimePrecision, outShares)
}

// BatchSpanForSelector enumerates every bucket a Collector's batchSel
// covers under this task's time precision.
func (t *TaskConfig) BatchSpanForSelector(batchSel messages.BatchSelector) (map[batch.Bucket]struct{}, *abort.Fault) {
	return batch.SpanForSelector(batchSel, t.TimePrecision)
}

// BatchSpanForMeta groups report metadata by bucket under this task's
// query mode.
func (t *TaskConfig) BatchSpanForMeta(sel messages.PartialBatchSelector, metas []messages.ReportMetadata) (map[batch.Bucket][]messages.ReportMetadata, *abort.Fault) {
	return batch.SpanForMeta(t.Query, sel, t.TimePrecision, metas)
}

// IsReportCountCompatible reports whether n reports may be collected under
// this task's query mode and minimum batch size.
func (t *TaskConfig) IsReportCountCompatible(n uint64) (bool, *abort.Error) {
	return batch.IsReportCountCompatible(t.Query, t.MinBatchSize, n)
}

// BucketFor maps a report's timestamp to its bucket under this task.
func (t *TaskConfig) BucketFor(sel messages.PartialBatchSelector, reportTime messages.Time) (batch.Bucket, *abort.Fault) {
	return batch.BucketFor(t.Query, sel, t.TimePrecision, reportTime)
}
