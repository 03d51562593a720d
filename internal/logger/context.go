package logger

import (
	"context"
	"time"
)

type contextKey struct{}

var logContextKey = contextKey{}

// LogContext carries request-scoped identifiers that get auto-injected by
// the *Ctx logging functions: which task/batch/report/aggregation job a log
// line belongs to, plus distributed-tracing IDs.
type LogContext struct {
	TraceID          string
	SpanID           string
	Procedure        string // Leader/Helper operation name: InitAgg, Continue, Collect, ...
	TaskID           string
	BatchID          string
	ReportID         string
	AggregationJobID string
	StartTime        time.Time
}

// WithContext attaches lc to ctx.
func WithContext(ctx context.Context, lc *LogContext) context.Context {
	return context.WithValue(ctx, logContextKey, lc)
}

// FromContext returns the LogContext attached to ctx, or nil.
func FromContext(ctx context.Context) *LogContext {
	lc, _ := ctx.Value(logContextKey).(*LogContext)
	return lc
}

// NewLogContext returns a LogContext with StartTime set to now.
func NewLogContext() *LogContext {
	return &LogContext{StartTime: time.Now()}
}

// Clone returns a shallow copy of lc.
func (lc *LogContext) Clone() *LogContext {
	if lc == nil {
		return NewLogContext()
	}
	clone := *lc
	return &clone
}

// WithProcedure returns a copy of lc with Procedure set.
func (lc *LogContext) WithProcedure(procedure string) *LogContext {
	clone := lc.Clone()
	clone.Procedure = procedure
	return clone
}

// WithTask returns a copy of lc with TaskID set.
func (lc *LogContext) WithTask(taskID string) *LogContext {
	clone := lc.Clone()
	clone.TaskID = taskID
	return clone
}

// WithBatch returns a copy of lc with BatchID set.
func (lc *LogContext) WithBatch(batchID string) *LogContext {
	clone := lc.Clone()
	clone.BatchID = batchID
	return clone
}

// WithReport returns a copy of lc with ReportID set.
func (lc *LogContext) WithReport(reportID string) *LogContext {
	clone := lc.Clone()
	clone.ReportID = reportID
	return clone
}

// WithAggregationJob returns a copy of lc with AggregationJobID set.
func (lc *LogContext) WithAggregationJob(jobID string) *LogContext {
	clone := lc.Clone()
	clone.AggregationJobID = jobID
	return clone
}

// WithTrace returns a copy of lc with trace/span IDs set.
func (lc *LogContext) WithTrace(traceID, spanID string) *LogContext {
	clone := lc.Clone()
	clone.TraceID = traceID
	clone.SpanID = spanID
	return clone
}

// DurationMs returns the milliseconds elapsed since lc.StartTime.
func (lc *LogContext) DurationMs() float64 {
	if lc == nil || lc.StartTime.IsZero() {
		return 0
	}
	return float64(time.Since(lc.StartTime).Microseconds()) / 1000.0
}
