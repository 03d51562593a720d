package logger

import (
	"log/slog"
)

// Standard field keys for structured logging. Use these consistently so
// log lines stay queryable across the Leader and Helper code paths.
const (
	// Distributed tracing
	KeyTraceID = "trace_id"
	KeySpanID  = "span_id"

	// Protocol & operation
	KeyProcedure = "procedure" // InitAgg, Continue, Collect, Aggregate, ...
	KeyVersion   = "version"   // wire protocol version
	KeyStatus    = "status"
	KeyStatusMsg = "status_msg"

	// DAP identifiers
	KeyTaskID           = "task_id"
	KeyBatchID          = "batch_id"
	KeyReportID         = "report_id"
	KeyAggregationJobID = "aggregation_job_id"
	KeyReportCount      = "report_count"

	// Batch bucketing
	KeyBucket        = "bucket"
	KeyBatchWindow   = "batch_window"
	KeyTimePrecision = "time_precision"

	// VDAF
	KeyVdafType = "vdaf_type"

	// Abort taxonomy
	KeyAbortKind = "abort_kind"

	// Operation metadata
	KeyDurationMs = "duration_ms"
	KeyError      = "error"
	KeyErrorCode  = "error_code"
	KeyAttempt    = "attempt"
	KeyMaxRetries = "max_retries"
)

func TraceID(id string) slog.Attr { return slog.String(KeyTraceID, id) }
func SpanID(id string) slog.Attr  { return slog.String(KeySpanID, id) }

func Procedure(name string) slog.Attr { return slog.String(KeyProcedure, name) }
func Version(v string) slog.Attr      { return slog.String(KeyVersion, v) }
func Status(code int) slog.Attr       { return slog.Int(KeyStatus, code) }
func StatusMsg(msg string) slog.Attr  { return slog.String(KeyStatusMsg, msg) }

func TaskID(id string) slog.Attr           { return slog.String(KeyTaskID, id) }
func BatchID(id string) slog.Attr          { return slog.String(KeyBatchID, id) }
func ReportID(id string) slog.Attr         { return slog.String(KeyReportID, id) }
func AggregationJobID(id string) slog.Attr { return slog.String(KeyAggregationJobID, id) }
func ReportCount(n int) slog.Attr          { return slog.Int(KeyReportCount, n) }

func Bucket(b string) slog.Attr          { return slog.String(KeyBucket, b) }
func BatchWindow(t uint64) slog.Attr     { return slog.Uint64(KeyBatchWindow, t) }
func TimePrecision(d uint64) slog.Attr   { return slog.Uint64(KeyTimePrecision, d) }

func VdafType(t string) slog.Attr { return slog.String(KeyVdafType, t) }

func AbortKind(kind string) slog.Attr { return slog.String(KeyAbortKind, kind) }

func DurationMs(ms float64) slog.Attr { return slog.Float64(KeyDurationMs, ms) }

func Err(err error) slog.Attr {
	if err == nil {
		return slog.Attr{}
	}
	return slog.String(KeyError, err.Error())
}

func ErrorCode(code int) slog.Attr { return slog.Int(KeyErrorCode, code) }
func Attempt(n int) slog.Attr      { return slog.Int(KeyAttempt, n) }
func MaxRetries(n int) slog.Attr   { return slog.Int(KeyMaxRetries, n) }
