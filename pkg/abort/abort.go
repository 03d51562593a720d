// Package abort implements the peer-visible abort taxonomy and the
// RFC 7807 problem-document rendering the core uses to surface protocol
// faults. It also carries the three-tier fault model (Fatal, Abort,
// Transition) that every other package raises.
package abort

import "fmt"

// Kind enumerates the peer-visible abort kinds. Each renders as an
// "urn:ietf:params:ppm:dap:error:<kind>" problem-document type.
type Kind int

const (
	KindBadRequest Kind = iota
	KindBatchInvalid
	KindBatchMismatch
	KindBatchOverlap
	KindInvalidBatchSize
	KindInvalidProtocolVersion
	KindInvalidTask
	KindMissingTaskId
	KindQueryMismatch
	KindReplayedReport
	KindReportTooLate
	KindStaleReport
	KindUnauthorizedRequest
	KindUnrecognizedAggregationJob
	KindUnrecognizedHpkeConfig
	KindUnrecognizedMessage
	KindUnrecognizedTask
	KindInternal
)

// String returns the URN suffix used in a problem document's type field.
func (k Kind) String() string {
	switch k {
	case KindBadRequest:
		return "badRequest"
	case KindBatchInvalid:
		return "batchInvalid"
	case KindBatchMismatch:
		return "batchMismatch"
	case KindBatchOverlap:
		return "batchOverlap"
	case KindInvalidBatchSize:
		return "invalidBatchSize"
	case KindInvalidProtocolVersion:
		return "invalidProtocolVersion"
	case KindInvalidTask:
		return "invalidTask"
	case KindMissingTaskId:
		return "missingTaskId"
	case KindQueryMismatch:
		return "queryMismatch"
	case KindReplayedReport:
		return "replayedReport"
	case KindReportTooLate:
		return "reportTooLate"
	case KindStaleReport:
		return "staleReport"
	case KindUnauthorizedRequest:
		return "unauthorizedRequest"
	case KindUnrecognizedAggregationJob:
		return "unrecognizedAggregationJob"
	case KindUnrecognizedHpkeConfig:
		return "unrecognizedHpkeConfig"
	case KindUnrecognizedMessage:
		return "unrecognizedMessage"
	case KindUnrecognizedTask:
		return "unrecognizedTask"
	case KindInternal:
		return "internal"
	default:
		return "unknown"
	}
}

// Error is a peer-visible abort: a protocol violation that terminates the
// current request and is safe to describe to the peer.
type Error struct {
	Kind   Kind
	Detail string // only rendered for BadRequest and Internal
	TaskID string // optional, included in the problem document when set
}

func (e *Error) Error() string {
	if e.Detail != "" {
		return fmt.Sprintf("dap abort (%s): %s", e.Kind, e.Detail)
	}
	return fmt.Sprintf("dap abort (%s)", e.Kind)
}

// ProblemDetails is the RFC 7807 wire form of an Error.
type ProblemDetails struct {
	Type     string `json:"type"`
	TaskID   string `json:"taskid,omitempty"`
	Instance string `json:"instance,omitempty"`
	Detail   string `json:"detail,omitempty"`
}

// ToProblemDetails renders e as an RFC 7807 problem document. Instance is
// caller-supplied (e.g. the request URL); it is not tracked by Error
// itself.
func (e *Error) ToProblemDetails(instance string) *ProblemDetails {
	pd := &ProblemDetails{
		Type:     "urn:ietf:params:ppm:dap:error:" + e.Kind.String(),
		TaskID:   e.TaskID,
		Instance: instance,
	}
	if e.Kind == KindBadRequest || e.Kind == KindInternal {
		pd.Detail = e.Detail
	}
	return pd
}

func newError(kind Kind, detail string) *Error {
	return &Error{Kind: kind, Detail: detail}
}

func NewBadRequestError(detail string) *Error      { return newError(KindBadRequest, detail) }
func NewBatchInvalidError() *Error                 { return newError(KindBatchInvalid, "") }
func NewBatchMismatchError() *Error                { return newError(KindBatchMismatch, "") }
func NewBatchOverlapError() *Error                 { return newError(KindBatchOverlap, "") }
func NewInvalidBatchSizeError() *Error             { return newError(KindInvalidBatchSize, "") }
func NewInvalidProtocolVersionError() *Error       { return newError(KindInvalidProtocolVersion, "") }
func NewInvalidTaskError() *Error                  { return newError(KindInvalidTask, "") }
func NewMissingTaskIdError() *Error                { return newError(KindMissingTaskId, "") }
func NewQueryMismatchError() *Error                { return newError(KindQueryMismatch, "") }
func NewReplayedReportError() *Error               { return newError(KindReplayedReport, "") }
func NewReportTooLateError() *Error                { return newError(KindReportTooLate, "") }
func NewStaleReportError() *Error                  { return newError(KindStaleReport, "") }
func NewUnauthorizedRequestError() *Error          { return newError(KindUnauthorizedRequest, "") }
func NewUnrecognizedAggregationJobError() *Error   { return newError(KindUnrecognizedAggregationJob, "") }
func NewUnrecognizedHpkeConfigError() *Error       { return newError(KindUnrecognizedHpkeConfig, "") }
func NewUnrecognizedMessageError() *Error          { return newError(KindUnrecognizedMessage, "") }
func NewUnrecognizedTaskError() *Error             { return newError(KindUnrecognizedTask, "") }
func NewInternalError(detail string) *Error        { return newError(KindInternal, detail) }

// IsStaleReportError reports whether err is a StaleReport abort.
func IsStaleReportError(err error) bool { return kindOf(err) == KindStaleReport }

// IsReplayedReportError reports whether err is a ReplayedReport abort.
func IsReplayedReportError(err error) bool { return kindOf(err) == KindReplayedReport }

// IsInternalError reports whether err is an Internal abort.
func IsInternalError(err error) bool { return kindOf(err) == KindInternal }

func kindOf(err error) Kind {
	e, ok := err.(*Error)
	if !ok {
		return -1
	}
	return e.Kind
}
