package abort

import "fmt"

// TransitionFailure tags a single report's rejection within an aggregation
// job. Most values are per-report and never escape the job; BatchCollected
// and ReportReplayed are promoted to a job-level Abort by Lift.
type TransitionFailure int

const (
	TransitionFailureBatchCollected TransitionFailure = iota
	TransitionFailureReportReplayed
	TransitionFailureReportDropped
	TransitionFailureHpkeUnknownConfigId
	TransitionFailureHpkeDecryptError
	TransitionFailureVdafPrepError
	TransitionFailureBatchSaturated
	TransitionFailureTaskExpired
	TransitionFailureInvalidMessage
	TransitionFailureReportTooEarly
)

func (t TransitionFailure) String() string {
	switch t {
	case TransitionFailureBatchCollected:
		return "batch_collected"
	case TransitionFailureReportReplayed:
		return "report_replayed"
	case TransitionFailureReportDropped:
		return "report_dropped"
	case TransitionFailureHpkeUnknownConfigId:
		return "hpke_unknown_config_id"
	case TransitionFailureHpkeDecryptError:
		return "hpke_decrypt_error"
	case TransitionFailureVdafPrepError:
		return "vdaf_prep_error"
	case TransitionFailureBatchSaturated:
		return "batch_saturated"
	case TransitionFailureTaskExpired:
		return "task_expired"
	case TransitionFailureInvalidMessage:
		return "invalid_message"
	case TransitionFailureReportTooEarly:
		return "report_too_early"
	default:
		return "unknown"
	}
}

// FaultKind distinguishes the three tiers of the fault model.
type FaultKind int

const (
	FaultFatal FaultKind = iota
	FaultAbort
	FaultTransition
)

// Fault is the core's internal error type: every component raises one of
// three kinds. Fatal never reaches a peer; Abort is rendered as a problem
// document; Transition blocks a single report and only escalates to Abort
// for the two kinds Lift maps.
type Fault struct {
	Kind       FaultKind
	fatal      error
	abortErr   *Error
	transition TransitionFailure
}

func (f *Fault) Error() string {
	switch f.Kind {
	case FaultFatal:
		return fmt.Sprintf("fatal: %v", f.fatal)
	case FaultAbort:
		return f.abortErr.Error()
	case FaultTransition:
		return fmt.Sprintf("transition: %s", f.transition)
	default:
		return "unknown fault"
	}
}

// Fatal wraps cause as an internal invariant violation. The job is
// abandoned; this must never be rendered to a peer.
func Fatal(cause error) *Fault {
	return &Fault{Kind: FaultFatal, fatal: cause}
}

// Fatalf is Fatal with a formatted message.
func Fatalf(format string, args ...any) *Fault {
	return Fatal(fmt.Errorf(format, args...))
}

// Abort wraps a peer-visible abort.
func Abort(err *Error) *Fault {
	return &Fault{Kind: FaultAbort, abortErr: err}
}

// Transition wraps a per-report transition failure.
func Transition(t TransitionFailure) *Fault {
	return &Fault{Kind: FaultTransition, transition: t}
}

// TransitionFailure returns the wrapped transition failure and whether f is
// one.
func (f *Fault) TransitionFailure() (TransitionFailure, bool) {
	if f.Kind != FaultTransition {
		return 0, false
	}
	return f.transition, true
}

// AbortError returns the wrapped abort error and whether f is one.
func (f *Fault) AbortError() (*Error, bool) {
	if f.Kind != FaultAbort {
		return nil, false
	}
	return f.abortErr, true
}

// FatalCause returns the wrapped cause and whether f is Fatal.
func (f *Fault) FatalCause() (error, bool) {
	if f.Kind != FaultFatal {
		return nil, false
	}
	return f.fatal, true
}

// Lift converts f into a job-level *Error. Fatal becomes Internal; Abort
// passes through; a Transition lifts only if it is one of the two kinds the
// protocol defines a job-level abort for (BatchCollected -> StaleReport,
// ReportReplayed -> ReplayedReport) — any other transition reaching this
// boundary is an invariant violation, since per-report transition failures
// are meant to be carried in the outbound transition sequence, not lifted.
func (f *Fault) Lift() *Error {
	switch f.Kind {
	case FaultFatal:
		return NewInternalError(f.fatal.Error())
	case FaultAbort:
		return f.abortErr
	case FaultTransition:
		switch f.transition {
		case TransitionFailureBatchCollected:
			return NewStaleReportError()
		case TransitionFailureReportReplayed:
			return NewReplayedReportError()
		default:
			return NewInternalError(fmt.Sprintf("unexpected transition failure reached abort boundary: %s", f.transition))
		}
	default:
		return NewInternalError("unknown fault kind")
	}
}
