package abort

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestErrorToProblemDetailsOnlyRendersDetailForBadRequestAndInternal(t *testing.T) {
	badRequest := NewBadRequestError("missing content-type")
	pd := badRequest.ToProblemDetails("/tasks/1/reports")
	assert.Equal(t, "urn:ietf:params:ppm:dap:error:badRequest", pd.Type)
	assert.Equal(t, "missing content-type", pd.Detail)
	assert.Equal(t, "/tasks/1/reports", pd.Instance)

	staleReport := NewStaleReportError()
	pd = staleReport.ToProblemDetails("/tasks/1/reports")
	assert.Equal(t, "urn:ietf:params:ppm:dap:error:staleReport", pd.Type)
	assert.Empty(t, pd.Detail)
}

func TestErrorTaskIDCarriedIntoProblemDetails(t *testing.T) {
	err := NewUnrecognizedTaskError()
	err.TaskID = "deadbeef"
	pd := err.ToProblemDetails("")
	assert.Equal(t, "deadbeef", pd.TaskID)
}

func TestIsStaleReportErrorAndIsReplayedReportError(t *testing.T) {
	assert.True(t, IsStaleReportError(NewStaleReportError()))
	assert.False(t, IsStaleReportError(NewReplayedReportError()))
	assert.True(t, IsReplayedReportError(NewReplayedReportError()))
	assert.True(t, IsInternalError(NewInternalError("boom")))
	assert.False(t, IsInternalError(errors.New("not an abort error")))
}

func TestFaultLiftFatalBecomesInternal(t *testing.T) {
	f := Fatal(errors.New("invariant violated"))
	lifted := f.Lift()
	assert.Equal(t, KindInternal, lifted.Kind)
	assert.Contains(t, lifted.Detail, "invariant violated")
}

func TestFaultLiftAbortPassesThrough(t *testing.T) {
	original := NewBatchMismatchError()
	f := Abort(original)
	assert.Same(t, original, f.Lift())
}

func TestFaultLiftTransitionBatchCollectedAndReplayedPromote(t *testing.T) {
	f := Transition(TransitionFailureBatchCollected)
	assert.Equal(t, KindStaleReport, f.Lift().Kind)

	f = Transition(TransitionFailureReportReplayed)
	assert.Equal(t, KindReplayedReport, f.Lift().Kind)
}

func TestFaultLiftOtherTransitionBecomesInternal(t *testing.T) {
	f := Transition(TransitionFailureVdafPrepError)
	lifted := f.Lift()
	assert.Equal(t, KindInternal, lifted.Kind)
}

func TestFaultAccessorsMatchKind(t *testing.T) {
	fatalFault := Fatal(errors.New("x"))
	_, ok := fatalFault.AbortError()
	assert.False(t, ok)
	cause, ok := fatalFault.FatalCause()
	require := assert.New(t)
	require.True(ok)
	require.EqualError(cause, "x")

	transitionFault := Transition(TransitionFailureReportTooEarly)
	tf, ok := transitionFault.TransitionFailure()
	assert.True(t, ok)
	assert.Equal(t, TransitionFailureReportTooEarly, tf)
}

func TestFaultErrorStringsByKind(t *testing.T) {
	assert.Contains(t, Fatal(errors.New("x")).Error(), "fatal:")
	assert.Contains(t, Transition(TransitionFailureTaskExpired).Error(), "task_expired")
	assert.Contains(t, Abort(NewBatchInvalidError()).Error(), "batchInvalid")
}
