// Package aggregation implements the aggregation job state machine: the
// Leader- and Helper-side transitions that drive the
// init -> continue -> (finish|skip|uncommitted) flow, including Helper
// state serialization for Leader offload.
package aggregation

import (
	"github.com/marmos91/dapcore/pkg/abort"
	"github.com/marmos91/dapcore/pkg/aggregate"
	"github.com/marmos91/dapcore/pkg/messages"
	"github.com/marmos91/dapcore/pkg/vdaf"
)

// LeaderStateEntry is one report's slot in a Leader job awaiting the
// Helper's response: the VDAF state to resume from, and the time/report ID
// needed to bucket the eventual output share.
type LeaderStateEntry struct {
	VdafState vdaf.PrepareState
	Time      messages.Time
	ReportID  messages.ReportID
}

// LeaderState is the ordered, per-report state of a Leader job that has at
// least one more prepare round outstanding. Order matches the outbound
// message's transition order.
type LeaderState struct {
	Entries []LeaderStateEntry
}

// LeaderUncommittedEntry pairs a computed output share with the report it
// came from, held until the Helper's final acknowledgment.
type LeaderUncommittedEntry struct {
	OutputShare aggregate.OutputShare
	ReportID    messages.ReportID
}

// LeaderUncommitted holds output shares the Leader has computed but not
// yet committed, each paired with its ReportID, in the order the round
// processed the reports.
type LeaderUncommitted struct {
	Entries []LeaderUncommittedEntry
}

// HelperStateEntry is one report's slot in a Helper job.
type HelperStateEntry struct {
	VdafState vdaf.PrepareState
	Time      messages.Time
	ReportID  messages.ReportID
}

// HelperState is the Helper's per-job state: a flat, order-preserving
// sequence keyed by position, plus the partial batch selector the job was
// opened with. It must be serializable byte-for-byte so a Helper may
// offload it to the Leader between rounds.
type HelperState struct {
	PartBatchSel messages.PartialBatchSelector
	Entries      []HelperStateEntry
}

// TransitionOutcome tags what happened to one report within a round.
type TransitionOutcome int

const (
	// TransitionContinued means the report advanced to another round;
	// Message carries the outbound prepare message.
	TransitionContinued TransitionOutcome = iota
	// TransitionFinished means the report successfully prepared; no
	// further per-round message accompanies it (the output share itself
	// is returned out-of-band by Finish/Uncommitted).
	TransitionFinished
	// TransitionFailed means the report was dropped from the active set;
	// Failure carries the reason.
	TransitionFailed
)

// ReportTransition is one report's entry in an outbound round message.
// Ordering across a round's []ReportTransition must match the inbound
// sequence it responds to; peers rely on this positional correspondence
// rather than re-matching by ReportID.
type ReportTransition struct {
	ReportID messages.ReportID
	Outcome  TransitionOutcome
	Message  vdaf.PrepareMessage       // valid when Outcome == TransitionContinued
	Failure  abort.TransitionFailure // valid when Outcome == TransitionFailed
}
