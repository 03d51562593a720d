package aggregation

import (
	"github.com/marmos91/dapcore/pkg/aggregate"
	"github.com/marmos91/dapcore/pkg/messages"
)

// LeaderTransitionKind tags which of the three Leader outcomes a round
// produced.
type LeaderTransitionKind int

const (
	LeaderTransitionContinue LeaderTransitionKind = iota
	LeaderTransitionUncommitted
	LeaderTransitionSkip
)

// LeaderTransition is the result of one Leader round. State is populated
// for Continue and Uncommitted for Uncommitted; neither is for Skip.
// OutMessage carries every report's transition, including the failures
// that make a round a Skip.
type LeaderTransition struct {
	Kind        LeaderTransitionKind
	State       *LeaderState
	Uncommitted *LeaderUncommitted
	OutMessage  []ReportTransition
}

// HelperTransitionKind tags which of the two Helper outcomes a round
// produced.
type HelperTransitionKind int

const (
	HelperTransitionContinue HelperTransitionKind = iota
	HelperTransitionFinish
)

// HelperTransition is the result of one Helper round.
type HelperTransition struct {
	Kind         HelperTransitionKind
	State        *HelperState
	OutputShares []OutputShareResult // valid when Kind == HelperTransitionFinish
	OutMessage   []ReportTransition
}

// OutputShareResult pairs a finished report's output share with its
// report ID, since Finish must still let the caller bucket each share
// correctly (an output share alone doesn't carry a report ID).
type OutputShareResult struct {
	ReportID messages.ReportID
	Share    aggregate.OutputShare
}
