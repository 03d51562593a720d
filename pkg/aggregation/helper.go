package aggregation

import (
	"context"

	"github.com/marmos91/dapcore/pkg/abort"
	"github.com/marmos91/dapcore/pkg/aggregate"
	"github.com/marmos91/dapcore/pkg/batch"
	"github.com/marmos91/dapcore/pkg/collab"
	"github.com/marmos91/dapcore/pkg/messages"
	"github.com/marmos91/dapcore/pkg/vdaf"
)

// Helper drives the Helper side of an aggregation job, responding to the
// Leader's inbound per-round messages. Reports, Aggregates and Sealer are
// the external collaborators (§6), consulted the same way the Leader
// consults them: admission and unsealing happen before Initialize ever
// calls the VDAF oracle, and a finished round's output shares are
// committed through Aggregates.
type Helper struct {
	Oracle     vdaf.PrepareOracle
	VdafCfg    vdaf.Config
	VerifyKey  vdaf.VerifyKey
	TaskID     messages.TaskID
	Reports    collab.ReportStore
	Aggregates collab.AggregateStore
	Sealer     collab.HPKESealer
}

// NewHelper constructs a Helper bound to oracle, the task's VDAF
// selection, and the collaborator stores that admit reports, unseal input
// shares, and persist committed aggregate shares.
func NewHelper(oracle vdaf.PrepareOracle, cfg vdaf.Config, verifyKey vdaf.VerifyKey, taskID messages.TaskID, reports collab.ReportStore, aggregates collab.AggregateStore, sealer collab.HPKESealer) *Helper {
	return &Helper{
		Oracle:     oracle,
		VdafCfg:    cfg,
		VerifyKey:  verifyKey,
		TaskID:     taskID,
		Reports:    reports,
		Aggregates: aggregates,
		Sealer:     sealer,
	}
}

// HelperSeed is one report's identity and HPKE-sealed input share for the
// Helper's first prepare round.
type HelperSeed struct {
	ReportID            messages.ReportID
	Time                messages.Time
	PublicShare         []byte
	HpkeConfigID        uint8
	EncryptedInputShare []byte
	AAD                 []byte
	Info                []byte
}

// Initialize runs the Helper's first prepare round, given the Leader's
// first-round messages aligned positionally with seeds.
func (h *Helper) Initialize(ctx context.Context, partBatchSel messages.PartialBatchSelector, seeds []HelperSeed, leaderMessages []ReportTransition) (*HelperTransition, *abort.Fault) {
	if len(leaderMessages) != len(seeds) {
		return nil, abort.Fatalf("aggregation: helper initialize: leader sent %d transitions for %d reports", len(leaderMessages), len(seeds))
	}

	var continuing []HelperStateEntry
	var finished []OutputShareResult
	outMsg := make([]ReportTransition, 0, len(seeds))

	for i, seed := range seeds {
		leaderMsg := leaderMessages[i]
		if leaderMsg.ReportID != seed.ReportID {
			return nil, abort.Fatalf("aggregation: helper initialize: report id mismatch at position %d", i)
		}
		if leaderMsg.Outcome == TransitionFailed {
			outMsg = append(outMsg, ReportTransition{ReportID: seed.ReportID, Outcome: TransitionFailed, Failure: leaderMsg.Failure})
			continue
		}

		inputShare, failure, fault := admitAndUnseal(ctx, h.TaskID, h.Reports, h.Sealer, seed.ReportID, seed.Time, seed.HpkeConfigID, seed.EncryptedInputShare, seed.AAD, seed.Info)
		if fault != nil {
			return nil, fault
		}
		if inputShare == nil {
			outMsg = append(outMsg, ReportTransition{ReportID: seed.ReportID, Outcome: TransitionFailed, Failure: failure})
			continue
		}

		result, err := h.Oracle.Init(h.VdafCfg, h.VerifyKey, seed.ReportID[:], false, seed.PublicShare, inputShare)
		if err != nil {
			outMsg = append(outMsg, ReportTransition{ReportID: seed.ReportID, Outcome: TransitionFailed, Failure: abort.TransitionFailureVdafPrepError})
			continue
		}

		appendHelperOutcome(seed.ReportID, seed.Time, result, &continuing, &finished, &outMsg)
	}

	return finishHelperRound(partBatchSel, continuing, finished, outMsg), nil
}

// Continue advances an in-progress Helper job using the Leader's response
// to the previous round. Reports reaching Continue already cleared
// admission and unsealing during Initialize.
func (h *Helper) Continue(state *HelperState, leaderMessages []ReportTransition) (*HelperTransition, *abort.Fault) {
	if len(leaderMessages) != len(state.Entries) {
		return nil, abort.Fatalf("aggregation: helper continue: leader sent %d transitions for %d outstanding reports", len(leaderMessages), len(state.Entries))
	}

	var continuing []HelperStateEntry
	var finished []OutputShareResult
	outMsg := make([]ReportTransition, 0, len(state.Entries))

	for i, entry := range state.Entries {
		leaderMsg := leaderMessages[i]
		if leaderMsg.ReportID != entry.ReportID {
			return nil, abort.Fatalf("aggregation: helper continue: report id mismatch at position %d", i)
		}
		if leaderMsg.Outcome == TransitionFailed {
			outMsg = append(outMsg, ReportTransition{ReportID: entry.ReportID, Outcome: TransitionFailed, Failure: leaderMsg.Failure})
			continue
		}

		result, err := h.Oracle.Step(h.VdafCfg, entry.VdafState, leaderMsg.Message)
		if err != nil {
			outMsg = append(outMsg, ReportTransition{ReportID: entry.ReportID, Outcome: TransitionFailed, Failure: abort.TransitionFailureVdafPrepError})
			continue
		}

		appendHelperOutcome(entry.ReportID, entry.Time, result, &continuing, &finished, &outMsg)
	}

	return finishHelperRound(state.PartBatchSel, continuing, finished, outMsg), nil
}

func appendHelperOutcome(reportID messages.ReportID, t messages.Time, result vdaf.StepResult, continuing *[]HelperStateEntry, finished *[]OutputShareResult, outMsg *[]ReportTransition) {
	switch result.Outcome {
	case vdaf.StepAdvance:
		*continuing = append(*continuing, HelperStateEntry{VdafState: result.NextState, Time: t, ReportID: reportID})
		*outMsg = append(*outMsg, ReportTransition{ReportID: reportID, Outcome: TransitionContinued, Message: result.OutMessage})
	case vdaf.StepOutput:
		*finished = append(*finished, OutputShareResult{
			ReportID: reportID,
			Share: aggregate.OutputShare{
				Time:     t,
				Checksum: aggregate.ReportChecksum(reportID),
				Data:     result.OutputShare,
			},
		})
		*outMsg = append(*outMsg, ReportTransition{ReportID: reportID, Outcome: TransitionFinished})
	case vdaf.StepReject:
		*outMsg = append(*outMsg, ReportTransition{ReportID: reportID, Outcome: TransitionFailed, Failure: abort.TransitionFailureVdafPrepError})
	}
}

// finishHelperRound decides Continue vs Finish. Unlike the Leader, a
// Helper job is always terminal once no report remains in progress — it
// has no Skip outcome of its own (the protocol's Finish already carries an
// empty share list when every report failed).
func finishHelperRound(partBatchSel messages.PartialBatchSelector, continuing []HelperStateEntry, finished []OutputShareResult, outMsg []ReportTransition) *HelperTransition {
	if len(continuing) > 0 {
		return &HelperTransition{
			Kind:       HelperTransitionContinue,
			State:      &HelperState{PartBatchSel: partBatchSel, Entries: continuing},
			OutMessage: outMsg,
		}
	}
	return &HelperTransition{Kind: HelperTransitionFinish, OutputShares: finished, OutMessage: outMsg}
}

// Commit merges every finished output share into the Helper's aggregate
// store, bucketing each with bucketFor. A bucket the store reports as
// already collected is a StaleReport-equivalent fault, per the
// BatchCollected -> StaleReport mapping in Fault.Lift.
func (h *Helper) Commit(ctx context.Context, bucketFor func(messages.Time) (batch.Bucket, error), outputShares []OutputShareResult) *abort.Fault {
	for _, result := range outputShares {
		bucket, err := bucketFor(result.Share.Time)
		if err != nil {
			return abort.Fatalf("aggregation: helper commit: bucket for report %x: %w", result.ReportID, err)
		}

		delta := aggregate.FromOutputShare(result.Share)
		outcome, err := h.Aggregates.Merge(ctx, h.TaskID, bucket, delta)
		if err != nil {
			return abort.Fatalf("aggregation: helper commit: merge report %x: %w", result.ReportID, err)
		}
		if outcome == collab.MergeBatchCollected {
			return abort.Transition(abort.TransitionFailureBatchCollected)
		}
	}
	return nil
}
