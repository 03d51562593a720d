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

// Leader drives the Leader side of an aggregation job: it owns the
// outstanding per-report VDAF state and decides, each round, whether the
// job continues, moves to Uncommitted, or is skipped. Reports, Aggregates
// and Sealer are the external collaborators (§6): report admission and
// input-share unsealing happen before a report ever reaches the VDAF
// oracle, and committing an Uncommitted round's output shares happens
// through Aggregates.
type Leader struct {
	Oracle     vdaf.PrepareOracle
	VdafCfg    vdaf.Config
	VerifyKey  vdaf.VerifyKey
	TaskID     messages.TaskID
	Reports    collab.ReportStore
	Aggregates collab.AggregateStore
	Sealer     collab.HPKESealer
}

// NewLeader constructs a Leader bound to oracle, the task's VDAF
// selection, and the collaborator stores that admit reports, unseal input
// shares, and persist committed aggregate shares.
func NewLeader(oracle vdaf.PrepareOracle, cfg vdaf.Config, verifyKey vdaf.VerifyKey, taskID messages.TaskID, reports collab.ReportStore, aggregates collab.AggregateStore, sealer collab.HPKESealer) *Leader {
	return &Leader{
		Oracle:     oracle,
		VdafCfg:    cfg,
		VerifyKey:  verifyKey,
		TaskID:     taskID,
		Reports:    reports,
		Aggregates: aggregates,
		Sealer:     sealer,
	}
}

// LeaderSeed is one report's identity and HPKE-sealed input share going
// into the very first prepare round.
type LeaderSeed struct {
	ReportID            messages.ReportID
	Time                messages.Time
	PublicShare         []byte
	HpkeConfigID        uint8
	EncryptedInputShare []byte
	AAD                 []byte
	Info                []byte
}

// admissionFailure reports the per-report failure a ReportStore outcome
// maps to, and whether the report should be admitted for processing.
func admissionFailure(outcome collab.ReportStoreOutcome) (abort.TransitionFailure, bool) {
	switch outcome {
	case collab.ReportFresh:
		return 0, true
	case collab.ReportReplayed:
		return abort.TransitionFailureReportReplayed, false
	case collab.ReportBatchCollected:
		return abort.TransitionFailureBatchCollected, false
	default: // collab.ReportTooLate
		return abort.TransitionFailureReportDropped, false
	}
}

// admitAndUnseal runs a report through ReportStore.InsertIfAbsent and, if
// admitted, HPKESealer.Open, returning the cleartext input share or the
// transition failure the report was rejected with.
func admitAndUnseal(ctx context.Context, taskID messages.TaskID, reports collab.ReportStore, sealer collab.HPKESealer, reportID messages.ReportID, t messages.Time, hpkeConfigID uint8, ciphertext, aad, info []byte) ([]byte, abort.TransitionFailure, *abort.Fault) {
	outcome, err := reports.InsertIfAbsent(ctx, taskID, reportID, t)
	if err != nil {
		return nil, 0, abort.Fatalf("aggregation: report store insert: %w", err)
	}
	if failure, ok := admissionFailure(outcome); !ok {
		return nil, failure, nil
	}

	inputShare, err := sealer.Open(ctx, hpkeConfigID, ciphertext, aad, info)
	if err != nil {
		return nil, abort.TransitionFailureHpkeDecryptError, nil
	}
	return inputShare, 0, nil
}

// Initialize runs the first prepare round for a batch of reports, in the
// order given — that order becomes the positional ordering every
// subsequent round and the peer's responses must respect.
func (l *Leader) Initialize(ctx context.Context, seeds []LeaderSeed) (*LeaderTransition, *abort.Fault) {
	var continuing []LeaderStateEntry
	var uncommitted []LeaderUncommittedEntry
	outMsg := make([]ReportTransition, 0, len(seeds))

	for _, seed := range seeds {
		inputShare, failure, fault := admitAndUnseal(ctx, l.TaskID, l.Reports, l.Sealer, seed.ReportID, seed.Time, seed.HpkeConfigID, seed.EncryptedInputShare, seed.AAD, seed.Info)
		if fault != nil {
			return nil, fault
		}
		if inputShare == nil {
			outMsg = append(outMsg, ReportTransition{ReportID: seed.ReportID, Outcome: TransitionFailed, Failure: failure})
			continue
		}

		result, err := l.Oracle.Init(l.VdafCfg, l.VerifyKey, seed.ReportID[:], true, seed.PublicShare, inputShare)
		if err != nil {
			outMsg = append(outMsg, ReportTransition{
				ReportID: seed.ReportID,
				Outcome:  TransitionFailed,
				Failure:  abort.TransitionFailureVdafPrepError,
			})
			continue
		}

		switch result.Outcome {
		case vdaf.StepAdvance:
			continuing = append(continuing, LeaderStateEntry{
				VdafState: result.NextState,
				Time:      seed.Time,
				ReportID:  seed.ReportID,
			})
			outMsg = append(outMsg, ReportTransition{
				ReportID: seed.ReportID,
				Outcome:  TransitionContinued,
				Message:  result.OutMessage,
			})
		case vdaf.StepOutput:
			uncommitted = append(uncommitted, LeaderUncommittedEntry{
				OutputShare: aggregate.OutputShare{
					Time:     seed.Time,
					Checksum: aggregate.ReportChecksum(seed.ReportID),
					Data:     result.OutputShare,
				},
				ReportID: seed.ReportID,
			})
			outMsg = append(outMsg, ReportTransition{ReportID: seed.ReportID, Outcome: TransitionFinished})
		case vdaf.StepReject:
			outMsg = append(outMsg, ReportTransition{
				ReportID: seed.ReportID,
				Outcome:  TransitionFailed,
				Failure:  abort.TransitionFailureVdafPrepError,
			})
		}
	}

	return finishLeaderRound(continuing, uncommitted, outMsg), nil
}

// Continue advances an in-progress Leader job using the Helper's response
// to the previous round. peerMessages must be positionally aligned with
// state.Entries — callers are responsible for rejecting a misaligned or
// mis-sized response as an UnrecognizedMessage abort before calling this.
// Reports reaching Continue already cleared admission and unsealing during
// Initialize, so neither collaborator is consulted again here.
func (l *Leader) Continue(state *LeaderState, peerMessages []ReportTransition) (*LeaderTransition, *abort.Fault) {
	if len(peerMessages) != len(state.Entries) {
		return nil, abort.Fatalf("aggregation: leader continue: peer sent %d transitions for %d outstanding reports", len(peerMessages), len(state.Entries))
	}

	var continuing []LeaderStateEntry
	var uncommitted []LeaderUncommittedEntry
	outMsg := make([]ReportTransition, 0, len(state.Entries))

	for i, entry := range state.Entries {
		peer := peerMessages[i]
		if peer.ReportID != entry.ReportID {
			return nil, abort.Fatalf("aggregation: leader continue: report id mismatch at position %d", i)
		}

		if peer.Outcome == TransitionFailed {
			outMsg = append(outMsg, ReportTransition{ReportID: entry.ReportID, Outcome: TransitionFailed, Failure: peer.Failure})
			continue
		}

		result, err := l.Oracle.Step(l.VdafCfg, entry.VdafState, peer.Message)
		if err != nil {
			outMsg = append(outMsg, ReportTransition{ReportID: entry.ReportID, Outcome: TransitionFailed, Failure: abort.TransitionFailureVdafPrepError})
			continue
		}

		switch result.Outcome {
		case vdaf.StepAdvance:
			continuing = append(continuing, LeaderStateEntry{VdafState: result.NextState, Time: entry.Time, ReportID: entry.ReportID})
			outMsg = append(outMsg, ReportTransition{ReportID: entry.ReportID, Outcome: TransitionContinued, Message: result.OutMessage})
		case vdaf.StepOutput:
			uncommitted = append(uncommitted, LeaderUncommittedEntry{
				OutputShare: aggregate.OutputShare{
					Time:     entry.Time,
					Checksum: aggregate.ReportChecksum(entry.ReportID),
					Data:     result.OutputShare,
				},
				ReportID: entry.ReportID,
			})
			outMsg = append(outMsg, ReportTransition{ReportID: entry.ReportID, Outcome: TransitionFinished})
		case vdaf.StepReject:
			outMsg = append(outMsg, ReportTransition{ReportID: entry.ReportID, Outcome: TransitionFailed, Failure: abort.TransitionFailureVdafPrepError})
		}
	}

	return finishLeaderRound(continuing, uncommitted, outMsg), nil
}

// finishLeaderRound decides Continue vs Uncommitted vs Skip. A round with
// any report still in progress is a Continue, whose state carries only the
// in-progress reports; otherwise finished output shares make it
// Uncommitted, and a round in which every report failed is a Skip.
func finishLeaderRound(continuing []LeaderStateEntry, uncommitted []LeaderUncommittedEntry, outMsg []ReportTransition) *LeaderTransition {
	switch {
	case len(continuing) > 0:
		return &LeaderTransition{Kind: LeaderTransitionContinue, State: &LeaderState{Entries: continuing}, OutMessage: outMsg}
	case len(uncommitted) > 0:
		return &LeaderTransition{Kind: LeaderTransitionUncommitted, Uncommitted: &LeaderUncommitted{Entries: uncommitted}, OutMessage: outMsg}
	default:
		return &LeaderTransition{Kind: LeaderTransitionSkip, OutMessage: outMsg}
	}
}

// Commit merges every entry of an Uncommitted round into the Leader's
// aggregate store, bucketing each output share with bucketFor. A bucket
// the store reports as already collected is a StaleReport-equivalent
// fault for that report's job, per the BatchCollected -> StaleReport
// mapping in Fault.Lift.
func (l *Leader) Commit(ctx context.Context, bucketFor func(messages.Time) (batch.Bucket, error), uncommitted *LeaderUncommitted) *abort.Fault {
	for _, entry := range uncommitted.Entries {
		bucket, err := bucketFor(entry.OutputShare.Time)
		if err != nil {
			return abort.Fatalf("aggregation: leader commit: bucket for report %x: %w", entry.ReportID, err)
		}

		delta := aggregate.FromOutputShare(entry.OutputShare)
		outcome, err := l.Aggregates.Merge(ctx, l.TaskID, bucket, delta)
		if err != nil {
			return abort.Fatalf("aggregation: leader commit: merge report %x: %w", entry.ReportID, err)
		}
		if outcome == collab.MergeBatchCollected {
			return abort.Transition(abort.TransitionFailureBatchCollected)
		}
	}
	return nil
}
