package vdaf

import (
	"bytes"
	"fmt"
	"io"

	"github.com/marmos91/dapcore/internal/wire"
)

// PrepareState is a VDAF-internal intermediate state, opaque to everything
// outside the prepare oracle. It round-trips through Helper state
// serialization without this package ever inspecting its bytes.
type PrepareState []byte

// PrepareMessage is a VDAF-internal message exchanged between Leader and
// Helper during a prepare round.
type PrepareMessage []byte

// StepOutcome tags the result of one prepare_step invocation.
type StepOutcome int

const (
	// StepAdvance means the prepare protocol has at least one more round:
	// state and an outbound message are produced.
	StepAdvance StepOutcome = iota
	// StepOutput means preparation finished successfully: an output
	// share is produced and the report leaves the active set.
	StepOutput
	// StepReject means the VDAF rejected the report: it is dropped from
	// the active set with a VdafPrepError transition failure.
	StepReject
)

// StepResult is what PrepareOracle.Step returns.
type StepResult struct {
	Outcome     StepOutcome
	NextState   PrepareState    // valid when Outcome == StepAdvance
	OutMessage  PrepareMessage  // valid when Outcome == StepAdvance
	OutputShare AggregateShareData // valid when Outcome == StepOutput
}

// PrepareOracle is the injected black-box VDAF implementation: given the
// VDAF's cryptographic state and a peer message, it advances the prepare
// protocol. The core never performs this computation itself — it is
// explicitly out of scope — so every Leader/Helper driver takes one of
// these as a constructor dependency.
type PrepareOracle interface {
	// Init produces the first round's state and outbound message (or an
	// immediate output/reject) from a report's nonce and shares. nonce is
	// the report ID bytes; isLeader distinguishes which of the two input
	// shares to consume.
	Init(cfg Config, verifyKey VerifyKey, nonce []byte, isLeader bool, publicShare, inputShare []byte) (StepResult, error)

	// Step advances state using peerMessage. cfg selects the VDAF variant
	// and its parameters.
	Step(cfg Config, state PrepareState, peerMessage PrepareMessage) (StepResult, error)
}

// configFingerprint returns a short tag identifying cfg's variant and the
// parameters that change its wire shape, so a decode under a different
// vdaf_config can be caught instead of silently accepting another
// variant's opaque bytes.
func configFingerprint(cfg Config) []byte {
	switch c := cfg.(type) {
	case Prio3CountConfig:
		return []byte{0x01}
	case Prio3SumConfig:
		return []byte{0x02, byte(c.Bits >> 24), byte(c.Bits >> 16), byte(c.Bits >> 8), byte(c.Bits)}
	case Prio3HistogramConfig:
		n := len(c.Buckets)
		return []byte{0x03, byte(n >> 24), byte(n >> 16), byte(n >> 8), byte(n)}
	case Prio2Config:
		return []byte{0x04, byte(c.Dimension >> 24), byte(c.Dimension >> 16), byte(c.Dimension >> 8), byte(c.Dimension)}
	default:
		return []byte{0xff}
	}
}

// EncodePrepareState writes a short fingerprint of cfg followed by state
// verbatim, as an opaque length-prefixed blob. The bytes themselves are
// never interpreted by this package; the fingerprint exists solely so
// DecodePrepareState can reject a decode attempted under a different
// vdaf_config.
func EncodePrepareState(buf *bytes.Buffer, cfg Config, state PrepareState) error {
	if err := wire.WriteOpaque(buf, configFingerprint(cfg)); err != nil {
		return fmt.Errorf("vdaf: encode prepare state config fingerprint: %w", err)
	}
	if err := wire.WriteOpaque(buf, state); err != nil {
		return fmt.Errorf("vdaf: encode prepare state: %w", err)
	}
	return nil
}

// DecodePrepareState reads a PrepareState written by EncodePrepareState
// under cfg. A fingerprint mismatch means state was produced under a
// different vdaf_config, which is a Fatal caller error rather than a
// malformed-wire condition.
func DecodePrepareState(r io.Reader, cfg Config) (PrepareState, error) {
	fingerprint, err := wire.DecodeOpaque(r)
	if err != nil {
		return nil, fmt.Errorf("vdaf: decode prepare state config fingerprint: %w", err)
	}
	want := configFingerprint(cfg)
	if !bytes.Equal(fingerprint, want) {
		return nil, fmt.Errorf("vdaf: decode prepare state: config fingerprint mismatch (state was not produced under %T)", cfg)
	}

	data, err := wire.DecodeOpaque(r)
	if err != nil {
		return nil, fmt.Errorf("vdaf: decode prepare state: %w", err)
	}
	return PrepareState(data), nil
}
