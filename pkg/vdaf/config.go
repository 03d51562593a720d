// Package vdaf abstracts the four supported VDAF variants behind a uniform
// capability set: prepare-state codec, a prepare step delegated to an
// injected PrepareOracle, and field-typed aggregate-share algebra. The VDAF
// cryptographic construction itself is an explicit black box (per the
// core's scope): this package never performs field arithmetic over secret
// shares, only plumbing and the public aggregate-share merge.
package vdaf

import "fmt"

// Config is a tagged union over the four supported VDAF variants. Dispatch
// on the variant happens at prepare/encode/decode boundaries; merging
// aggregate shares from mismatched variants is rejected at runtime.
type Config interface {
	isConfig()
	// FieldVariant returns the aggregate-share field this VDAF variant
	// produces output shares in.
	FieldVariant() FieldVariant
}

// Prio3CountConfig computes a sum of boolean measurements.
type Prio3CountConfig struct{}

func (Prio3CountConfig) isConfig()                 {}
func (Prio3CountConfig) FieldVariant() FieldVariant { return Field64 }

// Prio3SumConfig computes a sum of Bits-bit integer measurements.
type Prio3SumConfig struct {
	Bits uint32
}

func (Prio3SumConfig) isConfig()                 {}
func (Prio3SumConfig) FieldVariant() FieldVariant { return Field128 }

// Prio3HistogramConfig computes per-bucket counts over Buckets boundaries.
type Prio3HistogramConfig struct {
	Buckets []uint64
}

func (Prio3HistogramConfig) isConfig()                 {}
func (Prio3HistogramConfig) FieldVariant() FieldVariant { return Field64 }

// Prio2Config computes a vector sum over Dimension-length measurements,
// using the legacy Prio2 field.
type Prio2Config struct {
	Dimension uint32
}

func (Prio2Config) isConfig()                 {}
func (Prio2Config) FieldVariant() FieldVariant { return FieldPrio2 }

// VerifyKey is the shared secret Aggregators use to derive the VDAF's
// query randomness. Its required length is a property of Config.
type VerifyKey []byte

// RequiredVerifyKeyLen returns the verify-key length cfg requires.
func RequiredVerifyKeyLen(cfg Config) int {
	switch cfg.(type) {
	case Prio2Config:
		return 32
	default:
		return 16
	}
}

// ValidateVerifyKey reports an error if key's length doesn't match what cfg
// requires.
func ValidateVerifyKey(cfg Config, key VerifyKey) error {
	want := RequiredVerifyKeyLen(cfg)
	if len(key) != want {
		return fmt.Errorf("vdaf: verify key length %d does not match required length %d for %T", len(key), want, cfg)
	}
	return nil
}

// TypeName returns a stable, human-readable name for cfg's variant.
func TypeName(cfg Config) string {
	switch c := cfg.(type) {
	case Prio3CountConfig:
		return "Prio3Count"
	case Prio3SumConfig:
		return fmt.Sprintf("Prio3Sum(bits=%d)", c.Bits)
	case Prio3HistogramConfig:
		return fmt.Sprintf("Prio3Histogram(buckets=%d)", len(c.Buckets))
	case Prio2Config:
		return fmt.Sprintf("Prio2(dimension=%d)", c.Dimension)
	default:
		return "unknown"
	}
}
