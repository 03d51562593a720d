package vdaf

import (
	"fmt"
	"math/big"
	"math/bits"
)

// FieldVariant tags which finite field an aggregate share's data is
// expressed in. Merging across variants is always rejected.
type FieldVariant int

const (
	Field64 FieldVariant = iota
	Field128
	FieldPrio2
)

func (f FieldVariant) String() string {
	switch f {
	case Field64:
		return "Field64"
	case Field128:
		return "Field128"
	case FieldPrio2:
		return "FieldPrio2"
	default:
		return "unknown"
	}
}

// field moduli. Field64 and FieldPrio2 elements fit in one uint64 word and
// are kept as []uint64; Field128 elements need two and are kept as
// [2]uint64 (hi, lo) pairs. Moduli are the primes the VDAF draft specifies
// for each field; the core does no modular exponentiation, only addition
// mod p (math/bits for the one-word fields, math/big for Field128).
const (
	field64Modulus   = 18446744069414584321 // 2^64 - 2^32 + 1
	fieldPrio2Modulus = 4293918721           // 2^32 - 2^20 + 1
)

// field128Modulus is 2^128 - 2^66 + 1. Field128 elements are carried as
// (hi, lo) 64-bit word pairs at rest, but addition goes through math/big
// rather than a hand-rolled 128-bit carry chain.
var field128Modulus = new(big.Int).Sub(
	new(big.Int).Lsh(big.NewInt(1), 128),
	new(big.Int).Sub(new(big.Int).Lsh(big.NewInt(1), 66), big.NewInt(1)),
)

func wordsToBig(w [2]uint64) *big.Int {
	v := new(big.Int).Lsh(new(big.Int).SetUint64(w[0]), 64)
	return v.Or(v, new(big.Int).SetUint64(w[1]))
}

func bigToWords(v *big.Int) [2]uint64 {
	mask := new(big.Int).SetUint64(^uint64(0))
	lo := new(big.Int).And(v, mask).Uint64()
	hi := new(big.Int).Rsh(v, 64).Uint64()
	return [2]uint64{hi, lo}
}

func addField128(a, b [2]uint64) [2]uint64 {
	sum := new(big.Int).Add(wordsToBig(a), wordsToBig(b))
	sum.Mod(sum, field128Modulus)
	return bigToWords(sum)
}

// AggregateShareData is the field-tagged numeric payload of an aggregate or
// output share: a vector of field elements (length 1 for scalar VDAFs like
// Prio3Count/Prio3Sum, length > 1 for Prio3Histogram/Prio2).
type AggregateShareData struct {
	Variant FieldVariant
	Field64 []uint64 // valid when Variant == Field64
	Prio2   []uint64 // valid when Variant == FieldPrio2
	Field128 [][2]uint64 // valid when Variant == Field128, each element (hi, lo)
}

// Len returns the number of field elements.
func (d AggregateShareData) Len() int {
	switch d.Variant {
	case Field64:
		return len(d.Field64)
	case FieldPrio2:
		return len(d.Prio2)
	case Field128:
		return len(d.Field128)
	default:
		return 0
	}
}

// Add returns the field-wise sum of d and other. Variant mismatch or
// length mismatch is the caller's Fatal to raise; Add itself only reports
// the error so callers can choose how to surface it.
func (d AggregateShareData) Add(other AggregateShareData) (AggregateShareData, error) {
	if d.Variant != other.Variant {
		return AggregateShareData{}, fmt.Errorf("vdaf: cannot add %s to %s", other.Variant, d.Variant)
	}
	if d.Len() != other.Len() {
		return AggregateShareData{}, fmt.Errorf("vdaf: length mismatch adding %s shares (%d vs %d)", d.Variant, d.Len(), other.Len())
	}

	switch d.Variant {
	case Field64:
		out := make([]uint64, len(d.Field64))
		for i := range out {
			out[i] = addMod(d.Field64[i], other.Field64[i], field64Modulus)
		}
		return AggregateShareData{Variant: Field64, Field64: out}, nil
	case FieldPrio2:
		out := make([]uint64, len(d.Prio2))
		for i := range out {
			out[i] = addMod(d.Prio2[i], other.Prio2[i], fieldPrio2Modulus)
		}
		return AggregateShareData{Variant: FieldPrio2, Prio2: out}, nil
	case Field128:
		out := make([][2]uint64, len(d.Field128))
		for i := range out {
			out[i] = addField128(d.Field128[i], other.Field128[i])
		}
		return AggregateShareData{Variant: Field128, Field128: out}, nil
	default:
		return AggregateShareData{}, fmt.Errorf("vdaf: unknown field variant %d", d.Variant)
	}
}

// addMod computes (a+b) mod modulus via a widening add: field64Modulus is
// within 2^32 of 2^64, so a+b can overflow 64 bits for two operands close
// to the modulus, and a plain uint64 add would wrap silently before the
// modulus correction ever sees it.
func addMod(a, b, modulus uint64) uint64 {
	a %= modulus
	b %= modulus
	sum, carry := bits.Add64(a, b, 0)
	if carry != 0 {
		sum, _ = bits.Sub64(sum, modulus, 0)
		return sum
	}
	if sum >= modulus {
		sum -= modulus
	}
	return sum
}
