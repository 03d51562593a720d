package vdaf

import (
	"math/big"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAggregateShareDataAddField64WrapsModulus(t *testing.T) {
	a := AggregateShareData{Variant: Field64, Field64: []uint64{field64Modulus - 1}}
	b := AggregateShareData{Variant: Field64, Field64: []uint64{2}}

	sum, err := a.Add(b)
	require.NoError(t, err)
	assert.Equal(t, []uint64{1}, sum.Field64)
}

// TestAggregateShareDataAddField64OverflowsUint64 covers the case the
// simpler modulus-1+2 case above doesn't: two operands both close to
// field64Modulus, whose sum overflows a 64-bit word before the modulus
// reduction. field64Modulus sits within 2^32 of 2^64, so this is the
// common case for two independently random field elements, not an edge
// case.
func TestAggregateShareDataAddField64OverflowsUint64(t *testing.T) {
	a := AggregateShareData{Variant: Field64, Field64: []uint64{field64Modulus - 1}}
	b := AggregateShareData{Variant: Field64, Field64: []uint64{field64Modulus - 1}}

	sum, err := a.Add(b)
	require.NoError(t, err)
	require.Len(t, sum.Field64, 1)

	expected := new(big.Int).Mod(
		new(big.Int).Add(new(big.Int).SetUint64(field64Modulus-1), new(big.Int).SetUint64(field64Modulus-1)),
		new(big.Int).SetUint64(field64Modulus),
	)
	assert.Equal(t, expected.Uint64(), sum.Field64[0])
}

func TestAggregateShareDataAddPrio2WrapsModulus(t *testing.T) {
	a := AggregateShareData{Variant: FieldPrio2, Prio2: []uint64{fieldPrio2Modulus - 1}}
	b := AggregateShareData{Variant: FieldPrio2, Prio2: []uint64{5}}

	sum, err := a.Add(b)
	require.NoError(t, err)
	assert.Equal(t, []uint64{4}, sum.Prio2)
}

func TestAggregateShareDataAddField128WrapsModulus(t *testing.T) {
	nearModulus := new(big.Int).Sub(field128Modulus, big.NewInt(1))
	a := AggregateShareData{Variant: Field128, Field128: [][2]uint64{bigToWords(nearModulus)}}
	b := AggregateShareData{Variant: Field128, Field128: [][2]uint64{{0, 3}}}

	sum, err := a.Add(b)
	require.NoError(t, err)
	require.Len(t, sum.Field128, 1)
	assert.Equal(t, wordsToBig([2]uint64{0, 2}), wordsToBig(sum.Field128[0]))
}

func TestAggregateShareDataAddRejectsVariantMismatch(t *testing.T) {
	a := AggregateShareData{Variant: Field64, Field64: []uint64{1}}
	b := AggregateShareData{Variant: Field128, Field128: [][2]uint64{{0, 1}}}
	_, err := a.Add(b)
	assert.Error(t, err)
}

func TestAggregateShareDataAddRejectsLengthMismatch(t *testing.T) {
	a := AggregateShareData{Variant: Field64, Field64: []uint64{1, 2}}
	b := AggregateShareData{Variant: Field64, Field64: []uint64{1}}
	_, err := a.Add(b)
	assert.Error(t, err)
}

func TestAggregateShareDataLen(t *testing.T) {
	assert.Equal(t, 3, AggregateShareData{Variant: Field64, Field64: []uint64{1, 2, 3}}.Len())
	assert.Equal(t, 0, AggregateShareData{Variant: FieldVariant(99)}.Len())
}

func TestFieldVariantString(t *testing.T) {
	assert.Equal(t, "Field64", Field64.String())
	assert.Equal(t, "Field128", Field128.String())
	assert.Equal(t, "FieldPrio2", FieldPrio2.String())
	assert.Equal(t, "unknown", FieldVariant(99).String())
}

func TestBigWordsRoundTrip(t *testing.T) {
	v := new(big.Int).Lsh(big.NewInt(1), 100)
	words := bigToWords(v)
	assert.Equal(t, 0, wordsToBig(words).Cmp(v))
}
