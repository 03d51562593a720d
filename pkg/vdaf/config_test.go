package vdaf

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRequiredVerifyKeyLen(t *testing.T) {
	assert.Equal(t, 16, RequiredVerifyKeyLen(Prio3CountConfig{}))
	assert.Equal(t, 16, RequiredVerifyKeyLen(Prio3SumConfig{Bits: 32}))
	assert.Equal(t, 32, RequiredVerifyKeyLen(Prio2Config{Dimension: 4}))
}

func TestValidateVerifyKeyRejectsWrongLength(t *testing.T) {
	assert.NoError(t, ValidateVerifyKey(Prio3CountConfig{}, make(VerifyKey, 16)))
	assert.Error(t, ValidateVerifyKey(Prio3CountConfig{}, make(VerifyKey, 15)))
	assert.Error(t, ValidateVerifyKey(Prio2Config{}, make(VerifyKey, 16)))
}

func TestConfigFieldVariant(t *testing.T) {
	assert.Equal(t, Field64, Prio3CountConfig{}.FieldVariant())
	assert.Equal(t, Field128, Prio3SumConfig{Bits: 64}.FieldVariant())
	assert.Equal(t, Field64, Prio3HistogramConfig{}.FieldVariant())
	assert.Equal(t, FieldPrio2, Prio2Config{}.FieldVariant())
}

func TestTypeName(t *testing.T) {
	assert.Equal(t, "Prio3Count", TypeName(Prio3CountConfig{}))
	assert.Equal(t, "Prio3Sum(bits=32)", TypeName(Prio3SumConfig{Bits: 32}))
	assert.Equal(t, "Prio3Histogram(buckets=3)", TypeName(Prio3HistogramConfig{Buckets: []uint64{1, 2, 3}}))
	assert.Equal(t, "Prio2(dimension=4)", TypeName(Prio2Config{Dimension: 4}))
}
