package vdaf

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPrepareStateEncodeDecodeRoundTrip(t *testing.T) {
	state := PrepareState([]byte("opaque vdaf internal state"))

	buf := &bytes.Buffer{}
	require.NoError(t, EncodePrepareState(buf, Prio3CountConfig{}, state))

	got, err := DecodePrepareState(buf, Prio3CountConfig{})
	require.NoError(t, err)
	assert.Equal(t, state, got)
}

func TestPrepareStateEncodeDecodeEmpty(t *testing.T) {
	buf := &bytes.Buffer{}
	require.NoError(t, EncodePrepareState(buf, Prio3CountConfig{}, PrepareState{}))

	got, err := DecodePrepareState(buf, Prio3CountConfig{})
	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestPrepareStateDecodeRejectsMismatchedConfig(t *testing.T) {
	buf := &bytes.Buffer{}
	require.NoError(t, EncodePrepareState(buf, Prio3CountConfig{}, PrepareState([]byte("state"))))

	_, err := DecodePrepareState(buf, Prio3SumConfig{Bits: 32})
	require.Error(t, err)
}

func TestPrepareStateDecodeRejectsMismatchedParametersSameVariant(t *testing.T) {
	buf := &bytes.Buffer{}
	require.NoError(t, EncodePrepareState(buf, Prio3SumConfig{Bits: 32}, PrepareState([]byte("state"))))

	_, err := DecodePrepareState(buf, Prio3SumConfig{Bits: 64})
	require.Error(t, err)
}
