package messages

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTimeAddAndSub(t *testing.T) {
	start := Time(100)
	assert.Equal(t, Time(150), start.Add(Duration(50)))
	assert.Equal(t, Duration(50), Time(150).Sub(start))
	assert.Equal(t, Duration(0), start.Sub(Time(150)), "Sub of an earlier time returns 0, not a negative wraparound")
}

func TestTimeEncodeDecodeRoundTrip(t *testing.T) {
	buf := &bytes.Buffer{}
	require.NoError(t, Time(1700000000).Encode(buf))
	got, err := DecodeTime(buf)
	require.NoError(t, err)
	assert.Equal(t, Time(1700000000), got)
}

func TestDurationEncodeDecodeRoundTrip(t *testing.T) {
	buf := &bytes.Buffer{}
	require.NoError(t, Duration(3600).Encode(buf))
	got, err := DecodeDuration(buf)
	require.NoError(t, err)
	assert.Equal(t, Duration(3600), got)
}

func TestProtocolVersionStringAndParseRoundTrip(t *testing.T) {
	for _, v := range []ProtocolVersion{Draft02, Draft03} {
		assert.Equal(t, v, ParseProtocolVersion(v.String()))
	}
	assert.Equal(t, VersionUnknown, ParseProtocolVersion("v99"))
	assert.Equal(t, "unknown", VersionUnknown.String())
}
