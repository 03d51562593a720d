package messages

import (
	"bytes"
	"io"

	"github.com/marmos91/dapcore/internal/wire"
)

// Time is unsigned seconds since the Unix epoch.
type Time uint64

// Duration is unsigned seconds.
type Duration uint64

// Add returns t advanced by d.
func (t Time) Add(d Duration) Time { return t + Time(d) }

// Sub returns the duration between t and earlier, or 0 if t precedes it.
func (t Time) Sub(earlier Time) Duration {
	if t < earlier {
		return 0
	}
	return Duration(t - earlier)
}

func (t Time) Encode(buf *bytes.Buffer) error { return wire.WriteUint64(buf, uint64(t)) }
func (d Duration) Encode(buf *bytes.Buffer) error { return wire.WriteUint64(buf, uint64(d)) }

// DecodeTime reads a Time from r.
func DecodeTime(r io.Reader) (Time, error) {
	v, err := wire.DecodeUint64(r)
	return Time(v), err
}

// DecodeDuration reads a Duration from r.
func DecodeDuration(r io.Reader) (Duration, error) {
	v, err := wire.DecodeUint64(r)
	return Duration(v), err
}

// ProtocolVersion identifies the wire-protocol draft a message was encoded
// under. Certain codecs are parameterized by it.
type ProtocolVersion int

const (
	Draft02 ProtocolVersion = iota
	Draft03
	VersionUnknown
)

// String returns the version's wire-visible short name.
func (v ProtocolVersion) String() string {
	switch v {
	case Draft02:
		return "v02"
	case Draft03:
		return "v03"
	default:
		return "unknown"
	}
}

// ParseProtocolVersion maps a wire short name to a ProtocolVersion.
// Producing VersionUnknown from user input is acceptable; reading it back
// in a protocol context is the caller's InvalidProtocolVersion abort.
func ParseProtocolVersion(s string) ProtocolVersion {
	switch s {
	case "v02":
		return Draft02
	case "v03":
		return Draft03
	default:
		return VersionUnknown
	}
}
