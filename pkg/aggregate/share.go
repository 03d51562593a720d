// Package aggregate implements the output-share and aggregate-share
// algebra: accumulating per-report output shares into per-bucket aggregate
// shares with associative, commutative merge, a running XOR checksum, and
// reset/empty predicates.
package aggregate

import (
	"crypto/sha256"

	"github.com/marmos91/dapcore/pkg/abort"
	"github.com/marmos91/dapcore/pkg/messages"
	"github.com/marmos91/dapcore/pkg/vdaf"
)

// ChecksumLen is the width of the running report checksum.
const ChecksumLen = 32

// ReportChecksum returns the per-report checksum contribution a
// successfully prepared report's output share carries: SHA-256 of the
// report ID. An aggregate share's own checksum is the bytewise XOR of
// every contributing report's ReportChecksum, via Merge.
func ReportChecksum(id messages.ReportID) [ChecksumLen]byte {
	return sha256.Sum256(id[:])
}

// OutputShare is produced once per successfully prepared report by the
// Aggregator holding that report's share.
type OutputShare struct {
	Time     messages.Time
	Checksum [ChecksumLen]byte
	Data     vdaf.AggregateShareData
}

// Share accumulates output shares for one bucket. Data is nil iff
// ReportCount == 0; the zero value is the identity element for Merge.
type Share struct {
	ReportCount uint64
	Checksum    [ChecksumLen]byte
	Data        *vdaf.AggregateShareData
}

// Empty reports whether s holds no contributions.
func (s Share) Empty() bool { return s.ReportCount == 0 }

// Reset returns s to its zero state, as happens after a bucket is
// collected.
func (s *Share) Reset() {
	*s = Share{}
}

// Merge folds other into s: report counts add, checksums XOR byte-wise,
// and Data combines by field-typed addition. A nil Data on either side is
// treated as the additive identity; combining two non-nil Data of
// different field variants is a Fatal invariant violation, since that can
// only happen if the caller mixed reports from different VDAF
// configurations into one bucket.
func (s *Share) Merge(other Share) *abort.Fault {
	switch {
	case s.Data == nil && other.Data == nil:
		// no-op
	case s.Data == nil:
		clone := *other.Data
		s.Data = &clone
	case other.Data == nil:
		// no-op, s.Data already set
	default:
		sum, err := s.Data.Add(*other.Data)
		if err != nil {
			return abort.Fatalf("aggregate: merge aggregate shares: %w", err)
		}
		s.Data = &sum
	}

	s.ReportCount += other.ReportCount
	for i := range s.Checksum {
		s.Checksum[i] ^= other.Checksum[i]
	}
	return nil
}

// FromOutputShare builds a single-report Share from an OutputShare, the
// starting point every bucket's aggregate share is folded from.
func FromOutputShare(out OutputShare) Share {
	data := out.Data
	return Share{
		ReportCount: 1,
		Checksum:    out.Checksum,
		Data:        &data,
	}
}
