// Package batch implements batch bucketing: mapping reports to buckets
// under the TimeInterval and FixedSize query modes, computing batch spans
// for selectors, and validating selector/query compatibility.
package batch

import (
	"github.com/marmos91/dapcore/pkg/messages"
)

// Bucket is the smallest disjoint aggregation unit a report or aggregate
// share belongs to. It is a tagged union: TimeIntervalBucket or
// FixedSizeBucket.
type Bucket interface {
	isBucket()
}

// TimeIntervalBucket identifies a truncated time window:
// batch_window = time - (time mod time_precision).
type TimeIntervalBucket struct {
	BatchWindow messages.Time
}

func (TimeIntervalBucket) isBucket() {}

// FixedSizeBucket identifies a batch by its assigned BatchID.
type FixedSizeBucket struct {
	BatchID messages.BatchID
}

func (FixedSizeBucket) isBucket() {}

// Equal reports whether two buckets name the same aggregation unit.
func Equal(a, b Bucket) bool {
	switch av := a.(type) {
	case TimeIntervalBucket:
		bv, ok := b.(TimeIntervalBucket)
		return ok && av.BatchWindow == bv.BatchWindow
	case FixedSizeBucket:
		bv, ok := b.(FixedSizeBucket)
		return ok && av.BatchID == bv.BatchID
	default:
		return false
	}
}
