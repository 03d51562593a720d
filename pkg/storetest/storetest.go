// Package storetest provides in-memory fakes of pkg/collab's collaborator
// interfaces, for use in tests exercising the core state machine without a
// real backing store.
package storetest

import (
	"context"
	"fmt"
	"sync"

	"github.com/marmos91/dapcore/pkg/aggregate"
	"github.com/marmos91/dapcore/pkg/batch"
	"github.com/marmos91/dapcore/pkg/collab"
	"github.com/marmos91/dapcore/pkg/messages"
)

type reportKey struct {
	taskID   messages.TaskID
	reportID messages.ReportID
}

// ReportStore is an in-memory collab.ReportStore. Tests can preseed
// rejection behavior with MarkTooLate/MarkBatchCollected before exercising
// the code under test.
type ReportStore struct {
	mu             sync.Mutex
	seen           map[reportKey]struct{}
	tooLate        map[reportKey]struct{}
	batchCollected map[messages.TaskID]struct{}
}

// NewReportStore returns an empty ReportStore.
func NewReportStore() *ReportStore {
	return &ReportStore{
		seen:           make(map[reportKey]struct{}),
		tooLate:        make(map[reportKey]struct{}),
		batchCollected: make(map[messages.TaskID]struct{}),
	}
}

// MarkTooLate makes every subsequent InsertIfAbsent for (taskID, reportID)
// return ReportTooLate instead of admitting it, unless MarkBatchCollected
// has marked taskID, which takes precedence.
func (s *ReportStore) MarkTooLate(taskID messages.TaskID, reportID messages.ReportID) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.tooLate[reportKey{taskID, reportID}] = struct{}{}
}

// MarkBatchCollected makes every subsequent InsertIfAbsent for taskID of a
// report not already admitted return ReportBatchCollected; the mark is
// never cleared.
func (s *ReportStore) MarkBatchCollected(taskID messages.TaskID) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.batchCollected[taskID] = struct{}{}
}

// InsertIfAbsent implements collab.ReportStore.
func (s *ReportStore) InsertIfAbsent(_ context.Context, taskID messages.TaskID, reportID messages.ReportID, _ messages.Time) (collab.ReportStoreOutcome, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	key := reportKey{taskID, reportID}
	if _, ok := s.seen[key]; ok {
		return collab.ReportReplayed, nil
	}
	if _, ok := s.batchCollected[taskID]; ok {
		return collab.ReportBatchCollected, nil
	}
	if _, ok := s.tooLate[key]; ok {
		return collab.ReportTooLate, nil
	}

	s.seen[key] = struct{}{}
	return collab.ReportFresh, nil
}

// SeenCount reports how many reports have been admitted, for test
// assertions.
func (s *ReportStore) SeenCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.seen)
}

var _ collab.ReportStore = (*ReportStore)(nil)

type aggKey struct {
	taskID messages.TaskID
	bucket batch.Bucket
}

// AggregateStore is an in-memory collab.AggregateStore.
type AggregateStore struct {
	mu        sync.Mutex
	shares    map[aggKey]aggregate.Share
	collected map[aggKey]struct{}
}

// NewAggregateStore returns an empty AggregateStore.
func NewAggregateStore() *AggregateStore {
	return &AggregateStore{
		shares:    make(map[aggKey]aggregate.Share),
		collected: make(map[aggKey]struct{}),
	}
}

// MarkCollected makes every subsequent Merge against (taskID, bucket)
// return MergeBatchCollected without applying the delta.
func (s *AggregateStore) MarkCollected(taskID messages.TaskID, bucket batch.Bucket) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.collected[aggKey{taskID, bucket}] = struct{}{}
}

// Load implements collab.AggregateStore.
func (s *AggregateStore) Load(_ context.Context, taskID messages.TaskID, bucket batch.Bucket) (aggregate.Share, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.shares[aggKey{taskID, bucket}], nil
}

// Merge implements collab.AggregateStore.
func (s *AggregateStore) Merge(_ context.Context, taskID messages.TaskID, bucket batch.Bucket, delta aggregate.Share) (collab.AggregateStoreOutcome, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	key := aggKey{taskID, bucket}
	if _, ok := s.collected[key]; ok {
		return collab.MergeBatchCollected, nil
	}

	current := s.shares[key]
	if fault := current.Merge(delta); fault != nil {
		return 0, fault
	}
	s.shares[key] = current
	return collab.MergeOK, nil
}

var _ collab.AggregateStore = (*AggregateStore)(nil)

// HPKESealer is an in-memory collab.HPKESealer. By default Open strips a
// fixed-length fake "seal" prefix matching SealedPrefixLen; tests needing a
// failure inject it with FailWith.
type HPKESealer struct {
	mu      sync.Mutex
	failErr error
}

// SealedPrefixLen is the length of the marker this fake prepends when
// sealing in tests; Open trims exactly this many bytes back off.
const SealedPrefixLen = 4

// NewHPKESealer returns a sealer with no injected failure.
func NewHPKESealer() *HPKESealer {
	return &HPKESealer{}
}

// Seal prepends a fixed marker so Open has something recognizable to
// strip; this is a test fixture, not a real HPKE seal.
func Seal(plaintext []byte) []byte {
	out := make([]byte, SealedPrefixLen+len(plaintext))
	copy(out[SealedPrefixLen:], plaintext)
	return out
}

// FailWith makes every subsequent Open call return err.
func (s *HPKESealer) FailWith(err error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.failErr = err
}

// Open implements collab.HPKESealer.
func (s *HPKESealer) Open(_ context.Context, _ uint8, ciphertext, _, _ []byte) ([]byte, error) {
	s.mu.Lock()
	err := s.failErr
	s.mu.Unlock()
	if err != nil {
		return nil, err
	}
	if len(ciphertext) < SealedPrefixLen {
		return nil, fmt.Errorf("storetest: ciphertext shorter than fake seal prefix")
	}
	return ciphertext[SealedPrefixLen:], nil
}

var _ collab.HPKESealer = (*HPKESealer)(nil)

// Clock is a settable collab.Clock.
type Clock struct {
	mu  sync.Mutex
	now messages.Time
}

// NewClock returns a Clock fixed at t.
func NewClock(t messages.Time) *Clock {
	return &Clock{now: t}
}

// Set moves the clock to t.
func (c *Clock) Set(t messages.Time) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = t
}

// Advance moves the clock forward by d.
func (c *Clock) Advance(d messages.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = c.now.Add(d)
}

// Now implements collab.Clock.
func (c *Clock) Now() messages.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

var _ collab.Clock = (*Clock)(nil)
