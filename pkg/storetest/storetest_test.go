package storetest

import (
	"context"
	"errors"
	"testing"

	"github.com/marmos91/dapcore/pkg/aggregate"
	"github.com/marmos91/dapcore/pkg/batch"
	"github.com/marmos91/dapcore/pkg/collab"
	"github.com/marmos91/dapcore/pkg/messages"
	"github.com/marmos91/dapcore/pkg/vdaf"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReportStoreInsertIfAbsent(t *testing.T) {
	ctx := context.Background()
	s := NewReportStore()
	var taskID messages.TaskID
	var reportID messages.ReportID
	reportID[0] = 1

	outcome, err := s.InsertIfAbsent(ctx, taskID, reportID, 100)
	require.NoError(t, err)
	assert.Equal(t, collab.ReportFresh, outcome)
	assert.Equal(t, 1, s.SeenCount())

	outcome, err = s.InsertIfAbsent(ctx, taskID, reportID, 100)
	require.NoError(t, err)
	assert.Equal(t, collab.ReportReplayed, outcome)
}

func TestReportStoreMarkTooLate(t *testing.T) {
	ctx := context.Background()
	s := NewReportStore()
	var taskID messages.TaskID
	var reportID messages.ReportID
	reportID[0] = 2

	s.MarkTooLate(taskID, reportID)
	outcome, err := s.InsertIfAbsent(ctx, taskID, reportID, 100)
	require.NoError(t, err)
	assert.Equal(t, collab.ReportTooLate, outcome)
}

func TestReportStoreMarkBatchCollected(t *testing.T) {
	ctx := context.Background()
	s := NewReportStore()
	var taskID messages.TaskID
	var reportID messages.ReportID
	reportID[0] = 3

	s.MarkBatchCollected(taskID)
	outcome, err := s.InsertIfAbsent(ctx, taskID, reportID, 100)
	require.NoError(t, err)
	assert.Equal(t, collab.ReportBatchCollected, outcome)
}

func TestAggregateStoreMergeAccumulates(t *testing.T) {
	ctx := context.Background()
	s := NewAggregateStore()
	var taskID messages.TaskID
	bucket := batch.TimeIntervalBucket{BatchWindow: 0}

	delta := aggregate.Share{
		ReportCount: 1,
		Data:        &vdaf.AggregateShareData{Variant: vdaf.Field64, Field64: []uint64{1}},
	}

	outcome, err := s.Merge(ctx, taskID, bucket, delta)
	require.NoError(t, err)
	assert.Equal(t, collab.MergeOK, outcome)

	outcome, err = s.Merge(ctx, taskID, bucket, delta)
	require.NoError(t, err)
	assert.Equal(t, collab.MergeOK, outcome)

	loaded, err := s.Load(ctx, taskID, bucket)
	require.NoError(t, err)
	assert.Equal(t, uint64(2), loaded.ReportCount)
	assert.Equal(t, []uint64{2}, loaded.Data.Field64)
}

func TestAggregateStoreMarkCollectedRejectsMerge(t *testing.T) {
	ctx := context.Background()
	s := NewAggregateStore()
	var taskID messages.TaskID
	bucket := batch.FixedSizeBucket{BatchID: messages.BatchID{1}}

	s.MarkCollected(taskID, bucket)
	outcome, err := s.Merge(ctx, taskID, bucket, aggregate.Share{ReportCount: 1})
	require.NoError(t, err)
	assert.Equal(t, collab.MergeBatchCollected, outcome)
}

func TestHPKESealerRoundTrip(t *testing.T) {
	ctx := context.Background()
	s := NewHPKESealer()

	plaintext := []byte("report input share")
	sealed := Seal(plaintext)

	opened, err := s.Open(ctx, 1, sealed, nil, nil)
	require.NoError(t, err)
	assert.Equal(t, plaintext, opened)
}

func TestHPKESealerFailWith(t *testing.T) {
	ctx := context.Background()
	s := NewHPKESealer()
	wantErr := errors.New("boom")
	s.FailWith(wantErr)

	_, err := s.Open(ctx, 1, Seal([]byte("x")), nil, nil)
	assert.ErrorIs(t, err, wantErr)
}

func TestClockAdvance(t *testing.T) {
	c := NewClock(100)
	assert.Equal(t, messages.Time(100), c.Now())

	c.Advance(50)
	assert.Equal(t, messages.Time(150), c.Now())

	c.Set(10)
	assert.Equal(t, messages.Time(10), c.Now())
}
