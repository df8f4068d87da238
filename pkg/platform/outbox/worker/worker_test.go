package worker

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"

	"feder/pkg/platform/outbox"
	"feder/pkg/platform/outbox/store/memory"
	"feder/pkg/platform/tx"
)

type recordingPublisher struct {
	batches [][]outbox.Entry
	err     error
}

func (p *recordingPublisher) Publish(_ context.Context, entries []outbox.Entry) error {
	if p.err != nil {
		return p.err
	}
	p.batches = append(p.batches, entries)
	return nil
}

type WorkerSuite struct {
	suite.Suite
	store     *memory.InMemoryStore
	publisher *recordingPublisher
	worker    *Worker
}

func TestWorkerSuite(t *testing.T) {
	suite.Run(t, new(WorkerSuite))
}

func (s *WorkerSuite) SetupTest() {
	s.store = memory.NewInMemoryStore()
	s.publisher = &recordingPublisher{}
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	s.worker = New(s.store, s.publisher, tx.NewLocalRunner(), logger, WithBatchSize(2))
}

func (s *WorkerSuite) appendEntries(n int) {
	base := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	for i := range n {
		e, err := outbox.NewEntry("feder.records", "case-1", "record.appended", map[string]int{"n": i}, base.Add(time.Duration(i)*time.Second))
		s.Require().NoError(err)
		s.Require().NoError(s.store.Append(context.Background(), e))
	}
}

func (s *WorkerSuite) TestPublishesInBatchesOldestFirst() {
	s.appendEntries(3)

	n, err := s.worker.ProcessBatch(context.Background())
	s.Require().NoError(err)
	s.Equal(2, n)

	n, err = s.worker.ProcessBatch(context.Background())
	s.Require().NoError(err)
	s.Equal(1, n)

	s.Require().Len(s.publisher.batches, 2)
	s.JSONEq(`{"n":0}`, string(s.publisher.batches[0][0].Payload))
	s.JSONEq(`{"n":2}`, string(s.publisher.batches[1][0].Payload))

	n, err = s.worker.ProcessBatch(context.Background())
	s.Require().NoError(err)
	s.Zero(n)
}

func (s *WorkerSuite) TestFailedPublishLeavesEntriesPending() {
	s.appendEntries(1)
	s.publisher.err = errors.New("broker down")

	_, err := s.worker.ProcessBatch(context.Background())
	s.Require().Error(err)

	pending, err := s.store.FetchUnpublished(context.Background(), 10)
	s.Require().NoError(err)
	s.Len(pending, 1)
}

func TestRunStopsOnCancel(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	w := New(memory.NewInMemoryStore(), &recordingPublisher{}, tx.NewLocalRunner(), logger, WithInterval(time.Millisecond))
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	require.ErrorIs(t, w.Run(ctx), context.Canceled)
}
