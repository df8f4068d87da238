package worker

import (
	"context"
	"log/slog"
	"time"

	id "feder/pkg/domain"
	"feder/pkg/platform/outbox"
	"feder/pkg/platform/tx"
)

const (
	defaultInterval  = time.Second
	defaultBatchSize = 100
)

// Worker drains the outbox into the event bus. Each batch is fetched, published
// and marked inside one unit of work, so a failed publish leaves the rows
// pending for the next tick.
type Worker struct {
	store     outbox.Store
	publisher outbox.Publisher
	runner    tx.Runner
	logger    *slog.Logger
	interval  time.Duration
	batchSize int
}

type Option func(*Worker)

func WithInterval(d time.Duration) Option {
	return func(w *Worker) {
		if d > 0 {
			w.interval = d
		}
	}
}

func WithBatchSize(n int) Option {
	return func(w *Worker) {
		if n > 0 {
			w.batchSize = n
		}
	}
}

func New(store outbox.Store, publisher outbox.Publisher, runner tx.Runner, logger *slog.Logger, opts ...Option) *Worker {
	w := &Worker{
		store:     store,
		publisher: publisher,
		runner:    runner,
		logger:    logger,
		interval:  defaultInterval,
		batchSize: defaultBatchSize,
	}
	for _, opt := range opts {
		opt(w)
	}
	return w
}

// Run publishes on every tick until ctx is cancelled.
func (w *Worker) Run(ctx context.Context) error {
	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
			if _, err := w.ProcessBatch(ctx); err != nil {
				w.logger.WarnContext(ctx, "outbox batch failed", "error", err)
			}
		}
	}
}

// ProcessBatch publishes one batch and reports how many entries went out.
func (w *Worker) ProcessBatch(ctx context.Context) (int, error) {
	published := 0
	err := w.runner.RunInTx(ctx, func(ctx context.Context) error {
		entries, err := w.store.FetchUnpublished(ctx, w.batchSize)
		if err != nil {
			return err
		}
		if len(entries) == 0 {
			return nil
		}
		if err := w.publisher.Publish(ctx, entries); err != nil {
			return err
		}
		ids := make([]id.OutboxID, len(entries))
		for i, e := range entries {
			ids[i] = e.ID
		}
		if err := w.store.MarkPublished(ctx, ids, time.Now().UTC()); err != nil {
			return err
		}
		published = len(entries)
		return nil
	})
	if err != nil {
		return 0, err
	}
	return published, nil
}
