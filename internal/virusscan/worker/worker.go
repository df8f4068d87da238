package worker

import (
	"context"
	"log/slog"
	"time"

	"feder/internal/virusscan/models"
)

const defaultInterval = 30 * time.Second

type Scanner interface {
	RunPass(ctx context.Context) (*models.PassSummary, error)
}

// Worker runs scan passes on a fixed interval.
type Worker struct {
	scanner  Scanner
	logger   *slog.Logger
	interval time.Duration
}

func New(scanner Scanner, logger *slog.Logger, interval time.Duration) *Worker {
	if interval <= 0 {
		interval = defaultInterval
	}
	return &Worker{scanner: scanner, logger: logger, interval: interval}
}

// Run scans on every tick until ctx is cancelled.
func (w *Worker) Run(ctx context.Context) error {
	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
			summary, err := w.scanner.RunPass(ctx)
			if err != nil {
				w.logger.WarnContext(ctx, "scan pass failed", "error", err)
				continue
			}
			if summary.Sent+summary.Received > 0 {
				w.logger.InfoContext(ctx, "scan pass finished",
					"sent", summary.Sent,
					"received", summary.Received,
					"failed", summary.Failed,
				)
			}
		}
	}
}
