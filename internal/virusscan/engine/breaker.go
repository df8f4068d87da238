package engine

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"time"

	gobreaker "github.com/sony/gobreaker/v2"

	"feder/internal/virusscan/models"
)

type BreakerSettings struct {
	// ConsecutiveFailures opens the breaker.
	ConsecutiveFailures uint32
	// OpenDelay is how long the breaker stays open before a probe.
	OpenDelay time.Duration
}

// StateObserver is told about breaker transitions.
type StateObserver func(name string, open bool)

// Breaker guards an engine with a circuit breaker. While open, calls fail
// fast with ErrUnavailable.
type Breaker struct {
	next Engine
	cb   *gobreaker.CircuitBreaker[models.Result]
}

func WithBreaker(next Engine, settings BreakerSettings, logger *slog.Logger, observe StateObserver) *Breaker {
	failures := settings.ConsecutiveFailures
	if failures == 0 {
		failures = 5
	}
	delay := settings.OpenDelay
	if delay <= 0 {
		delay = time.Minute
	}
	cb := gobreaker.NewCircuitBreaker[models.Result](gobreaker.Settings{
		Name:        "virusscan-" + next.Name(),
		MaxRequests: 1,
		Timeout:     delay,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= failures
		},
		OnStateChange: func(name string, from, to gobreaker.State) {
			logger.Warn("scan engine breaker state changed",
				"breaker", name,
				"from", from.String(),
				"to", to.String(),
			)
			if observe != nil {
				observe(name, to == gobreaker.StateOpen)
			}
		},
	})
	return &Breaker{next: next, cb: cb}
}

func (b *Breaker) Name() string { return b.next.Name() }

func (b *Breaker) SendScan(ctx context.Context, filename string, content io.Reader) (models.Result, error) {
	return b.execute(func() (models.Result, error) {
		return b.next.SendScan(ctx, filename, content)
	})
}

func (b *Breaker) ReceiveResult(ctx context.Context, engineID string) (models.Result, error) {
	return b.execute(func() (models.Result, error) {
		return b.next.ReceiveResult(ctx, engineID)
	})
}

func (b *Breaker) execute(fn func() (models.Result, error)) (models.Result, error) {
	res, err := b.cb.Execute(fn)
	if errors.Is(err, gobreaker.ErrOpenState) || errors.Is(err, gobreaker.ErrTooManyRequests) {
		return models.Result{}, ErrUnavailable
	}
	return res, err
}
