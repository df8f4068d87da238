// Package engine holds the scanner port and the adapters that implement it.
package engine

import (
	"context"
	"errors"
	"fmt"
	"io"

	"feder/internal/virusscan/models"
)

// ErrUnavailable is returned while the engine is being held off after
// repeated failures. Callers should leave their requests untouched.
var ErrUnavailable = errors.New("scan engine unavailable")

type Engine interface {
	Name() string
	SendScan(ctx context.Context, filename string, content io.Reader) (models.Result, error)
	ReceiveResult(ctx context.Context, engineID string) (models.Result, error)
}

// New returns the engine configured by name.
func New(name string) (Engine, error) {
	switch name {
	case "", NoopName:
		return Noop{}, nil
	default:
		return nil, fmt.Errorf("unknown scan engine %q", name)
	}
}
