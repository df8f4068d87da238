package engine

import (
	"context"
	"io"

	"github.com/goccy/go-json"

	"feder/internal/virusscan/models"
)

const NoopName = "noop"

// Noop accepts every file and reports nothing detected. It reads the content
// so the size lands in the report.
type Noop struct{}

func (Noop) Name() string { return NoopName }

func (Noop) SendScan(_ context.Context, filename string, content io.Reader) (models.Result, error) {
	n, err := io.Copy(io.Discard, content)
	if err != nil {
		return models.Result{}, err
	}
	report, err := json.Marshal(map[string]any{"filename": filename, "bytes": n})
	if err != nil {
		return models.Result{}, err
	}
	return models.Result{Status: models.StatusNotDetected, Report: report}, nil
}

func (Noop) ReceiveResult(_ context.Context, _ string) (models.Result, error) {
	return models.Result{Status: models.StatusNotDetected}, nil
}
