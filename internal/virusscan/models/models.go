package models

import (
	"fmt"
	"time"

	"github.com/goccy/go-json"

	id "feder/pkg/domain"
)

// Status is the lifecycle of one scan request.
type Status int

const (
	StatusCreated Status = iota
	StatusQueued
	StatusInfected
	StatusNotDetected
	StatusFailed
)

var statusNames = map[Status]string{
	StatusCreated:     "created",
	StatusQueued:      "queued",
	StatusInfected:    "infected",
	StatusNotDetected: "not_detected",
	StatusFailed:      "failed",
}

func (s Status) String() string {
	if name, ok := statusNames[s]; ok {
		return name
	}
	return fmt.Sprintf("status(%d)", int(s))
}

func (s Status) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

func (s *Status) UnmarshalText(b []byte) error {
	parsed, err := ParseStatus(string(b))
	if err != nil {
		return err
	}
	*s = parsed
	return nil
}

func ParseStatus(value string) (Status, error) {
	for status, name := range statusNames {
		if name == value {
			return status, nil
		}
	}
	return 0, fmt.Errorf("unknown scan status %q", value)
}

// Final reports whether the engine has given its verdict.
func (s Status) Final() bool {
	return s == StatusInfected || s == StatusNotDetected || s == StatusFailed
}

// Request tracks the scan of one attachment.
type Request struct {
	ID           id.ScanRequestID `json:"id"`
	AttachmentID id.AttachmentID  `json:"attachment_id"`
	Status       Status           `json:"status"`
	EngineName   string           `json:"engine_name"`
	EngineID     string           `json:"engine_id"`
	EngineReport json.RawMessage  `json:"engine_report"`
	EngineLink   string           `json:"engine_link"`
	CreatedAt    time.Time        `json:"created_at"`
	UpdatedAt    time.Time        `json:"updated_at"`
}

// Apply copies an engine answer onto the request.
func (r *Request) Apply(engineName string, res Result, now time.Time) {
	r.EngineName = engineName
	r.Status = res.Status
	if res.EngineID != "" {
		r.EngineID = res.EngineID
	}
	if len(res.Report) > 0 {
		r.EngineReport = res.Report
	}
	if res.Link != "" {
		r.EngineLink = res.Link
	}
	r.UpdatedAt = now
}

// Fail marks the request failed and keeps the cause in the report.
func (r *Request) Fail(engineName string, cause error, now time.Time) {
	report, _ := json.Marshal(map[string]string{"error": cause.Error()})
	r.Apply(engineName, Result{Status: StatusFailed, Report: report}, now)
}

// Result is what an engine reports for a submitted or polled scan.
type Result struct {
	Status   Status
	EngineID string
	Report   json.RawMessage
	Link     string
}

// PassSummary counts what one scan pass changed.
type PassSummary struct {
	Sent     int `json:"sent"`
	Received int `json:"received"`
	Failed   int `json:"failed"`
}

type ListFilter struct {
	Status *Status
	Limit  int
}
