package models

import (
	"strings"
	"time"

	id "feder/pkg/domain"
	"feder/pkg/platform/validation"
)

type Status string

const (
	StatusOpen   Status = "open"
	StatusSolved Status = "solved"
)

func (s Status) Valid() bool {
	return s == StatusOpen || s == StatusSolved
}

// LinkLetter is the only kind of object alerts point at today.
const LinkLetter = "letter"

// DefaultSpamReason is used when a reader reports spam without comment.
const DefaultSpamReason = "Spam report"

// Alert is a reader's report about questionable content, waiting for an
// operator to resolve it.
type Alert struct {
	ID           id.AlertID       `json:"id"`
	MonitoringID *id.MonitoringID `json:"monitoring_id"`
	Reason       string           `json:"reason"`
	AuthorID     *id.OperatorID   `json:"author_id"`
	SolverID     *id.OperatorID   `json:"solver_id"`
	Status       Status           `json:"status"`
	LinkKind     string           `json:"link_kind"`
	LinkID       id.LetterID      `json:"link_id"`
	UserAgent    string           `json:"user_agent"`
	ClientIP     string           `json:"client_ip"`
	CreatedAt    time.Time        `json:"created_at"`
	SolvedAt     *time.Time       `json:"solved_at"`
}

func (a *Alert) IsSolved() bool {
	return a.Status == StatusSolved
}

// CreatedEvent is published when a monitoring wants to hear about alerts.
type CreatedEvent struct {
	AlertID      id.AlertID      `json:"alert_id"`
	MonitoringID id.MonitoringID `json:"monitoring_id"`
	LetterID     id.LetterID     `json:"letter_id"`
	Reason       string          `json:"reason"`
	CreatedAt    time.Time       `json:"created_at"`
}

type ReportSpamRequest struct {
	Reason string `json:"reason" validate:"max=2000"`
}

func (r *ReportSpamRequest) Normalize() {
	r.Reason = strings.TrimSpace(r.Reason)
	if r.Reason == "" {
		r.Reason = DefaultSpamReason
	}
}

func (r *ReportSpamRequest) Validate() error {
	return validation.Struct(r)
}
