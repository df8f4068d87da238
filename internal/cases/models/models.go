package models

import (
	"encoding/hex"
	"strings"
	"time"

	"github.com/google/uuid"

	id "feder/pkg/domain"
	dErrors "feder/pkg/domain-errors"
	"feder/pkg/email"
	"feder/pkg/platform/validation"
)

// Case is one (monitoring, institution) correspondence thread with its own
// mailbox address.
//
// Invariants:
//   - Email is unique across every case address and alias
//   - ConfirmationReceived and ResponseReceived only move from false to true
type Case struct {
	ID                   id.CaseID        `json:"id"`
	MonitoringID         id.MonitoringID  `json:"monitoring_id"`
	InstitutionID        id.InstitutionID `json:"institution_id"`
	Name                 string           `json:"name"`
	Email                string           `json:"email"`
	ConfirmationReceived bool             `json:"confirmation_received"`
	ResponseReceived     bool             `json:"response_received"`
	CreatedAt            time.Time        `json:"created_at"`
	Aliases              []Alias          `json:"aliases"`
}

// Alias is an additional inbound address routed to a case.
type Alias struct {
	ID        id.AliasID `json:"id"`
	CaseID    id.CaseID  `json:"case_id"`
	Email     string     `json:"email"`
	CreatedAt time.Time  `json:"created_at"`
}

func NewCase(caseID id.CaseID, monitoringID id.MonitoringID, institutionID id.InstitutionID, name, emailDomain string, now time.Time) (*Case, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, dErrors.New(dErrors.CodeInvariantViolation, "case name cannot be empty")
	}
	if emailDomain == "" {
		return nil, dErrors.New(dErrors.CodeInvariantViolation, "case email domain not configured")
	}
	return &Case{
		ID:            caseID,
		MonitoringID:  monitoringID,
		InstitutionID: institutionID,
		Name:          name,
		Email:         MailboxAddress(caseID, emailDomain),
		CreatedAt:     now,
		Aliases:       []Alias{},
	}, nil
}

// MailboxAddress derives the case address from the first 48 bits of its ID.
func MailboxAddress(caseID id.CaseID, domain string) string {
	u := uuid.UUID(caseID)
	return "case-" + hex.EncodeToString(u[:6]) + "@" + strings.ToLower(domain)
}

// Addresses lists the primary address followed by every alias.
func (c *Case) Addresses() []string {
	out := make([]string, 0, len(c.Aliases)+1)
	out = append(out, c.Email)
	for _, a := range c.Aliases {
		out = append(out, a.Email)
	}
	return out
}

// Milestone is the case flag an inbound letter can latch.
type Milestone int

const (
	MilestoneNone Milestone = iota
	MilestoneConfirmation
	MilestoneResponse
)

func (m Milestone) String() string {
	switch m {
	case MilestoneConfirmation:
		return "confirmation"
	case MilestoneResponse:
		return "response"
	default:
		return "none"
	}
}

// ApplyMilestone latches the flag for m and reports whether anything changed.
// Flags are never lowered.
func (c *Case) ApplyMilestone(m Milestone) bool {
	switch m {
	case MilestoneConfirmation:
		if c.ConfirmationReceived {
			return false
		}
		c.ConfirmationReceived = true
		return true
	case MilestoneResponse:
		if c.ResponseReceived {
			return false
		}
		c.ResponseReceived = true
		return true
	}
	return false
}

const (
	DefaultPageSize = 50
	MaxPageSize     = 200
)

type ListFilter struct {
	MonitoringID         *id.MonitoringID
	InstitutionID        *id.InstitutionID
	Name                 string
	ConfirmationReceived *bool
	ResponseReceived     *bool
	Limit                int
	Offset               int
}

func (f *ListFilter) Normalize() {
	f.Name = strings.TrimSpace(f.Name)
	if f.Limit <= 0 {
		f.Limit = DefaultPageSize
	}
	if f.Limit > MaxPageSize {
		f.Limit = MaxPageSize
	}
	if f.Offset < 0 {
		f.Offset = 0
	}
}

// Matches applies the filter to a single case, name matching ignoring case.
func (f *ListFilter) Matches(c *Case) bool {
	if f.MonitoringID != nil && c.MonitoringID != *f.MonitoringID {
		return false
	}
	if f.InstitutionID != nil && c.InstitutionID != *f.InstitutionID {
		return false
	}
	if f.Name != "" && !strings.Contains(strings.ToLower(c.Name), strings.ToLower(f.Name)) {
		return false
	}
	if f.ConfirmationReceived != nil && c.ConfirmationReceived != *f.ConfirmationReceived {
		return false
	}
	if f.ResponseReceived != nil && c.ResponseReceived != *f.ResponseReceived {
		return false
	}
	return true
}

type CaseList struct {
	Cases  []*Case `json:"cases"`
	Total  int     `json:"total"`
	Limit  int     `json:"limit"`
	Offset int     `json:"offset"`
}

type CreateCaseRequest struct {
	MonitoringID  string `json:"monitoring_id" validate:"required"`
	InstitutionID string `json:"institution_id" validate:"required"`
	Name          string `json:"name" validate:"required,max=256"`

	monitoringID  id.MonitoringID
	institutionID id.InstitutionID
}

func (r *CreateCaseRequest) Normalize() {
	r.Name = strings.TrimSpace(r.Name)
	r.MonitoringID = strings.TrimSpace(r.MonitoringID)
	r.InstitutionID = strings.TrimSpace(r.InstitutionID)
}

// Validate checks tags and parses the referenced IDs.
func (r *CreateCaseRequest) Validate() error {
	if err := validation.Struct(r); err != nil {
		return err
	}
	var err error
	if r.monitoringID, err = id.ParseMonitoringID(r.MonitoringID); err != nil {
		return err
	}
	if r.institutionID, err = id.ParseInstitutionID(r.InstitutionID); err != nil {
		return err
	}
	return nil
}

func (r *CreateCaseRequest) ParsedMonitoringID() id.MonitoringID   { return r.monitoringID }
func (r *CreateCaseRequest) ParsedInstitutionID() id.InstitutionID { return r.institutionID }

type AddAliasRequest struct {
	Email string `json:"email" validate:"required,email,max=254"`
}

func (r *AddAliasRequest) Normalize() {
	r.Email = email.Normalize(r.Email)
}

func (r *AddAliasRequest) Validate() error {
	return validation.Struct(r)
}
