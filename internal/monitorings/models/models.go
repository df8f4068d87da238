package models

import (
	"strings"
	"time"

	id "feder/pkg/domain"
	dErrors "feder/pkg/domain-errors"
	"feder/pkg/email"
	"feder/pkg/platform/validation"
)

// Monitoring is a correspondence campaign sent to many institutions.
type Monitoring struct {
	ID          id.MonitoringID `json:"id"`
	Name        string          `json:"name"`
	EmailFooter string          `json:"email_footer"`
	NotifyAlert bool            `json:"notify_alert"`
	CreatedAt   time.Time       `json:"created_at"`
}

func NewMonitoring(monitoringID id.MonitoringID, name, footer string, notifyAlert bool, now time.Time) (*Monitoring, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, dErrors.New(dErrors.CodeInvariantViolation, "monitoring name cannot be empty")
	}
	return &Monitoring{
		ID:          monitoringID,
		Name:        name,
		EmailFooter: footer,
		NotifyAlert: notifyAlert,
		CreatedAt:   now,
	}, nil
}

// Institution is a public body that receives requests.
//
// Archival institutions stay readable but no new case may target them.
type Institution struct {
	ID        id.InstitutionID `json:"id"`
	Name      string           `json:"name"`
	Email     string           `json:"email"`
	Archival  bool             `json:"archival"`
	CreatedAt time.Time        `json:"created_at"`
}

func NewInstitution(institutionID id.InstitutionID, name, address string, archival bool, now time.Time) (*Institution, error) {
	address = email.Normalize(address)
	if address == "" {
		return nil, dErrors.New(dErrors.CodeInvariantViolation, "institution email cannot be empty")
	}
	return &Institution{
		ID:        institutionID,
		Name:      strings.TrimSpace(name),
		Email:     address,
		Archival:  archival,
		CreatedAt: now,
	}, nil
}

func (i *Institution) CanReceiveCases() error {
	if i.Archival {
		return dErrors.New(dErrors.CodeInvariantViolation, "institution is archival")
	}
	return nil
}

type CreateMonitoringRequest struct {
	Name        string `json:"name" validate:"required,max=256"`
	EmailFooter string `json:"email_footer" validate:"max=4096"`
	NotifyAlert bool   `json:"notify_alert"`
}

func (r *CreateMonitoringRequest) Normalize() {
	r.Name = strings.TrimSpace(r.Name)
}

func (r *CreateMonitoringRequest) Validate() error {
	return validation.Struct(r)
}

type CreateInstitutionRequest struct {
	Name     string `json:"name" validate:"required,max=256"`
	Email    string `json:"email" validate:"required,email"`
	Archival bool   `json:"archival"`
}

func (r *CreateInstitutionRequest) Normalize() {
	r.Name = strings.TrimSpace(r.Name)
	r.Email = email.Normalize(r.Email)
}

func (r *CreateInstitutionRequest) Validate() error {
	return validation.Struct(r)
}
