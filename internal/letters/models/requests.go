package models

import (
	"strings"

	id "feder/pkg/domain"
	dErrors "feder/pkg/domain-errors"
	"feder/pkg/platform/validation"
)

type CreateOutgoingRequest struct {
	Title string `json:"title" validate:"required,max=200"`
	Body  string `json:"body" validate:"required"`
}

func (r *CreateOutgoingRequest) Normalize() {
	r.Title = strings.TrimSpace(r.Title)
	r.Body = strings.TrimSpace(r.Body)
}

func (r *CreateOutgoingRequest) Validate() error {
	return validation.Struct(r)
}

// MarkSpamRequest carries the moderator verdict: valid letters become
// non_spam, the rest spam.
type MarkSpamRequest struct {
	Valid *bool `json:"valid" validate:"required"`
}

func (r *MarkSpamRequest) Validate() error {
	return validation.Struct(r)
}

func (r *MarkSpamRequest) Target() SpamStatus {
	if r.Valid != nil && *r.Valid {
		return SpamNonSpam
	}
	return SpamSpam
}

type AssignRequest struct {
	CaseID string `json:"case_id" validate:"required"`

	caseID id.CaseID
}

func (r *AssignRequest) Normalize() {
	r.CaseID = strings.TrimSpace(r.CaseID)
}

func (r *AssignRequest) Validate() error {
	if err := validation.Struct(r); err != nil {
		return err
	}
	caseID, err := id.ParseCaseID(r.CaseID)
	if err != nil {
		return dErrors.New(dErrors.CodeInvalidInput, "case_id must be a UUID")
	}
	r.caseID = caseID
	return nil
}

func (r *AssignRequest) ParsedCaseID() id.CaseID {
	return r.caseID
}
