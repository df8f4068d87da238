// Package domain holds identifier types shared across bounded contexts.
//
// Every entity gets its own UUID-backed type so the compiler rejects passing a
// CaseID where a LetterID is expected.
package domain

import (
	"github.com/google/uuid"

	dErrors "feder/pkg/domain-errors"
)

type (
	MonitoringID  uuid.UUID
	InstitutionID uuid.UUID
	CaseID        uuid.UUID
	AliasID       uuid.UUID
	RecordID      uuid.UUID
	LetterID      uuid.UUID
	AttachmentID  uuid.UUID
	EmailLogID    uuid.UUID
	LogRecordID   uuid.UUID
	ScanRequestID uuid.UUID
	AlertID       uuid.UUID
	OperatorID    uuid.UUID
	OutboxID      uuid.UUID
)

func (id MonitoringID) String() string  { return uuid.UUID(id).String() }
func (id InstitutionID) String() string { return uuid.UUID(id).String() }
func (id CaseID) String() string        { return uuid.UUID(id).String() }
func (id AliasID) String() string       { return uuid.UUID(id).String() }
func (id RecordID) String() string      { return uuid.UUID(id).String() }
func (id LetterID) String() string      { return uuid.UUID(id).String() }
func (id AttachmentID) String() string  { return uuid.UUID(id).String() }
func (id EmailLogID) String() string    { return uuid.UUID(id).String() }
func (id LogRecordID) String() string   { return uuid.UUID(id).String() }
func (id ScanRequestID) String() string { return uuid.UUID(id).String() }
func (id AlertID) String() string       { return uuid.UUID(id).String() }
func (id OperatorID) String() string    { return uuid.UUID(id).String() }
func (id OutboxID) String() string      { return uuid.UUID(id).String() }

func (id MonitoringID) IsNil() bool  { return uuid.UUID(id) == uuid.Nil }
func (id InstitutionID) IsNil() bool { return uuid.UUID(id) == uuid.Nil }
func (id CaseID) IsNil() bool        { return uuid.UUID(id) == uuid.Nil }
func (id LetterID) IsNil() bool      { return uuid.UUID(id) == uuid.Nil }
func (id AttachmentID) IsNil() bool  { return uuid.UUID(id) == uuid.Nil }
func (id AlertID) IsNil() bool       { return uuid.UUID(id) == uuid.Nil }
func (id OperatorID) IsNil() bool    { return uuid.UUID(id) == uuid.Nil }
func (id AliasID) IsNil() bool       { return uuid.UUID(id) == uuid.Nil }
func (id RecordID) IsNil() bool      { return uuid.UUID(id) == uuid.Nil }
func (id EmailLogID) IsNil() bool    { return uuid.UUID(id) == uuid.Nil }
func (id LogRecordID) IsNil() bool   { return uuid.UUID(id) == uuid.Nil }
func (id ScanRequestID) IsNil() bool { return uuid.UUID(id) == uuid.Nil }
func (id OutboxID) IsNil() bool      { return uuid.UUID(id) == uuid.Nil }

func ParseMonitoringID(s string) (MonitoringID, error) {
	u, err := parseUUID(s, "monitoring")
	return MonitoringID(u), err
}

func ParseInstitutionID(s string) (InstitutionID, error) {
	u, err := parseUUID(s, "institution")
	return InstitutionID(u), err
}

func ParseCaseID(s string) (CaseID, error) {
	u, err := parseUUID(s, "case")
	return CaseID(u), err
}

func ParseLetterID(s string) (LetterID, error) {
	u, err := parseUUID(s, "letter")
	return LetterID(u), err
}

func ParseAttachmentID(s string) (AttachmentID, error) {
	u, err := parseUUID(s, "attachment")
	return AttachmentID(u), err
}

func ParseEmailLogID(s string) (EmailLogID, error) {
	u, err := parseUUID(s, "email log")
	return EmailLogID(u), err
}

func ParseAlertID(s string) (AlertID, error) {
	u, err := parseUUID(s, "alert")
	return AlertID(u), err
}

func ParseOperatorID(s string) (OperatorID, error) {
	u, err := parseUUID(s, "operator")
	return OperatorID(u), err
}

// parseUUID rejects empty, malformed and nil UUIDs at trust boundaries.
func parseUUID(s, kind string) (uuid.UUID, error) {
	if s == "" {
		return uuid.Nil, dErrors.New(dErrors.CodeInvalidInput, kind+" ID required")
	}
	u, err := uuid.Parse(s)
	if err != nil {
		return uuid.Nil, dErrors.Wrap(err, dErrors.CodeInvalidInput, "invalid "+kind+" ID")
	}
	if u == uuid.Nil {
		return uuid.Nil, dErrors.New(dErrors.CodeInvalidInput, kind+" ID cannot be nil")
	}
	return u, nil
}
