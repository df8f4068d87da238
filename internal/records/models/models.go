package models

import (
	"time"

	id "feder/pkg/domain"
	dErrors "feder/pkg/domain-errors"
)

type Kind string

const KindLetter Kind = "letter"

// Record is one entry of a case timeline. Records are never deleted or
// reordered; CaseID may go from nil to a case once, when an orphan is adopted.
type Record struct {
	ID        id.RecordID `json:"id"`
	CaseID    *id.CaseID  `json:"case_id"`
	Kind      Kind        `json:"kind"`
	ObjectID  id.LetterID `json:"object_id"`
	CreatedAt time.Time   `json:"created_at"`
}

func (r *Record) IsOrphan() bool {
	return r.CaseID == nil
}

// Adopt attaches an orphan record to caseID.
func (r *Record) Adopt(caseID id.CaseID) error {
	if !r.IsOrphan() {
		return dErrors.New(dErrors.CodeConflict, "record already belongs to a case")
	}
	r.CaseID = &caseID
	return nil
}

const (
	EventAppended = "record.appended"
	EventAdopted  = "record.adopted"
)

// Event is the timeline message published for appends and adoptions.
type Event struct {
	RecordID  id.RecordID `json:"record_id"`
	CaseID    *id.CaseID  `json:"case_id,omitempty"`
	Kind      Kind        `json:"kind"`
	ObjectID  id.LetterID `json:"object_id"`
	CreatedAt time.Time   `json:"created_at"`
}

func EventFor(r *Record) Event {
	return Event{RecordID: r.ID, CaseID: r.CaseID, Kind: r.Kind, ObjectID: r.ObjectID, CreatedAt: r.CreatedAt}
}
