//go:build integration

package containers

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
)

// CaseFixture is a monitoring, an institution and a case wired together.
type CaseFixture struct {
	MonitoringID  uuid.UUID
	InstitutionID uuid.UUID
	CaseID        uuid.UUID
	Email         string
}

// SeedCase inserts the rows a case depends on with raw SQL, so store tests
// do not lean on other stores.
func (p *PostgresContainer) SeedCase(t *testing.T, notifyAlert bool) CaseFixture {
	t.Helper()
	ctx := context.Background()
	now := time.Now().UTC()
	f := CaseFixture{
		MonitoringID:  uuid.New(),
		InstitutionID: uuid.New(),
		CaseID:        uuid.New(),
	}
	f.Email = "case-" + f.CaseID.String()[:8] + "@fedrowanie.localhost"

	p.mustExec(t, ctx, `INSERT INTO monitorings (id, name, notify_alert, created_at) VALUES ($1, $2, $3, $4)`,
		f.MonitoringID, "Monitoring "+f.MonitoringID.String()[:8], notifyAlert, now)
	p.mustExec(t, ctx, `INSERT INTO institutions (id, name, email, created_at) VALUES ($1, $2, $3, $4)`,
		f.InstitutionID, "Institution", "office-"+f.InstitutionID.String()[:8]+"@example.pl", now)
	p.mustExec(t, ctx, `INSERT INTO cases (id, monitoring_id, institution_id, name, email, created_at)
		VALUES ($1, $2, $3, $4, $5, $6)`,
		f.CaseID, f.MonitoringID, f.InstitutionID, "Case", f.Email, now)
	return f
}

// SeedLetter inserts a record, an incoming letter and one attachment. caseID
// may be nil for an unrecognized letter.
func (p *PostgresContainer) SeedLetter(t *testing.T, caseID *uuid.UUID) (letterID, attachmentID uuid.UUID) {
	t.Helper()
	ctx := context.Background()
	now := time.Now().UTC()
	recordID, objectID := uuid.New(), uuid.New()
	letterID, attachmentID = objectID, uuid.New()

	var nullCase uuid.NullUUID
	if caseID != nil {
		nullCase = uuid.NullUUID{UUID: *caseID, Valid: true}
	}
	p.mustExec(t, ctx, `INSERT INTO records (id, case_id, kind, object_id, created_at) VALUES ($1, $2, 'letter', $3, $4)`,
		recordID, nullCase, objectID, now)
	p.mustExec(t, ctx, `INSERT INTO letters (id, record_id, case_id, direction, title, message_type, created_at)
		VALUES ($1, $2, $3, 'incoming', 'Seeded', 'regular', $4)`,
		letterID, recordID, nullCase, now)
	p.mustExec(t, ctx, `INSERT INTO attachments (id, letter_id, filename, size, digest, blob_key, created_at)
		VALUES ($1, $2, 'seed.txt', 4, $3, $4, $5)`,
		attachmentID, letterID, attachmentID.String(), "attachments/seed/"+attachmentID.String(), now)
	return letterID, attachmentID
}

func (p *PostgresContainer) mustExec(t *testing.T, ctx context.Context, query string, args ...any) {
	t.Helper()
	if _, err := p.DB.ExecContext(ctx, query, args...); err != nil {
		t.Fatalf("seed: %v", err)
	}
}
