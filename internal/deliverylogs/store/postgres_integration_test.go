//go:build integration

package store_test

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/suite"

	"feder/internal/deliverylogs/models"
	"feder/internal/deliverylogs/store"
	id "feder/pkg/domain"
	"feder/pkg/testutil/containers"
)

type PostgresStoreSuite struct {
	suite.Suite
	postgres *containers.PostgresContainer
	store    *store.PostgresStore
}

func TestPostgresStoreSuite(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test in short mode")
	}
	suite.Run(t, new(PostgresStoreSuite))
}

func (s *PostgresStoreSuite) SetupSuite() {
	s.postgres = containers.GetManager().GetPostgres(s.T())
	s.store = store.NewPostgres(s.postgres.DB)
}

func (s *PostgresStoreSuite) SetupTest() {
	s.Require().NoError(s.postgres.Truncate(context.Background(),
		"log_records", "email_logs", "attachments", "letters", "records", "cases", "institutions", "monitorings"))
}

func newLog(caseID uuid.UUID, status models.Status) *models.EmailLog {
	now := time.Now().UTC().Truncate(time.Microsecond)
	return &models.EmailLog{
		ID:        id.EmailLogID(uuid.New()),
		CaseID:    id.CaseID(caseID),
		EmailID:   "msg-1",
		To:        "office@example.pl",
		Status:    status,
		CreatedAt: now,
		UpdatedAt: now,
	}
}

func (s *PostgresStoreSuite) TestUpsertKeepsOneLogPerRecipient() {
	ctx := context.Background()
	f := s.postgres.SeedCase(s.T(), false)

	first, created, err := s.store.Upsert(ctx, newLog(f.CaseID, models.StatusDeferred))
	s.Require().NoError(err)
	s.True(created)

	same, created, err := s.store.Upsert(ctx, newLog(f.CaseID, models.StatusDeferred))
	s.Require().NoError(err)
	s.False(created)
	s.Equal(first.ID, same.ID)

	changed, created, err := s.store.Upsert(ctx, newLog(f.CaseID, models.StatusOK))
	s.Require().NoError(err)
	s.False(created)
	s.Equal(first.ID, changed.ID)
	s.Equal(models.StatusOK, changed.Status)

	other := newLog(f.CaseID, models.StatusOK)
	other.To = "archive@example.pl"
	_, created, err = s.store.Upsert(ctx, other)
	s.Require().NoError(err)
	s.True(created)

	logs, err := s.store.ListByCase(ctx, id.CaseID(f.CaseID))
	s.Require().NoError(err)
	s.Len(logs, 2)
}

func (s *PostgresStoreSuite) TestRecordsAccumulate() {
	ctx := context.Background()
	f := s.postgres.SeedCase(s.T(), false)
	letterRaw, _ := s.postgres.SeedLetter(s.T(), &f.CaseID)

	log := newLog(f.CaseID, models.StatusOpen)
	letterID := id.LetterID(letterRaw)
	log.LetterID = &letterID
	saved, _, err := s.store.Upsert(ctx, log)
	s.Require().NoError(err)

	for i := 0; i < 3; i++ {
		s.Require().NoError(s.store.AppendRecord(ctx, &models.LogRecord{
			ID:         id.LogRecordID(uuid.New()),
			EmailLogID: saved.ID,
			Data:       []byte(`{"id":"msg-1","open_time":"2024-01-02 10:00"}`),
			CreatedAt:  time.Now().UTC(),
		}))
	}

	found, err := s.store.Find(ctx, saved.ID)
	s.Require().NoError(err)
	s.Equal(3, found.RecordCount)
	s.Require().NotNil(found.LetterID)
	s.Equal(letterID, *found.LetterID)

	records, err := s.store.ListRecords(ctx, saved.ID)
	s.Require().NoError(err)
	s.Len(records, 3)
	s.JSONEq(`{"id":"msg-1","open_time":"2024-01-02 10:00"}`, string(records[0].Data))

	_, err = s.store.Find(ctx, id.EmailLogID(uuid.New()))
	s.ErrorIs(err, store.ErrNotFound)
}
