//go:build integration

package store_test

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/suite"

	"feder/internal/letters/models"
	"feder/internal/letters/store"
	id "feder/pkg/domain"
	"feder/pkg/platform/tx"
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
		"attachments", "letters", "records", "case_aliases", "cases", "institutions", "monitorings"))
}

func (s *PostgresStoreSuite) TestSpamTransitionIsCompareAndSet() {
	ctx := context.Background()
	f := s.postgres.SeedCase(s.T(), false)
	raw, _ := s.postgres.SeedLetter(s.T(), &f.CaseID)
	letterID := id.LetterID(raw)

	ok, err := s.store.UpdateSpam(ctx, letterID, models.SpamUnknown, models.SpamSpam)
	s.Require().NoError(err)
	s.True(ok)

	ok, err = s.store.UpdateSpam(ctx, letterID, models.SpamUnknown, models.SpamNonSpam)
	s.Require().NoError(err)
	s.False(ok, "second writer must lose")

	letters, err := s.store.ListByCase(ctx, id.CaseID(f.CaseID))
	s.Require().NoError(err)
	s.Empty(letters, "spam is hidden from the case timeline")

	_, err = s.store.UpdateSpam(ctx, id.LetterID(uuid.New()), models.SpamUnknown, models.SpamSpam)
	s.ErrorIs(err, store.ErrNotFound)
}

func (s *PostgresStoreSuite) TestAssignOnlyUnrecognized() {
	ctx := context.Background()
	f := s.postgres.SeedCase(s.T(), false)
	raw, _ := s.postgres.SeedLetter(s.T(), nil)
	letterID := id.LetterID(raw)

	unrecognized, err := s.store.ListUnrecognized(ctx)
	s.Require().NoError(err)
	s.Require().Len(unrecognized, 1)
	s.Len(unrecognized[0].Attachments, 1)

	s.Require().NoError(s.store.AssignCase(ctx, letterID, id.CaseID(f.CaseID)))
	s.ErrorIs(s.store.AssignCase(ctx, letterID, id.CaseID(f.CaseID)), store.ErrAlreadyOwned)

	unrecognized, err = s.store.ListUnrecognized(ctx)
	s.Require().NoError(err)
	s.Empty(unrecognized)
}

func (s *PostgresStoreSuite) TestDuplicateAttachmentInsideTransaction() {
	ctx := context.Background()
	raw, attachmentRaw := s.postgres.SeedLetter(s.T(), nil)
	letterID := id.LetterID(raw)

	seeded, err := s.store.FindAttachmentByID(ctx, id.AttachmentID(attachmentRaw))
	s.Require().NoError(err)

	runner := tx.NewSQLRunner(s.postgres.DB)
	err = runner.RunInTx(ctx, func(ctx context.Context) error {
		dup := *seeded
		dup.ID = id.AttachmentID(uuid.New())
		s.ErrorIs(s.store.CreateAttachment(ctx, &dup), store.ErrDuplicateFile)

		other := *seeded
		other.ID = id.AttachmentID(uuid.New())
		other.Filename = "other.txt"
		return s.store.CreateAttachment(ctx, &other)
	})
	s.Require().NoError(err, "a skipped duplicate must not abort the transaction")

	letter, err := s.store.FindLetter(ctx, letterID)
	s.Require().NoError(err)
	s.Len(letter.Attachments, 2)
}

func (s *PostgresStoreSuite) TestOutgoingMessageIndex() {
	ctx := context.Background()
	f := s.postgres.SeedCase(s.T(), false)
	caseID := id.CaseID(f.CaseID)
	recordID := uuid.New()
	letterID := id.LetterID(uuid.New())
	_, err := s.postgres.DB.ExecContext(ctx,
		`INSERT INTO records (id, case_id, kind, object_id, created_at) VALUES ($1, $2, 'letter', $3, now())`,
		recordID, f.CaseID, uuid.UUID(letterID))
	s.Require().NoError(err)

	s.Require().NoError(s.store.CreateLetter(ctx, &models.Letter{
		ID:              letterID,
		RecordID:        id.RecordID(recordID),
		CaseID:          &caseID,
		Direction:       models.DirectionOutgoing,
		Title:           "Wniosek",
		MessageIDHeader: "out-1@fedrowanie.localhost",
		MessageType:     models.MessageRegular,
		CreatedAt:       time.Now().UTC(),
	}))

	index, err := s.store.OutgoingMessageIndex(ctx)
	s.Require().NoError(err)
	s.Equal(map[string]id.LetterID{"out-1@fedrowanie.localhost": letterID}, index)
}
