//go:build integration

package store_test

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/suite"

	"feder/internal/alerts/models"
	"feder/internal/alerts/store"
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
	s.Require().NoError(s.postgres.Truncate(context.Background(), "alerts"))
}

func (s *PostgresStoreSuite) newAlert(monitoringID *id.MonitoringID, at time.Time) *models.Alert {
	return &models.Alert{
		ID:           id.AlertID(uuid.New()),
		MonitoringID: monitoringID,
		Reason:       models.DefaultSpamReason,
		Status:       models.StatusOpen,
		LinkKind:     models.LinkLetter,
		LinkID:       id.LetterID(uuid.New()),
		UserAgent:    "Firefox 128.0 (Linux)",
		ClientIP:     "192.0.2.10",
		CreatedAt:    at,
	}
}

func (s *PostgresStoreSuite) TestSolveOnce() {
	ctx := context.Background()
	f := s.postgres.SeedCase(s.T(), true)
	monitoringID := id.MonitoringID(f.MonitoringID)
	a := s.newAlert(&monitoringID, time.Now().UTC())
	s.Require().NoError(s.store.Create(ctx, a))

	solver := id.OperatorID(uuid.New())
	solved, err := s.store.Solve(ctx, a.ID, solver, time.Now().UTC())
	s.Require().NoError(err)
	s.Equal(models.StatusSolved, solved.Status)
	s.Require().NotNil(solved.SolverID)
	s.Equal(solver, *solved.SolverID)
	s.NotNil(solved.SolvedAt)

	_, err = s.store.Solve(ctx, a.ID, id.OperatorID(uuid.New()), time.Now().UTC())
	s.ErrorIs(err, store.ErrAlreadySolved)

	_, err = s.store.Solve(ctx, id.AlertID(uuid.New()), solver, time.Now().UTC())
	s.ErrorIs(err, store.ErrNotFound)
}

func (s *PostgresStoreSuite) TestListNewestFirst() {
	ctx := context.Background()
	base := time.Now().UTC().Truncate(time.Microsecond)
	older := s.newAlert(nil, base)
	newer := s.newAlert(nil, base.Add(time.Minute))
	s.Require().NoError(s.store.Create(ctx, older))
	s.Require().NoError(s.store.Create(ctx, newer))
	_, err := s.store.Solve(ctx, older.ID, id.OperatorID(uuid.New()), base.Add(2*time.Minute))
	s.Require().NoError(err)

	all, err := s.store.List(ctx, nil)
	s.Require().NoError(err)
	s.Require().Len(all, 2)
	s.Equal(newer.ID, all[0].ID)
	s.Nil(all[0].MonitoringID)

	open := models.StatusOpen
	onlyOpen, err := s.store.List(ctx, &open)
	s.Require().NoError(err)
	s.Require().Len(onlyOpen, 1)
	s.Equal(newer.ID, onlyOpen[0].ID)
	s.Equal("192.0.2.10", onlyOpen[0].ClientIP)
}
