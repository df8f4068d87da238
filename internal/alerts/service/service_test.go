package service

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/goccy/go-json"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/suite"
	"go.uber.org/mock/gomock"

	"feder/internal/alerts/models"
	"feder/internal/alerts/service/mocks"
	"feder/internal/alerts/store"
	caseModels "feder/internal/cases/models"
	letterModels "feder/internal/letters/models"
	monitoringModels "feder/internal/monitorings/models"
	id "feder/pkg/domain"
	dErrors "feder/pkg/domain-errors"
	outboxmemory "feder/pkg/platform/outbox/store/memory"
	"feder/pkg/platform/tx"
	"feder/pkg/requestcontext"
)

const firefox = "Mozilla/5.0 (X11; Linux x86_64; rv:109.0) Gecko/20100101 Firefox/115.0"

type AlertServiceSuite struct {
	suite.Suite
	ctrl       *gomock.Controller
	store      *store.InMemoryStore
	outbox     *outboxmemory.InMemoryStore
	letters    *mocks.MockLetters
	cases      *mocks.MockCases
	directory  *mocks.MockDirectory
	service    *Service
	ctx        context.Context
	letter     *letterModels.Letter
	caseRow    *caseModels.Case
	monitoring *monitoringModels.Monitoring
}

func TestAlertServiceSuite(t *testing.T) {
	suite.Run(t, new(AlertServiceSuite))
}

func (s *AlertServiceSuite) SetupTest() {
	s.ctrl = gomock.NewController(s.T())
	s.store = store.NewInMemoryStore()
	s.outbox = outboxmemory.NewInMemoryStore()
	s.letters = mocks.NewMockLetters(s.ctrl)
	s.cases = mocks.NewMockCases(s.ctrl)
	s.directory = mocks.NewMockDirectory(s.ctrl)
	s.service = New(s.store, s.letters, s.cases, s.directory, s.outbox, tx.NewLocalRunner(), "feder.alerts")

	ctx := requestcontext.WithTime(context.Background(), time.Date(2024, 5, 6, 10, 0, 0, 0, time.UTC))
	s.ctx = requestcontext.WithClientMetadata(ctx, "203.0.113.7", firefox)

	s.monitoring = &monitoringModels.Monitoring{ID: id.MonitoringID(uuid.New()), Name: "Budzety", NotifyAlert: true}
	s.caseRow = &caseModels.Case{ID: id.CaseID(uuid.New()), MonitoringID: s.monitoring.ID}
	s.letter = &letterModels.Letter{ID: id.LetterID(uuid.New()), CaseID: &s.caseRow.ID}
}

func (s *AlertServiceSuite) expectLetterChain() {
	s.letters.EXPECT().Get(gomock.Any(), s.letter.ID).Return(s.letter, nil)
	s.cases.EXPECT().Get(gomock.Any(), s.caseRow.ID).Return(s.caseRow, nil)
	s.directory.EXPECT().GetMonitoring(gomock.Any(), s.monitoring.ID).Return(s.monitoring, nil)
}

func (s *AlertServiceSuite) TestAnonymousReport() {
	s.expectLetterChain()

	a, err := s.service.ReportSpam(s.ctx, s.letter.ID, models.DefaultSpamReason)
	s.Require().NoError(err)
	s.Nil(a.AuthorID)
	s.Equal(models.StatusOpen, a.Status)
	s.Equal(models.LinkLetter, a.LinkKind)
	s.Equal(s.letter.ID, a.LinkID)
	s.Equal(&s.monitoring.ID, a.MonitoringID)
	s.Equal("203.0.113.7", a.ClientIP)
	s.Contains(a.UserAgent, "Firefox 115.0")
	s.Contains(a.UserAgent, "Linux")

	entries := s.outbox.All()
	s.Require().Len(entries, 1)
	s.Equal("feder.alerts", entries[0].Topic)
	s.Equal("alert.created", entries[0].EventType)
	var event models.CreatedEvent
	s.Require().NoError(json.Unmarshal(entries[0].Payload, &event))
	s.Equal(a.ID, event.AlertID)
}

func (s *AlertServiceSuite) TestOperatorReportWithoutNotification() {
	s.monitoring.NotifyAlert = false
	s.expectLetterChain()
	operatorID := id.OperatorID(uuid.New())

	a, err := s.service.ReportSpam(requestcontext.WithOperatorID(s.ctx, operatorID), s.letter.ID, "advertising")
	s.Require().NoError(err)
	s.Require().NotNil(a.AuthorID)
	s.Equal(operatorID, *a.AuthorID)
	s.Empty(s.outbox.All())
}

func (s *AlertServiceSuite) TestReportOnUnrecognizedLetter() {
	orphan := &letterModels.Letter{ID: id.LetterID(uuid.New())}
	s.letters.EXPECT().Get(gomock.Any(), orphan.ID).Return(orphan, nil)

	a, err := s.service.ReportSpam(s.ctx, orphan.ID, "x")
	s.Require().NoError(err)
	s.Nil(a.MonitoringID)
	s.Empty(s.outbox.All())
}

func (s *AlertServiceSuite) TestReportOnMissingLetter() {
	letterID := id.LetterID(uuid.New())
	s.letters.EXPECT().Get(gomock.Any(), letterID).Return(nil, dErrors.New(dErrors.CodeNotFound, "letter not found"))

	_, err := s.service.ReportSpam(s.ctx, letterID, "x")
	s.True(dErrors.HasCode(err, dErrors.CodeNotFound))
}

func (s *AlertServiceSuite) TestSolveOnce() {
	s.expectLetterChain()
	a, err := s.service.ReportSpam(s.ctx, s.letter.ID, "x")
	s.Require().NoError(err)

	_, err = s.service.Solve(s.ctx, a.ID)
	s.True(dErrors.HasCode(err, dErrors.CodeUnauthorized))

	solver := id.OperatorID(uuid.New())
	ctx := requestcontext.WithOperatorID(s.ctx, solver)
	solved, err := s.service.Solve(ctx, a.ID)
	s.Require().NoError(err)
	s.Equal(models.StatusSolved, solved.Status)
	s.Equal(solver, *solved.SolverID)
	s.NotNil(solved.SolvedAt)

	_, err = s.service.Solve(ctx, a.ID)
	s.True(dErrors.HasCode(err, dErrors.CodeConflict))

	_, err = s.service.Solve(ctx, id.AlertID(uuid.New()))
	s.True(dErrors.HasCode(err, dErrors.CodeNotFound))
}

func (s *AlertServiceSuite) TestListByStatus() {
	s.letters.EXPECT().Get(gomock.Any(), s.letter.ID).Return(s.letter, nil).Times(2)
	s.cases.EXPECT().Get(gomock.Any(), s.caseRow.ID).Return(s.caseRow, nil).Times(2)
	s.directory.EXPECT().GetMonitoring(gomock.Any(), s.monitoring.ID).Return(s.monitoring, nil).Times(2)
	first, err := s.service.ReportSpam(s.ctx, s.letter.ID, "one")
	s.Require().NoError(err)
	_, err = s.service.ReportSpam(s.ctx, s.letter.ID, "two")
	s.Require().NoError(err)
	_, err = s.service.Solve(requestcontext.WithOperatorID(s.ctx, id.OperatorID(uuid.New())), first.ID)
	s.Require().NoError(err)

	open := models.StatusOpen
	got, err := s.service.List(s.ctx, &open)
	s.Require().NoError(err)
	s.Require().Len(got, 1)
	s.Equal("two", got[0].Reason)

	all, err := s.service.List(s.ctx, nil)
	s.Require().NoError(err)
	s.Len(all, 2)
}

func TestSummarizeUserAgent(t *testing.T) {
	assert.Empty(t, SummarizeUserAgent("  "))

	browser := SummarizeUserAgent(firefox)
	assert.True(t, strings.HasPrefix(browser, "Firefox 115.0 ("), browser)
	assert.Contains(t, browser, "Linux")

	bot := SummarizeUserAgent("Mozilla/5.0 (compatible; Googlebot/2.1; +http://www.google.com/bot.html)")
	assert.True(t, strings.HasPrefix(bot, "bot: Googlebot"), bot)
}
