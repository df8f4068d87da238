package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/goccy/go-json"
	"github.com/google/uuid"
	"github.com/stretchr/testify/suite"
	"go.uber.org/mock/gomock"

	caseModels "feder/internal/cases/models"
	"feder/internal/deliverylogs/models"
	"feder/internal/deliverylogs/service/mocks"
	"feder/internal/deliverylogs/store"
	id "feder/pkg/domain"
	dErrors "feder/pkg/domain-errors"
	"feder/pkg/platform/tx"
	"feder/pkg/requestcontext"
)

const caseAddress = "case-0a1b2c3d4e5f@fedrowanie.localhost"

type ImportSuite struct {
	suite.Suite
	ctrl     *gomock.Controller
	store    *store.InMemoryStore
	cases    *mocks.MockCases
	letters  *mocks.MockLetters
	service  *Service
	ctx      context.Context
	caseID   id.CaseID
	letterID id.LetterID
}

func TestImportSuite(t *testing.T) {
	suite.Run(t, new(ImportSuite))
}

func (s *ImportSuite) SetupTest() {
	s.ctrl = gomock.NewController(s.T())
	s.store = store.NewInMemoryStore()
	s.cases = mocks.NewMockCases(s.ctrl)
	s.letters = mocks.NewMockLetters(s.ctrl)
	s.service = New(s.store, s.cases, s.letters, tx.NewLocalRunner())
	s.ctx = requestcontext.WithTime(context.Background(), time.Date(2024, 5, 6, 10, 0, 0, 0, time.UTC))
	s.caseID = id.CaseID(uuid.New())
	s.letterID = id.LetterID(uuid.New())
}

func (s *ImportSuite) expectIndexes() {
	s.cases.EXPECT().AddressIndex(gomock.Any()).Return(map[string]id.CaseID{caseAddress: s.caseID}, nil)
	s.letters.EXPECT().OutgoingMessageIndex(gomock.Any()).Return(map[string]id.LetterID{
		"abc123@fedrowanie.localhost": s.letterID,
	}, nil)
}

func row(extra map[string]any) models.Row {
	r := models.Row{
		"id":         "mail-1",
		"from":       caseAddress,
		"to":         "ug@example.pl",
		"message_id": "<abc123@fedrowanie.localhost>",
	}
	for k, v := range extra {
		r[k] = v
	}
	return r
}

func (s *ImportSuite) TestImportCreatesLogLinkedToLetter() {
	s.expectIndexes()

	result, err := s.service.Import(s.ctx, []models.Row{row(map[string]any{"ok_time": "2024-05-06 09:00"})})
	s.Require().NoError(err)
	s.Equal(&models.ImportResult{Saved: 1}, result)

	logs, err := s.store.ListByCase(s.ctx, s.caseID)
	s.Require().NoError(err)
	s.Require().Len(logs, 1)
	s.Equal(models.StatusOK, logs[0].Status)
	s.Equal("mail-1", logs[0].EmailID)
	s.Require().NotNil(logs[0].LetterID)
	s.Equal(s.letterID, *logs[0].LetterID)
	s.Equal(1, logs[0].RecordCount)
}

func (s *ImportSuite) TestImportIsIdempotentPerRecipient() {
	s.expectIndexes()
	rows := []models.Row{
		row(map[string]any{"deferred_time": "t1"}),
		row(map[string]any{"deferred_time": "t1"}),
		row(map[string]any{"ok_time": "t2"}),
		row(map[string]any{"to": "second@example.pl"}),
	}

	result, err := s.service.Import(s.ctx, rows)
	s.Require().NoError(err)
	s.Equal(4, result.Saved)

	logs, err := s.store.ListByCase(s.ctx, s.caseID)
	s.Require().NoError(err)
	s.Require().Len(logs, 2)
	byTo := map[string]*models.EmailLog{}
	for _, l := range logs {
		byTo[l.To] = l
	}
	s.Equal(models.StatusOK, byTo["ug@example.pl"].Status)
	s.Equal(3, byTo["ug@example.pl"].RecordCount)
	s.Equal(models.StatusUnknown, byTo["second@example.pl"].Status)
}

func (s *ImportSuite) TestImportSkipsUnknownSenderAndIncompleteRows() {
	s.expectIndexes()
	rows := []models.Row{
		row(map[string]any{"from": "someone@else.pl"}),
		row(map[string]any{"id": ""}),
		row(map[string]any{"to": nil}),
		row(map[string]any{"from": "Case <" + caseAddress + ">", "open_time": "t"}),
	}

	result, err := s.service.Import(s.ctx, rows)
	s.Require().NoError(err)
	s.Equal(&models.ImportResult{Skipped: 3, Saved: 1}, result)
}

func (s *ImportSuite) TestLetterLinkOnlySetOnCreation() {
	s.cases.EXPECT().AddressIndex(gomock.Any()).Return(map[string]id.CaseID{caseAddress: s.caseID}, nil).Times(2)
	s.letters.EXPECT().OutgoingMessageIndex(gomock.Any()).Return(map[string]id.LetterID{}, nil)
	s.letters.EXPECT().OutgoingMessageIndex(gomock.Any()).Return(map[string]id.LetterID{
		"abc123@fedrowanie.localhost": s.letterID,
	}, nil)

	_, err := s.service.Import(s.ctx, []models.Row{row(nil)})
	s.Require().NoError(err)
	_, err = s.service.Import(s.ctx, []models.Row{row(map[string]any{"open_time": "t"})})
	s.Require().NoError(err)

	logs, err := s.store.ListByCase(s.ctx, s.caseID)
	s.Require().NoError(err)
	s.Require().Len(logs, 1)
	s.Nil(logs[0].LetterID)
	s.Equal(models.StatusOpen, logs[0].Status)
}

func (s *ImportSuite) TestIndexFailure() {
	s.cases.EXPECT().AddressIndex(gomock.Any()).Return(nil, errors.New("db down"))
	s.letters.EXPECT().OutgoingMessageIndex(gomock.Any()).Return(map[string]id.LetterID{}, nil).AnyTimes()

	_, err := s.service.Import(s.ctx, []models.Row{row(nil)})
	s.True(dErrors.HasCode(err, dErrors.CodeInternal))
}

func (s *ImportSuite) TestRowFailureKeepsEarlierRows() {
	failing := mocks.NewMockStore(s.ctrl)
	svc := New(failing, s.cases, s.letters, tx.NewLocalRunner())
	s.expectIndexes()

	stored := &models.EmailLog{ID: id.EmailLogID(uuid.New())}
	failing.EXPECT().Upsert(gomock.Any(), gomock.Any()).Return(stored, true, nil)
	failing.EXPECT().AppendRecord(gomock.Any(), gomock.Any()).DoAndReturn(
		func(_ context.Context, rec *models.LogRecord) error {
			s.Equal(stored.ID, rec.EmailLogID)
			var data map[string]any
			s.Require().NoError(json.Unmarshal(rec.Data, &data))
			s.Equal("mail-1", data["id"])
			return nil
		})
	failing.EXPECT().Upsert(gomock.Any(), gomock.Any()).Return(nil, false, errors.New("constraint"))

	result, err := svc.Import(s.ctx, []models.Row{row(nil), row(map[string]any{"id": "mail-2"}), row(nil)})
	s.Error(err)
	s.Equal(1, result.Saved)
}

func (s *ImportSuite) TestGetIncludesRecords() {
	s.expectIndexes()
	_, err := s.service.Import(s.ctx, []models.Row{row(nil), row(map[string]any{"ok_desc": "250 OK"})})
	s.Require().NoError(err)
	logs, err := s.store.ListByCase(s.ctx, s.caseID)
	s.Require().NoError(err)
	s.Require().Len(logs, 1)

	got, err := s.service.Get(s.ctx, logs[0].ID)
	s.Require().NoError(err)
	s.Len(got.Records, 2)
	s.Contains(string(got.Records[1].Data), "250 OK")

	_, err = s.service.Get(s.ctx, id.EmailLogID(uuid.New()))
	s.True(dErrors.HasCode(err, dErrors.CodeNotFound))
}

func (s *ImportSuite) TestListByCaseUnknownCase() {
	s.cases.EXPECT().Get(gomock.Any(), s.caseID).Return(nil, dErrors.New(dErrors.CodeNotFound, "case not found"))
	_, err := s.service.ListByCase(s.ctx, s.caseID)
	s.True(dErrors.HasCode(err, dErrors.CodeNotFound))

	s.cases.EXPECT().Get(gomock.Any(), s.caseID).Return(&caseModels.Case{ID: s.caseID}, nil)
	logs, err := s.service.ListByCase(s.ctx, s.caseID)
	s.Require().NoError(err)
	s.Empty(logs)
}
