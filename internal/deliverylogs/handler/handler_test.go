package handler

import (
	"context"
	"io"
	"log/slog"
	"net/http"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/suite"
	"go.uber.org/mock/gomock"

	"feder/internal/deliverylogs/handler/mocks"
	"feder/internal/deliverylogs/models"
	id "feder/pkg/domain"
	dErrors "feder/pkg/domain-errors"
	"feder/pkg/testutil"
)

type DeliveryLogHandlerSuite struct {
	suite.Suite
	service *mocks.MockService
	router  http.Handler
}

func TestDeliveryLogHandlerSuite(t *testing.T) {
	suite.Run(t, new(DeliveryLogHandlerSuite))
}

func (s *DeliveryLogHandlerSuite) SetupTest() {
	ctrl := gomock.NewController(s.T())
	s.service = mocks.NewMockService(ctrl)
	h := New(s.service, slog.New(slog.NewTextHandler(io.Discard, nil)), 1<<20)
	r := chi.NewRouter()
	r.Route("/admin", h.RegisterAdmin)
	s.router = r
}

func (s *DeliveryLogHandlerSuite) TestImport() {
	s.service.EXPECT().Import(gomock.Any(), gomock.Any()).DoAndReturn(
		func(_ context.Context, rows []models.Row) (*models.ImportResult, error) {
			s.Require().Len(rows, 2)
			s.Equal("mail-1", rows[0].String("id"))
			s.Equal(models.StatusOK, models.DeriveStatus(rows[1]))
			return &models.ImportResult{Saved: 1, Skipped: 1}, nil
		})

	body := `[{"id": "mail-1", "from": "x@y.pl", "to": "a@b.pl"}, {"id": "mail-2", "ok_time": "2019-01-01"}]`
	rr := testutil.DoRequest(s.router, testutil.NewRequestWithBody(s.T(), http.MethodPost, "/admin/logs/import", body))
	testutil.AssertStatusOK(s.T(), rr)
	got := testutil.UnmarshalResponse[models.ImportResult](s.T(), rr)
	s.Equal(1, got.Saved)
	s.Equal(1, got.Skipped)
}

func (s *DeliveryLogHandlerSuite) TestImportRejectsNonArray() {
	for _, body := range []string{`{"id": "mail-1"}`, `not json`} {
		rr := testutil.DoRequest(s.router, testutil.NewRequestWithBody(s.T(), http.MethodPost, "/admin/logs/import", body))
		testutil.AssertStatusAndError(s.T(), rr, http.StatusBadRequest, "bad_request")
	}
}

func (s *DeliveryLogHandlerSuite) TestListByCase() {
	caseID := id.CaseID(uuid.New())
	s.service.EXPECT().ListByCase(gomock.Any(), caseID).Return([]*models.EmailLog{
		{ID: id.EmailLogID(uuid.New()), CaseID: caseID, Status: models.StatusDeferred},
	}, nil)

	rr := testutil.DoRequest(s.router, testutil.NewRequest(s.T(), http.MethodGet, "/admin/cases/"+caseID.String()+"/email-logs"))
	testutil.AssertStatusOK(s.T(), rr)
	got := testutil.UnmarshalResponse[listResponse](s.T(), rr)
	s.Require().Len(got.EmailLogs, 1)
	s.Equal(models.StatusDeferred, got.EmailLogs[0].Status)
}

func (s *DeliveryLogHandlerSuite) TestGet() {
	logID := id.EmailLogID(uuid.New())

	s.Run("found", func() {
		s.service.EXPECT().Get(gomock.Any(), logID).Return(&models.EmailLog{
			ID:      logID,
			Status:  models.StatusOK,
			Records: []models.LogRecord{{Data: []byte(`{"ok_time":"t"}`)}},
		}, nil)
		rr := testutil.DoRequest(s.router, testutil.NewRequest(s.T(), http.MethodGet, "/admin/email-logs/"+logID.String()))
		testutil.AssertStatusOK(s.T(), rr)
		s.Contains(rr.Body.String(), `"ok_time":"t"`)
	})

	s.Run("missing", func() {
		s.service.EXPECT().Get(gomock.Any(), logID).Return(nil, dErrors.New(dErrors.CodeNotFound, "email log not found"))
		rr := testutil.DoRequest(s.router, testutil.NewRequest(s.T(), http.MethodGet, "/admin/email-logs/"+logID.String()))
		testutil.AssertStatusAndError(s.T(), rr, http.StatusNotFound, "not_found")
	})

	s.Run("malformed id", func() {
		rr := testutil.DoRequest(s.router, testutil.NewRequest(s.T(), http.MethodGet, "/admin/email-logs/nope"))
		testutil.AssertStatus(s.T(), rr, http.StatusBadRequest)
	})
}
