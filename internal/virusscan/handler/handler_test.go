package handler

import (
	"net/http"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/suite"
	"go.uber.org/mock/gomock"

	"feder/internal/virusscan/handler/mocks"
	"feder/internal/virusscan/models"
	id "feder/pkg/domain"
	"feder/pkg/testutil"
)

type ScanHandlerSuite struct {
	suite.Suite
	service *mocks.MockService
	router  http.Handler
}

func TestScanHandlerSuite(t *testing.T) {
	suite.Run(t, new(ScanHandlerSuite))
}

func (s *ScanHandlerSuite) SetupTest() {
	s.service = mocks.NewMockService(gomock.NewController(s.T()))
	r := chi.NewRouter()
	New(s.service).RegisterAdmin(r)
	s.router = r
}

func (s *ScanHandlerSuite) TestListByStatus() {
	infected := models.StatusInfected
	s.service.EXPECT().List(gomock.Any(), models.ListFilter{Status: &infected, Limit: 20}).Return([]*models.Request{
		{ID: id.ScanRequestID(uuid.New()), Status: models.StatusInfected},
	}, nil)

	rr := testutil.DoRequest(s.router, testutil.NewRequest(s.T(), http.MethodGet, "/scans?status=infected&limit=20"))
	testutil.AssertStatusOK(s.T(), rr)
	s.Contains(rr.Body.String(), `"status":"infected"`)
}

func (s *ScanHandlerSuite) TestDefaults() {
	s.service.EXPECT().List(gomock.Any(), models.ListFilter{Limit: 100}).Return([]*models.Request{}, nil)

	rr := testutil.DoRequest(s.router, testutil.NewRequest(s.T(), http.MethodGet, "/scans"))
	testutil.AssertStatusOK(s.T(), rr)
}

func (s *ScanHandlerSuite) TestInvalidQuery() {
	for _, q := range []string{"?status=clean", "?limit=0", "?limit=abc", "?limit=501"} {
		rr := testutil.DoRequest(s.router, testutil.NewRequest(s.T(), http.MethodGet, "/scans"+q))
		testutil.AssertStatusAndError(s.T(), rr, http.StatusBadRequest, "validation_error")
	}
}
