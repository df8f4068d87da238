package handler

import (
	"io"
	"log/slog"
	"net/http"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"feder/internal/monitorings/models"
	"feder/internal/monitorings/service"
	"feder/internal/monitorings/store"
	"feder/pkg/testutil"
)

func newRouter(t *testing.T) http.Handler {
	t.Helper()
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	h := New(service.New(store.NewInMemoryStore()), logger)
	r := chi.NewRouter()
	h.Register(r)
	return r
}

func TestCreateAndFetchMonitoring(t *testing.T) {
	router := newRouter(t)

	rr := testutil.DoRequest(router, testutil.NewJSONRequest(t, http.MethodPost, "/monitorings",
		map[string]any{"name": "Budgets", "email_footer": "--\nfeder", "notify_alert": true}))
	testutil.AssertStatus(t, rr, http.StatusCreated)
	created := testutil.UnmarshalResponse[models.Monitoring](t, rr)
	require.False(t, created.ID.IsNil())

	rr = testutil.DoRequest(router, testutil.NewRequest(t, http.MethodGet, "/monitorings/"+created.ID.String()))
	testutil.AssertStatusOK(t, rr)
	got := testutil.UnmarshalResponse[models.Monitoring](t, rr)
	assert.Equal(t, "Budgets", got.Name)
}

func TestCreateMonitoringValidation(t *testing.T) {
	router := newRouter(t)
	rr := testutil.DoRequest(router, testutil.NewJSONRequest(t, http.MethodPost, "/monitorings", map[string]any{}))
	testutil.AssertStatusAndError(t, rr, http.StatusBadRequest, "validation_error")
}

func TestCreateMonitoringMalformedJSON(t *testing.T) {
	router := newRouter(t)
	rr := testutil.DoRequest(router, testutil.NewRequestWithBody(t, http.MethodPost, "/monitorings", "{"))
	testutil.AssertStatusAndError(t, rr, http.StatusBadRequest, "bad_request")
}

func TestInstitutionEndpoints(t *testing.T) {
	router := newRouter(t)

	rr := testutil.DoRequest(router, testutil.NewJSONRequest(t, http.MethodPost, "/institutions",
		map[string]any{"name": "Gmina", "email": "UG@Gmina.PL"}))
	testutil.AssertStatus(t, rr, http.StatusCreated)
	created := testutil.UnmarshalResponse[models.Institution](t, rr)
	assert.Equal(t, "ug@gmina.pl", created.Email)

	rr = testutil.DoRequest(router, testutil.NewRequest(t, http.MethodGet, "/institutions/"+uuid.NewString()))
	testutil.AssertStatusAndError(t, rr, http.StatusNotFound, "not_found")

	rr = testutil.DoRequest(router, testutil.NewRequest(t, http.MethodGet, "/institutions/not-a-uuid"))
	testutil.AssertStatus(t, rr, http.StatusBadRequest)
}
