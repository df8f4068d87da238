package app

import (
	"context"
	"io"
	"log/slog"
	"net/http"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"feder/internal/platform/config"
	id "feder/pkg/domain"
	"feder/pkg/testutil"
)

type caseResponse struct {
	ID    string `json:"id"`
	Email string `json:"email"`
}

type letterList struct {
	Letters []struct {
		ID          string `json:"id"`
		Title       string `json:"title"`
		Attachments []struct {
			ID string `json:"id"`
		} `json:"attachments"`
	} `json:"letters"`
}

// The whole flow runs in one test: every context registers its prometheus
// collectors when the app is built.
func TestInMemoryApplication(t *testing.T) {
	t.Setenv("FEDER_DATABASE__URL", "")
	t.Setenv("FEDER_REDIS__URL", "")
	t.Setenv("FEDER_KAFKA__BROKERS", "")
	t.Setenv("FEDER_BLOB__BACKEND", "fs")
	t.Setenv("FEDER_BLOB__FS_ROOT", t.TempDir())
	t.Setenv("FEDER_WEBHOOK__SECRET", "hook-secret")
	cfg, err := config.Load()
	require.NoError(t, err)

	ctx := context.Background()
	a, err := New(ctx, cfg, slog.New(slog.NewTextHandler(io.Discard, nil)))
	require.NoError(t, err)
	t.Cleanup(a.Close)
	assert.Nil(t, a.DB)
	assert.Nil(t, a.OutboxWorker())

	router := a.Router(nil)
	token, err := a.Tokens.GenerateOperatorToken(id.OperatorID(uuid.New()), "Ola", time.Hour)
	require.NoError(t, err)
	admin := func(req *http.Request) *http.Request {
		req.Header.Set("Authorization", "Bearer "+token)
		return req
	}

	rr := testutil.DoRequest(router, testutil.NewRequest(t, http.MethodGet, "/health"))
	testutil.AssertStatusOK(t, rr)

	rr = testutil.DoRequest(router, admin(testutil.NewJSONRequest(t, http.MethodPost, "/admin/monitorings",
		map[string]any{"name": "Watch 2026", "notify_alert": true})))
	testutil.AssertStatus(t, rr, http.StatusCreated)
	monitoring := testutil.UnmarshalResponse[caseResponse](t, rr)

	rr = testutil.DoRequest(router, admin(testutil.NewJSONRequest(t, http.MethodPost, "/admin/institutions",
		map[string]any{"name": "Gmina Testowo", "email": "ug@testowo.pl"})))
	testutil.AssertStatus(t, rr, http.StatusCreated)
	institution := testutil.UnmarshalResponse[caseResponse](t, rr)

	rr = testutil.DoRequest(router, admin(testutil.NewJSONRequest(t, http.MethodPost, "/admin/cases",
		map[string]any{"monitoring_id": monitoring.ID, "institution_id": institution.ID, "name": "Wniosek"})))
	testutil.AssertStatus(t, rr, http.StatusCreated)
	kase := testutil.UnmarshalResponse[caseResponse](t, rr)
	require.NotEmpty(t, kase.Email)

	manifest := `{"version":"v2","headers":{"to":["` + kase.Email + `"],"from":["ug@testowo.pl"],` +
		`"message_id":"<reply-1@testowo.pl>","subject":"Odpowiedz"},"text":{"content":"W zalaczeniu."}}`
	rr = testutil.DoRequest(router, testutil.NewMultipartRequest(t, http.MethodPost,
		"/api/letters/webhook?secret=hook-secret",
		map[string]string{"manifest": manifest},
		testutil.FilePart{Field: "file0", Filename: "odpowiedz.txt", Content: []byte("dane")},
	))
	testutil.AssertStatusOK(t, rr)

	rr = testutil.DoRequest(router, testutil.NewRequest(t, http.MethodGet, "/api/cases/"+kase.ID+"/letters"))
	testutil.AssertStatusOK(t, rr)
	letters := testutil.UnmarshalResponse[letterList](t, rr)
	require.Len(t, letters.Letters, 1)
	letter := letters.Letters[0]
	assert.Equal(t, "Odpowiedz", letter.Title)
	require.Len(t, letter.Attachments, 1)

	rr = testutil.DoRequest(router, testutil.NewRequest(t, http.MethodGet, "/api/cases/"+kase.ID))
	testutil.AssertJSONContains(t, rr, "response_received", true)

	rr = testutil.DoRequest(router, admin(testutil.NewRequest(t, http.MethodGet, "/admin/scans?status=created")))
	testutil.AssertStatusOK(t, rr)
	assert.Contains(t, rr.Body.String(), letter.Attachments[0].ID)

	summary, err := a.Services.Scans.RunPass(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, summary.Sent)

	rr = testutil.DoRequest(router, testutil.NewRequest(t, http.MethodGet,
		"/api/letters/"+letter.ID+"/attachments/"+letter.Attachments[0].ID))
	testutil.AssertStatusOK(t, rr)
	assert.Equal(t, "dane", rr.Body.String())

	rr = testutil.DoRequest(router, testutil.NewJSONRequest(t, http.MethodPost,
		"/api/letters/"+letter.ID+"/report-spam", map[string]any{"reason": "not a reply"}))
	testutil.AssertStatus(t, rr, http.StatusCreated)

	rr = testutil.DoRequest(router, admin(testutil.NewRequest(t, http.MethodGet, "/admin/alerts?status=open")))
	testutil.AssertStatusOK(t, rr)
	assert.Contains(t, rr.Body.String(), "not a reply")

	rr = testutil.DoRequest(router, admin(testutil.NewJSONRequest(t, http.MethodPost, "/admin/logs/import",
		[]map[string]any{{"id": "reply-1", "to": "ug@testowo.pl", "from": kase.Email, "ok_time": "2024-01-02 10:00"}})))
	testutil.AssertStatusOK(t, rr)
	testutil.AssertJSONContains(t, rr, "saved", float64(1))
}
