package handler

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/goccy/go-json"

	"feder/internal/deliverylogs/models"
	id "feder/pkg/domain"
	dErrors "feder/pkg/domain-errors"
	"feder/pkg/platform/httputil"
	"feder/pkg/requestcontext"
)

//go:generate mockgen -source=handler.go -destination=mocks/mocks.go -package=mocks Service
type Service interface {
	Import(ctx context.Context, rows []models.Row) (*models.ImportResult, error)
	ListByCase(ctx context.Context, caseID id.CaseID) ([]*models.EmailLog, error)
	Get(ctx context.Context, logID id.EmailLogID) (*models.EmailLog, error)
}

type Handler struct {
	service      Service
	logger       *slog.Logger
	maxBodyBytes int64
}

func New(service Service, logger *slog.Logger, maxBodyBytes int64) *Handler {
	return &Handler{service: service, logger: logger, maxBodyBytes: maxBodyBytes}
}

type listResponse struct {
	EmailLogs []*models.EmailLog `json:"email_logs"`
}

func (h *Handler) RegisterAdmin(r chi.Router) {
	r.Post("/logs/import", h.HandleImport)
	r.Get("/cases/{id}/email-logs", h.HandleListByCase)
	r.Get("/email-logs/{id}", h.HandleGet)
}

// HandleImport takes a JSON array of provider rows.
func (h *Handler) HandleImport(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	requestID := requestcontext.RequestID(ctx)

	r.Body = http.MaxBytesReader(w, r.Body, h.maxBodyBytes)
	var rows []models.Row
	if err := json.NewDecoder(r.Body).Decode(&rows); err != nil {
		h.logger.WarnContext(ctx, "failed to decode log rows",
			"request_id", requestID,
			"error", err,
		)
		httputil.WriteError(w, dErrors.New(dErrors.CodeBadRequest, "expected a JSON array of log rows"))
		return
	}

	result, err := h.service.Import(ctx, rows)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, result)
}

func (h *Handler) HandleListByCase(w http.ResponseWriter, r *http.Request) {
	caseID, err := id.ParseCaseID(chi.URLParam(r, "id"))
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	logs, err := h.service.ListByCase(r.Context(), caseID)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, listResponse{EmailLogs: logs})
}

func (h *Handler) HandleGet(w http.ResponseWriter, r *http.Request) {
	logID, err := id.ParseEmailLogID(chi.URLParam(r, "id"))
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	log, err := h.service.Get(r.Context(), logID)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, log)
}
