package handler

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/goccy/go-json"

	"feder/internal/alerts/models"
	id "feder/pkg/domain"
	dErrors "feder/pkg/domain-errors"
	"feder/pkg/platform/httputil"
	"feder/pkg/requestcontext"
)

const maxReportBytes = 16 << 10

//go:generate mockgen -source=handler.go -destination=mocks/mocks.go -package=mocks Service
type Service interface {
	ReportSpam(ctx context.Context, letterID id.LetterID, reason string) (*models.Alert, error)
	Solve(ctx context.Context, alertID id.AlertID) (*models.Alert, error)
	List(ctx context.Context, status *models.Status) ([]*models.Alert, error)
}

type Handler struct {
	service Service
	logger  *slog.Logger
}

func New(service Service, logger *slog.Logger) *Handler {
	return &Handler{service: service, logger: logger}
}

type listResponse struct {
	Alerts []*models.Alert `json:"alerts"`
}

func (h *Handler) RegisterPublic(r chi.Router) {
	r.Post("/letters/{id}/report-spam", h.HandleReportSpam)
}

func (h *Handler) RegisterAdmin(r chi.Router) {
	r.Get("/alerts", h.HandleList)
	r.Post("/alerts/{id}/solve", h.HandleSolve)
}

// HandleReportSpam accepts an optional {"reason": "..."} body.
func (h *Handler) HandleReportSpam(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	requestID := requestcontext.RequestID(ctx)

	letterID, err := id.ParseLetterID(chi.URLParam(r, "id"))
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	req := &models.ReportSpamRequest{}
	r.Body = http.MaxBytesReader(w, r.Body, maxReportBytes)
	if err := json.NewDecoder(r.Body).Decode(req); err != nil && !errors.Is(err, io.EOF) {
		h.logger.WarnContext(ctx, "failed to decode spam report",
			"request_id", requestID,
			"error", err,
		)
		httputil.WriteError(w, dErrors.New(dErrors.CodeBadRequest, "invalid JSON body"))
		return
	}
	req.Normalize()
	if err := req.Validate(); err != nil {
		httputil.WriteError(w, err)
		return
	}

	alert, err := h.service.ReportSpam(ctx, letterID, req.Reason)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusCreated, alert)
}

func (h *Handler) HandleList(w http.ResponseWriter, r *http.Request) {
	var status *models.Status
	if raw := r.URL.Query().Get("status"); raw != "" {
		s := models.Status(raw)
		if !s.Valid() {
			httputil.WriteError(w, dErrors.New(dErrors.CodeValidation, "status must be open or solved"))
			return
		}
		status = &s
	}
	alerts, err := h.service.List(r.Context(), status)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, listResponse{Alerts: alerts})
}

func (h *Handler) HandleSolve(w http.ResponseWriter, r *http.Request) {
	alertID, err := id.ParseAlertID(chi.URLParam(r, "id"))
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	alert, err := h.service.Solve(r.Context(), alertID)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, alert)
}
