package handler

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"feder/internal/monitorings/models"
	id "feder/pkg/domain"
	"feder/pkg/platform/httputil"
	"feder/pkg/requestcontext"
)

type Service interface {
	CreateMonitoring(ctx context.Context, req *models.CreateMonitoringRequest) (*models.Monitoring, error)
	GetMonitoring(ctx context.Context, monitoringID id.MonitoringID) (*models.Monitoring, error)
	CreateInstitution(ctx context.Context, req *models.CreateInstitutionRequest) (*models.Institution, error)
	GetInstitution(ctx context.Context, institutionID id.InstitutionID) (*models.Institution, error)
}

// Handler serves the operator endpoints for monitorings and institutions.
type Handler struct {
	service Service
	logger  *slog.Logger
}

func New(service Service, logger *slog.Logger) *Handler {
	return &Handler{service: service, logger: logger}
}

// Register mounts the routes on an operator-authenticated router.
func (h *Handler) Register(r chi.Router) {
	r.Post("/monitorings", h.HandleCreateMonitoring)
	r.Get("/monitorings/{id}", h.HandleGetMonitoring)
	r.Post("/institutions", h.HandleCreateInstitution)
	r.Get("/institutions/{id}", h.HandleGetInstitution)
}

func (h *Handler) HandleCreateMonitoring(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	requestID := requestcontext.RequestID(ctx)

	req, ok := httputil.DecodeAndPrepare[models.CreateMonitoringRequest](w, r, h.logger, ctx, requestID)
	if !ok {
		return
	}
	m, err := h.service.CreateMonitoring(ctx, req)
	if err != nil {
		h.logger.ErrorContext(ctx, "failed to create monitoring",
			"request_id", requestID,
			"error", err,
		)
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusCreated, m)
}

func (h *Handler) HandleGetMonitoring(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	monitoringID, err := id.ParseMonitoringID(chi.URLParam(r, "id"))
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	m, err := h.service.GetMonitoring(ctx, monitoringID)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, m)
}

func (h *Handler) HandleCreateInstitution(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	requestID := requestcontext.RequestID(ctx)

	req, ok := httputil.DecodeAndPrepare[models.CreateInstitutionRequest](w, r, h.logger, ctx, requestID)
	if !ok {
		return
	}
	i, err := h.service.CreateInstitution(ctx, req)
	if err != nil {
		h.logger.ErrorContext(ctx, "failed to create institution",
			"request_id", requestID,
			"error", err,
		)
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusCreated, i)
}

func (h *Handler) HandleGetInstitution(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	institutionID, err := id.ParseInstitutionID(chi.URLParam(r, "id"))
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	i, err := h.service.GetInstitution(ctx, institutionID)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, i)
}
