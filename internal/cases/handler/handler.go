package handler

import (
	"context"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"feder/internal/cases/models"
	id "feder/pkg/domain"
	dErrors "feder/pkg/domain-errors"
	"feder/pkg/platform/httputil"
	"feder/pkg/requestcontext"
)

//go:generate mockgen -source=handler.go -destination=mocks/mocks.go -package=mocks Service
type Service interface {
	CreateCase(ctx context.Context, req *models.CreateCaseRequest) (*models.Case, error)
	AddAlias(ctx context.Context, caseID id.CaseID, req *models.AddAliasRequest) (*models.Case, error)
	Get(ctx context.Context, caseID id.CaseID) (*models.Case, error)
	List(ctx context.Context, filter models.ListFilter) (*models.CaseList, error)
}

type Handler struct {
	service Service
	logger  *slog.Logger
}

func New(service Service, logger *slog.Logger) *Handler {
	return &Handler{service: service, logger: logger}
}

// RegisterPublic mounts the read-only case routes.
func (h *Handler) RegisterPublic(r chi.Router) {
	r.Get("/cases", h.HandleList)
	r.Get("/cases/{id}", h.HandleGet)
}

// RegisterAdmin mounts the operator case routes.
func (h *Handler) RegisterAdmin(r chi.Router) {
	r.Post("/cases", h.HandleCreate)
	r.Post("/cases/{id}/aliases", h.HandleAddAlias)
}

func (h *Handler) HandleList(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	filter, err := parseListFilter(r)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	list, err := h.service.List(ctx, filter)
	if err != nil {
		h.logger.ErrorContext(ctx, "failed to list cases",
			"request_id", requestcontext.RequestID(ctx),
			"error", err,
		)
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, list)
}

func (h *Handler) HandleGet(w http.ResponseWriter, r *http.Request) {
	caseID, err := id.ParseCaseID(chi.URLParam(r, "id"))
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	c, err := h.service.Get(r.Context(), caseID)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, c)
}

func (h *Handler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	requestID := requestcontext.RequestID(ctx)

	req, ok := httputil.DecodeAndPrepare[models.CreateCaseRequest](w, r, h.logger, ctx, requestID)
	if !ok {
		return
	}
	c, err := h.service.CreateCase(ctx, req)
	if err != nil {
		h.logger.WarnContext(ctx, "failed to create case",
			"request_id", requestID,
			"error", err,
		)
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusCreated, c)
}

func (h *Handler) HandleAddAlias(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	requestID := requestcontext.RequestID(ctx)

	caseID, err := id.ParseCaseID(chi.URLParam(r, "id"))
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	req, ok := httputil.DecodeAndPrepare[models.AddAliasRequest](w, r, h.logger, ctx, requestID)
	if !ok {
		return
	}
	c, err := h.service.AddAlias(ctx, caseID, req)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusCreated, c)
}

func parseListFilter(r *http.Request) (models.ListFilter, error) {
	q := r.URL.Query()
	filter := models.ListFilter{Name: q.Get("name")}

	if v := q.Get("monitoring"); v != "" {
		monitoringID, err := id.ParseMonitoringID(v)
		if err != nil {
			return filter, err
		}
		filter.MonitoringID = &monitoringID
	}
	if v := q.Get("institution"); v != "" {
		institutionID, err := id.ParseInstitutionID(v)
		if err != nil {
			return filter, err
		}
		filter.InstitutionID = &institutionID
	}
	var err error
	if filter.ConfirmationReceived, err = boolParam(q.Get("confirmation_received"), "confirmation_received"); err != nil {
		return filter, err
	}
	if filter.ResponseReceived, err = boolParam(q.Get("response_received"), "response_received"); err != nil {
		return filter, err
	}
	if filter.Limit, err = intParam(q.Get("limit"), "limit"); err != nil {
		return filter, err
	}
	if filter.Offset, err = intParam(q.Get("offset"), "offset"); err != nil {
		return filter, err
	}
	return filter, nil
}

func boolParam(v, name string) (*bool, error) {
	if v == "" {
		return nil, nil
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		return nil, dErrors.New(dErrors.CodeBadRequest, "invalid "+name)
	}
	return &b, nil
}

func intParam(v, name string) (int, error) {
	if v == "" {
		return 0, nil
	}
	n, err := strconv.Atoi(v)
	if err != nil || n < 0 {
		return 0, dErrors.New(dErrors.CodeBadRequest, "invalid "+name)
	}
	return n, nil
}
