package handler

import (
	"context"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"feder/internal/virusscan/models"
	dErrors "feder/pkg/domain-errors"
	"feder/pkg/platform/httputil"
)

const maxListLimit = 500

//go:generate mockgen -source=handler.go -destination=mocks/mocks.go -package=mocks Service
type Service interface {
	List(ctx context.Context, filter models.ListFilter) ([]*models.Request, error)
}

type Handler struct {
	service Service
}

func New(service Service) *Handler {
	return &Handler{service: service}
}

type listResponse struct {
	Scans []*models.Request `json:"scans"`
}

func (h *Handler) RegisterAdmin(r chi.Router) {
	r.Get("/scans", h.HandleList)
}

// HandleList supports ?status=<name> and ?limit=<n>.
func (h *Handler) HandleList(w http.ResponseWriter, r *http.Request) {
	filter, err := parseFilter(r)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	scans, err := h.service.List(r.Context(), filter)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, listResponse{Scans: scans})
}

func parseFilter(r *http.Request) (models.ListFilter, error) {
	q := r.URL.Query()
	filter := models.ListFilter{Limit: 100}
	if raw := q.Get("status"); raw != "" {
		status, err := models.ParseStatus(raw)
		if err != nil {
			return filter, dErrors.New(dErrors.CodeValidation, "unknown status "+strconv.Quote(raw))
		}
		filter.Status = &status
	}
	if raw := q.Get("limit"); raw != "" {
		limit, err := strconv.Atoi(raw)
		if err != nil || limit < 1 || limit > maxListLimit {
			return filter, dErrors.New(dErrors.CodeValidation, "limit must be between 1 and 500")
		}
		filter.Limit = limit
	}
	return filter, nil
}
