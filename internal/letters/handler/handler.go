package handler

import (
	"context"
	"io"
	"log/slog"
	"mime"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"feder/internal/letters/models"
	id "feder/pkg/domain"
	"feder/pkg/platform/httputil"
	"feder/pkg/requestcontext"
)

//go:generate mockgen -source=handler.go -destination=mocks/mocks.go -package=mocks Service
type Service interface {
	Ingest(ctx context.Context, in *models.InboundMessage) (*models.IngestResult, error)
	Get(ctx context.Context, letterID id.LetterID) (*models.Letter, error)
	ListByCase(ctx context.Context, caseID id.CaseID) ([]*models.Letter, error)
	ListUnrecognized(ctx context.Context) ([]*models.Letter, error)
	OpenEML(ctx context.Context, letterID id.LetterID) (io.ReadCloser, error)
	OpenAttachment(ctx context.Context, letterID id.LetterID, attachmentID id.AttachmentID) (*models.Attachment, io.ReadCloser, error)
	MarkSpam(ctx context.Context, letterID id.LetterID, target models.SpamStatus) (*models.Letter, error)
	Assign(ctx context.Context, letterID id.LetterID, caseID id.CaseID) (*models.Letter, error)
	CreateOutgoing(ctx context.Context, caseID id.CaseID, req *models.CreateOutgoingRequest) (*models.Letter, error)
	Resend(ctx context.Context, letterID id.LetterID) (*models.Letter, error)
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
	Letters []*models.Letter `json:"letters"`
}

// RegisterPublic mounts the read-only letter routes.
func (h *Handler) RegisterPublic(r chi.Router) {
	r.Get("/cases/{id}/letters", h.HandleListByCase)
	r.Get("/letters/{id}", h.HandleGet)
	r.Get("/letters/{id}/eml", h.HandleEML)
	r.Get("/letters/{id}/attachments/{attachmentID}", h.HandleAttachment)
}

// RegisterAdmin mounts the operator letter routes.
func (h *Handler) RegisterAdmin(r chi.Router) {
	r.Post("/cases/{id}/letters", h.HandleCreateOutgoing)
	r.Get("/letters/unrecognized", h.HandleListUnrecognized)
	r.Post("/letters/{id}/spam", h.HandleMarkSpam)
	r.Post("/letters/{id}/assign", h.HandleAssign)
	r.Post("/letters/{id}/resend", h.HandleResend)
}

func (h *Handler) HandleListByCase(w http.ResponseWriter, r *http.Request) {
	caseID, err := id.ParseCaseID(chi.URLParam(r, "id"))
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	letters, err := h.service.ListByCase(r.Context(), caseID)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, listResponse{Letters: letters})
}

func (h *Handler) HandleGet(w http.ResponseWriter, r *http.Request) {
	letterID, err := id.ParseLetterID(chi.URLParam(r, "id"))
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	l, err := h.service.Get(r.Context(), letterID)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, l)
}

func (h *Handler) HandleEML(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	letterID, err := id.ParseLetterID(chi.URLParam(r, "id"))
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	rc, err := h.service.OpenEML(ctx, letterID)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	defer rc.Close()
	w.Header().Set("Content-Type", "message/rfc822")
	w.Header().Set("Content-Disposition", mime.FormatMediaType("attachment", map[string]string{"filename": letterID.String() + ".eml"}))
	h.stream(ctx, w, rc)
}

func (h *Handler) HandleAttachment(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	letterID, err := id.ParseLetterID(chi.URLParam(r, "id"))
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	attachmentID, err := id.ParseAttachmentID(chi.URLParam(r, "attachmentID"))
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	a, rc, err := h.service.OpenAttachment(ctx, letterID, attachmentID)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	defer rc.Close()
	contentType := a.ContentType
	if contentType == "" {
		contentType = "application/octet-stream"
	}
	w.Header().Set("Content-Type", contentType)
	w.Header().Set("Content-Length", strconv.FormatInt(a.Size, 10))
	w.Header().Set("Content-Disposition", mime.FormatMediaType("attachment", map[string]string{"filename": a.Filename}))
	h.stream(ctx, w, rc)
}

func (h *Handler) HandleListUnrecognized(w http.ResponseWriter, r *http.Request) {
	letters, err := h.service.ListUnrecognized(r.Context())
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, listResponse{Letters: letters})
}

func (h *Handler) HandleMarkSpam(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	requestID := requestcontext.RequestID(ctx)

	letterID, err := id.ParseLetterID(chi.URLParam(r, "id"))
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	req, ok := httputil.DecodeAndPrepare[models.MarkSpamRequest](w, r, h.logger, ctx, requestID)
	if !ok {
		return
	}
	l, err := h.service.MarkSpam(ctx, letterID, req.Target())
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, l)
}

func (h *Handler) HandleAssign(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	requestID := requestcontext.RequestID(ctx)

	letterID, err := id.ParseLetterID(chi.URLParam(r, "id"))
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	req, ok := httputil.DecodeAndPrepare[models.AssignRequest](w, r, h.logger, ctx, requestID)
	if !ok {
		return
	}
	l, err := h.service.Assign(ctx, letterID, req.ParsedCaseID())
	if err != nil {
		h.logger.WarnContext(ctx, "failed to assign letter",
			"request_id", requestID,
			"letter_id", letterID,
			"error", err,
		)
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, l)
}

func (h *Handler) HandleCreateOutgoing(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	requestID := requestcontext.RequestID(ctx)

	caseID, err := id.ParseCaseID(chi.URLParam(r, "id"))
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	req, ok := httputil.DecodeAndPrepare[models.CreateOutgoingRequest](w, r, h.logger, ctx, requestID)
	if !ok {
		return
	}
	l, err := h.service.CreateOutgoing(ctx, caseID, req)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusCreated, l)
}

func (h *Handler) HandleResend(w http.ResponseWriter, r *http.Request) {
	letterID, err := id.ParseLetterID(chi.URLParam(r, "id"))
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	l, err := h.service.Resend(r.Context(), letterID)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, l)
}

func (h *Handler) stream(ctx context.Context, w http.ResponseWriter, src io.Reader) {
	w.WriteHeader(http.StatusOK)
	if _, err := io.Copy(w, src); err != nil {
		h.logger.WarnContext(ctx, "stream interrupted",
			"request_id", requestcontext.RequestID(ctx),
			"error", err,
		)
	}
}
