package handler

import (
	"io"
	"mime/multipart"
	"net/http"
	"sort"

	"github.com/go-chi/chi/v5"
	"github.com/goccy/go-json"

	"feder/internal/letters/models"
	dErrors "feder/pkg/domain-errors"
	"feder/pkg/platform/httputil"
	"feder/pkg/requestcontext"
)

const (
	manifestField   = "manifest"
	emlField        = "eml"
	multipartMemory = 32 << 20
)

type webhookResponse struct {
	Status string `json:"status"`
}

// RegisterWebhook mounts the mail gateway endpoint. guards run after the
// method check, so a wrong method is reported before a missing secret.
func (h *Handler) RegisterWebhook(r chi.Router, guards ...func(http.Handler) http.Handler) {
	r.With(postOnly).With(guards...).HandleFunc("/letters/webhook", h.HandleWebhook)
}

func postOnly(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			w.Header().Set("Allow", http.MethodPost)
			httputil.WriteError(w, dErrors.New(dErrors.CodeMethodNotAllowed, "webhook accepts POST only"))
			return
		}
		next.ServeHTTP(w, r)
	})
}

// HandleWebhook accepts one message from the mail gateway as
// multipart/form-data: a JSON manifest, the raw message and any attachments.
func (h *Handler) HandleWebhook(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	requestID := requestcontext.RequestID(ctx)

	r.Body = http.MaxBytesReader(w, r.Body, h.maxBodyBytes)
	if err := r.ParseMultipartForm(multipartMemory); err != nil {
		h.logger.WarnContext(ctx, "webhook body is not multipart",
			"request_id", requestID,
			"error", err,
		)
		httputil.WriteError(w, dErrors.New(dErrors.CodeBadRequest, "expected a multipart/form-data body"))
		return
	}
	defer func() { _ = r.MultipartForm.RemoveAll() }()

	in, err := readInbound(r.MultipartForm)
	if err != nil {
		h.logger.WarnContext(ctx, "invalid webhook payload",
			"request_id", requestID,
			"error", err,
		)
		httputil.WriteError(w, err)
		return
	}

	result, err := h.service.Ingest(ctx, in)
	if err != nil {
		h.logger.ErrorContext(ctx, "failed to ingest inbound letter",
			"request_id", requestID,
			"message_id", in.Manifest.Headers.MessageID,
			"error", err,
		)
		httputil.WriteError(w, err)
		return
	}
	if result.Duplicate {
		h.logger.InfoContext(ctx, "webhook redelivery ignored",
			"request_id", requestID,
			"message_id", in.Manifest.Headers.MessageID,
		)
	}
	httputil.WriteJSON(w, http.StatusOK, webhookResponse{Status: "OK"})
}

func readInbound(form *multipart.Form) (*models.InboundMessage, error) {
	raw, err := manifestBytes(form)
	if err != nil {
		return nil, err
	}
	in := &models.InboundMessage{}
	if err := json.Unmarshal(raw, &in.Manifest); err != nil {
		return nil, dErrors.New(dErrors.CodeBadRequest, "manifest is not valid JSON")
	}
	in.Manifest.Normalize()
	if err := in.Manifest.Validate(); err != nil {
		return nil, err
	}

	if parts := form.File[emlField]; len(parts) > 0 {
		if in.EML, err = readPart(parts[0]); err != nil {
			return nil, err
		}
	}

	fields := make([]string, 0, len(form.File))
	for field := range form.File {
		if field != manifestField && field != emlField {
			fields = append(fields, field)
		}
	}
	sort.Strings(fields)
	for _, field := range fields {
		for _, fh := range form.File[field] {
			content, err := readPart(fh)
			if err != nil {
				return nil, err
			}
			in.Files = append(in.Files, models.InboundFile{
				Filename:    fh.Filename,
				ContentType: fh.Header.Get("Content-Type"),
				Content:     content,
			})
		}
	}
	return in, nil
}

// manifestBytes accepts the manifest as a file part or a plain form value.
func manifestBytes(form *multipart.Form) ([]byte, error) {
	if parts := form.File[manifestField]; len(parts) > 0 {
		return readPart(parts[0])
	}
	if values := form.Value[manifestField]; len(values) > 0 && values[0] != "" {
		return []byte(values[0]), nil
	}
	return nil, dErrors.New(dErrors.CodeBadRequest, "manifest is required")
}

func readPart(fh *multipart.FileHeader) ([]byte, error) {
	f, err := fh.Open()
	if err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeBadRequest, "unreadable part "+fh.Filename)
	}
	defer f.Close()
	b, err := io.ReadAll(f)
	if err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeBadRequest, "unreadable part "+fh.Filename)
	}
	return b, nil
}
