package service

import (
	"context"
	"errors"
	"io"
	"log/slog"

	"github.com/google/uuid"

	letterModels "feder/internal/letters/models"
	"feder/internal/platform/blob"
	"feder/internal/virusscan/engine"
	"feder/internal/virusscan/metrics"
	"feder/internal/virusscan/models"
	id "feder/pkg/domain"
	dErrors "feder/pkg/domain-errors"
	"feder/pkg/requestcontext"
)

const defaultBatchSize = 50

//go:generate mockgen -source=service.go -destination=mocks/mocks.go -package=mocks
type Store interface {
	CreateMany(ctx context.Context, requests []*models.Request) error
	ListByStatus(ctx context.Context, status models.Status, limit int) ([]*models.Request, error)
	List(ctx context.Context, filter models.ListFilter) ([]*models.Request, error)
	Update(ctx context.Context, r *models.Request, from models.Status) (bool, error)
	AnyInfected(ctx context.Context, attachmentID id.AttachmentID) (bool, error)
}

// Attachments resolves an attachment to its stored blob.
type Attachments interface {
	FindAttachmentByID(ctx context.Context, attachmentID id.AttachmentID) (*letterModels.Attachment, error)
}

type Service struct {
	store       Store
	attachments Attachments
	blobs       blob.Store
	engine      engine.Engine
	batchSize   int
	logger      *slog.Logger
	metrics     *metrics.Metrics
}

type Option func(*Service)

func WithLogger(logger *slog.Logger) Option {
	return func(s *Service) {
		s.logger = logger
	}
}

func WithMetrics(m *metrics.Metrics) Option {
	return func(s *Service) {
		s.metrics = m
	}
}

func WithBatchSize(n int) Option {
	return func(s *Service) {
		if n > 0 {
			s.batchSize = n
		}
	}
}

func New(store Store, attachments Attachments, blobs blob.Store, eng engine.Engine, opts ...Option) *Service {
	s := &Service{
		store:       store,
		attachments: attachments,
		blobs:       blobs,
		engine:      eng,
		batchSize:   defaultBatchSize,
		logger:      slog.Default(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// CreateRequests queues one scan per attachment. It joins the caller's
// transaction when there is one.
func (s *Service) CreateRequests(ctx context.Context, attachmentIDs []id.AttachmentID) error {
	if len(attachmentIDs) == 0 {
		return nil
	}
	now := requestcontext.Now(ctx)
	requests := make([]*models.Request, len(attachmentIDs))
	for i, attachmentID := range attachmentIDs {
		requests[i] = &models.Request{
			ID:           id.ScanRequestID(uuid.New()),
			AttachmentID: attachmentID,
			Status:       models.StatusCreated,
			CreatedAt:    now,
			UpdatedAt:    now,
		}
	}
	if err := s.store.CreateMany(ctx, requests); err != nil {
		return dErrors.Wrap(err, dErrors.CodeInternal, "failed to create scan requests")
	}
	if s.metrics != nil {
		s.metrics.AddCreated(len(requests))
	}
	return nil
}

// IsInfected reports whether any scan of the attachment found malware.
func (s *Service) IsInfected(ctx context.Context, attachmentID id.AttachmentID) (bool, error) {
	infected, err := s.store.AnyInfected(ctx, attachmentID)
	if err != nil {
		return false, dErrors.Wrap(err, dErrors.CodeInternal, "failed to check scan results")
	}
	return infected, nil
}

func (s *Service) List(ctx context.Context, filter models.ListFilter) ([]*models.Request, error) {
	requests, err := s.store.List(ctx, filter)
	if err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to list scan requests")
	}
	return requests, nil
}

// RunPass submits created requests and then polls queued ones.
func (s *Service) RunPass(ctx context.Context) (*models.PassSummary, error) {
	summary := &models.PassSummary{}
	if err := s.SendPending(ctx, summary); err != nil {
		return summary, err
	}
	if err := s.ReceivePending(ctx, summary); err != nil {
		return summary, err
	}
	return summary, nil
}

// SendPending submits one batch of created requests to the engine. A
// synchronous verdict is stored directly; otherwise the request is queued.
// While the engine is unavailable the rest of the batch is left alone.
func (s *Service) SendPending(ctx context.Context, summary *models.PassSummary) error {
	requests, err := s.store.ListByStatus(ctx, models.StatusCreated, s.batchSize)
	if err != nil {
		return dErrors.Wrap(err, dErrors.CodeInternal, "failed to load created scans")
	}
	for _, r := range requests {
		res, err := s.submit(ctx, r)
		if errors.Is(err, engine.ErrUnavailable) {
			s.logger.WarnContext(ctx, "scan engine unavailable, deferring submissions", "pending", len(requests))
			return nil
		}
		if err := s.save(ctx, r, models.StatusCreated, res, err, summary); err != nil {
			return err
		}
		summary.Sent++
	}
	return nil
}

// ReceivePending polls the engine for queued requests.
func (s *Service) ReceivePending(ctx context.Context, summary *models.PassSummary) error {
	requests, err := s.store.ListByStatus(ctx, models.StatusQueued, s.batchSize)
	if err != nil {
		return dErrors.Wrap(err, dErrors.CodeInternal, "failed to load queued scans")
	}
	for _, r := range requests {
		res, err := s.engine.ReceiveResult(ctx, r.EngineID)
		if errors.Is(err, engine.ErrUnavailable) {
			s.logger.WarnContext(ctx, "scan engine unavailable, deferring polls", "pending", len(requests))
			return nil
		}
		if err == nil && res.Status == models.StatusQueued {
			continue
		}
		if err := s.save(ctx, r, models.StatusQueued, res, err, summary); err != nil {
			return err
		}
		summary.Received++
	}
	return nil
}

func (s *Service) submit(ctx context.Context, r *models.Request) (models.Result, error) {
	a, err := s.attachments.FindAttachmentByID(ctx, r.AttachmentID)
	if err != nil {
		return models.Result{}, err
	}
	rc, err := s.blobs.Open(ctx, a.BlobKey)
	if err != nil {
		return models.Result{}, err
	}
	defer func(c io.Closer) { _ = c.Close() }(rc)
	return s.engine.SendScan(ctx, a.Filename, rc)
}

func (s *Service) save(ctx context.Context, r *models.Request, from models.Status, res models.Result, engineErr error, summary *models.PassSummary) error {
	now := requestcontext.Now(ctx)
	if engineErr != nil {
		r.Fail(s.engine.Name(), engineErr, now)
		summary.Failed++
		s.logger.WarnContext(ctx, "scan failed",
			"scan_id", r.ID,
			"attachment_id", r.AttachmentID,
			"error", engineErr,
		)
	} else {
		r.Apply(s.engine.Name(), res, now)
	}
	ok, err := s.store.Update(ctx, r, from)
	if err != nil {
		return dErrors.Wrap(err, dErrors.CodeInternal, "failed to update scan request")
	}
	if !ok {
		s.logger.InfoContext(ctx, "scan request changed concurrently", "scan_id", r.ID)
		return nil
	}
	if s.metrics != nil {
		s.metrics.IncrementTransition(r.Status.String())
	}
	if r.Status == models.StatusInfected {
		s.logger.WarnContext(ctx, "infected attachment detected",
			"scan_id", r.ID,
			"attachment_id", r.AttachmentID,
			"engine", r.EngineName,
		)
	}
	return nil
}
