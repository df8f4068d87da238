package service

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/goccy/go-json"
	"github.com/google/uuid"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"golang.org/x/sync/errgroup"

	caseModels "feder/internal/cases/models"
	"feder/internal/deliverylogs/metrics"
	"feder/internal/deliverylogs/models"
	"feder/internal/deliverylogs/store"
	"feder/internal/letters/eml"
	id "feder/pkg/domain"
	dErrors "feder/pkg/domain-errors"
	"feder/pkg/email"
	"feder/pkg/platform/tx"
	"feder/pkg/requestcontext"
)

const tracerName = "feder/deliverylogs"

//go:generate mockgen -source=service.go -destination=mocks/mocks.go -package=mocks
type Store interface {
	Upsert(ctx context.Context, log *models.EmailLog) (*models.EmailLog, bool, error)
	AppendRecord(ctx context.Context, rec *models.LogRecord) error
	Find(ctx context.Context, logID id.EmailLogID) (*models.EmailLog, error)
	ListByCase(ctx context.Context, caseID id.CaseID) ([]*models.EmailLog, error)
	ListRecords(ctx context.Context, logID id.EmailLogID) ([]models.LogRecord, error)
}

// Cases maps case mailbox addresses to cases.
type Cases interface {
	Get(ctx context.Context, caseID id.CaseID) (*caseModels.Case, error)
	AddressIndex(ctx context.Context) (map[string]id.CaseID, error)
}

// Letters maps outgoing Message-IDs to letters.
type Letters interface {
	OutgoingMessageIndex(ctx context.Context) (map[string]id.LetterID, error)
}

type Service struct {
	store   Store
	cases   Cases
	letters Letters
	runner  tx.Runner
	logger  *slog.Logger
	metrics *metrics.Metrics
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

func New(store Store, cases Cases, letters Letters, runner tx.Runner, opts ...Option) *Service {
	s := &Service{
		store:   store,
		cases:   cases,
		letters: letters,
		runner:  runner,
		logger:  slog.Default(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

type indexes struct {
	cases   map[string]id.CaseID
	letters map[string]id.LetterID
}

func (s *Service) loadIndexes(ctx context.Context) (*indexes, error) {
	idx := &indexes{}
	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		cases, err := s.cases.AddressIndex(ctx)
		idx.cases = cases
		return err
	})
	g.Go(func() error {
		letters, err := s.letters.OutgoingMessageIndex(ctx)
		if err != nil {
			return err
		}
		idx.letters = make(map[string]id.LetterID, len(letters))
		for msgID, letterID := range letters {
			idx.letters[eml.TrimMessageID(msgID)] = letterID
		}
		return nil
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return idx, nil
}

// Import reconciles provider rows against cases and outgoing letters. Rows
// whose sender is not a case mailbox, or that lack an id or recipient, are
// skipped. Each saved row commits on its own, so a failure leaves earlier
// rows in place; the returned result counts what was done before it.
func (s *Service) Import(ctx context.Context, rows []models.Row) (*models.ImportResult, error) {
	ctx, span := otel.Tracer(tracerName).Start(ctx, "deliverylogs.Import",
		trace.WithAttributes(attribute.Int("rows", len(rows))),
	)
	defer span.End()
	start := time.Now()

	result := &models.ImportResult{}
	idx, err := s.loadIndexes(ctx)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "index load failed")
		return result, dErrors.Wrap(err, dErrors.CodeInternal, "failed to load reconciliation indexes")
	}

	for i, row := range rows {
		if err := ctx.Err(); err != nil {
			s.finishImport(ctx, result, start)
			return result, dErrors.Wrap(err, dErrors.CodeTimeout, "import interrupted")
		}
		saved, err := s.importRow(ctx, idx, row)
		if err != nil {
			span.RecordError(err)
			span.SetStatus(codes.Error, "row failed")
			s.finishImport(ctx, result, start)
			s.logger.ErrorContext(ctx, "delivery log row failed",
				"request_id", requestcontext.RequestID(ctx),
				"row", i,
				"error", err,
			)
			return result, dErrors.Wrap(err, dErrors.CodeInternal, "failed to store delivery log row")
		}
		if saved {
			result.Saved++
		} else {
			result.Skipped++
		}
	}

	span.SetAttributes(attribute.Int("saved", result.Saved), attribute.Int("skipped", result.Skipped))
	s.finishImport(ctx, result, start)
	return result, nil
}

func (s *Service) finishImport(ctx context.Context, result *models.ImportResult, start time.Time) {
	if s.metrics != nil {
		s.metrics.IncrementRows("saved", result.Saved)
		s.metrics.IncrementRows("skipped", result.Skipped)
		s.metrics.ObserveImportDuration(time.Since(start))
	}
	s.logger.InfoContext(ctx, "delivery logs imported",
		"request_id", requestcontext.RequestID(ctx),
		"saved", result.Saved,
		"skipped", result.Skipped,
	)
}

func (s *Service) importRow(ctx context.Context, idx *indexes, row models.Row) (bool, error) {
	caseID, ok := idx.cases[email.Normalize(row.String("from"))]
	if !ok {
		return false, nil
	}
	emailID, to := row.String("id"), row.String("to")
	if emailID == "" || to == "" {
		return false, nil
	}
	data, err := json.Marshal(row)
	if err != nil {
		return false, err
	}

	now := requestcontext.Now(ctx)
	status := models.DeriveStatus(row)
	log := &models.EmailLog{
		ID:        id.EmailLogID(uuid.New()),
		CaseID:    caseID,
		EmailID:   emailID,
		To:        to,
		Status:    status,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if letterID, ok := idx.letters[eml.TrimMessageID(row.String("message_id"))]; ok {
		log.LetterID = &letterID
	}

	err = s.runner.RunInTx(ctx, func(ctx context.Context) error {
		stored, created, err := s.store.Upsert(ctx, log)
		if err != nil {
			return err
		}
		if created && s.metrics != nil {
			s.metrics.IncrementCreated()
		}
		return s.store.AppendRecord(ctx, &models.LogRecord{
			ID:         id.LogRecordID(uuid.New()),
			EmailLogID: stored.ID,
			Data:       data,
			CreatedAt:  now,
		})
	})
	if err != nil {
		return false, err
	}
	if s.metrics != nil {
		s.metrics.IncrementStatus(string(status))
	}
	return true, nil
}

func (s *Service) ListByCase(ctx context.Context, caseID id.CaseID) ([]*models.EmailLog, error) {
	if _, err := s.cases.Get(ctx, caseID); err != nil {
		return nil, err
	}
	logs, err := s.store.ListByCase(ctx, caseID)
	if err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to list email logs")
	}
	return logs, nil
}

// Get returns the log with every raw row it was built from.
func (s *Service) Get(ctx context.Context, logID id.EmailLogID) (*models.EmailLog, error) {
	log, err := s.store.Find(ctx, logID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, dErrors.New(dErrors.CodeNotFound, "email log not found")
		}
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to load email log")
	}
	records, err := s.store.ListRecords(ctx, logID)
	if err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to load log records")
	}
	log.Records = records
	return log, nil
}
