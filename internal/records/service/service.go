package service

import (
	"context"
	"errors"
	"log/slog"

	"github.com/google/uuid"

	"feder/internal/records/models"
	"feder/internal/records/store"
	id "feder/pkg/domain"
	dErrors "feder/pkg/domain-errors"
	"feder/pkg/platform/outbox"
	"feder/pkg/platform/tx"
	"feder/pkg/requestcontext"
)

type Store interface {
	Append(ctx context.Context, r *models.Record) error
	FindByID(ctx context.Context, recordID id.RecordID) (*models.Record, error)
	ListByCase(ctx context.Context, caseID id.CaseID) ([]*models.Record, error)
	ListOrphans(ctx context.Context) ([]*models.Record, error)
	AdoptOrphan(ctx context.Context, recordID id.RecordID, caseID id.CaseID) (*models.Record, error)
}

// Service keeps the per-case timeline. Every append and adoption writes a
// timeline event to the outbox in the same unit of work.
type Service struct {
	store  Store
	outbox outbox.Store
	runner tx.Runner
	topic  string
	logger *slog.Logger
}

type Option func(*Service)

func WithLogger(logger *slog.Logger) Option {
	return func(s *Service) {
		s.logger = logger
	}
}

func New(store Store, events outbox.Store, runner tx.Runner, topic string, opts ...Option) *Service {
	s := &Service{store: store, outbox: events, runner: runner, topic: topic, logger: slog.Default()}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Append adds a record for objectID. A nil caseID creates an orphan.
func (s *Service) Append(ctx context.Context, caseID *id.CaseID, kind models.Kind, objectID id.LetterID) (*models.Record, error) {
	r := &models.Record{
		ID:        id.RecordID(uuid.New()),
		CaseID:    caseID,
		Kind:      kind,
		ObjectID:  objectID,
		CreatedAt: requestcontext.Now(ctx),
	}
	err := s.runner.RunInTx(ctx, func(ctx context.Context) error {
		if err := s.store.Append(ctx, r); err != nil {
			return err
		}
		return s.emit(ctx, models.EventAppended, r)
	})
	if err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to append record")
	}
	return r, nil
}

func (s *Service) Get(ctx context.Context, recordID id.RecordID) (*models.Record, error) {
	r, err := s.store.FindByID(ctx, recordID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, dErrors.New(dErrors.CodeNotFound, "record not found")
		}
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to load record")
	}
	return r, nil
}

func (s *Service) ListByCase(ctx context.Context, caseID id.CaseID) ([]*models.Record, error) {
	rs, err := s.store.ListByCase(ctx, caseID)
	if err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to list records")
	}
	return rs, nil
}

func (s *Service) ListOrphans(ctx context.Context) ([]*models.Record, error) {
	rs, err := s.store.ListOrphans(ctx)
	if err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to list orphan records")
	}
	return rs, nil
}

// AdoptOrphan moves an orphan record into caseID. Adopting a record that
// already has a case is a conflict.
func (s *Service) AdoptOrphan(ctx context.Context, recordID id.RecordID, caseID id.CaseID) (*models.Record, error) {
	var adopted *models.Record
	err := s.runner.RunInTx(ctx, func(ctx context.Context) error {
		r, err := s.store.AdoptOrphan(ctx, recordID, caseID)
		if err != nil {
			return err
		}
		adopted = r
		return s.emit(ctx, models.EventAdopted, r)
	})
	if err != nil {
		switch {
		case errors.Is(err, store.ErrNotFound):
			return nil, dErrors.New(dErrors.CodeNotFound, "record not found")
		case errors.Is(err, store.ErrAlreadyOwned):
			return nil, dErrors.New(dErrors.CodeConflict, "record already belongs to a case")
		}
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to adopt record")
	}
	s.logger.InfoContext(ctx, "orphan record adopted",
		"request_id", requestcontext.RequestID(ctx),
		"record_id", recordID,
		"case_id", caseID,
	)
	return adopted, nil
}

func (s *Service) emit(ctx context.Context, eventType string, r *models.Record) error {
	if s.outbox == nil {
		return nil
	}
	key := r.ID.String()
	if r.CaseID != nil {
		key = r.CaseID.String()
	}
	entry, err := outbox.NewEntry(s.topic, key, eventType, models.EventFor(r), requestcontext.Now(ctx))
	if err != nil {
		return err
	}
	return s.outbox.Append(ctx, entry)
}
