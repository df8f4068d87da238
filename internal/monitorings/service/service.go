package service

import (
	"context"
	"errors"
	"log/slog"

	"github.com/google/uuid"

	"feder/internal/monitorings/models"
	"feder/internal/monitorings/store"
	id "feder/pkg/domain"
	dErrors "feder/pkg/domain-errors"
	"feder/pkg/requestcontext"
)

type Store interface {
	CreateMonitoring(ctx context.Context, m *models.Monitoring) error
	FindMonitoring(ctx context.Context, monitoringID id.MonitoringID) (*models.Monitoring, error)
	CreateInstitution(ctx context.Context, i *models.Institution) error
	FindInstitution(ctx context.Context, institutionID id.InstitutionID) (*models.Institution, error)
}

// Service manages monitorings and the institutions they write to.
type Service struct {
	store  Store
	logger *slog.Logger
}

type Option func(*Service)

func WithLogger(logger *slog.Logger) Option {
	return func(s *Service) {
		s.logger = logger
	}
}

func New(store Store, opts ...Option) *Service {
	s := &Service{store: store, logger: slog.Default()}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *Service) CreateMonitoring(ctx context.Context, req *models.CreateMonitoringRequest) (*models.Monitoring, error) {
	m, err := models.NewMonitoring(id.MonitoringID(uuid.New()), req.Name, req.EmailFooter, req.NotifyAlert, requestcontext.Now(ctx))
	if err != nil {
		if dErrors.HasCode(err, dErrors.CodeInvariantViolation) {
			return nil, dErrors.New(dErrors.CodeValidation, err.Error())
		}
		return nil, err
	}
	if err := s.store.CreateMonitoring(ctx, m); err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to create monitoring")
	}
	s.logger.InfoContext(ctx, "monitoring created",
		"request_id", requestcontext.RequestID(ctx),
		"monitoring_id", m.ID,
	)
	return m, nil
}

func (s *Service) GetMonitoring(ctx context.Context, monitoringID id.MonitoringID) (*models.Monitoring, error) {
	m, err := s.store.FindMonitoring(ctx, monitoringID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, dErrors.New(dErrors.CodeNotFound, "monitoring not found")
		}
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to load monitoring")
	}
	return m, nil
}

func (s *Service) CreateInstitution(ctx context.Context, req *models.CreateInstitutionRequest) (*models.Institution, error) {
	i, err := models.NewInstitution(id.InstitutionID(uuid.New()), req.Name, req.Email, req.Archival, requestcontext.Now(ctx))
	if err != nil {
		if dErrors.HasCode(err, dErrors.CodeInvariantViolation) {
			return nil, dErrors.New(dErrors.CodeValidation, err.Error())
		}
		return nil, err
	}
	if err := s.store.CreateInstitution(ctx, i); err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to create institution")
	}
	return i, nil
}

func (s *Service) GetInstitution(ctx context.Context, institutionID id.InstitutionID) (*models.Institution, error) {
	i, err := s.store.FindInstitution(ctx, institutionID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, dErrors.New(dErrors.CodeNotFound, "institution not found")
		}
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to load institution")
	}
	return i, nil
}
