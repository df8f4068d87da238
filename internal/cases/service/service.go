package service

import (
	"context"
	"errors"
	"log/slog"

	"github.com/google/uuid"

	"feder/internal/cases/metrics"
	"feder/internal/cases/models"
	"feder/internal/cases/store"
	monitoringModels "feder/internal/monitorings/models"
	id "feder/pkg/domain"
	dErrors "feder/pkg/domain-errors"
	"feder/pkg/email"
	"feder/pkg/requestcontext"
)

//go:generate mockgen -source=service.go -destination=mocks/mocks.go -package=mocks
type Store interface {
	Create(ctx context.Context, c *models.Case) error
	AddAlias(ctx context.Context, alias *models.Alias) error
	FindByID(ctx context.Context, caseID id.CaseID) (*models.Case, error)
	FindByAddresses(ctx context.Context, addresses []string) (*models.Case, error)
	MarkMilestone(ctx context.Context, caseID id.CaseID, milestone models.Milestone) (bool, error)
	List(ctx context.Context, filter models.ListFilter) ([]*models.Case, int, error)
	AddressIndex(ctx context.Context) (map[string]id.CaseID, error)
}

// Directory resolves the monitoring and institution a case points at.
type Directory interface {
	GetMonitoring(ctx context.Context, monitoringID id.MonitoringID) (*monitoringModels.Monitoring, error)
	GetInstitution(ctx context.Context, institutionID id.InstitutionID) (*monitoringModels.Institution, error)
}

type Service struct {
	store       Store
	directory   Directory
	emailDomain string
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

func New(store Store, directory Directory, emailDomain string, opts ...Option) *Service {
	s := &Service{store: store, directory: directory, emailDomain: emailDomain, logger: slog.Default()}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// CreateCase opens a case for a monitoring and a non-archival institution.
func (s *Service) CreateCase(ctx context.Context, req *models.CreateCaseRequest) (*models.Case, error) {
	if _, err := s.directory.GetMonitoring(ctx, req.ParsedMonitoringID()); err != nil {
		return nil, err
	}
	institution, err := s.directory.GetInstitution(ctx, req.ParsedInstitutionID())
	if err != nil {
		return nil, err
	}
	if err := institution.CanReceiveCases(); err != nil {
		return nil, dErrors.New(dErrors.CodeConflict, err.Error())
	}

	c, err := models.NewCase(id.CaseID(uuid.New()), req.ParsedMonitoringID(), institution.ID, req.Name, s.emailDomain, requestcontext.Now(ctx))
	if err != nil {
		if dErrors.HasCode(err, dErrors.CodeInvariantViolation) {
			return nil, dErrors.New(dErrors.CodeValidation, err.Error())
		}
		return nil, err
	}
	if err := s.store.Create(ctx, c); err != nil {
		if errors.Is(err, store.ErrAddressUsed) {
			return nil, dErrors.New(dErrors.CodeConflict, "case address already in use")
		}
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to create case")
	}
	if s.metrics != nil {
		s.metrics.IncrementCasesCreated()
	}
	s.logger.InfoContext(ctx, "case created",
		"request_id", requestcontext.RequestID(ctx),
		"case_id", c.ID,
		"email", c.Email,
	)
	return c, nil
}

func (s *Service) AddAlias(ctx context.Context, caseID id.CaseID, req *models.AddAliasRequest) (*models.Case, error) {
	alias := &models.Alias{
		ID:        id.AliasID(uuid.New()),
		CaseID:    caseID,
		Email:     email.Normalize(req.Email),
		CreatedAt: requestcontext.Now(ctx),
	}
	if err := s.store.AddAlias(ctx, alias); err != nil {
		switch {
		case errors.Is(err, store.ErrNotFound):
			return nil, dErrors.New(dErrors.CodeNotFound, "case not found")
		case errors.Is(err, store.ErrAddressUsed):
			return nil, dErrors.New(dErrors.CodeConflict, "address already assigned to a case")
		}
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to add alias")
	}
	return s.Get(ctx, caseID)
}

func (s *Service) Get(ctx context.Context, caseID id.CaseID) (*models.Case, error) {
	c, err := s.store.FindByID(ctx, caseID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, dErrors.New(dErrors.CodeNotFound, "case not found")
		}
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to load case")
	}
	return c, nil
}

func (s *Service) List(ctx context.Context, filter models.ListFilter) (*models.CaseList, error) {
	filter.Normalize()
	cs, total, err := s.store.List(ctx, filter)
	if err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to list cases")
	}
	return &models.CaseList{Cases: cs, Total: total, Limit: filter.Limit, Offset: filter.Offset}, nil
}

// FindByAddresses matches normalized recipient addresses to a case. A miss is
// reported through ok, never as an error.
func (s *Service) FindByAddresses(ctx context.Context, addresses []string) (*models.Case, bool, error) {
	normalized := email.NormalizeList(addresses)
	if len(normalized) == 0 {
		s.recordLookup(false)
		return nil, false, nil
	}
	c, err := s.store.FindByAddresses(ctx, normalized)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			s.recordLookup(false)
			return nil, false, nil
		}
		return nil, false, dErrors.Wrap(err, dErrors.CodeInternal, "failed to match case address")
	}
	s.recordLookup(true)
	return c, true, nil
}

// MarkMilestone latches the case flag for milestone. Joining the caller's
// transaction keeps the flag consistent with the letter that raised it.
func (s *Service) MarkMilestone(ctx context.Context, caseID id.CaseID, milestone models.Milestone) error {
	if milestone == models.MilestoneNone {
		return nil
	}
	changed, err := s.store.MarkMilestone(ctx, caseID, milestone)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return dErrors.New(dErrors.CodeNotFound, "case not found")
		}
		return dErrors.Wrap(err, dErrors.CodeInternal, "failed to update case milestone")
	}
	if changed {
		if s.metrics != nil {
			s.metrics.IncrementMilestone(milestone)
		}
		s.logger.InfoContext(ctx, "case milestone latched",
			"case_id", caseID,
			"milestone", milestone.String(),
		)
	}
	return nil
}

func (s *Service) AddressIndex(ctx context.Context) (map[string]id.CaseID, error) {
	index, err := s.store.AddressIndex(ctx)
	if err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to load case addresses")
	}
	return index, nil
}

func (s *Service) recordLookup(matched bool) {
	if s.metrics != nil {
		s.metrics.IncrementAddressLookup(matched)
	}
}
