package service

import (
	"context"
	"errors"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/mssola/useragent"

	"feder/internal/alerts/metrics"
	"feder/internal/alerts/models"
	"feder/internal/alerts/store"
	caseModels "feder/internal/cases/models"
	letterModels "feder/internal/letters/models"
	monitoringModels "feder/internal/monitorings/models"
	id "feder/pkg/domain"
	dErrors "feder/pkg/domain-errors"
	"feder/pkg/platform/outbox"
	"feder/pkg/platform/tx"
	"feder/pkg/requestcontext"
)

const eventAlertCreated = "alert.created"

//go:generate mockgen -source=service.go -destination=mocks/mocks.go -package=mocks
type Store interface {
	Create(ctx context.Context, a *models.Alert) error
	Find(ctx context.Context, alertID id.AlertID) (*models.Alert, error)
	Solve(ctx context.Context, alertID id.AlertID, solverID id.OperatorID, at time.Time) (*models.Alert, error)
	List(ctx context.Context, status *models.Status) ([]*models.Alert, error)
}

type Letters interface {
	Get(ctx context.Context, letterID id.LetterID) (*letterModels.Letter, error)
}

type Cases interface {
	Get(ctx context.Context, caseID id.CaseID) (*caseModels.Case, error)
}

type Directory interface {
	GetMonitoring(ctx context.Context, monitoringID id.MonitoringID) (*monitoringModels.Monitoring, error)
}

type Service struct {
	store     Store
	letters   Letters
	cases     Cases
	directory Directory
	outbox    outbox.Store
	runner    tx.Runner
	topic     string
	logger    *slog.Logger
	metrics   *metrics.Metrics
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

func New(store Store, letters Letters, cases Cases, directory Directory, events outbox.Store, runner tx.Runner, topic string, opts ...Option) *Service {
	s := &Service{
		store:     store,
		letters:   letters,
		cases:     cases,
		directory: directory,
		outbox:    events,
		runner:    runner,
		topic:     topic,
		logger:    slog.Default(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// ReportSpam raises an alert about a letter. Anyone may report; the
// operator is recorded as author when the request carries one. Monitorings
// with NotifyAlert get an alert.created event.
func (s *Service) ReportSpam(ctx context.Context, letterID id.LetterID, reason string) (*models.Alert, error) {
	letter, err := s.letters.Get(ctx, letterID)
	if err != nil {
		return nil, err
	}
	monitoring, err := s.monitoringOf(ctx, letter)
	if err != nil {
		return nil, err
	}

	a := &models.Alert{
		ID:        id.AlertID(uuid.New()),
		Reason:    reason,
		Status:    models.StatusOpen,
		LinkKind:  models.LinkLetter,
		LinkID:    letterID,
		UserAgent: SummarizeUserAgent(requestcontext.UserAgent(ctx)),
		ClientIP:  requestcontext.ClientIP(ctx),
		CreatedAt: requestcontext.Now(ctx),
	}
	if operatorID := requestcontext.OperatorID(ctx); !operatorID.IsNil() {
		a.AuthorID = &operatorID
	}
	if monitoring != nil {
		a.MonitoringID = &monitoring.ID
	}

	err = s.runner.RunInTx(ctx, func(ctx context.Context) error {
		if err := s.store.Create(ctx, a); err != nil {
			return err
		}
		if monitoring == nil || !monitoring.NotifyAlert || s.outbox == nil {
			return nil
		}
		entry, err := outbox.NewEntry(s.topic, a.ID.String(), eventAlertCreated, models.CreatedEvent{
			AlertID:      a.ID,
			MonitoringID: monitoring.ID,
			LetterID:     letterID,
			Reason:       a.Reason,
			CreatedAt:    a.CreatedAt,
		}, a.CreatedAt)
		if err != nil {
			return err
		}
		return s.outbox.Append(ctx, entry)
	})
	if err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to store alert")
	}

	if s.metrics != nil {
		s.metrics.IncrementReported(a.AuthorID == nil)
	}
	s.logger.InfoContext(ctx, "spam reported",
		"request_id", requestcontext.RequestID(ctx),
		"alert_id", a.ID,
		"letter_id", letterID,
	)
	return a, nil
}

// monitoringOf resolves the monitoring behind a letter. Unrecognized letters
// have none.
func (s *Service) monitoringOf(ctx context.Context, letter *letterModels.Letter) (*monitoringModels.Monitoring, error) {
	if letter.CaseID == nil {
		return nil, nil
	}
	c, err := s.cases.Get(ctx, *letter.CaseID)
	if err != nil {
		return nil, err
	}
	return s.directory.GetMonitoring(ctx, c.MonitoringID)
}

// Solve closes an open alert on behalf of the calling operator.
func (s *Service) Solve(ctx context.Context, alertID id.AlertID) (*models.Alert, error) {
	solverID := requestcontext.OperatorID(ctx)
	if solverID.IsNil() {
		return nil, dErrors.New(dErrors.CodeUnauthorized, "operator required")
	}
	a, err := s.store.Solve(ctx, alertID, solverID, requestcontext.Now(ctx))
	switch {
	case errors.Is(err, store.ErrNotFound):
		return nil, dErrors.New(dErrors.CodeNotFound, "alert not found")
	case errors.Is(err, store.ErrAlreadySolved):
		return nil, dErrors.New(dErrors.CodeConflict, "alert already solved")
	case err != nil:
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to solve alert")
	}
	if s.metrics != nil {
		s.metrics.IncrementSolved()
	}
	s.logger.InfoContext(ctx, "alert solved",
		"request_id", requestcontext.RequestID(ctx),
		"alert_id", alertID,
		"solver_id", solverID,
	)
	return a, nil
}

func (s *Service) List(ctx context.Context, status *models.Status) ([]*models.Alert, error) {
	alerts, err := s.store.List(ctx, status)
	if err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to list alerts")
	}
	return alerts, nil
}

// SummarizeUserAgent renders a User-Agent header as "Browser version (OS)".
// Bots are prefixed so moderators can discount them.
func SummarizeUserAgent(header string) string {
	header = strings.TrimSpace(header)
	if header == "" {
		return ""
	}
	ua := useragent.New(header)
	name, version := ua.Browser()
	summary := strings.TrimSpace(name + " " + version)
	if os := ua.OS(); os != "" {
		summary += " (" + os + ")"
	}
	if ua.Bot() {
		summary = "bot: " + summary
	}
	if summary == "" {
		return header
	}
	return summary
}
