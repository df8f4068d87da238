package service

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"time"

	caseModels "feder/internal/cases/models"
	"feder/internal/letters/eml"
	"feder/internal/letters/metrics"
	"feder/internal/letters/models"
	"feder/internal/letters/store"
	monitoringModels "feder/internal/monitorings/models"
	"feder/internal/platform/blob"
	recordModels "feder/internal/records/models"
	id "feder/pkg/domain"
	dErrors "feder/pkg/domain-errors"
	"feder/pkg/platform/tx"
	"feder/pkg/requestcontext"
)

const tracerName = "feder/letters"

//go:generate mockgen -source=service.go -destination=mocks/mocks.go -package=mocks
type Store interface {
	CreateLetter(ctx context.Context, l *models.Letter) error
	CreateAttachment(ctx context.Context, a *models.Attachment) error
	FindLetter(ctx context.Context, letterID id.LetterID) (*models.Letter, error)
	FindAttachment(ctx context.Context, letterID id.LetterID, attachmentID id.AttachmentID) (*models.Attachment, error)
	ListByCase(ctx context.Context, caseID id.CaseID) ([]*models.Letter, error)
	ListUnrecognized(ctx context.Context) ([]*models.Letter, error)
	UpdateSpam(ctx context.Context, letterID id.LetterID, from, to models.SpamStatus) (bool, error)
	AssignCase(ctx context.Context, letterID id.LetterID, caseID id.CaseID) error
	OutgoingMessageIndex(ctx context.Context) (map[string]id.LetterID, error)
}

// Cases resolves recipient addresses and latches case milestones.
type Cases interface {
	Get(ctx context.Context, caseID id.CaseID) (*caseModels.Case, error)
	FindByAddresses(ctx context.Context, addresses []string) (*caseModels.Case, bool, error)
	MarkMilestone(ctx context.Context, caseID id.CaseID, milestone caseModels.Milestone) error
}

type Directory interface {
	GetMonitoring(ctx context.Context, monitoringID id.MonitoringID) (*monitoringModels.Monitoring, error)
	GetInstitution(ctx context.Context, institutionID id.InstitutionID) (*monitoringModels.Institution, error)
}

type Records interface {
	Append(ctx context.Context, caseID *id.CaseID, kind recordModels.Kind, objectID id.LetterID) (*recordModels.Record, error)
	AdoptOrphan(ctx context.Context, recordID id.RecordID, caseID id.CaseID) (*recordModels.Record, error)
}

// Scans queues attachments for virus scanning and reports verdicts.
type Scans interface {
	CreateRequests(ctx context.Context, attachmentIDs []id.AttachmentID) error
	IsInfected(ctx context.Context, attachmentID id.AttachmentID) (bool, error)
}

// Dedup remembers message ids already ingested.
type Dedup interface {
	Claim(ctx context.Context, key string, ttl time.Duration) (bool, error)
	Release(ctx context.Context, key string) error
}

type Mailer interface {
	Send(ctx context.Context, from string, to []string, msg []byte) error
}

type Service struct {
	store     Store
	blobs     blob.Store
	cases     Cases
	directory Directory
	records   Records
	runner    tx.Runner
	scans     Scans
	dedup     Dedup
	dedupTTL  time.Duration
	mailer    Mailer
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

func WithScans(scans Scans) Option {
	return func(s *Service) {
		s.scans = scans
	}
}

// WithDedup drops webhook deliveries whose message id was seen within ttl.
func WithDedup(d Dedup, ttl time.Duration) Option {
	return func(s *Service) {
		s.dedup = d
		s.dedupTTL = ttl
	}
}

// WithMailer enables SMTP delivery of outgoing letters. Without it outgoing
// letters are only stored.
func WithMailer(m Mailer) Option {
	return func(s *Service) {
		s.mailer = m
	}
}

func New(store Store, blobs blob.Store, cases Cases, directory Directory, records Records, runner tx.Runner, opts ...Option) *Service {
	s := &Service{
		store:     store,
		blobs:     blobs,
		cases:     cases,
		directory: directory,
		records:   records,
		runner:    runner,
		dedupTTL:  24 * time.Hour,
		logger:    slog.Default(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Get returns a letter with its attachments. Spam is hidden.
func (s *Service) Get(ctx context.Context, letterID id.LetterID) (*models.Letter, error) {
	l, err := s.load(ctx, letterID)
	if err != nil {
		return nil, err
	}
	if l.IsSpam() {
		return nil, errLetterNotFound
	}
	return l, nil
}

// ListByCase returns the case's letters in timeline order, without spam.
func (s *Service) ListByCase(ctx context.Context, caseID id.CaseID) ([]*models.Letter, error) {
	if _, err := s.cases.Get(ctx, caseID); err != nil {
		return nil, err
	}
	letters, err := s.store.ListByCase(ctx, caseID)
	if err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to list letters")
	}
	return letters, nil
}

func (s *Service) ListUnrecognized(ctx context.Context) ([]*models.Letter, error) {
	letters, err := s.store.ListUnrecognized(ctx)
	if err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to list unrecognized letters")
	}
	return letters, nil
}

// OutgoingMessageIndex maps outgoing Message-ID values to their letters.
func (s *Service) OutgoingMessageIndex(ctx context.Context) (map[string]id.LetterID, error) {
	index, err := s.store.OutgoingMessageIndex(ctx)
	if err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to load outgoing message ids")
	}
	return index, nil
}

// OpenEML streams the raw message as plain text, inflating stored
// compressed copies.
func (s *Service) OpenEML(ctx context.Context, letterID id.LetterID) (io.ReadCloser, error) {
	l, err := s.Get(ctx, letterID)
	if err != nil {
		return nil, err
	}
	if !l.HasEML() {
		return nil, dErrors.New(dErrors.CodeNotFound, "letter has no raw message")
	}
	rc, err := s.openBlob(ctx, l.EMLKey)
	if err != nil {
		return nil, err
	}
	plain, err := eml.NewReader(rc, l.EMLCompressed)
	if err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to read raw message")
	}
	return plain, nil
}

// OpenAttachment streams an attachment unless any scan flagged it as
// infected.
func (s *Service) OpenAttachment(ctx context.Context, letterID id.LetterID, attachmentID id.AttachmentID) (*models.Attachment, io.ReadCloser, error) {
	if _, err := s.Get(ctx, letterID); err != nil {
		return nil, nil, err
	}
	a, err := s.store.FindAttachment(ctx, letterID, attachmentID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, nil, dErrors.New(dErrors.CodeNotFound, "attachment not found")
		}
		return nil, nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to load attachment")
	}
	if s.scans != nil {
		infected, err := s.scans.IsInfected(ctx, attachmentID)
		if err != nil {
			return nil, nil, err
		}
		if infected {
			s.logger.WarnContext(ctx, "blocked infected attachment download",
				"request_id", requestcontext.RequestID(ctx),
				"attachment_id", attachmentID,
			)
			return nil, nil, dErrors.New(dErrors.CodeForbidden, "attachment is infected")
		}
	}
	rc, err := s.openBlob(ctx, a.BlobKey)
	if err != nil {
		return nil, nil, err
	}
	return a, rc, nil
}

// MarkSpam applies a moderator verdict. Re-applying the current verdict is a
// no-op; any other change away from unknown is a conflict.
func (s *Service) MarkSpam(ctx context.Context, letterID id.LetterID, target models.SpamStatus) (*models.Letter, error) {
	l, err := s.load(ctx, letterID)
	if err != nil {
		return nil, err
	}
	if l.Spam == target {
		return l, nil
	}
	if !l.Spam.CanTransitionTo(target) {
		return nil, spamConflict(l.Spam, target)
	}
	updated, err := s.store.UpdateSpam(ctx, letterID, l.Spam, target)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, errLetterNotFound
		}
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to update spam status")
	}
	if !updated {
		current, err := s.load(ctx, letterID)
		if err != nil {
			return nil, err
		}
		if current.Spam == target {
			return current, nil
		}
		return nil, spamConflict(current.Spam, target)
	}
	l.Spam = target
	if s.metrics != nil {
		s.metrics.IncrementSpamMarked(target)
	}
	s.logger.InfoContext(ctx, "letter spam status changed",
		"request_id", requestcontext.RequestID(ctx),
		"letter_id", letterID,
		"spam", target.String(),
	)
	return l, nil
}

// Assign moves an unrecognized letter into a case and latches the case
// milestone the letter would have raised on arrival.
func (s *Service) Assign(ctx context.Context, letterID id.LetterID, caseID id.CaseID) (*models.Letter, error) {
	l, err := s.load(ctx, letterID)
	if err != nil {
		return nil, err
	}
	if l.CaseID != nil {
		return nil, dErrors.New(dErrors.CodeConflict, "letter already belongs to a case")
	}
	if _, err := s.cases.Get(ctx, caseID); err != nil {
		return nil, err
	}

	err = s.runner.RunInTx(ctx, func(ctx context.Context) error {
		if _, err := s.records.AdoptOrphan(ctx, l.RecordID, caseID); err != nil {
			return err
		}
		if err := s.store.AssignCase(ctx, letterID, caseID); err != nil {
			if errors.Is(err, store.ErrAlreadyOwned) {
				return dErrors.New(dErrors.CodeConflict, "letter already belongs to a case")
			}
			return err
		}
		if l.IsIncoming() {
			return s.cases.MarkMilestone(ctx, caseID, l.MessageType.Milestone())
		}
		return nil
	})
	if err != nil {
		if _, ok := dErrors.From(err); ok {
			return nil, err
		}
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to assign letter")
	}
	l.CaseID = &caseID
	s.logger.InfoContext(ctx, "letter assigned",
		"request_id", requestcontext.RequestID(ctx),
		"letter_id", letterID,
		"case_id", caseID,
	)
	return l, nil
}

var errLetterNotFound = dErrors.New(dErrors.CodeNotFound, "letter not found")

func (s *Service) load(ctx context.Context, letterID id.LetterID) (*models.Letter, error) {
	l, err := s.store.FindLetter(ctx, letterID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, errLetterNotFound
		}
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to load letter")
	}
	return l, nil
}

func (s *Service) openBlob(ctx context.Context, key string) (io.ReadCloser, error) {
	rc, err := s.blobs.Open(ctx, key)
	if err != nil {
		if errors.Is(err, blob.ErrNoSuchBlob) {
			return nil, dErrors.New(dErrors.CodeNotFound, "stored content missing")
		}
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to open stored content")
	}
	return rc, nil
}

func spamConflict(from, to models.SpamStatus) error {
	return dErrors.New(dErrors.CodeConflict, "spam status cannot change from "+from.String()+" to "+to.String())
}
