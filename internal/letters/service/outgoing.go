package service

import (
	"bytes"
	"context"
	"io"
	"strings"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	caseModels "feder/internal/cases/models"
	"feder/internal/letters/eml"
	"feder/internal/letters/models"
	monitoringModels "feder/internal/monitorings/models"
	recordModels "feder/internal/records/models"
	id "feder/pkg/domain"
	dErrors "feder/pkg/domain-errors"
	"feder/pkg/email"
	"feder/pkg/requestcontext"
)

const footerSeparator = "\n\n-- \n"

type outgoing struct {
	c           *caseModels.Case
	institution *monitoringModels.Institution
	title       string
	body        string
}

// CreateOutgoing writes a letter from the case mailbox to the institution,
// with the monitoring's footer appended, and hands it to the relay.
func (s *Service) CreateOutgoing(ctx context.Context, caseID id.CaseID, req *models.CreateOutgoingRequest) (*models.Letter, error) {
	out, err := s.prepareOutgoing(ctx, caseID)
	if err != nil {
		return nil, err
	}
	monitoring, err := s.directory.GetMonitoring(ctx, out.c.MonitoringID)
	if err != nil {
		return nil, err
	}
	out.title = req.Title
	out.body = withFooter(req.Body, monitoring.EmailFooter)
	return s.send(ctx, out)
}

// Resend hands the stored message of an outgoing letter to the relay again.
// The letter keeps its ID and Message-ID, so delivery logs for either attempt
// match the same letter; nothing new is written.
func (s *Service) Resend(ctx context.Context, letterID id.LetterID) (*models.Letter, error) {
	letter, err := s.load(ctx, letterID)
	if err != nil {
		return nil, err
	}
	if letter.IsIncoming() || letter.CaseID == nil {
		return nil, dErrors.New(dErrors.CodeNotFound, "outgoing letter not found")
	}
	if letter.EMLKey == "" {
		return nil, dErrors.New(dErrors.CodeInvariantViolation, "outgoing letter has no stored message")
	}
	if s.mailer == nil {
		return nil, dErrors.New(dErrors.CodeUnavailable, "no mail relay configured")
	}
	out, err := s.prepareOutgoing(ctx, *letter.CaseID)
	if err != nil {
		return nil, err
	}
	raw, err := s.readEML(ctx, letter)
	if err != nil {
		return nil, err
	}

	ctx, span := otel.Tracer(tracerName).Start(ctx, "letters.Resend",
		trace.WithAttributes(attribute.String("letter_id", letter.ID.String())),
	)
	defer span.End()
	if err := s.deliver(ctx, span, letter, out, raw); err != nil {
		return nil, err
	}
	return letter, nil
}

func (s *Service) readEML(ctx context.Context, letter *models.Letter) ([]byte, error) {
	rc, err := s.openBlob(ctx, letter.EMLKey)
	if err != nil {
		return nil, err
	}
	r, err := eml.NewReader(rc, letter.EMLCompressed)
	if err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to open stored message")
	}
	defer r.Close()
	raw, err := io.ReadAll(r)
	if err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to read stored message")
	}
	return raw, nil
}

func (s *Service) prepareOutgoing(ctx context.Context, caseID id.CaseID) (*outgoing, error) {
	c, err := s.cases.Get(ctx, caseID)
	if err != nil {
		return nil, err
	}
	institution, err := s.directory.GetInstitution(ctx, c.InstitutionID)
	if err != nil {
		return nil, err
	}
	return &outgoing{c: c, institution: institution}, nil
}

func (s *Service) send(ctx context.Context, out *outgoing) (*models.Letter, error) {
	ctx, span := otel.Tracer(tracerName).Start(ctx, "letters.SendOutgoing",
		trace.WithAttributes(attribute.String("case_id", out.c.ID.String())),
	)
	defer span.End()

	now := requestcontext.Now(ctx)
	letterID := id.LetterID(uuid.New())
	msgID := eml.NewMessageID(email.Domain(out.c.Email))

	raw, err := eml.Compose(eml.Message{
		From:      out.c.Email,
		To:        out.institution.Email,
		Subject:   out.title,
		Body:      out.body,
		MessageID: msgID,
		Date:      now,
	})
	if err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to compose letter")
	}
	packed, err := eml.Compress(raw)
	if err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to compress letter")
	}

	caseID := out.c.ID
	letter := &models.Letter{
		ID:              letterID,
		CaseID:          &caseID,
		Direction:       models.DirectionOutgoing,
		Title:           out.title,
		Body:            out.body,
		FromAddress:     out.c.Email,
		MessageIDHeader: msgID,
		MessageType:     models.MessageRegular,
		Spam:            models.SpamUnknown,
		EMLKey:          models.EMLKeyFor(letterID, true),
		EMLCompressed:   true,
		CreatedAt:       now,
		Attachments:     []models.Attachment{},
	}
	if operatorID := requestcontext.OperatorID(ctx); !operatorID.IsNil() {
		letter.AuthorID = &operatorID
	}

	if err := s.blobs.Put(ctx, letter.EMLKey, bytes.NewReader(packed), int64(len(packed))); err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to store letter")
	}
	err = s.runner.RunInTx(ctx, func(ctx context.Context) error {
		record, err := s.records.Append(ctx, &caseID, recordModels.KindLetter, letterID)
		if err != nil {
			return err
		}
		letter.RecordID = record.ID
		return s.store.CreateLetter(ctx, letter)
	})
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "store failed")
		if _, coded := dErrors.From(err); coded {
			return nil, err
		}
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to store letter")
	}

	if s.mailer == nil {
		s.recordOutgoing("stored")
		s.logger.InfoContext(ctx, "outgoing letter stored without relay",
			"request_id", requestcontext.RequestID(ctx),
			"letter_id", letterID,
			"case_id", caseID,
		)
		return letter, nil
	}
	if err := s.deliver(ctx, span, letter, out, raw); err != nil {
		return nil, err
	}
	return letter, nil
}

func (s *Service) deliver(ctx context.Context, span trace.Span, letter *models.Letter, out *outgoing, raw []byte) error {
	if err := s.mailer.Send(ctx, letter.FromAddress, []string{out.institution.Email}, raw); err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "delivery failed")
		s.recordOutgoing("failed")
		s.logger.ErrorContext(ctx, "outgoing letter delivery failed",
			"request_id", requestcontext.RequestID(ctx),
			"letter_id", letter.ID,
			"case_id", out.c.ID,
			"error", err,
		)
		return dErrors.Wrap(err, dErrors.CodeUnavailable, "letter stored but delivery failed")
	}
	s.recordOutgoing("sent")
	s.logger.InfoContext(ctx, "outgoing letter sent",
		"request_id", requestcontext.RequestID(ctx),
		"letter_id", letter.ID,
		"case_id", out.c.ID,
		"to", out.institution.Email,
	)
	return nil
}

func (s *Service) recordOutgoing(result string) {
	if s.metrics != nil {
		s.metrics.IncrementOutgoing(result)
	}
}

func withFooter(body, footer string) string {
	footer = strings.TrimSpace(footer)
	if footer == "" {
		return body
	}
	return body + footerSeparator + footer
}
