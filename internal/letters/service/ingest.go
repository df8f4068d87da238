package service

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/hex"
	"errors"
	"mime"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"golang.org/x/crypto/blake2b"

	"feder/internal/letters/eml"
	"feder/internal/letters/models"
	"feder/internal/letters/store"
	recordModels "feder/internal/records/models"
	id "feder/pkg/domain"
	dErrors "feder/pkg/domain-errors"
	"feder/pkg/email"
	"feder/pkg/requestcontext"
)

const defaultContentType = "application/octet-stream"

// file is an attachment payload ready to be stored.
type file struct {
	filename    string
	contentType string
	content     []byte
	digest      string
}

// Ingest stores one inbound message, threads it to a case by recipient
// address and latches the case milestone. Unmatched messages become
// unrecognized letters. Redelivered message ids are acknowledged without
// storing anything.
func (s *Service) Ingest(ctx context.Context, in *models.InboundMessage) (*models.IngestResult, error) {
	start := time.Now()
	ctx, span := otel.Tracer(tracerName).Start(ctx, "letters.Ingest",
		trace.WithAttributes(
			attribute.Int("files", len(in.Files)),
			attribute.Bool("eml_compressed", in.Manifest.EML.Compressed),
		),
	)
	defer span.End()

	recovered := s.recoverHeaders(ctx, in)
	msgID := eml.TrimMessageID(in.Manifest.Headers.MessageID)
	if msgID == "" && recovered != nil {
		msgID = recovered.MessageID
	}

	claimed := false
	if s.dedup != nil && msgID != "" {
		first, err := s.dedup.Claim(ctx, msgID, s.dedupTTL)
		switch {
		case err != nil:
			s.logger.WarnContext(ctx, "message id dedup unavailable, ingesting anyway",
				"request_id", requestcontext.RequestID(ctx),
				"message_id", msgID,
				"error", err,
			)
		case !first:
			span.SetAttributes(attribute.Bool("duplicate", true))
			if s.metrics != nil {
				s.metrics.IncrementDuplicate()
			}
			s.logger.InfoContext(ctx, "duplicate webhook delivery acknowledged",
				"request_id", requestcontext.RequestID(ctx),
				"message_id", msgID,
			)
			return &models.IngestResult{Duplicate: true}, nil
		default:
			claimed = true
		}
	}

	result, err := s.ingest(ctx, in, recovered, msgID)
	if err != nil {
		if claimed {
			if relErr := s.dedup.Release(ctx, msgID); relErr != nil {
				s.logger.WarnContext(ctx, "failed to release message id claim",
					"message_id", msgID,
					"error", relErr,
				)
			}
		}
		span.RecordError(err)
		span.SetStatus(codes.Error, "ingest failed")
		return nil, err
	}

	span.SetAttributes(
		attribute.Bool("matched", result.Matched),
		attribute.String("letter_id", result.Letter.ID.String()),
		attribute.String("message_type", string(result.Letter.MessageType)),
	)
	if s.metrics != nil {
		s.metrics.IncrementIngested(result.Matched, result.Letter.MessageType)
		s.metrics.ObserveIngestDuration(time.Since(start).Seconds())
	}
	s.logger.InfoContext(ctx, "inbound letter stored",
		"request_id", requestcontext.RequestID(ctx),
		"letter_id", result.Letter.ID,
		"case_id", result.Letter.CaseID,
		"matched", result.Matched,
		"message_type", result.Letter.MessageType,
		"attachments", len(result.Letter.Attachments),
	)
	return result, nil
}

func (s *Service) ingest(ctx context.Context, in *models.InboundMessage, recovered *eml.Headers, msgID string) (*models.IngestResult, error) {
	m := &in.Manifest
	files, err := collectFiles(m, in.Files)
	if err != nil {
		return nil, err
	}

	matched, ok, err := s.cases.FindByAddresses(ctx, m.Recipients())
	if err != nil {
		return nil, err
	}

	letter := &models.Letter{
		ID:              id.LetterID(uuid.New()),
		Direction:       models.DirectionIncoming,
		Title:           m.Headers.Subject,
		Body:            m.Text.Content,
		Quote:           m.Text.Quote,
		HTMLBody:        m.Text.HTMLContent,
		HTMLQuote:       m.Text.HTMLQuote,
		FromAddress:     email.Normalize(m.Sender()),
		MessageIDHeader: msgID,
		MessageType:     models.ParseAutoReplyType(m.Headers.AutoReplyType),
		Spam:            models.SpamUnknown,
		CreatedAt:       requestcontext.Now(ctx),
		Attachments:     []models.Attachment{},
	}
	if recovered != nil {
		if letter.Title == "" {
			letter.Title = recovered.Subject
		}
		if letter.FromAddress == "" {
			letter.FromAddress = email.Normalize(recovered.From)
		}
	}
	if ok {
		caseID := matched.ID
		letter.CaseID = &caseID
	}

	if len(in.EML) > 0 {
		letter.EMLKey = models.EMLKeyFor(letter.ID, m.EML.Compressed)
		letter.EMLCompressed = m.EML.Compressed
		if err := s.blobs.Put(ctx, letter.EMLKey, bytes.NewReader(in.EML), int64(len(in.EML))); err != nil {
			return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to store raw message")
		}
	}

	reused, err := s.storeBlobs(ctx, files)
	if err != nil {
		return nil, err
	}

	err = s.runner.RunInTx(ctx, func(ctx context.Context) error {
		record, err := s.records.Append(ctx, letter.CaseID, recordModels.KindLetter, letter.ID)
		if err != nil {
			return err
		}
		letter.RecordID = record.ID
		if err := s.store.CreateLetter(ctx, letter); err != nil {
			return err
		}

		letter.Attachments = letter.Attachments[:0]
		attachmentIDs := make([]id.AttachmentID, 0, len(files))
		for _, f := range files {
			a := &models.Attachment{
				ID:          id.AttachmentID(uuid.New()),
				LetterID:    letter.ID,
				Filename:    f.filename,
				ContentType: f.contentType,
				Size:        int64(len(f.content)),
				Digest:      f.digest,
				BlobKey:     models.BlobKeyFor(f.digest),
				CreatedAt:   letter.CreatedAt,
			}
			if err := s.store.CreateAttachment(ctx, a); err != nil {
				if errors.Is(err, store.ErrDuplicateFile) {
					continue
				}
				return err
			}
			letter.Attachments = append(letter.Attachments, *a)
			attachmentIDs = append(attachmentIDs, a.ID)
		}

		if ok {
			if err := s.cases.MarkMilestone(ctx, matched.ID, letter.MessageType.Milestone()); err != nil {
				return err
			}
		}
		if s.scans != nil && len(attachmentIDs) > 0 {
			return s.scans.CreateRequests(ctx, attachmentIDs)
		}
		return nil
	})
	if err != nil {
		if _, coded := dErrors.From(err); coded {
			return nil, err
		}
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to store inbound letter")
	}

	if s.metrics != nil {
		s.metrics.AddAttachments(len(letter.Attachments), reused)
	}
	return &models.IngestResult{Letter: letter, Matched: ok}, nil
}

// recoverHeaders decodes the raw message to fill gaps in the manifest. A
// message that does not decode is still stored as received.
func (s *Service) recoverHeaders(ctx context.Context, in *models.InboundMessage) *eml.Headers {
	if len(in.EML) == 0 {
		return nil
	}
	raw := in.EML
	if in.Manifest.EML.Compressed {
		plain, err := eml.Decompress(raw)
		if err != nil {
			s.logger.WarnContext(ctx, "raw message does not decompress, keeping as received",
				"request_id", requestcontext.RequestID(ctx),
				"error", err,
			)
			return nil
		}
		raw = plain
	}
	h, err := eml.ReadHeaders(bytes.NewReader(raw))
	if err != nil {
		s.logger.WarnContext(ctx, "raw message headers do not parse, keeping as received",
			"request_id", requestcontext.RequestID(ctx),
			"error", err,
		)
		return nil
	}
	return h
}

// storeBlobs writes every payload not already present under its digest and
// returns how many were reused.
func (s *Service) storeBlobs(ctx context.Context, files []file) (int, error) {
	reused := 0
	written := make(map[string]struct{}, len(files))
	for _, f := range files {
		key := models.BlobKeyFor(f.digest)
		if _, done := written[key]; done {
			continue
		}
		exists, err := s.blobs.Exists(ctx, key)
		if err != nil {
			return 0, dErrors.Wrap(err, dErrors.CodeInternal, "failed to check attachment storage")
		}
		if exists {
			reused++
		} else if err := s.blobs.Put(ctx, key, bytes.NewReader(f.content), int64(len(f.content))); err != nil {
			return 0, dErrors.Wrap(err, dErrors.CodeInternal, "failed to store attachment")
		}
		written[key] = struct{}{}
	}
	return reused, nil
}

// collectFiles merges multipart parts with the manifest's inline files. A
// part wins over an inline file of the same name; identical (filename,
// digest) pairs are kept once.
func collectFiles(m *models.Manifest, parts []models.InboundFile) ([]file, error) {
	out := make([]file, 0, len(parts)+len(m.Files))
	seen := make(map[[2]string]struct{}, len(parts)+len(m.Files))
	provided := make(map[string]struct{}, len(parts))

	add := func(f file) {
		key := [2]string{f.filename, f.digest}
		if _, dup := seen[key]; dup {
			return
		}
		seen[key] = struct{}{}
		out = append(out, f)
	}

	for _, p := range parts {
		provided[p.Filename] = struct{}{}
		contentType := p.ContentType
		if contentType == "" {
			contentType = contentTypeFor(p.Filename)
		}
		add(file{filename: p.Filename, contentType: contentType, content: p.Content, digest: digest(p.Content)})
	}
	for _, mf := range m.Files {
		if _, ok := provided[mf.Filename]; ok {
			continue
		}
		content, err := base64.StdEncoding.DecodeString(mf.Content)
		if err != nil {
			return nil, dErrors.New(dErrors.CodeBadRequest, "file "+mf.Filename+" is not valid base64")
		}
		add(file{filename: mf.Filename, contentType: contentTypeFor(mf.Filename), content: content, digest: digest(content)})
	}
	return out, nil
}

func digest(content []byte) string {
	sum := blake2b.Sum256(content)
	return hex.EncodeToString(sum[:])
}

func contentTypeFor(filename string) string {
	if ct := mime.TypeByExtension(filepath.Ext(filename)); ct != "" {
		return ct
	}
	return defaultContentType
}
