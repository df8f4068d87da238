package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/lib/pq"

	"feder/internal/letters/models"
	id "feder/pkg/domain"
	txcontext "feder/pkg/platform/tx"
)

type PostgresStore struct {
	db *sql.DB
}

func NewPostgres(db *sql.DB) *PostgresStore {
	return &PostgresStore{db: db}
}

type dbExecutor interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

func (s *PostgresStore) execer(ctx context.Context) dbExecutor {
	if tx, ok := txcontext.From(ctx); ok {
		return tx
	}
	return s.db
}

const letterColumns = `id, record_id, case_id, direction, title, body, quote, html_body, html_quote,
	from_address, message_id_header, message_type, is_spam, eml_key, eml_compressed, author_id, created_at`

const attachmentColumns = `id, letter_id, filename, content_type, size, digest, blob_key, created_at`

func (s *PostgresStore) CreateLetter(ctx context.Context, l *models.Letter) error {
	query := `INSERT INTO letters (` + letterColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17)`
	_, err := s.execer(ctx).ExecContext(ctx, query,
		uuid.UUID(l.ID),
		uuid.UUID(l.RecordID),
		nullableCase(l.CaseID),
		string(l.Direction),
		l.Title,
		l.Body,
		l.Quote,
		l.HTMLBody,
		l.HTMLQuote,
		l.FromAddress,
		l.MessageIDHeader,
		string(l.MessageType),
		int(l.Spam),
		l.EMLKey,
		l.EMLCompressed,
		nullableOperator(l.AuthorID),
		l.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert letter: %w", err)
	}
	return nil
}

// CreateAttachment skips the row when the letter already holds the same
// (filename, digest) pair. A unique violation would abort the surrounding
// transaction, so the conflict is resolved in SQL.
func (s *PostgresStore) CreateAttachment(ctx context.Context, a *models.Attachment) error {
	query := `INSERT INTO attachments (` + attachmentColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		ON CONFLICT (letter_id, filename, digest) DO NOTHING`
	res, err := s.execer(ctx).ExecContext(ctx, query,
		uuid.UUID(a.ID), uuid.UUID(a.LetterID), a.Filename, a.ContentType, a.Size, a.Digest, a.BlobKey, a.CreatedAt)
	if err != nil {
		return fmt.Errorf("insert attachment: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("insert attachment: %w", err)
	}
	if n == 0 {
		return ErrDuplicateFile
	}
	return nil
}

func (s *PostgresStore) FindLetter(ctx context.Context, letterID id.LetterID) (*models.Letter, error) {
	query := `SELECT ` + letterColumns + ` FROM letters WHERE id = $1`
	l, err := scanLetter(s.execer(ctx).QueryRowContext(ctx, query, uuid.UUID(letterID)))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("find letter: %w", err)
	}
	if err := s.loadAttachments(ctx, []*models.Letter{l}); err != nil {
		return nil, err
	}
	return l, nil
}

func (s *PostgresStore) FindAttachment(ctx context.Context, letterID id.LetterID, attachmentID id.AttachmentID) (*models.Attachment, error) {
	query := `SELECT ` + attachmentColumns + ` FROM attachments WHERE id = $1 AND letter_id = $2`
	a, err := scanAttachment(s.execer(ctx).QueryRowContext(ctx, query, uuid.UUID(attachmentID), uuid.UUID(letterID)))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("find attachment: %w", err)
	}
	return a, nil
}

func (s *PostgresStore) FindAttachmentByID(ctx context.Context, attachmentID id.AttachmentID) (*models.Attachment, error) {
	query := `SELECT ` + attachmentColumns + ` FROM attachments WHERE id = $1`
	a, err := scanAttachment(s.execer(ctx).QueryRowContext(ctx, query, uuid.UUID(attachmentID)))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("find attachment: %w", err)
	}
	return a, nil
}

func (s *PostgresStore) ListByCase(ctx context.Context, caseID id.CaseID) ([]*models.Letter, error) {
	query := `SELECT ` + letterColumns + ` FROM letters
		WHERE case_id = $1 AND is_spam <> $2
		ORDER BY created_at, id`
	return s.list(ctx, query, uuid.UUID(caseID), int(models.SpamSpam))
}

func (s *PostgresStore) ListUnrecognized(ctx context.Context) ([]*models.Letter, error) {
	query := `SELECT ` + letterColumns + ` FROM letters
		WHERE case_id IS NULL AND direction = $1
		ORDER BY created_at, id`
	return s.list(ctx, query, string(models.DirectionIncoming))
}

func (s *PostgresStore) UpdateSpam(ctx context.Context, letterID id.LetterID, from, to models.SpamStatus) (bool, error) {
	res, err := s.execer(ctx).ExecContext(ctx,
		`UPDATE letters SET is_spam = $3 WHERE id = $1 AND is_spam = $2`,
		uuid.UUID(letterID), int(from), int(to))
	if err != nil {
		return false, fmt.Errorf("update spam status: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("update spam status: %w", err)
	}
	if n == 1 {
		return true, nil
	}
	if _, err := s.FindLetter(ctx, letterID); err != nil {
		return false, err
	}
	return false, nil
}

func (s *PostgresStore) AssignCase(ctx context.Context, letterID id.LetterID, caseID id.CaseID) error {
	res, err := s.execer(ctx).ExecContext(ctx,
		`UPDATE letters SET case_id = $2 WHERE id = $1 AND case_id IS NULL`,
		uuid.UUID(letterID), uuid.UUID(caseID))
	if err != nil {
		return fmt.Errorf("assign letter: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("assign letter: %w", err)
	}
	if n == 1 {
		return nil
	}
	if _, err := s.FindLetter(ctx, letterID); err != nil {
		return err
	}
	return ErrAlreadyOwned
}

func (s *PostgresStore) OutgoingMessageIndex(ctx context.Context) (map[string]id.LetterID, error) {
	rows, err := s.execer(ctx).QueryContext(ctx,
		`SELECT message_id_header, id FROM letters WHERE direction = $1 AND message_id_header <> ''`,
		string(models.DirectionOutgoing))
	if err != nil {
		return nil, fmt.Errorf("load outgoing message ids: %w", err)
	}
	defer rows.Close()
	index := make(map[string]id.LetterID)
	for rows.Next() {
		var msgID string
		var letterID uuid.UUID
		if err := rows.Scan(&msgID, &letterID); err != nil {
			return nil, fmt.Errorf("scan outgoing message id: %w", err)
		}
		index[msgID] = id.LetterID(letterID)
	}
	return index, rows.Err()
}

func (s *PostgresStore) list(ctx context.Context, query string, args ...any) ([]*models.Letter, error) {
	rows, err := s.execer(ctx).QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list letters: %w", err)
	}
	defer rows.Close()
	out := []*models.Letter{}
	for rows.Next() {
		l, err := scanLetter(rows)
		if err != nil {
			return nil, fmt.Errorf("scan letter: %w", err)
		}
		out = append(out, l)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	if err := s.loadAttachments(ctx, out); err != nil {
		return nil, err
	}
	return out, nil
}

func (s *PostgresStore) loadAttachments(ctx context.Context, letters []*models.Letter) error {
	if len(letters) == 0 {
		return nil
	}
	byID := make(map[id.LetterID]*models.Letter, len(letters))
	ids := make([]string, 0, len(letters))
	for _, l := range letters {
		l.Attachments = []models.Attachment{}
		byID[l.ID] = l
		ids = append(ids, l.ID.String())
	}
	query := `SELECT ` + attachmentColumns + ` FROM attachments
		WHERE letter_id = ANY($1::uuid[])
		ORDER BY filename, id`
	rows, err := s.execer(ctx).QueryContext(ctx, query, pq.Array(ids))
	if err != nil {
		return fmt.Errorf("load attachments: %w", err)
	}
	defer rows.Close()
	for rows.Next() {
		a, err := scanAttachment(rows)
		if err != nil {
			return fmt.Errorf("scan attachment: %w", err)
		}
		if l, ok := byID[a.LetterID]; ok {
			l.Attachments = append(l.Attachments, *a)
		}
	}
	return rows.Err()
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanLetter(row rowScanner) (*models.Letter, error) {
	var l models.Letter
	var letterID, recordID uuid.UUID
	var caseID, authorID uuid.NullUUID
	var direction, messageType string
	var spam int
	err := row.Scan(
		&letterID,
		&recordID,
		&caseID,
		&direction,
		&l.Title,
		&l.Body,
		&l.Quote,
		&l.HTMLBody,
		&l.HTMLQuote,
		&l.FromAddress,
		&l.MessageIDHeader,
		&messageType,
		&spam,
		&l.EMLKey,
		&l.EMLCompressed,
		&authorID,
		&l.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	l.ID = id.LetterID(letterID)
	l.RecordID = id.RecordID(recordID)
	l.Direction = models.Direction(direction)
	l.MessageType = models.MessageType(messageType)
	l.Spam = models.SpamStatus(spam)
	if caseID.Valid {
		c := id.CaseID(caseID.UUID)
		l.CaseID = &c
	}
	if authorID.Valid {
		a := id.OperatorID(authorID.UUID)
		l.AuthorID = &a
	}
	return &l, nil
}

func scanAttachment(row rowScanner) (*models.Attachment, error) {
	var a models.Attachment
	var attachmentID, letterID uuid.UUID
	if err := row.Scan(&attachmentID, &letterID, &a.Filename, &a.ContentType, &a.Size, &a.Digest, &a.BlobKey, &a.CreatedAt); err != nil {
		return nil, err
	}
	a.ID = id.AttachmentID(attachmentID)
	a.LetterID = id.LetterID(letterID)
	return &a, nil
}

func nullableCase(caseID *id.CaseID) uuid.NullUUID {
	if caseID == nil {
		return uuid.NullUUID{}
	}
	return uuid.NullUUID{UUID: uuid.UUID(*caseID), Valid: true}
}

func nullableOperator(operatorID *id.OperatorID) uuid.NullUUID {
	if operatorID == nil {
		return uuid.NullUUID{}
	}
	return uuid.NullUUID{UUID: uuid.UUID(*operatorID), Valid: true}
}
