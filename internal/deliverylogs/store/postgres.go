package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"feder/internal/deliverylogs/models"
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

const logColumns = `l.id, l.case_id, l.letter_id, l.email_id, l."to", l.status, l.created_at, l.updated_at`

// Upsert creates the log for (case, email id, recipient) or moves an existing
// one to log.Status. The letter link is only written on creation. The bool
// reports whether a row was inserted.
func (s *PostgresStore) Upsert(ctx context.Context, log *models.EmailLog) (*models.EmailLog, bool, error) {
	query := `
		INSERT INTO email_logs AS l (id, case_id, letter_id, email_id, "to", status, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		ON CONFLICT (case_id, email_id, "to") DO UPDATE
		SET status = EXCLUDED.status, updated_at = EXCLUDED.updated_at
		WHERE l.status <> EXCLUDED.status
		RETURNING ` + logColumns + `, (xmax = 0) AS inserted
	`
	var letterID any
	if log.LetterID != nil {
		letterID = uuid.UUID(*log.LetterID)
	}
	row := s.execer(ctx).QueryRowContext(ctx, query,
		uuid.UUID(log.ID),
		uuid.UUID(log.CaseID),
		letterID,
		log.EmailID,
		log.To,
		string(log.Status),
		log.CreatedAt,
		log.UpdatedAt,
	)
	out, inserted, err := scanLogInserted(row)
	if errors.Is(err, sql.ErrNoRows) {
		// conflict with an unchanged status: nothing was written
		existing, err := s.findByKey(ctx, log.CaseID, log.EmailID, log.To)
		return existing, false, err
	}
	if err != nil {
		return nil, false, fmt.Errorf("upsert email log: %w", err)
	}
	return out, inserted, nil
}

func (s *PostgresStore) findByKey(ctx context.Context, caseID id.CaseID, emailID, to string) (*models.EmailLog, error) {
	query := `SELECT ` + logColumns + `, 0 FROM email_logs l WHERE l.case_id = $1 AND l.email_id = $2 AND l."to" = $3`
	out, err := scanLog(s.execer(ctx).QueryRowContext(ctx, query, uuid.UUID(caseID), emailID, to))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("find email log: %w", err)
	}
	return out, nil
}

func (s *PostgresStore) AppendRecord(ctx context.Context, rec *models.LogRecord) error {
	query := `INSERT INTO log_records (id, email_log_id, data, created_at) VALUES ($1, $2, $3, $4)`
	_, err := s.execer(ctx).ExecContext(ctx, query,
		uuid.UUID(rec.ID), uuid.UUID(rec.EmailLogID), []byte(rec.Data), rec.CreatedAt)
	if err != nil {
		return fmt.Errorf("insert log record: %w", err)
	}
	return nil
}

func (s *PostgresStore) Find(ctx context.Context, logID id.EmailLogID) (*models.EmailLog, error) {
	query := `
		SELECT ` + logColumns + `, (SELECT count(*) FROM log_records r WHERE r.email_log_id = l.id)
		FROM email_logs l WHERE l.id = $1
	`
	out, err := scanLog(s.execer(ctx).QueryRowContext(ctx, query, uuid.UUID(logID)))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("find email log: %w", err)
	}
	return out, nil
}

func (s *PostgresStore) ListByCase(ctx context.Context, caseID id.CaseID) ([]*models.EmailLog, error) {
	query := `
		SELECT ` + logColumns + `, (SELECT count(*) FROM log_records r WHERE r.email_log_id = l.id)
		FROM email_logs l WHERE l.case_id = $1
		ORDER BY l.created_at, l.id
	`
	rows, err := s.execer(ctx).QueryContext(ctx, query, uuid.UUID(caseID))
	if err != nil {
		return nil, fmt.Errorf("list email logs: %w", err)
	}
	defer rows.Close()
	out := make([]*models.EmailLog, 0)
	for rows.Next() {
		l, err := scanLog(rows)
		if err != nil {
			return nil, fmt.Errorf("scan email log: %w", err)
		}
		out = append(out, l)
	}
	return out, rows.Err()
}

func (s *PostgresStore) ListRecords(ctx context.Context, logID id.EmailLogID) ([]models.LogRecord, error) {
	query := `
		SELECT id, email_log_id, data, created_at FROM log_records
		WHERE email_log_id = $1 ORDER BY created_at, id
	`
	rows, err := s.execer(ctx).QueryContext(ctx, query, uuid.UUID(logID))
	if err != nil {
		return nil, fmt.Errorf("list log records: %w", err)
	}
	defer rows.Close()
	out := make([]models.LogRecord, 0)
	for rows.Next() {
		var (
			rec      models.LogRecord
			recID    uuid.UUID
			parentID uuid.UUID
			data     []byte
		)
		if err := rows.Scan(&recID, &parentID, &data, &rec.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan log record: %w", err)
		}
		rec.ID = id.LogRecordID(recID)
		rec.EmailLogID = id.EmailLogID(parentID)
		rec.Data = data
		out = append(out, rec)
	}
	return out, rows.Err()
}

type scanner interface {
	Scan(dest ...any) error
}

func scanLog(row scanner) (*models.EmailLog, error) {
	var count int
	l, err := scanInto(row, &count)
	if err != nil {
		return nil, err
	}
	l.RecordCount = count
	return l, nil
}

func scanLogInserted(row scanner) (*models.EmailLog, bool, error) {
	var inserted bool
	l, err := scanInto(row, &inserted)
	return l, inserted, err
}

func scanInto(row scanner, extra any) (*models.EmailLog, error) {
	var (
		l        models.EmailLog
		logID    uuid.UUID
		caseID   uuid.UUID
		letterID uuid.NullUUID
		status   string
	)
	if err := row.Scan(&logID, &caseID, &letterID, &l.EmailID, &l.To, &status, &l.CreatedAt, &l.UpdatedAt, extra); err != nil {
		return nil, err
	}
	l.ID = id.EmailLogID(logID)
	l.CaseID = id.CaseID(caseID)
	if letterID.Valid {
		lid := id.LetterID(letterID.UUID)
		l.LetterID = &lid
	}
	l.Status = models.Status(status)
	return &l, nil
}
