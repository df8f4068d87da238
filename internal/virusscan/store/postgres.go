package store

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"feder/internal/virusscan/models"
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

const requestColumns = `id, attachment_id, status, engine_name, engine_id, engine_report, engine_link, created_at, updated_at`

func (s *PostgresStore) CreateMany(ctx context.Context, requests []*models.Request) error {
	if len(requests) == 0 {
		return nil
	}
	var (
		placeholders = make([]string, 0, len(requests))
		args         = make([]any, 0, len(requests)*9)
	)
	for i, r := range requests {
		base := i * 9
		placeholders = append(placeholders, fmt.Sprintf("($%d, $%d, $%d, $%d, $%d, $%d, $%d, $%d, $%d)",
			base+1, base+2, base+3, base+4, base+5, base+6, base+7, base+8, base+9))
		args = append(args,
			uuid.UUID(r.ID),
			uuid.UUID(r.AttachmentID),
			int(r.Status),
			r.EngineName,
			r.EngineID,
			reportBytes(r.EngineReport),
			r.EngineLink,
			r.CreatedAt,
			r.UpdatedAt,
		)
	}
	query := `INSERT INTO scan_requests (` + requestColumns + `) VALUES ` + strings.Join(placeholders, ", ")
	if _, err := s.execer(ctx).ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("insert scan requests: %w", err)
	}
	return nil
}

func (s *PostgresStore) ListByStatus(ctx context.Context, status models.Status, limit int) ([]*models.Request, error) {
	if limit <= 0 {
		limit = 100
	}
	query := `SELECT ` + requestColumns + ` FROM scan_requests
		WHERE status = $1 ORDER BY created_at, id LIMIT $2`
	return s.query(ctx, query, int(status), limit)
}

func (s *PostgresStore) List(ctx context.Context, filter models.ListFilter) ([]*models.Request, error) {
	limit := filter.Limit
	if filter.Status != nil {
		return s.ListByStatus(ctx, *filter.Status, limit)
	}
	if limit <= 0 {
		limit = 100
	}
	query := `SELECT ` + requestColumns + ` FROM scan_requests ORDER BY created_at, id LIMIT $1`
	return s.query(ctx, query, limit)
}

func (s *PostgresStore) Update(ctx context.Context, r *models.Request, from models.Status) (bool, error) {
	query := `
		UPDATE scan_requests
		SET status = $3, engine_name = $4, engine_id = $5, engine_report = $6, engine_link = $7, updated_at = $8
		WHERE id = $1 AND status = $2
	`
	res, err := s.execer(ctx).ExecContext(ctx, query,
		uuid.UUID(r.ID),
		int(from),
		int(r.Status),
		r.EngineName,
		r.EngineID,
		reportBytes(r.EngineReport),
		r.EngineLink,
		r.UpdatedAt,
	)
	if err != nil {
		return false, fmt.Errorf("update scan request: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("update scan request: %w", err)
	}
	return n == 1, nil
}

func (s *PostgresStore) AnyInfected(ctx context.Context, attachmentID id.AttachmentID) (bool, error) {
	var infected bool
	err := s.execer(ctx).QueryRowContext(ctx,
		`SELECT EXISTS (SELECT 1 FROM scan_requests WHERE attachment_id = $1 AND status = $2)`,
		uuid.UUID(attachmentID), int(models.StatusInfected),
	).Scan(&infected)
	if err != nil {
		return false, fmt.Errorf("check infected: %w", err)
	}
	return infected, nil
}

func (s *PostgresStore) query(ctx context.Context, query string, args ...any) ([]*models.Request, error) {
	rows, err := s.execer(ctx).QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list scan requests: %w", err)
	}
	defer rows.Close()
	out := make([]*models.Request, 0)
	for rows.Next() {
		var (
			r            models.Request
			requestID    uuid.UUID
			attachmentID uuid.UUID
			status       int
			report       []byte
		)
		if err := rows.Scan(&requestID, &attachmentID, &status, &r.EngineName, &r.EngineID,
			&report, &r.EngineLink, &r.CreatedAt, &r.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan scan request: %w", err)
		}
		r.ID = id.ScanRequestID(requestID)
		r.AttachmentID = id.AttachmentID(attachmentID)
		r.Status = models.Status(status)
		r.EngineReport = report
		out = append(out, &r)
	}
	return out, rows.Err()
}

func reportBytes(report []byte) []byte {
	if len(report) == 0 {
		return []byte("{}")
	}
	return report
}
