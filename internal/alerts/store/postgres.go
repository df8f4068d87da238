package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"feder/internal/alerts/models"
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

const alertColumns = `id, monitoring_id, reason, author_id, solver_id, status, link_kind, link_id, user_agent, client_ip, created_at, solved_at`

func (s *PostgresStore) Create(ctx context.Context, a *models.Alert) error {
	query := `INSERT INTO alerts (` + alertColumns + `) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)`
	_, err := s.execer(ctx).ExecContext(ctx, query,
		uuid.UUID(a.ID),
		nullableUUID(a.MonitoringID),
		a.Reason,
		nullableUUID(a.AuthorID),
		nullableUUID(a.SolverID),
		string(a.Status),
		a.LinkKind,
		uuid.UUID(a.LinkID),
		a.UserAgent,
		a.ClientIP,
		a.CreatedAt,
		a.SolvedAt,
	)
	if err != nil {
		return fmt.Errorf("insert alert: %w", err)
	}
	return nil
}

func (s *PostgresStore) Find(ctx context.Context, alertID id.AlertID) (*models.Alert, error) {
	query := `SELECT ` + alertColumns + ` FROM alerts WHERE id = $1`
	a, err := scanAlert(s.execer(ctx).QueryRowContext(ctx, query, uuid.UUID(alertID)))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("find alert: %w", err)
	}
	return a, nil
}

func (s *PostgresStore) Solve(ctx context.Context, alertID id.AlertID, solverID id.OperatorID, at time.Time) (*models.Alert, error) {
	query := `
		UPDATE alerts SET status = $2, solver_id = $3, solved_at = $4
		WHERE id = $1 AND status = $5
		RETURNING ` + alertColumns
	a, err := scanAlert(s.execer(ctx).QueryRowContext(ctx, query,
		uuid.UUID(alertID), string(models.StatusSolved), uuid.UUID(solverID), at, string(models.StatusOpen)))
	if errors.Is(err, sql.ErrNoRows) {
		if _, findErr := s.Find(ctx, alertID); findErr != nil {
			return nil, findErr
		}
		return nil, ErrAlreadySolved
	}
	if err != nil {
		return nil, fmt.Errorf("solve alert: %w", err)
	}
	return a, nil
}

func (s *PostgresStore) List(ctx context.Context, status *models.Status) ([]*models.Alert, error) {
	query := `SELECT ` + alertColumns + ` FROM alerts`
	args := []any{}
	if status != nil {
		query += ` WHERE status = $1`
		args = append(args, string(*status))
	}
	query += ` ORDER BY created_at DESC, id`
	rows, err := s.execer(ctx).QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list alerts: %w", err)
	}
	defer rows.Close()
	out := make([]*models.Alert, 0)
	for rows.Next() {
		a, err := scanAlert(rows)
		if err != nil {
			return nil, fmt.Errorf("scan alert: %w", err)
		}
		out = append(out, a)
	}
	return out, rows.Err()
}

type scanner interface {
	Scan(dest ...any) error
}

func scanAlert(row scanner) (*models.Alert, error) {
	var (
		a            models.Alert
		alertID      uuid.UUID
		monitoringID uuid.NullUUID
		authorID     uuid.NullUUID
		solverID     uuid.NullUUID
		status       string
		linkID       uuid.UUID
		solvedAt     sql.NullTime
	)
	if err := row.Scan(&alertID, &monitoringID, &a.Reason, &authorID, &solverID, &status,
		&a.LinkKind, &linkID, &a.UserAgent, &a.ClientIP, &a.CreatedAt, &solvedAt); err != nil {
		return nil, err
	}
	a.ID = id.AlertID(alertID)
	a.Status = models.Status(status)
	a.LinkID = id.LetterID(linkID)
	if monitoringID.Valid {
		m := id.MonitoringID(monitoringID.UUID)
		a.MonitoringID = &m
	}
	if authorID.Valid {
		o := id.OperatorID(authorID.UUID)
		a.AuthorID = &o
	}
	if solverID.Valid {
		o := id.OperatorID(solverID.UUID)
		a.SolverID = &o
	}
	if solvedAt.Valid {
		t := solvedAt.Time
		a.SolvedAt = &t
	}
	return &a, nil
}

// nullableUUID stores nil pointers as NULL.
func nullableUUID[T ~[16]byte](v *T) any {
	if v == nil {
		return nil
	}
	return uuid.UUID(*v)
}
