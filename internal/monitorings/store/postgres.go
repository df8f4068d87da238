package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"feder/internal/monitorings/models"
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
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

func (s *PostgresStore) execer(ctx context.Context) dbExecutor {
	if tx, ok := txcontext.From(ctx); ok {
		return tx
	}
	return s.db
}

func (s *PostgresStore) CreateMonitoring(ctx context.Context, m *models.Monitoring) error {
	query := `
		INSERT INTO monitorings (id, name, email_footer, notify_alert, created_at)
		VALUES ($1, $2, $3, $4, $5)
	`
	_, err := s.execer(ctx).ExecContext(ctx, query,
		uuid.UUID(m.ID), m.Name, m.EmailFooter, m.NotifyAlert, m.CreatedAt)
	if err != nil {
		return fmt.Errorf("insert monitoring: %w", err)
	}
	return nil
}

func (s *PostgresStore) FindMonitoring(ctx context.Context, monitoringID id.MonitoringID) (*models.Monitoring, error) {
	query := `SELECT id, name, email_footer, notify_alert, created_at FROM monitorings WHERE id = $1`
	var m models.Monitoring
	var rawID uuid.UUID
	err := s.execer(ctx).QueryRowContext(ctx, query, uuid.UUID(monitoringID)).
		Scan(&rawID, &m.Name, &m.EmailFooter, &m.NotifyAlert, &m.CreatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("find monitoring: %w", err)
	}
	m.ID = id.MonitoringID(rawID)
	return &m, nil
}

func (s *PostgresStore) CreateInstitution(ctx context.Context, i *models.Institution) error {
	query := `
		INSERT INTO institutions (id, name, email, archival, created_at)
		VALUES ($1, $2, $3, $4, $5)
	`
	_, err := s.execer(ctx).ExecContext(ctx, query,
		uuid.UUID(i.ID), i.Name, i.Email, i.Archival, i.CreatedAt)
	if err != nil {
		return fmt.Errorf("insert institution: %w", err)
	}
	return nil
}

func (s *PostgresStore) FindInstitution(ctx context.Context, institutionID id.InstitutionID) (*models.Institution, error) {
	query := `SELECT id, name, email, archival, created_at FROM institutions WHERE id = $1`
	var i models.Institution
	var rawID uuid.UUID
	err := s.execer(ctx).QueryRowContext(ctx, query, uuid.UUID(institutionID)).
		Scan(&rawID, &i.Name, &i.Email, &i.Archival, &i.CreatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("find institution: %w", err)
	}
	i.ID = id.InstitutionID(rawID)
	return &i, nil
}
