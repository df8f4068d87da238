package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"feder/internal/records/models"
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

const recordColumns = `id, case_id, kind, object_id, created_at`

func (s *PostgresStore) Append(ctx context.Context, r *models.Record) error {
	query := `INSERT INTO records (` + recordColumns + `) VALUES ($1, $2, $3, $4, $5)`
	_, err := s.execer(ctx).ExecContext(ctx, query,
		uuid.UUID(r.ID), nullableCase(r.CaseID), string(r.Kind), uuid.UUID(r.ObjectID), r.CreatedAt)
	if err != nil {
		return fmt.Errorf("insert record: %w", err)
	}
	return nil
}

func (s *PostgresStore) FindByID(ctx context.Context, recordID id.RecordID) (*models.Record, error) {
	query := `SELECT ` + recordColumns + ` FROM records WHERE id = $1`
	r, err := scanRecord(s.execer(ctx).QueryRowContext(ctx, query, uuid.UUID(recordID)))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("find record: %w", err)
	}
	return r, nil
}

func (s *PostgresStore) ListByCase(ctx context.Context, caseID id.CaseID) ([]*models.Record, error) {
	query := `SELECT ` + recordColumns + ` FROM records WHERE case_id = $1 ORDER BY created_at, id`
	return s.list(ctx, query, uuid.UUID(caseID))
}

func (s *PostgresStore) ListOrphans(ctx context.Context) ([]*models.Record, error) {
	query := `SELECT ` + recordColumns + ` FROM records WHERE case_id IS NULL ORDER BY created_at, id`
	return s.list(ctx, query)
}

// AdoptOrphan sets the case only while it is still NULL, so a record can be
// adopted at most once even under concurrent assignment.
func (s *PostgresStore) AdoptOrphan(ctx context.Context, recordID id.RecordID, caseID id.CaseID) (*models.Record, error) {
	query := `
		UPDATE records SET case_id = $2
		WHERE id = $1 AND case_id IS NULL
		RETURNING ` + recordColumns
	r, err := scanRecord(s.execer(ctx).QueryRowContext(ctx, query, uuid.UUID(recordID), uuid.UUID(caseID)))
	if err == nil {
		return r, nil
	}
	if !errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("adopt record: %w", err)
	}
	if _, findErr := s.FindByID(ctx, recordID); findErr != nil {
		return nil, findErr
	}
	return nil, ErrAlreadyOwned
}

func (s *PostgresStore) list(ctx context.Context, query string, args ...any) ([]*models.Record, error) {
	rows, err := s.execer(ctx).QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list records: %w", err)
	}
	defer rows.Close()
	out := []*models.Record{}
	for rows.Next() {
		r, err := scanRecord(rows)
		if err != nil {
			return nil, fmt.Errorf("scan record: %w", err)
		}
		out = append(out, r)
	}
	return out, rows.Err()
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanRecord(row rowScanner) (*models.Record, error) {
	var r models.Record
	var recordID, objectID uuid.UUID
	var caseID uuid.NullUUID
	var kind string
	if err := row.Scan(&recordID, &caseID, &kind, &objectID, &r.CreatedAt); err != nil {
		return nil, err
	}
	r.ID = id.RecordID(recordID)
	r.Kind = models.Kind(kind)
	r.ObjectID = id.LetterID(objectID)
	if caseID.Valid {
		c := id.CaseID(caseID.UUID)
		r.CaseID = &c
	}
	return &r, nil
}

func nullableCase(caseID *id.CaseID) uuid.NullUUID {
	if caseID == nil {
		return uuid.NullUUID{}
	}
	return uuid.NullUUID{UUID: uuid.UUID(*caseID), Valid: true}
}
