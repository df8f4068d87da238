package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/lib/pq"

	"feder/internal/cases/models"
	"feder/internal/platform/postgres"
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

const caseColumns = `id, monitoring_id, institution_id, name, email, confirmation_received, response_received, created_at`

// Create inserts the case unless its address is already an alias. The unique
// index on cases.email covers the other direction.
func (s *PostgresStore) Create(ctx context.Context, c *models.Case) error {
	query := `
		INSERT INTO cases (` + caseColumns + `)
		SELECT $1, $2, $3, $4, $5, $6, $7, $8
		WHERE NOT EXISTS (SELECT 1 FROM case_aliases WHERE email = $5)
	`
	res, err := s.execer(ctx).ExecContext(ctx, query,
		uuid.UUID(c.ID),
		uuid.UUID(c.MonitoringID),
		uuid.UUID(c.InstitutionID),
		c.Name,
		c.Email,
		c.ConfirmationReceived,
		c.ResponseReceived,
		c.CreatedAt,
	)
	if err != nil {
		if postgres.IsUniqueViolation(err) {
			return ErrAddressUsed
		}
		return fmt.Errorf("insert case: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrAddressUsed
	}
	return nil
}

func (s *PostgresStore) AddAlias(ctx context.Context, alias *models.Alias) error {
	query := `
		INSERT INTO case_aliases (id, case_id, email, created_at)
		SELECT $1, $2, $3, $4
		WHERE EXISTS (SELECT 1 FROM cases WHERE id = $2)
		  AND NOT EXISTS (SELECT 1 FROM cases WHERE email = $3)
	`
	res, err := s.execer(ctx).ExecContext(ctx, query,
		uuid.UUID(alias.ID), uuid.UUID(alias.CaseID), alias.Email, alias.CreatedAt)
	if err != nil {
		if postgres.IsUniqueViolation(err) {
			return ErrAddressUsed
		}
		return fmt.Errorf("insert alias: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		if _, err := s.FindByID(ctx, alias.CaseID); err != nil {
			return err
		}
		return ErrAddressUsed
	}
	return nil
}

func (s *PostgresStore) FindByID(ctx context.Context, caseID id.CaseID) (*models.Case, error) {
	query := `SELECT ` + caseColumns + ` FROM cases WHERE id = $1`
	c, err := scanCase(s.execer(ctx).QueryRowContext(ctx, query, uuid.UUID(caseID)))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("find case: %w", err)
	}
	if err := s.loadAliases(ctx, []*models.Case{c}); err != nil {
		return nil, err
	}
	return c, nil
}

func (s *PostgresStore) FindByAddresses(ctx context.Context, addresses []string) (*models.Case, error) {
	if len(addresses) == 0 {
		return nil, ErrNotFound
	}
	query := `
		SELECT id FROM (
			SELECT id, 0 AS rank, created_at FROM cases WHERE email = ANY($1::text[])
			UNION ALL
			SELECT c.id, 1 AS rank, c.created_at
			FROM case_aliases a JOIN cases c ON c.id = a.case_id
			WHERE a.email = ANY($1::text[])
		) matches
		ORDER BY rank, created_at, id
		LIMIT 1
	`
	var rawID uuid.UUID
	err := s.execer(ctx).QueryRowContext(ctx, query, pq.Array(addresses)).Scan(&rawID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("match case address: %w", err)
	}
	return s.FindByID(ctx, id.CaseID(rawID))
}

// MarkMilestone ORs the flag in so concurrent deliveries can never lower it,
// and reports whether the flag was newly raised.
func (s *PostgresStore) MarkMilestone(ctx context.Context, caseID id.CaseID, milestone models.Milestone) (bool, error) {
	confirmation := milestone == models.MilestoneConfirmation
	response := milestone == models.MilestoneResponse
	query := `
		WITH prev AS (
			SELECT confirmation_received, response_received FROM cases WHERE id = $1 FOR UPDATE
		)
		UPDATE cases SET
			confirmation_received = cases.confirmation_received OR $2,
			response_received = cases.response_received OR $3
		FROM prev
		WHERE cases.id = $1
		RETURNING (NOT prev.confirmation_received AND $2) OR (NOT prev.response_received AND $3)
	`
	var changed bool
	err := s.execer(ctx).QueryRowContext(ctx, query, uuid.UUID(caseID), confirmation, response).Scan(&changed)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return false, ErrNotFound
		}
		return false, fmt.Errorf("mark milestone: %w", err)
	}
	return changed, nil
}

func (s *PostgresStore) List(ctx context.Context, filter models.ListFilter) ([]*models.Case, int, error) {
	var where []string
	var args []any
	arg := func(v any) string {
		args = append(args, v)
		return fmt.Sprintf("$%d", len(args))
	}
	if filter.MonitoringID != nil {
		where = append(where, "monitoring_id = "+arg(uuid.UUID(*filter.MonitoringID)))
	}
	if filter.InstitutionID != nil {
		where = append(where, "institution_id = "+arg(uuid.UUID(*filter.InstitutionID)))
	}
	if filter.Name != "" {
		where = append(where, "name ILIKE '%' || "+arg(escapeLike(filter.Name))+" || '%'")
	}
	if filter.ConfirmationReceived != nil {
		where = append(where, "confirmation_received = "+arg(*filter.ConfirmationReceived))
	}
	if filter.ResponseReceived != nil {
		where = append(where, "response_received = "+arg(*filter.ResponseReceived))
	}

	query := `SELECT ` + caseColumns + `, COUNT(*) OVER () FROM cases`
	if len(where) > 0 {
		query += " WHERE " + strings.Join(where, " AND ")
	}
	query += " ORDER BY created_at, id LIMIT " + arg(filter.Limit) + " OFFSET " + arg(filter.Offset)

	rows, err := s.execer(ctx).QueryContext(ctx, query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("list cases: %w", err)
	}
	defer rows.Close()

	cs := []*models.Case{}
	total := 0
	for rows.Next() {
		c, err := scanCase(rows, &total)
		if err != nil {
			return nil, 0, fmt.Errorf("scan case: %w", err)
		}
		cs = append(cs, c)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, err
	}
	if len(cs) == 0 && filter.Offset > 0 {
		// The window count is absent past the last page.
		if err := s.count(ctx, where, args[:len(args)-2], &total); err != nil {
			return nil, 0, err
		}
	}
	if err := s.loadAliases(ctx, cs); err != nil {
		return nil, 0, err
	}
	return cs, total, nil
}

func (s *PostgresStore) count(ctx context.Context, where []string, args []any, total *int) error {
	query := `SELECT COUNT(*) FROM cases`
	if len(where) > 0 {
		query += " WHERE " + strings.Join(where, " AND ")
	}
	if err := s.execer(ctx).QueryRowContext(ctx, query, args...).Scan(total); err != nil {
		return fmt.Errorf("count cases: %w", err)
	}
	return nil
}

func (s *PostgresStore) AddressIndex(ctx context.Context) (map[string]id.CaseID, error) {
	rows, err := s.execer(ctx).QueryContext(ctx, `SELECT email, id FROM cases`)
	if err != nil {
		return nil, fmt.Errorf("load case addresses: %w", err)
	}
	defer rows.Close()
	index := make(map[string]id.CaseID)
	for rows.Next() {
		var address string
		var rawID uuid.UUID
		if err := rows.Scan(&address, &rawID); err != nil {
			return nil, fmt.Errorf("scan case address: %w", err)
		}
		index[address] = id.CaseID(rawID)
	}
	return index, rows.Err()
}

func (s *PostgresStore) loadAliases(ctx context.Context, cs []*models.Case) error {
	if len(cs) == 0 {
		return nil
	}
	byID := make(map[id.CaseID]*models.Case, len(cs))
	ids := make([]string, 0, len(cs))
	for _, c := range cs {
		c.Aliases = []models.Alias{}
		byID[c.ID] = c
		ids = append(ids, c.ID.String())
	}
	query := `
		SELECT id, case_id, email, created_at FROM case_aliases
		WHERE case_id = ANY($1::uuid[])
		ORDER BY created_at, email
	`
	rows, err := s.execer(ctx).QueryContext(ctx, query, pq.Array(ids))
	if err != nil {
		return fmt.Errorf("load aliases: %w", err)
	}
	defer rows.Close()
	for rows.Next() {
		var a models.Alias
		var aliasID, caseID uuid.UUID
		if err := rows.Scan(&aliasID, &caseID, &a.Email, &a.CreatedAt); err != nil {
			return fmt.Errorf("scan alias: %w", err)
		}
		a.ID = id.AliasID(aliasID)
		a.CaseID = id.CaseID(caseID)
		if c, ok := byID[a.CaseID]; ok {
			c.Aliases = append(c.Aliases, a)
		}
	}
	return rows.Err()
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanCase(row rowScanner, extra ...any) (*models.Case, error) {
	var c models.Case
	var caseID, monitoringID, institutionID uuid.UUID
	dest := []any{&caseID, &monitoringID, &institutionID, &c.Name, &c.Email,
		&c.ConfirmationReceived, &c.ResponseReceived, &c.CreatedAt}
	if err := row.Scan(append(dest, extra...)...); err != nil {
		return nil, err
	}
	c.ID = id.CaseID(caseID)
	c.MonitoringID = id.MonitoringID(monitoringID)
	c.InstitutionID = id.InstitutionID(institutionID)
	return &c, nil
}

func escapeLike(s string) string {
	return strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`).Replace(s)
}
