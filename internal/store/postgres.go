package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	_ "github.com/lib/pq"
	"go.uber.org/zap"

	"github.com/mgerber/venue-forecast/internal/scenario"
)

// PostgresStore persists scenarios in a single table with the inputs and
// metrics held as JSONB documents.
type PostgresStore struct {
	db     *sql.DB
	logger *zap.Logger
}

// NewPostgresStore opens a connection with the given DSN, verifies it, and
// ensures the scenarios table exists.
func NewPostgresStore(ctx context.Context, dsn string, logger *zap.Logger) (*PostgresStore, error) {
	if logger == nil {
		logger = zap.NewNop()
	}

	db, err := sql.Open("postgres", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	ps := &PostgresStore{db: db, logger: logger}
	if err := ps.ensureSchema(ctx); err != nil {
		_ = db.Close()
		return nil, err
	}
	return ps, nil
}

// NewPostgresStoreWithDB wraps an existing database handle; used in tests.
func NewPostgresStoreWithDB(db *sql.DB, logger *zap.Logger) *PostgresStore {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &PostgresStore{db: db, logger: logger}
}

func (ps *PostgresStore) ensureSchema(ctx context.Context) error {
	query := `
		CREATE TABLE IF NOT EXISTS scenarios (
			id             TEXT PRIMARY KEY,
			name           TEXT NOT NULL,
			schema_version INTEGER NOT NULL DEFAULT 1,
			created_at     TIMESTAMPTZ NOT NULL,
			updated_at     TIMESTAMPTZ NOT NULL,
			inputs         JSONB NOT NULL,
			metrics        JSONB NOT NULL
		)`
	if _, err := ps.db.ExecContext(ctx, query); err != nil {
		return fmt.Errorf("failed to ensure scenarios table: %w", err)
	}
	return nil
}

// Close releases the underlying database handle.
func (ps *PostgresStore) Close() error {
	return ps.db.Close()
}

// Save upserts the scenario under its id; the last writer wins.
func (ps *PostgresStore) Save(ctx context.Context, s *scenario.Scenario) error {
	if s.ID == "" {
		return fmt.Errorf("scenario id must not be empty")
	}

	inputs, err := json.Marshal(s.Inputs)
	if err != nil {
		return fmt.Errorf("failed to encode inputs for scenario %s: %w", s.ID, err)
	}
	metrics, err := json.Marshal(s.Metrics)
	if err != nil {
		return fmt.Errorf("failed to encode metrics for scenario %s: %w", s.ID, err)
	}

	query := `
		INSERT INTO scenarios (id, name, schema_version, created_at, updated_at, inputs, metrics)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		ON CONFLICT (id) DO UPDATE SET
			name = EXCLUDED.name,
			schema_version = EXCLUDED.schema_version,
			updated_at = EXCLUDED.updated_at,
			inputs = EXCLUDED.inputs,
			metrics = EXCLUDED.metrics`
	if _, err := ps.db.ExecContext(ctx, query, s.ID, s.Name, s.SchemaVersion, s.CreatedAt, s.UpdatedAt, inputs, metrics); err != nil {
		return fmt.Errorf("failed to save scenario %s: %w", s.ID, err)
	}

	ps.logger.Debug("scenario saved",
		zap.String("op", "store.PostgresStore.Save"),
		zap.String("id", s.ID),
	)
	return nil
}

// Load reads and migrates one scenario by id.
func (ps *PostgresStore) Load(ctx context.Context, id string) (*scenario.Scenario, error) {
	query := `
		SELECT id, name, schema_version, created_at, updated_at, inputs, metrics
		FROM scenarios
		WHERE id = $1`
	s, err := ps.scanScenario(ps.db.QueryRowContext(ctx, query, id))
	if err != nil {
		return nil, err
	}
	migrateLoaded(s)
	return s, nil
}

// Delete removes one scenario by id.
func (ps *PostgresStore) Delete(ctx context.Context, id string) error {
	result, err := ps.db.ExecContext(ctx, `DELETE FROM scenarios WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete scenario %s: %w", id, err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to check delete result for scenario %s: %w", id, err)
	}
	if affected == 0 {
		return ErrNotFound
	}
	return nil
}

// List loads every scenario sorted most recently updated first.
func (ps *PostgresStore) List(ctx context.Context) ([]scenario.Scenario, error) {
	query := `
		SELECT id, name, schema_version, created_at, updated_at, inputs, metrics
		FROM scenarios
		ORDER BY updated_at DESC`
	rows, err := ps.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list scenarios: %w", err)
	}
	defer func() {
		_ = rows.Close()
	}()

	var scenarios []scenario.Scenario
	for rows.Next() {
		s, err := ps.scanScenario(rows)
		if err != nil {
			return nil, err
		}
		migrateLoaded(s)
		scenarios = append(scenarios, *s)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate scenarios: %w", err)
	}
	return scenarios, nil
}

// rowScanner covers both *sql.Row and *sql.Rows.
type rowScanner interface {
	Scan(dest ...interface{}) error
}

func (ps *PostgresStore) scanScenario(row rowScanner) (*scenario.Scenario, error) {
	var s scenario.Scenario
	var inputs, metrics []byte

	err := row.Scan(&s.ID, &s.Name, &s.SchemaVersion, &s.CreatedAt, &s.UpdatedAt, &inputs, &metrics)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to scan scenario: %w", err)
	}

	if err := json.Unmarshal(inputs, &s.Inputs); err != nil {
		return nil, fmt.Errorf("failed to decode inputs for scenario %s: %w", s.ID, err)
	}
	if err := json.Unmarshal(metrics, &s.Metrics); err != nil {
		return nil, fmt.Errorf("failed to decode metrics for scenario %s: %w", s.ID, err)
	}
	return &s, nil
}

// compile-time interface checks
var (
	_ Store = (*FileStore)(nil)
	_ Store = (*PostgresStore)(nil)
)
