// Package postgres stores run history in PostgreSQL.
package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/JonMunkholm/pm3import/internal/history"
)

const schema = `
CREATE TABLE IF NOT EXISTS import_runs (
	id                 UUID PRIMARY KEY,
	started_at         TIMESTAMPTZ NOT NULL,
	duration_ms        BIGINT NOT NULL,
	source             TEXT NOT NULL,
	target             TEXT NOT NULL,
	base_year          INTEGER NOT NULL,
	backup_dir         TEXT NOT NULL DEFAULT '',
	clubs_imported     INTEGER NOT NULL,
	players_imported   INTEGER NOT NULL,
	players_skipped    INTEGER NOT NULL,
	clubs_dropped      INTEGER NOT NULL,
	players_orphaned   INTEGER NOT NULL,
	players_unassigned INTEGER NOT NULL,
	tier_overflow      INTEGER NOT NULL,
	error              TEXT NOT NULL DEFAULT ''
);
CREATE INDEX IF NOT EXISTS import_runs_started_at ON import_runs (started_at DESC)`

// Options configures the connection pool.
type Options struct {
	URL      string
	MaxConns int32
	MinConns int32
}

// Store provides PostgreSQL-backed run history.
type Store struct {
	pool *pgxpool.Pool
}

// Open connects to the database, verifies it and creates the schema.
func Open(ctx context.Context, opts Options) (*Store, error) {
	poolConfig, err := pgxpool.ParseConfig(opts.URL)
	if err != nil {
		return nil, fmt.Errorf("parse database url: %w", err)
	}
	if opts.MaxConns > 0 {
		poolConfig.MaxConns = opts.MaxConns
	}
	if opts.MinConns > 0 {
		poolConfig.MinConns = opts.MinConns
	}

	pool, err := pgxpool.NewWithConfig(ctx, poolConfig)
	if err != nil {
		return nil, fmt.Errorf("create pool: %w", err)
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}

	s := New(pool)
	if err := s.EnsureSchema(ctx); err != nil {
		pool.Close()
		return nil, err
	}
	return s, nil
}

// New wraps an existing pool. The store takes ownership of it.
func New(pool *pgxpool.Pool) *Store {
	return &Store{pool: pool}
}

// EnsureSchema creates the import_runs table if needed.
func (s *Store) EnsureSchema(ctx context.Context) error {
	if _, err := s.pool.Exec(ctx, schema); err != nil {
		return fmt.Errorf("create schema: %w", err)
	}
	return nil
}

// Close releases the pool.
func (s *Store) Close() error {
	if s != nil && s.pool != nil {
		s.pool.Close()
	}
	return nil
}

// RecordRun persists one run.
func (s *Store) RecordRun(ctx context.Context, run history.Run) error {
	if s == nil || s.pool == nil {
		return history.ErrNotConfigured
	}
	run = history.Prepare(run)

	_, err := s.pool.Exec(ctx, `
		INSERT INTO import_runs (
			id, started_at, duration_ms, source, target, base_year, backup_dir,
			clubs_imported, players_imported, players_skipped, clubs_dropped,
			players_orphaned, players_unassigned, tier_overflow, error
		) VALUES ($1::uuid, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15)`,
		run.ID.String(),
		run.StartedAt,
		run.Duration.Milliseconds(),
		run.Source,
		run.Target,
		run.BaseYear,
		run.BackupDir,
		run.ClubsImported,
		run.PlayersImported,
		run.PlayersSkipped,
		run.ClubsDropped,
		run.PlayersOrphaned,
		run.PlayersUnassigned,
		run.TierOverflow,
		run.Error,
	)
	if err != nil {
		return fmt.Errorf("record run: %w", err)
	}
	return nil
}

// ListRuns lists newest-first runs.
func (s *Store) ListRuns(ctx context.Context, limit int) ([]history.Run, error) {
	if s == nil || s.pool == nil {
		return nil, history.ErrNotConfigured
	}
	limit = history.ClampLimit(limit)

	rows, err := s.pool.Query(ctx, `
		SELECT id::text, started_at, duration_ms, source, target, base_year, backup_dir,
			clubs_imported, players_imported, players_skipped, clubs_dropped,
			players_orphaned, players_unassigned, tier_overflow, error
		FROM import_runs
		ORDER BY started_at DESC
		LIMIT $1`, limit)
	if err != nil {
		return nil, fmt.Errorf("list runs: %w", err)
	}
	defer rows.Close()

	runs := make([]history.Run, 0, limit)
	for rows.Next() {
		var (
			run        history.Run
			id         string
			durationMs int64
		)
		if err := rows.Scan(
			&id,
			&run.StartedAt,
			&durationMs,
			&run.Source,
			&run.Target,
			&run.BaseYear,
			&run.BackupDir,
			&run.ClubsImported,
			&run.PlayersImported,
			&run.PlayersSkipped,
			&run.ClubsDropped,
			&run.PlayersOrphaned,
			&run.PlayersUnassigned,
			&run.TierOverflow,
			&run.Error,
		); err != nil {
			return nil, fmt.Errorf("scan run: %w", err)
		}
		if run.ID, err = uuid.Parse(id); err != nil {
			return nil, fmt.Errorf("scan run id: %w", err)
		}
		run.StartedAt = run.StartedAt.UTC()
		run.Duration = time.Duration(durationMs) * time.Millisecond
		runs = append(runs, run)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate runs: %w", err)
	}
	return runs, nil
}

var _ history.Store = (*Store)(nil)
