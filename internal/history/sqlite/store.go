// Package sqlite stores run history in a local SQLite file.
package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
	_ "modernc.org/sqlite"

	"github.com/JonMunkholm/pm3import/internal/history"
)

const schema = `
CREATE TABLE IF NOT EXISTS import_runs (
	id                 TEXT PRIMARY KEY,
	started_at         INTEGER NOT NULL,
	duration_ms        INTEGER NOT NULL,
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
CREATE INDEX IF NOT EXISTS import_runs_started_at ON import_runs (started_at DESC);
`

// Store provides SQLite-backed run history.
type Store struct {
	sqlDB *sql.DB
}

// Open opens the database at path and creates the schema.
func Open(path string) (*Store, error) {
	if strings.TrimSpace(path) == "" {
		return nil, fmt.Errorf("storage path is required")
	}
	cleanPath := filepath.Clean(path)
	dsn := cleanPath + "?_journal_mode=WAL&_busy_timeout=5000&_synchronous=NORMAL"
	sqlDB, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("open sqlite db: %w", err)
	}
	if err := sqlDB.Ping(); err != nil {
		_ = sqlDB.Close()
		return nil, fmt.Errorf("ping sqlite db: %w", err)
	}
	if _, err := sqlDB.Exec(schema); err != nil {
		_ = sqlDB.Close()
		return nil, fmt.Errorf("create schema: %w", err)
	}
	return &Store{sqlDB: sqlDB}, nil
}

// Close releases the SQLite connection.
func (s *Store) Close() error {
	if s == nil || s.sqlDB == nil {
		return nil
	}
	return s.sqlDB.Close()
}

// RecordRun persists one run.
func (s *Store) RecordRun(ctx context.Context, run history.Run) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if s == nil || s.sqlDB == nil {
		return history.ErrNotConfigured
	}
	run = history.Prepare(run)

	_, err := s.sqlDB.ExecContext(ctx, `
INSERT INTO import_runs (
	id,
	started_at,
	duration_ms,
	source,
	target,
	base_year,
	backup_dir,
	clubs_imported,
	players_imported,
	players_skipped,
	clubs_dropped,
	players_orphaned,
	players_unassigned,
	tier_overflow,
	error
) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
`,
		run.ID.String(),
		run.StartedAt.UnixMilli(),
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
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if s == nil || s.sqlDB == nil {
		return nil, history.ErrNotConfigured
	}
	limit = history.ClampLimit(limit)

	rows, err := s.sqlDB.QueryContext(ctx, `
SELECT
	id,
	started_at,
	duration_ms,
	source,
	target,
	base_year,
	backup_dir,
	clubs_imported,
	players_imported,
	players_skipped,
	clubs_dropped,
	players_orphaned,
	players_unassigned,
	tier_overflow,
	error
FROM import_runs
ORDER BY started_at DESC, rowid DESC
LIMIT ?
`, limit)
	if err != nil {
		return nil, fmt.Errorf("list runs: %w", err)
	}
	defer rows.Close()

	runs := make([]history.Run, 0, limit)
	for rows.Next() {
		var (
			run        history.Run
			id         string
			startedAt  int64
			durationMs int64
		)
		if err := rows.Scan(
			&id,
			&startedAt,
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
		run.StartedAt = time.UnixMilli(startedAt).UTC()
		run.Duration = time.Duration(durationMs) * time.Millisecond
		runs = append(runs, run)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate runs: %w", err)
	}
	return runs, nil
}

var _ history.Store = (*Store)(nil)
