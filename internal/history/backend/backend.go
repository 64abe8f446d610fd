// Package backend opens the run history store selected by configuration.
package backend

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/JonMunkholm/pm3import/internal/config"
	"github.com/JonMunkholm/pm3import/internal/history"
	"github.com/JonMunkholm/pm3import/internal/history/postgres"
	"github.com/JonMunkholm/pm3import/internal/history/sqlite"
)

// Open returns the PostgreSQL store when DATABASE_URL is set, otherwise
// the SQLite store when HISTORY_SQLITE_PATH is set, otherwise history.Nop.
func Open(ctx context.Context, cfg *config.Config) (history.Store, error) {
	switch {
	case cfg.Database.URL != "":
		store, err := postgres.Open(ctx, postgres.Options{
			URL:      cfg.Database.URL,
			MaxConns: int32(cfg.Database.MaxConns),
			MinConns: int32(cfg.Database.MinConns),
		})
		if err != nil {
			return nil, fmt.Errorf("open postgres history: %w", err)
		}
		slog.Debug("run history: postgres")
		return store, nil

	case cfg.History.SQLitePath != "":
		store, err := sqlite.Open(cfg.History.SQLitePath)
		if err != nil {
			return nil, fmt.Errorf("open sqlite history: %w", err)
		}
		slog.Debug("run history: sqlite", "path", cfg.History.SQLitePath)
		return store, nil
	}
	return history.Nop{}, nil
}
