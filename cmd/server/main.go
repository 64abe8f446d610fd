package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"

	"github.com/JonMunkholm/pm3import/internal/config"
	"github.com/JonMunkholm/pm3import/internal/core"
	"github.com/JonMunkholm/pm3import/internal/history/backend"
	"github.com/JonMunkholm/pm3import/internal/logging"
	"github.com/JonMunkholm/pm3import/internal/metrics"
	"github.com/JonMunkholm/pm3import/internal/web"
)

func main() {
	// Load .env file if it exists (Overload overwrites existing env vars)
	if err := godotenv.Overload(); err != nil {
		slog.Info("no .env file found, using environment variables")
	} else {
		slog.Info("loaded .env file (overwriting existing env vars)")
	}

	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load configuration", "error", err)
		os.Exit(1)
	}

	logging.Setup(cfg.Logging.Level, cfg.Logging.Format)

	slog.Info("configuration loaded",
		"port", cfg.Server.Port,
		"pm3_path", cfg.Import.PM3Path,
		"history", cfg.HistoryEnabled(),
		"rate_limit_enabled", cfg.Rate.Enabled,
		"metrics_enabled", cfg.Metrics.Enabled,
	)
	if cfg.Import.PM3Path == "" {
		slog.Warn("PM3_PATH is not set; imports will fail until it is configured")
	}

	ctx := context.Background()
	store, err := backend.Open(ctx, cfg)
	if err != nil {
		slog.Error("failed to open run history", "error", err)
		os.Exit(1)
	}

	var rec *metrics.Recorder
	if cfg.Metrics.Enabled {
		rec = metrics.NewRecorder()
	}

	service := core.NewService(cfg.Import, store, rec)
	defer service.Close()

	server := web.NewServer(service, cfg, rec)

	// Graceful shutdown
	stopped := make(chan struct{})
	go func() {
		defer close(stopped)
		sigCh := make(chan os.Signal, 1)
		signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
		<-sigCh

		slog.Info("shutting down...")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
		defer cancel()

		// In-flight runs finish before the listener closes.
		if status := service.LimiterStatus(); status.Active > 0 {
			slog.Info("waiting for imports to complete", "active", status.Active)
			if err := service.WaitForImports(shutdownCtx); err != nil {
				slog.Warn("imports did not complete in time", "error", err)
			} else {
				slog.Info("all imports completed")
			}
		}

		if err := server.Shutdown(shutdownCtx); err != nil {
			slog.Error("shutdown error", "error", err)
		}
	}()

	if err := server.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		slog.Error("server stopped", "error", err)
		service.Close()
		os.Exit(1)
	}
	<-stopped
	slog.Info("server stopped")
}
