package core

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/JonMunkholm/pm3import/internal/config"
	"github.com/JonMunkholm/pm3import/internal/history"
	"github.com/JonMunkholm/pm3import/internal/importer"
	"github.com/JonMunkholm/pm3import/internal/logging"
	"github.com/JonMunkholm/pm3import/internal/metrics"
	"github.com/JonMunkholm/pm3import/internal/pm3"
	"github.com/JonMunkholm/pm3import/internal/roster"
	"github.com/JonMunkholm/pm3import/internal/savefile"
)

// FallbackYear is the base year when neither the request, the save nor the
// configuration supplies one.
const FallbackYear = 2025

var (
	// ErrNoInstallPath is returned when no PM3 directory is known.
	ErrNoInstallPath = errors.New("pm3 installation path is not configured")

	// ErrMissingTable is returned when a run lacks one of its tables.
	ErrMissingTable = errors.New("no file provided: clubs and players tables are required")

	// ErrInvalidYear is returned for a season year the game data cannot hold.
	ErrInvalidYear = errors.New("invalid season year")
)

// MaxYear is the largest season year the game data stores.
const MaxYear = 65535

// LoanWarning is reported when loans are imported into the base data.
const LoanWarning = "importing loans into the base data makes loaned players show as banned when a new game starts"

// RunRequest describes one import.
type RunRequest struct {
	Clubs   io.Reader
	Players io.Reader

	// Dir is the installation directory; empty uses the configured PM3_PATH.
	Dir    string
	Target savefile.Target

	// Year overrides the stored season year when non-zero.
	Year int

	ImportLoans bool

	// MaxPlayers is the default squad limit; zero uses the configured one.
	MaxPlayers int

	Backup bool

	// Source names the caller in run history, e.g. "cli" or "api".
	Source string
}

// RunResult summarises a successful run.
type RunResult struct {
	ID        uuid.UUID      `json:"id"`
	Target    string         `json:"target"`
	Stats     importer.Stats `json:"stats"`
	BaseYear  int            `json:"base_year"`
	BackupDir string         `json:"backup_dir,omitempty"`
	Duration  time.Duration  `json:"duration_ns"`
	Warnings  []string       `json:"warnings,omitempty"`
}

// Service coordinates save files, the importer, run history and metrics.
type Service struct {
	cfg     config.ImportConfig
	history history.Store
	metrics *metrics.Recorder
	limiter *ImportLimiter
	now     func() time.Time
}

// NewService creates a Service. A nil store records nothing and a nil
// recorder discards metrics.
func NewService(cfg config.ImportConfig, store history.Store, rec *metrics.Recorder) *Service {
	if store == nil {
		store = history.Nop{}
	}
	return &Service{
		cfg:     cfg,
		history: store,
		metrics: rec,
		limiter: NewImportLimiter(cfg.MaxWaitTime),
		now:     time.Now,
	}
}

// Config returns the import defaults the service was built with.
func (s *Service) Config() config.ImportConfig {
	return s.cfg
}

// Run performs one import. Save files are written only when every step
// before the store succeeds.
func (s *Service) Run(ctx context.Context, req RunRequest) (*RunResult, error) {
	start := s.now()

	dir, err := s.installDir(req.Dir)
	if err != nil {
		return nil, err
	}
	if err := req.Target.Validate(); err != nil {
		return nil, err
	}
	if req.Year < 0 || req.Year > MaxYear {
		return nil, fmt.Errorf("%w %d: must be between 1 and %d, or 0 to keep the stored year", ErrInvalidYear, req.Year, MaxYear)
	}
	if req.Clubs == nil || req.Players == nil {
		return nil, ErrMissingTable
	}

	release, err := s.limiter.Acquire(ctx, dir, req.Target)
	if err != nil {
		if errors.Is(err, ErrImportBusy) {
			s.metrics.RecordRun(metrics.OutcomeBusy, metrics.RunCounts{}, 0)
		}
		return nil, err
	}
	defer release()
	s.metrics.RunStarted()
	defer s.metrics.RunFinished()

	result := &RunResult{ID: uuid.New(), Target: req.Target.String()}
	log := logging.WithFields(ctx,
		"run_id", result.ID,
		"target", result.Target,
	)
	log.Info("import started", "dir", dir, "source", req.Source)

	err = s.execute(ctx, dir, req, start, result, log)
	result.Duration = s.now().Sub(start)
	s.record(ctx, req, result, start, err, log)

	if err != nil {
		log.Error("import failed", "error", err, "duration_ms", result.Duration.Milliseconds())
		return nil, err
	}
	log.Info("import saved",
		"clubs", result.Stats.ClubsImported,
		"players", result.Stats.PlayersImported,
		"skipped", result.Stats.PlayersSkipped,
		"base_year", result.BaseYear,
		"duration_ms", result.Duration.Milliseconds(),
	)
	return result, nil
}

func (s *Service) execute(ctx context.Context, dir string, req RunRequest, start time.Time, result *RunResult, log *slog.Logger) error {
	if req.Target.Base && req.ImportLoans {
		log.Warn(LoanWarning)
		result.Warnings = append(result.Warnings, LoanWarning)
	}

	if req.Backup {
		rel, err := savefile.Backup(dir, req.Target, start)
		if err != nil {
			return fmt.Errorf("backup: %w", err)
		}
		result.BackupDir = rel
		log.Info("save files backed up", "backup", rel)
	}

	save, err := savefile.Load(dir, req.Target)
	if err != nil {
		return err
	}

	result.BaseYear = s.applyYear(save, req.Year)

	maxPlayers := req.MaxPlayers
	if maxPlayers == 0 {
		maxPlayers = s.cfg.DefaultMaxPlayers
	}
	if maxPlayers < 1 || maxPlayers > roster.MaxSquadSize {
		log.Warn("max players out of range, using default",
			"requested", maxPlayers,
			"default", roster.DefaultSquadSize,
		)
	}

	stats, err := importer.Import(req.Clubs, req.Players, save, importer.Options{
		MaxPlayers:  maxPlayers,
		BaseYear:    result.BaseYear,
		ImportLoans: req.ImportLoans,
		Logger:      log,
	})
	result.Stats = stats
	if err != nil {
		return err
	}

	if err := ctx.Err(); err != nil {
		return err
	}
	return savefile.Store(dir, req.Target, save)
}

// applyYear stores a requested year and returns the base year contracts
// are measured from.
func (s *Service) applyYear(save *pm3.Save, year int) int {
	if year != 0 {
		save.Game.SetYear(year)
	}
	if y := save.Game.Year(); y > 0 {
		return y
	}
	if s.cfg.DefaultYear > 0 {
		return s.cfg.DefaultYear
	}
	return FallbackYear
}

func (s *Service) record(ctx context.Context, req RunRequest, result *RunResult, start time.Time, runErr error, log *slog.Logger) {
	run := history.Run{
		ID:                result.ID,
		StartedAt:         start,
		Duration:          result.Duration,
		Source:            sourceLabel(ctx, req.Source),
		Target:            result.Target,
		BaseYear:          result.BaseYear,
		BackupDir:         result.BackupDir,
		ClubsImported:     result.Stats.ClubsImported,
		PlayersImported:   result.Stats.PlayersImported,
		PlayersSkipped:    result.Stats.PlayersSkipped,
		ClubsDropped:      result.Stats.ClubsDropped,
		PlayersOrphaned:   result.Stats.PlayersOrphaned,
		PlayersUnassigned: result.Stats.PlayersUnassigned,
		TierOverflow:      result.Stats.TierOverflow,
	}
	outcome := metrics.OutcomeSuccess
	counts := metrics.RunCounts{
		ClubsImported:   result.Stats.ClubsImported,
		PlayersImported: result.Stats.PlayersImported,
		PlayersSkipped:  result.Stats.PlayersSkipped,
	}
	if runErr != nil {
		run.Error = runErr.Error()
		outcome = metrics.OutcomeFailure
		counts = metrics.RunCounts{}
	}
	s.metrics.RecordRun(outcome, counts, result.Duration)

	// The run already happened; record it even if the caller went away.
	if err := s.history.RecordRun(context.WithoutCancel(ctx), run); err != nil {
		log.Warn("failed to record run history", "error", err)
	}
}

// History lists recent runs, newest first.
func (s *Service) History(ctx context.Context, limit int) ([]history.Run, error) {
	return s.history.ListRuns(ctx, history.ClampLimit(limit))
}

// Kits loads the club table of target for kit export.
func (s *Service) Kits(dir string, target savefile.Target) (*pm3.ClubData, error) {
	dir, err := s.installDir(dir)
	if err != nil {
		return nil, err
	}
	return savefile.LoadClubs(dir, target)
}

// Backups lists the backup directories of the installation.
func (s *Service) Backups(dir string) ([]string, error) {
	dir, err := s.installDir(dir)
	if err != nil {
		return nil, err
	}
	return savefile.ListBackups(dir)
}

// Restore puts a backup of target back into place. It holds the target's
// lock so it cannot interleave with a run.
func (s *Service) Restore(ctx context.Context, dir string, target savefile.Target, backupDir string) error {
	dir, err := s.installDir(dir)
	if err != nil {
		return err
	}
	release, err := s.limiter.Acquire(ctx, dir, target)
	if err != nil {
		return err
	}
	defer release()

	if err := savefile.Restore(dir, target, backupDir); err != nil {
		return err
	}
	logging.FromContext(ctx).Info("save files restored", "target", target.String(), "backup", backupDir)
	return nil
}

// LimiterStatus reports which targets are locked by a run or restore.
func (s *Service) LimiterStatus() LimiterStatus {
	return s.limiter.Status()
}

// WaitForImports blocks until in-flight runs finish or ctx is done.
func (s *Service) WaitForImports(ctx context.Context) error {
	return s.limiter.WaitForDrain(ctx)
}

// Close releases the history store.
func (s *Service) Close() error {
	return s.history.Close()
}

func (s *Service) installDir(dir string) (string, error) {
	if dir == "" {
		dir = s.cfg.PM3Path
	}
	if dir == "" {
		return "", ErrNoInstallPath
	}
	return dir, nil
}
