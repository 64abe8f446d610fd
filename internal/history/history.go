// Package history records import runs so operators can see what was written
// to which save and when.
package history

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
)

// DefaultListLimit is used when a caller asks for a non-positive limit.
const DefaultListLimit = 20

// MaxListLimit caps a single listing.
const MaxListLimit = 500

// ErrNotConfigured is returned by stores with no backing database.
var ErrNotConfigured = errors.New("run history is not configured")

// Outcomes of a run.
const (
	OutcomeSuccess = "success"
	OutcomeFailure = "failure"
)

// Run is one import attempt.
type Run struct {
	ID        uuid.UUID     `json:"id"`
	StartedAt time.Time     `json:"started_at"`
	Duration  time.Duration `json:"duration_ns"`
	Source    string        `json:"source"`
	Target    string        `json:"target"`
	BaseYear  int           `json:"base_year"`
	BackupDir string        `json:"backup_dir,omitempty"`

	ClubsImported     int `json:"clubs_imported"`
	PlayersImported   int `json:"players_imported"`
	PlayersSkipped    int `json:"players_skipped"`
	ClubsDropped      int `json:"clubs_dropped"`
	PlayersOrphaned   int `json:"players_orphaned"`
	PlayersUnassigned int `json:"players_unassigned"`
	TierOverflow      int `json:"tier_overflow"`

	Error string `json:"error,omitempty"`
}

// Outcome reports whether the run succeeded.
func (r Run) Outcome() string {
	if r.Error != "" {
		return OutcomeFailure
	}
	return OutcomeSuccess
}

// Store persists runs.
type Store interface {
	RecordRun(ctx context.Context, run Run) error
	// ListRuns returns runs newest first.
	ListRuns(ctx context.Context, limit int) ([]Run, error)
	Close() error
}

// ClampLimit maps a requested listing size into [1, MaxListLimit].
func ClampLimit(limit int) int {
	if limit <= 0 {
		return DefaultListLimit
	}
	if limit > MaxListLimit {
		return MaxListLimit
	}
	return limit
}

// Prepare fills the ID and start time of a run when unset.
func Prepare(run Run) Run {
	if run.ID == uuid.Nil {
		run.ID = uuid.New()
	}
	if run.StartedAt.IsZero() {
		run.StartedAt = time.Now()
	}
	run.StartedAt = run.StartedAt.UTC()
	return run
}

// Nop discards runs.
type Nop struct{}

func (Nop) RecordRun(context.Context, Run) error { return nil }

func (Nop) ListRuns(context.Context, int) ([]Run, error) { return nil, ErrNotConfigured }

func (Nop) Close() error { return nil }

var _ Store = Nop{}
