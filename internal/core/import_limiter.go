package core

// import_limiter.go serializes runs that touch the same save files.
//
// A lock is keyed by installation directory and target, so an import into
// saved game 2 never waits on one into the base data, while a second run
// against the same target waits up to maxWait before failing with
// ErrImportBusy. Restore takes the same lock as Run.

import (
	"context"
	"errors"
	"path/filepath"
	"sort"
	"sync"
	"time"

	"github.com/JonMunkholm/pm3import/internal/savefile"
)

// ErrImportBusy is returned when the target's save files stay locked past
// the wait timeout. Clients should retry after a short delay.
var ErrImportBusy = errors.New("import in progress, please try again later")

// DefaultMaxWaitTime is how long to wait for a target before rejecting.
const DefaultMaxWaitTime = 30 * time.Second

type saveKey struct {
	dir    string
	target string
}

// ImportLimiter hands out one lock per save target.
type ImportLimiter struct {
	maxWait time.Duration

	mu    sync.Mutex
	locks map[saveKey]chan struct{}
	held  map[saveKey]int
}

// NewImportLimiter creates a limiter whose callers wait at most maxWait for
// a busy target.
func NewImportLimiter(maxWait time.Duration) *ImportLimiter {
	if maxWait <= 0 {
		maxWait = DefaultMaxWaitTime
	}
	return &ImportLimiter{
		maxWait: maxWait,
		locks:   make(map[saveKey]chan struct{}),
		held:    make(map[saveKey]int),
	}
}

func (l *ImportLimiter) lockFor(key saveKey) chan struct{} {
	l.mu.Lock()
	defer l.mu.Unlock()
	ch, ok := l.locks[key]
	if !ok {
		ch = make(chan struct{}, 1)
		l.locks[key] = ch
	}
	return ch
}

// Acquire locks target in dir. The returned release func must be called
// exactly once when the run completes.
func (l *ImportLimiter) Acquire(ctx context.Context, dir string, target savefile.Target) (func(), error) {
	key := saveKey{dir: filepath.Clean(dir), target: target.String()}
	lock := l.lockFor(key)

	waitCtx, cancel := context.WithTimeout(ctx, l.maxWait)
	defer cancel()

	select {
	case lock <- struct{}{}:
	case <-waitCtx.Done():
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}
		return nil, ErrImportBusy
	}

	l.mu.Lock()
	l.held[key]++
	l.mu.Unlock()

	var once sync.Once
	return func() {
		once.Do(func() {
			l.mu.Lock()
			if l.held[key]--; l.held[key] <= 0 {
				delete(l.held, key)
			}
			l.mu.Unlock()
			<-lock
		})
	}, nil
}

// ActiveCount returns the number of runs holding a lock.
func (l *ImportLimiter) ActiveCount() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	n := 0
	for _, c := range l.held {
		n += c
	}
	return n
}

// WaitForDrain blocks until all active runs complete or ctx is done.
func (l *ImportLimiter) WaitForDrain(ctx context.Context) error {
	ticker := time.NewTicker(50 * time.Millisecond)
	defer ticker.Stop()

	for {
		if l.ActiveCount() == 0 {
			return nil
		}
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
		}
	}
}

// LimiterStatus is a snapshot of the locked targets.
type LimiterStatus struct {
	Active int      `json:"active"`
	Busy   []string `json:"busy"`
}

// Status returns the locked targets, sorted, for monitoring.
func (l *ImportLimiter) Status() LimiterStatus {
	l.mu.Lock()
	defer l.mu.Unlock()

	status := LimiterStatus{Busy: []string{}}
	for key, c := range l.held {
		status.Active += c
		status.Busy = append(status.Busy, key.target)
	}
	sort.Strings(status.Busy)
	return status
}
