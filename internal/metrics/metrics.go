// Package metrics exposes import counters in the Prometheus format.
package metrics

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "pm3import"

// Outcome label values.
const (
	OutcomeSuccess = "success"
	OutcomeFailure = "failure"
	OutcomeBusy    = "busy"
)

// RunCounts are the per-run figures added to the totals.
type RunCounts struct {
	ClubsImported   int
	PlayersImported int
	PlayersSkipped  int
}

// Recorder owns a private registry with the import instruments. A nil
// Recorder discards everything.
type Recorder struct {
	reg *prometheus.Registry

	runs            *prometheus.CounterVec
	clubsImported   prometheus.Counter
	playersImported prometheus.Counter
	playersSkipped  prometheus.Counter
	runDuration     prometheus.Histogram
	inFlight        prometheus.Gauge
}

// NewRecorder creates a registry and registers the instruments on it.
func NewRecorder() *Recorder {
	r := &Recorder{
		reg: prometheus.NewRegistry(),
		runs: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "runs_total",
			Help:      "Import runs by outcome.",
		}, []string{"outcome"}),
		clubsImported: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "clubs_imported_total",
			Help:      "Clubs written to saves.",
		}),
		playersImported: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "players_imported_total",
			Help:      "Players written to saves.",
		}),
		playersSkipped: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "players_skipped_total",
			Help:      "Player rows rejected or over a squad limit.",
		}),
		runDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "run_duration_seconds",
			Help:      "Wall time of completed import runs.",
			Buckets:   []float64{0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10, 30},
		}),
		inFlight: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "runs_in_flight",
			Help:      "Import runs currently holding a slot.",
		}),
	}
	r.reg.MustRegister(
		r.runs,
		r.clubsImported,
		r.playersImported,
		r.playersSkipped,
		r.runDuration,
		r.inFlight,
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	return r
}

// RecordRun adds one finished run.
func (r *Recorder) RecordRun(outcome string, counts RunCounts, duration time.Duration) {
	if r == nil {
		return
	}
	r.runs.WithLabelValues(outcome).Inc()
	r.clubsImported.Add(float64(counts.ClubsImported))
	r.playersImported.Add(float64(counts.PlayersImported))
	r.playersSkipped.Add(float64(counts.PlayersSkipped))
	if outcome != OutcomeBusy {
		r.runDuration.Observe(duration.Seconds())
	}
}

// RunStarted and RunFinished track runs holding a limiter slot.
func (r *Recorder) RunStarted() {
	if r != nil {
		r.inFlight.Inc()
	}
}

func (r *Recorder) RunFinished() {
	if r != nil {
		r.inFlight.Dec()
	}
}

// Registry returns the underlying registry.
func (r *Recorder) Registry() *prometheus.Registry {
	if r == nil {
		return nil
	}
	return r.reg
}

// Handler serves the registry. A nil Recorder serves 404.
func (r *Recorder) Handler() http.Handler {
	if r == nil {
		return http.NotFoundHandler()
	}
	return promhttp.HandlerFor(r.reg, promhttp.HandlerOpts{})
}
