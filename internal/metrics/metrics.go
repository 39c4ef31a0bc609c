// Package metrics holds the process-wide Prometheus collectors.
// Label values are bounded: crash causes, characters and rejection reasons
// come from fixed sets, never from user input.
package metrics

import (
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"github.com/vovakirdan/arcane-flight/internal/core"
)

var (
	// Gameplay
	runsStarted = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "arcane_runs_started_total",
		Help: "Runs started, by character",
	}, []string{"character"})

	crashes = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "arcane_crashes_total",
		Help: "Runs ended, by cause",
	}, []string{"cause"}) // Bounded: "hazard", "boundary"

	runScore = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "arcane_run_score",
		Help:    "Final score of finished runs",
		Buckets: []float64{0, 1, 2, 5, 10, 20, 35, 50, 100},
	})

	bestScore = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "arcane_best_score",
		Help: "Highest score reached by any session since start",
	})

	tickDuration = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "arcane_tick_duration_seconds",
		Help:    "Time spent in one simulation step",
		Buckets: []float64{0.00001, 0.00005, 0.0001, 0.0005, 0.001, 0.005},
	})

	// SSH server
	sessionsActive = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "arcane_ssh_sessions_active",
		Help: "Currently connected SSH sessions",
	})

	sessionsTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "arcane_ssh_sessions_total",
		Help: "SSH sessions accepted",
	})

	connectionRejected = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "arcane_connection_rejected_total",
		Help: "Connections or requests rejected before being served",
	}, []string{"reason"}) // Bounded: "rate_limit", "no_pty"
)

// knownCharacters bounds the character label.
var knownCharacters = map[string]bool{"violet": true, "gold": true}

func characterLabel(id string) string {
	if knownCharacters[id] {
		return id
	}
	return "other"
}

// RecordStep updates gameplay metrics from the result of one tick.
func RecordStep(res core.StepResult) {
	st := res.State
	if res.Events.Has(core.EventRunStart) {
		runsStarted.WithLabelValues(characterLabel(st.Variant)).Inc()
	}
	if res.Events.Has(core.EventCrash) {
		RecordCrash(st.Cause, st.Score)
	}
	if res.Events.Has(core.EventNewBest) {
		RecordBest(st.Best)
	}
}

// RecordCrash counts a finished run.
func RecordCrash(cause string, score int) {
	switch cause {
	case "hazard", "boundary":
	default:
		cause = "other"
	}
	crashes.WithLabelValues(cause).Inc()
	runScore.Observe(float64(score))
}

var (
	bestMu   sync.Mutex
	bestSeen int
)

// RecordBest raises the best-score gauge when score beats it.
func RecordBest(score int) {
	bestMu.Lock()
	defer bestMu.Unlock()
	if score > bestSeen {
		bestSeen = score
		bestScore.Set(float64(score))
	}
}

// ObserveTick records how long one simulation step took.
func ObserveTick(d time.Duration) {
	tickDuration.Observe(d.Seconds())
}

// SessionOpened marks a new SSH session.
func SessionOpened() {
	sessionsTotal.Inc()
	sessionsActive.Inc()
}

// SessionClosed marks the end of an SSH session.
func SessionClosed() {
	sessionsActive.Dec()
}

// RecordRejected counts a refused connection.
func RecordRejected(reason string) {
	connectionRejected.WithLabelValues(reason).Inc()
}
