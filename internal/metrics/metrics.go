// Package metrics exposes Prometheus collectors for directory commands.
// A nil *Metrics is valid and records nothing.
package metrics

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "staffdir"

// Outcome labels
const (
	OutcomeSuccess   = "success"
	OutcomeInvalid   = "invalid"
	OutcomeNotFound  = "not_found"
	OutcomeConflict  = "conflict"
	OutcomeCancelled = "cancelled"
	OutcomeError     = "error"
)

// Metrics holds the directory collectors
type Metrics struct {
	commands   *prometheus.CounterVec
	duration   *prometheus.HistogramVec
	rosterSize prometheus.Gauge
	drafts     *prometheus.CounterVec
}

// New creates the collectors and registers them on reg
func New(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		commands: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "commands_total",
			Help:      "Directory commands by name and outcome.",
		}, []string{"command", "outcome"}),
		duration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "command_duration_seconds",
			Help:      "Directory command latency, simulated delay included.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"command"}),
		rosterSize: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "roster_size",
			Help:      "Number of records in the roster.",
		}),
		drafts: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "import_drafts_total",
			Help:      "Import drafts by format and outcome (extracted, committed, rejected).",
		}, []string{"format", "outcome"}),
	}
	reg.MustRegister(m.commands, m.duration, m.rosterSize, m.drafts)
	return m
}

// Handler serves the metrics gathered by g
func Handler(g prometheus.Gatherer) http.Handler {
	return promhttp.HandlerFor(g, promhttp.HandlerOpts{EnableOpenMetrics: true})
}

// ObserveCommand counts one command outcome and its latency
func (m *Metrics) ObserveCommand(command, outcome string, elapsed time.Duration) {
	if m == nil {
		return
	}
	m.commands.WithLabelValues(command, outcome).Inc()
	m.duration.WithLabelValues(command).Observe(elapsed.Seconds())
}

// SetRosterSize records the current roster size
func (m *Metrics) SetRosterSize(n int) {
	if m == nil {
		return
	}
	m.rosterSize.Set(float64(n))
}

// AddDrafts counts import drafts for a format and outcome
func (m *Metrics) AddDrafts(format, outcome string, n int) {
	if m == nil || n == 0 {
		return
	}
	m.drafts.WithLabelValues(format, outcome).Add(float64(n))
}
