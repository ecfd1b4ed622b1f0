// Package metrics provides Prometheus metrics collection for Forge.
package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// Collector holds all Prometheus metrics for Forge.
type Collector struct {
	// Generation pipeline metrics
	GenerationsTotal   *prometheus.CounterVec
	GenerationDuration prometheus.Histogram
	DiagnosticsTotal   *prometheus.CounterVec

	// HTTP metrics
	RequestsTotal   *prometheus.CounterVec
	RequestDuration *prometheus.HistogramVec

	// Config metrics
	ConfigReloads      prometheus.Counter
	ConfigReloadErrors prometheus.Counter

	registry *prometheus.Registry
}

// New creates a new metrics collector with all metrics registered on a
// dedicated registry (avoids global-state collisions in tests).
func New() *Collector {
	reg := prometheus.NewRegistry()
	factory := func(c prometheus.Collector) {
		reg.MustRegister(c)
	}

	m := &Collector{
		GenerationsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: "forge",
				Name:      "generations_total",
				Help:      "Total number of contract generations",
			},
			[]string{"archetype"},
		),
		GenerationDuration: prometheus.NewHistogram(
			prometheus.HistogramOpts{
				Namespace: "forge",
				Name:      "generation_duration_seconds",
				Help:      "Generation pipeline duration in seconds",
				Buckets:   []float64{.0001, .0005, .001, .005, .01, .05, .1, .5},
			},
		),
		DiagnosticsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: "forge",
				Name:      "diagnostics_total",
				Help:      "Total diagnostics produced by the rule engine",
			},
			[]string{"severity", "rule"},
		),
		RequestsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: "forge",
				Name:      "requests_total",
				Help:      "Total number of API requests",
			},
			[]string{"method", "path", "status"},
		),
		RequestDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: "forge",
				Name:      "request_duration_seconds",
				Help:      "API request duration in seconds",
				Buckets:   []float64{.001, .005, .01, .025, .05, .1, .25, .5, 1},
			},
			[]string{"method", "path"},
		),
		ConfigReloads: prometheus.NewCounter(
			prometheus.CounterOpts{
				Namespace: "forge",
				Name:      "config_reloads_total",
				Help:      "Total number of successful config reloads",
			},
		),
		ConfigReloadErrors: prometheus.NewCounter(
			prometheus.CounterOpts{
				Namespace: "forge",
				Name:      "config_reload_errors_total",
				Help:      "Total number of failed config reloads",
			},
		),
		registry: reg,
	}

	factory(m.GenerationsTotal)
	factory(m.GenerationDuration)
	factory(m.DiagnosticsTotal)
	factory(m.RequestsTotal)
	factory(m.RequestDuration)
	factory(m.ConfigReloads)
	factory(m.ConfigReloadErrors)

	return m
}

// Registry returns the underlying Prometheus registry for the /metrics handler.
func (m *Collector) Registry() *prometheus.Registry {
	return m.registry
}

// RecordGeneration implements app.MetricsRecorder.
func (m *Collector) RecordGeneration(archetypeID string, duration time.Duration) {
	if archetypeID == "" {
		archetypeID = "unknown"
	}
	m.GenerationsTotal.WithLabelValues(archetypeID).Inc()
	m.GenerationDuration.Observe(duration.Seconds())
}

// RecordDiagnostic implements app.MetricsRecorder.
func (m *Collector) RecordDiagnostic(severity, ruleID string) {
	m.DiagnosticsTotal.WithLabelValues(severity, ruleID).Inc()
}
