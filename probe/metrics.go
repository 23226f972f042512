package probe

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// Metrics bundles Prometheus collectors for the prober.
type Metrics struct {
	Registry      *prometheus.Registry
	ProbesTotal   *prometheus.CounterVec
	ProbeDuration prometheus.Histogram
	ErrorsTotal   *prometheus.CounterVec
}

// NewMetrics constructs and registers all metrics on a dedicated registry.
func NewMetrics() *Metrics {
	registry := prometheus.NewRegistry()

	probes := prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "stocktracker_probes_total",
			Help: "Total availability probes by outcome.",
		},
		[]string{"outcome"},
	)
	probeDuration := prometheus.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "stocktracker_probe_duration_seconds",
			Help:    "End-to-end latency of one SKU availability probe.",
			Buckets: prometheus.DefBuckets,
		},
	)
	errorsTotal := prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "stocktracker_probe_errors_total",
			Help: "Total probe failures by error type.",
		},
		[]string{"error_type"},
	)

	registry.MustRegister(probes, probeDuration, errorsTotal)

	return &Metrics{
		Registry:      registry,
		ProbesTotal:   probes,
		ProbeDuration: probeDuration,
		ErrorsTotal:   errorsTotal,
	}
}

// IncProbe increments the probe counter for an outcome label.
func (m *Metrics) IncProbe(outcome string) {
	if m == nil {
		return
	}
	m.ProbesTotal.WithLabelValues(outcome).Inc()
}

// ObserveDuration records one probe's duration.
func (m *Metrics) ObserveDuration(d time.Duration) {
	if m == nil {
		return
	}
	m.ProbeDuration.Observe(d.Seconds())
}

// IncError increments the error counter for a type label.
func (m *Metrics) IncError(errorType string) {
	if m == nil {
		return
	}
	m.ErrorsTotal.WithLabelValues(errorType).Inc()
}
