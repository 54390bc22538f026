// Package metrics provides Prometheus metrics collection for PubForge.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Collector holds all Prometheus metrics for PubForge.
type Collector struct {
	// Request metrics
	RequestsTotal    *prometheus.CounterVec
	RequestDuration  *prometheus.HistogramVec
	RequestsInFlight prometheus.Gauge

	// Seeding metrics
	PublicationsSeeded *prometheus.CounterVec
	SeedFailures       *prometheus.CounterVec

	// Validation metrics
	ValidationsTotal   *prometheus.CounterVec
	ValidationFailures *prometheus.CounterVec

	// Index metrics
	IndexedPublications *prometheus.GaugeVec
	IndexOperations     *prometheus.CounterVec

	// Reload metrics for watched sources (config, tags, schemas)
	Reloads      *prometheus.CounterVec
	ReloadErrors *prometheus.CounterVec
	LastReload   *prometheus.GaugeVec
}

// New creates a new metrics collector registered on the default registry.
func New() *Collector {
	return NewWithRegistry(prometheus.DefaultRegisterer)
}

// NewWithRegistry creates a new metrics collector with a custom registry.
// Useful for testing to avoid global state.
func NewWithRegistry(reg prometheus.Registerer) *Collector {
	factory := promauto.With(reg)

	return &Collector{
		RequestsTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: "pubforge",
				Name:      "requests_total",
				Help:      "Total number of HTTP requests processed",
			},
			[]string{"method", "path", "status"},
		),
		RequestDuration: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: "pubforge",
				Name:      "request_duration_seconds",
				Help:      "HTTP request duration in seconds",
				Buckets:   []float64{.001, .005, .01, .025, .05, .1, .25, .5, 1, 2.5, 5, 10},
			},
			[]string{"method", "path", "status"},
		),
		RequestsInFlight: factory.NewGauge(
			prometheus.GaugeOpts{
				Namespace: "pubforge",
				Name:      "requests_in_flight",
				Help:      "Number of HTTP requests currently being processed",
			},
		),

		PublicationsSeeded: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: "pubforge",
				Name:      "publications_seeded_total",
				Help:      "Total number of publications generated by the seeder",
			},
			[]string{"type"},
		),
		SeedFailures: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: "pubforge",
				Name:      "seed_failures_total",
				Help:      "Total number of failed seed operations",
			},
			[]string{"type"},
		),

		ValidationsTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: "pubforge",
				Name:      "validations_total",
				Help:      "Total number of record validations by outcome",
			},
			[]string{"type", "outcome"},
		),
		ValidationFailures: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: "pubforge",
				Name:      "validation_failures_total",
				Help:      "Total number of per-field rule failures",
			},
			[]string{"type", "rule"},
		),

		IndexedPublications: factory.NewGaugeVec(
			prometheus.GaugeOpts{
				Namespace: "pubforge",
				Name:      "indexed_publications",
				Help:      "Number of publications currently indexed per type",
			},
			[]string{"type"},
		),
		IndexOperations: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: "pubforge",
				Name:      "index_operations_total",
				Help:      "Total index operations by kind",
			},
			[]string{"type", "operation"},
		),

		Reloads: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: "pubforge",
				Name:      "reloads_total",
				Help:      "Total number of successful hot reloads by source",
			},
			[]string{"source"},
		),
		ReloadErrors: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: "pubforge",
				Name:      "reload_errors_total",
				Help:      "Total number of failed hot reloads by source",
			},
			[]string{"source"},
		),
		LastReload: factory.NewGaugeVec(
			prometheus.GaugeOpts{
				Namespace: "pubforge",
				Name:      "last_reload_timestamp",
				Help:      "Unix timestamp of the last successful reload by source",
			},
			[]string{"source"},
		),
	}
}

// NormalizePath reduces metric cardinality for long request paths.
func NormalizePath(path string) string {
	if len(path) > 50 {
		return path[:50] + "..."
	}
	return path
}
