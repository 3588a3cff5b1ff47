package harvest

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const (
	// MetricsNamespace is the namespace for all harvest metrics.
	MetricsNamespace = "goleads"

	// MetricsSubsystem is the subsystem for harvest metrics.
	MetricsSubsystem = "harvest"
)

// Metrics holds all Prometheus metrics for the harvest pipeline.
type Metrics struct {
	SignalsFetchedTotal   *prometheus.CounterVec
	SignalsNewTotal       *prometheus.CounterVec
	SignalsDuplicateTotal *prometheus.CounterVec
	ErrorsTotal           *prometheus.CounterVec
	DurationSeconds       *prometheus.HistogramVec
	LeadsCreatedTotal     prometheus.Counter
}

// NewMetrics creates and registers all harvest metrics.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}

	factory := promauto.With(reg)

	return &Metrics{
		SignalsFetchedTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: MetricsNamespace,
				Subsystem: MetricsSubsystem,
				Name:      "signals_fetched_total",
				Help:      "Total number of signals fetched from portals",
			},
			[]string{"source"},
		),
		SignalsNewTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: MetricsNamespace,
				Subsystem: MetricsSubsystem,
				Name:      "signals_new_total",
				Help:      "Total number of newly persisted signals",
			},
			[]string{"source"},
		),
		SignalsDuplicateTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: MetricsNamespace,
				Subsystem: MetricsSubsystem,
				Name:      "signals_duplicate_total",
				Help:      "Total number of signals dropped as duplicates",
			},
			[]string{"source"},
		),
		ErrorsTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: MetricsNamespace,
				Subsystem: MetricsSubsystem,
				Name:      "errors_total",
				Help:      "Total number of per-source harvest failures",
			},
			[]string{"source"},
		),
		DurationSeconds: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: MetricsNamespace,
				Subsystem: MetricsSubsystem,
				Name:      "duration_seconds",
				Help:      "Per-source harvest duration in seconds",
				Buckets:   prometheus.ExponentialBuckets(0.5, 2, 10),
			},
			[]string{"source"},
		),
		LeadsCreatedTotal: factory.NewCounter(
			prometheus.CounterOpts{
				Namespace: MetricsNamespace,
				Subsystem: MetricsSubsystem,
				Name:      "leads_created_total",
				Help:      "Total number of leads auto-created from signals",
			},
		),
	}
}
