// Package metrics provides Prometheus metrics for venue reconciliation runs.
package metrics

import (
	"fmt"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Label values shared with callers.
const (
	OutcomeAccepted = "accepted"
	OutcomeRejected = "rejected"
	OutcomeMissing  = "missing"

	LookupEnriched = "enriched"
	LookupEmpty    = "empty"
	LookupFailed   = "failed"
)

// Manager owns every collector used by a reconciliation run.
type Manager struct {
	namespace        string
	subsystem        string
	histogramBuckets []float64
	enabled          bool
	customLabels     map[string]string
	registry         prometheus.Registerer

	// Run outcome
	venuesAttempted *prometheus.CounterVec
	venuesMatched   *prometheus.CounterVec
	venuesUnmatched *prometheus.CounterVec
	ruleHits        *prometheus.CounterVec
	runDuration     prometheus.Histogram
	lastRunUnix     prometheus.Gauge

	// Remote geocoding
	geocodeBatchLatency prometheus.Histogram
	geocodeCandidates   *prometheus.CounterVec
	enrichmentLookups   *prometheus.CounterVec

	// Persisted state
	stateMatched        prometheus.Gauge
	stateUnmatched      prometheus.Gauge
	persistenceFailures *prometheus.CounterVec
}

var globalManager *Manager //nolint:gochecknoglobals // singleton metrics manager

// Custom registry to avoid default Go metrics in the exported textfile.
var customRegistry = prometheus.NewRegistry() //nolint:gochecknoglobals // metrics registry

func init() { //nolint:gochecknoinits // global metrics setup
	globalManager = NewManager(WithPrometheusRegistry(customRegistry))
}

// NewManager creates a metrics manager and registers its collectors.
func NewManager(opts ...Option) *Manager {
	m := &Manager{
		namespace:        "venuematch",
		subsystem:        "reconcile",
		histogramBuckets: []float64{5, 10, 25, 50, 100, 250, 500, 1000, 2500, 5000, 10000},
		enabled:          true,
		customLabels:     make(map[string]string),
		registry:         prometheus.DefaultRegisterer,
	}

	for _, opt := range opts {
		opt(m)
	}

	m.initializeMetrics()

	return m
}

func (m *Manager) initializeMetrics() { //nolint:funlen // one place for every collector
	auto := promauto.With(m.registry)
	labels := prometheus.Labels(m.customLabels)

	m.venuesAttempted = auto.NewCounterVec(prometheus.CounterOpts{
		Namespace:   m.namespace,
		Subsystem:   m.subsystem,
		Name:        "venues_attempted_total",
		Help:        "Venues submitted to a matching engine",
		ConstLabels: labels,
	}, []string{"engine"})

	m.venuesMatched = auto.NewCounterVec(prometheus.CounterOpts{
		Namespace:   m.namespace,
		Subsystem:   m.subsystem,
		Name:        "venues_matched_total",
		Help:        "Venues resolved by a matching engine",
		ConstLabels: labels,
	}, []string{"engine"})

	m.venuesUnmatched = auto.NewCounterVec(prometheus.CounterOpts{
		Namespace:   m.namespace,
		Subsystem:   m.subsystem,
		Name:        "venues_unmatched_total",
		Help:        "Venues left unresolved by a matching engine",
		ConstLabels: labels,
	}, []string{"engine"})

	m.ruleHits = auto.NewCounterVec(prometheus.CounterOpts{
		Namespace:   m.namespace,
		Subsystem:   m.subsystem,
		Name:        "rule_hits_total",
		Help:        "Local matches by the rule that produced them",
		ConstLabels: labels,
	}, []string{"rule"})

	m.runDuration = auto.NewHistogram(prometheus.HistogramOpts{
		Namespace:   m.namespace,
		Subsystem:   m.subsystem,
		Name:        "run_duration_milliseconds",
		Help:        "Wall time of a reconciliation run",
		Buckets:     m.histogramBuckets,
		ConstLabels: labels,
	})

	m.lastRunUnix = auto.NewGauge(prometheus.GaugeOpts{
		Namespace:   m.namespace,
		Subsystem:   m.subsystem,
		Name:        "last_run_timestamp_seconds",
		Help:        "Unix time of the last completed run",
		ConstLabels: labels,
	})

	m.geocodeBatchLatency = auto.NewHistogram(prometheus.HistogramOpts{
		Namespace:   m.namespace,
		Subsystem:   m.subsystem,
		Name:        "geocode_batch_latency_milliseconds",
		Help:        "Latency of one batch geocode request",
		Buckets:     m.histogramBuckets,
		ConstLabels: labels,
	})

	m.geocodeCandidates = auto.NewCounterVec(prometheus.CounterOpts{
		Namespace:   m.namespace,
		Subsystem:   m.subsystem,
		Name:        "geocode_candidates_total",
		Help:        "Geocode candidates by acceptance outcome",
		ConstLabels: labels,
	}, []string{"outcome"})

	m.enrichmentLookups = auto.NewCounterVec(prometheus.CounterOpts{
		Namespace:   m.namespace,
		Subsystem:   m.subsystem,
		Name:        "enrichment_lookups_total",
		Help:        "Network find lookups by outcome",
		ConstLabels: labels,
	}, []string{"outcome"})

	m.stateMatched = auto.NewGauge(prometheus.GaugeOpts{
		Namespace:   m.namespace,
		Subsystem:   m.subsystem,
		Name:        "state_matched_venues",
		Help:        "Cumulative matched venues after the last run",
		ConstLabels: labels,
	})

	m.stateUnmatched = auto.NewGauge(prometheus.GaugeOpts{
		Namespace:   m.namespace,
		Subsystem:   m.subsystem,
		Name:        "state_unmatched_venues",
		Help:        "Unmatched venues left by the last run",
		ConstLabels: labels,
	})

	m.persistenceFailures = auto.NewCounterVec(prometheus.CounterOpts{
		Namespace:   m.namespace,
		Subsystem:   m.subsystem,
		Name:        "persistence_failures_total",
		Help:        "Failed writes of persisted documents",
		ConstLabels: labels,
	}, []string{"document"})
}

// RecordRun records the partition produced by one engine pass.
func (m *Manager) RecordRun(engine string, attempted, matched, unmatched int) {
	if !m.enabled {
		return
	}
	m.venuesAttempted.WithLabelValues(engine).Add(float64(attempted))
	m.venuesMatched.WithLabelValues(engine).Add(float64(matched))
	m.venuesUnmatched.WithLabelValues(engine).Add(float64(unmatched))
}

// RecordRuleHit counts one local match produced by rule.
func (m *Manager) RecordRuleHit(rule string) {
	if !m.enabled {
		return
	}
	m.ruleHits.WithLabelValues(rule).Inc()
}

// RecordRunDuration observes the run wall time and stamps the completion time.
func (m *Manager) RecordRunDuration(d time.Duration) {
	if !m.enabled {
		return
	}
	m.runDuration.Observe(float64(d.Milliseconds()))
	m.lastRunUnix.SetToCurrentTime()
}

// RecordGeocodeBatch observes the latency of one geocode batch request.
func (m *Manager) RecordGeocodeBatch(d time.Duration) {
	if !m.enabled {
		return
	}
	m.geocodeBatchLatency.Observe(float64(d.Milliseconds()))
}

// RecordGeocodeCandidate counts a candidate by outcome.
func (m *Manager) RecordGeocodeCandidate(outcome string) {
	if !m.enabled {
		return
	}
	m.geocodeCandidates.WithLabelValues(outcome).Inc()
}

// RecordEnrichment counts a network lookup by outcome.
func (m *Manager) RecordEnrichment(outcome string) {
	if !m.enabled {
		return
	}
	m.enrichmentLookups.WithLabelValues(outcome).Inc()
}

// UpdateState sets the gauges describing persisted state.
func (m *Manager) UpdateState(matched, unmatched int) {
	if !m.enabled {
		return
	}
	m.stateMatched.Set(float64(matched))
	m.stateUnmatched.Set(float64(unmatched))
}

// RecordPersistenceFailure counts a failed write of document.
func (m *Manager) RecordPersistenceFailure(document string) {
	if !m.enabled {
		return
	}
	m.persistenceFailures.WithLabelValues(document).Inc()
}

// Package-level helpers backed by the global manager.

// RecordRun records the partition produced by one engine pass.
func RecordRun(engine string, attempted, matched, unmatched int) {
	globalManager.RecordRun(engine, attempted, matched, unmatched)
}

// RecordRuleHit counts one local match produced by rule.
func RecordRuleHit(rule string) { globalManager.RecordRuleHit(rule) }

// RecordRunDuration observes run wall time.
func RecordRunDuration(d time.Duration) { globalManager.RecordRunDuration(d) }

// RecordGeocodeBatch observes the latency of one geocode batch request.
func RecordGeocodeBatch(d time.Duration) { globalManager.RecordGeocodeBatch(d) }

// RecordGeocodeCandidate counts a candidate by outcome.
func RecordGeocodeCandidate(outcome string) { globalManager.RecordGeocodeCandidate(outcome) }

// RecordEnrichment counts a network lookup by outcome.
func RecordEnrichment(outcome string) { globalManager.RecordEnrichment(outcome) }

// UpdateState sets the persisted state gauges.
func UpdateState(matched, unmatched int) { globalManager.UpdateState(matched, unmatched) }

// RecordPersistenceFailure counts a failed write of document.
func RecordPersistenceFailure(document string) { globalManager.RecordPersistenceFailure(document) }

// GetRegistry returns the custom Prometheus registry used by our metrics.
func GetRegistry() *prometheus.Registry {
	return customRegistry
}

// WriteTextfile writes the custom registry to path in the Prometheus text
// format, for collection by a node exporter textfile collector.
func WriteTextfile(path string) error {
	if err := prometheus.WriteToTextfile(path, customRegistry); err != nil {
		return fmt.Errorf("%w: %w", ErrExportFailed, err)
	}
	return nil
}
