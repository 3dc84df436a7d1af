// Package metrics provides Prometheus metrics for the topspin rating
// pipeline.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Manager manages all Prometheus metrics for the pipeline.
type Manager struct {
	namespace        string
	subsystem        string
	histogramBuckets []float64
	registry         prometheus.Registerer

	// Ingestion metrics
	matchesIngested    *prometheus.CounterVec
	duplicateMatches   prometheus.Counter
	scoreParseWarnings prometheus.Counter
	playersTracked     prometheus.Gauge

	// Sweep metrics
	matchesRated        prometheus.Counter
	predictionsRecorded prometheus.Counter
	sweepDuration       prometheus.Histogram

	// Evaluation outcome gauges, set once per run
	evalAccuracy prometheus.Gauge
	evalBrier    prometheus.Gauge
}

// Global metrics manager instance.
var globalManager *Manager //nolint:gochecknoglobals // intentional global for singleton metrics manager

// Custom registry to avoid default Go metrics.
var customRegistry = prometheus.NewRegistry() //nolint:gochecknoglobals // intentional global for metrics registry

// Initialize global metrics.
func init() { //nolint:gochecknoinits // intentional init for global metrics setup
	globalManager = NewManager(WithPrometheusRegistry(customRegistry))
}

// NewManager creates a new metrics manager with default configuration.
func NewManager(opts ...Option) *Manager {
	m := &Manager{
		namespace:        "topspin",
		subsystem:        "pipeline",
		histogramBuckets: prometheus.DefBuckets,
		registry:         prometheus.DefaultRegisterer,
	}

	for _, opt := range opts {
		opt(m)
	}

	m.initializeMetrics()

	return m
}

// initializeMetrics creates all the Prometheus metrics.
func (m *Manager) initializeMetrics() {
	auto := promauto.With(m.registry)

	m.matchesIngested = auto.NewCounterVec(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "matches_ingested_total",
		Help:      "Total number of matches accepted from the feed, by tier",
	}, []string{"tier"})

	m.duplicateMatches = auto.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "matches_duplicate_total",
		Help:      "Total number of duplicate match records dropped by the feed",
	})

	m.scoreParseWarnings = auto.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "score_parse_warnings_total",
		Help:      "Total number of matches rated with a neutral margin due to unusable scores",
	})

	m.playersTracked = auto.NewGauge(prometheus.GaugeOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "players_tracked",
		Help:      "Number of players registered in the rating store",
	})

	m.matchesRated = auto.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "matches_rated_total",
		Help:      "Total number of matches applied to the rating store",
	})

	m.predictionsRecorded = auto.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "predictions_recorded_total",
		Help:      "Total number of held-out predictions recorded by the evaluator",
	})

	m.sweepDuration = auto.NewHistogram(prometheus.HistogramOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "sweep_duration_seconds",
		Help:      "Histogram of full sequential sweep durations",
		Buckets:   m.histogramBuckets,
	})

	m.evalAccuracy = auto.NewGauge(prometheus.GaugeOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "eval_accuracy",
		Help:      "Held-out prediction accuracy of the most recent run",
	})

	m.evalBrier = auto.NewGauge(prometheus.GaugeOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "eval_brier_score",
		Help:      "Held-out Brier score of the most recent run",
	})
}

// RecordMatchIngested increments the per-tier ingestion counter.
func RecordMatchIngested(tier string) {
	globalManager.matchesIngested.WithLabelValues(tier).Inc()
}

// RecordDuplicateMatch increments the dropped-duplicate counter.
func RecordDuplicateMatch() {
	globalManager.duplicateMatches.Inc()
}

// RecordScoreParseWarning increments the neutral-margin warning counter.
func RecordScoreParseWarning() {
	globalManager.scoreParseWarnings.Inc()
}

// UpdatePlayersTracked updates the tracked-player gauge.
func UpdatePlayersTracked(count int) {
	globalManager.playersTracked.Set(float64(count))
}

// RecordMatchRated increments the rated-match counter.
func RecordMatchRated() {
	globalManager.matchesRated.Inc()
}

// RecordPredictionRecorded increments the evaluator prediction counter.
func RecordPredictionRecorded() {
	globalManager.predictionsRecorded.Inc()
}

// RecordSweepDuration observes one full sweep duration in seconds.
func RecordSweepDuration(seconds float64) {
	globalManager.sweepDuration.Observe(seconds)
}

// UpdateEvalAccuracy sets the final accuracy gauge for the run.
func UpdateEvalAccuracy(accuracy float64) {
	globalManager.evalAccuracy.Set(accuracy)
}

// UpdateEvalBrier sets the final Brier score gauge for the run.
func UpdateEvalBrier(brier float64) {
	globalManager.evalBrier.Set(brier)
}

// GetRegistry returns the custom registry backing the global manager,
// for exposing /metrics during long runs.
func GetRegistry() *prometheus.Registry {
	return customRegistry
}
