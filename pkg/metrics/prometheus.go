// Package metrics provides Prometheus metrics for the rostermatch resolver.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Manager manages all Prometheus metrics for the rostermatch service.
type Manager struct {
	namespace        string
	subsystem        string
	histogramBuckets []float64
	registry         prometheus.Registerer

	// Core Business Metrics - What really matters for mention resolution
	resolutionsTotal      prometheus.Counter
	resolutionLatency     prometheus.Histogram
	emptyResults          prometheus.Counter
	highConfidenceResults prometheus.Counter
	ambiguousResults      prometheus.Counter
	candidatesReturned    prometheus.Histogram

	// Fuzzy Scorer Metrics - External collaborator performance
	fuzzyLatency prometheus.Histogram
	fuzzyErrors  prometheus.Counter

	// Index Metrics - Build and swap lifecycle
	indexBuilds        prometheus.Counter
	indexBuildDuration prometheus.Histogram
	indexEntities      prometheus.Gauge
	indexTeams         prometheus.Gauge
	indexAliases       prometheus.Gauge

	// Cache Metrics - Resolution memoization
	cacheHits   prometheus.Counter
	cacheMisses prometheus.Counter
	cacheSize   prometheus.Gauge

	// Pool Metrics - Fuzzy scorer execution pool
	poolWorkers   prometheus.Gauge
	poolDepth     prometheus.Gauge
	poolRejected  prometheus.Counter
	poolTaskDelay prometheus.Histogram

	// HTTP Performance Metrics
	httpRequests        *prometheus.CounterVec
	httpRequestDuration *prometheus.HistogramVec

	// Error tracking by component
	errorsByComponent *prometheus.CounterVec
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
		namespace:        "rostermatch",
		subsystem:        "resolver",
		histogramBuckets: prometheus.DefBuckets,
		registry:         prometheus.DefaultRegisterer,
	}

	// Apply all options
	for _, opt := range opts {
		opt(m)
	}

	// Initialize metrics
	m.initializeMetrics()

	return m
}

// initializeMetrics creates all the Prometheus metrics.
func (m *Manager) initializeMetrics() {
	// Ensure metrics are registered on the configured registry (custom by default)
	auto := promauto.With(m.registry)

	// Core Business Metrics
	m.resolutionsTotal = auto.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "resolutions_total",
		Help:      "Total number of resolution calls",
	})

	m.resolutionLatency = auto.NewHistogram(prometheus.HistogramOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "resolution_latency_milliseconds",
		Help:      "Histogram of end-to-end resolution latency in milliseconds",
		Buckets:   m.histogramBuckets,
	})

	m.emptyResults = auto.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "empty_results_total",
		Help:      "Total number of resolutions that produced no candidates",
	})

	m.highConfidenceResults = auto.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "high_confidence_results_total",
		Help:      "Total number of resolutions whose top candidate cleared the cutoff",
	})

	m.ambiguousResults = auto.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "ambiguous_results_total",
		Help:      "Total number of resolutions with an unresolved surname collision",
	})

	m.candidatesReturned = auto.NewHistogram(prometheus.HistogramOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "candidates_returned",
		Help:      "Histogram of candidate counts returned per resolution",
		Buckets:   []float64{0, 1, 2, 3, 4, 5, 10},
	})

	// Fuzzy Scorer Metrics
	m.fuzzyLatency = auto.NewHistogram(prometheus.HistogramOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "fuzzy_latency_milliseconds",
		Help:      "Fuzzy scorer latency in milliseconds",
		Buckets:   m.histogramBuckets,
	})

	m.fuzzyErrors = auto.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "fuzzy_errors_total",
		Help:      "Total number of fuzzy scorer failures",
	})

	// Index Metrics
	m.indexBuilds = auto.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "index_builds_total",
		Help:      "Total number of roster index builds",
	})

	m.indexBuildDuration = auto.NewHistogram(prometheus.HistogramOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "index_build_duration_milliseconds",
		Help:      "Roster index build duration in milliseconds",
		Buckets:   m.histogramBuckets,
	})

	m.indexEntities = auto.NewGauge(prometheus.GaugeOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "index_entities",
		Help:      "Number of entities in the active roster index",
	})

	m.indexTeams = auto.NewGauge(prometheus.GaugeOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "index_teams",
		Help:      "Number of teams in the active roster index",
	})

	m.indexAliases = auto.NewGauge(prometheus.GaugeOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "index_aliases",
		Help:      "Number of alias keys in the active roster index",
	})

	// Cache Metrics
	m.cacheHits = auto.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "cache_hits_total",
		Help:      "Total number of resolution cache hits",
	})

	m.cacheMisses = auto.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "cache_misses_total",
		Help:      "Total number of resolution cache misses",
	})

	m.cacheSize = auto.NewGauge(prometheus.GaugeOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "cache_size",
		Help:      "Current number of cached resolutions",
	})

	// Pool Metrics
	m.poolWorkers = auto.NewGauge(prometheus.GaugeOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "pool_workers",
		Help:      "Number of workers in the fuzzy scorer pool",
	})

	m.poolDepth = auto.NewGauge(prometheus.GaugeOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "pool_depth",
		Help:      "Current number of queued fuzzy scoring tasks",
	})

	m.poolRejected = auto.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "pool_rejected_total",
		Help:      "Total number of tasks rejected by a full pool queue",
	})

	m.poolTaskDelay = auto.NewHistogram(prometheus.HistogramOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "pool_task_delay_milliseconds",
		Help:      "Time tasks spend waiting for a pool worker in milliseconds",
		Buckets:   m.histogramBuckets,
	})

	// HTTP Performance Metrics
	m.httpRequests = auto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: m.namespace,
			Subsystem: m.subsystem,
			Name:      "http_requests_total",
			Help:      "Total number of HTTP requests by endpoint and method",
		},
		[]string{"endpoint", "method", "status_code"},
	)

	m.httpRequestDuration = auto.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: m.namespace,
			Subsystem: m.subsystem,
			Name:      "http_request_duration_milliseconds",
			Help:      "HTTP request duration in milliseconds",
			Buckets:   m.histogramBuckets,
		},
		[]string{"endpoint", "method", "status_code"},
	)

	// Error tracking
	m.errorsByComponent = auto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: m.namespace,
			Subsystem: m.subsystem,
			Name:      "errors_total",
			Help:      "Total errors by component and type",
		},
		[]string{"component", "error_type"},
	)
}

// RecordResolution increments the resolutions counter.
func RecordResolution() {
	globalManager.resolutionsTotal.Inc()
}

// RecordResolutionLatency records end-to-end resolution latency in milliseconds.
func RecordResolutionLatency(latencyMs float64) {
	globalManager.resolutionLatency.Observe(latencyMs)
}

// RecordEmptyResult increments the empty-result counter.
func RecordEmptyResult() {
	globalManager.emptyResults.Inc()
}

// RecordHighConfidenceResult increments the high-confidence counter.
func RecordHighConfidenceResult() {
	globalManager.highConfidenceResults.Inc()
}

// RecordAmbiguousResult increments the ambiguous-result counter.
func RecordAmbiguousResult() {
	globalManager.ambiguousResults.Inc()
}

// RecordCandidatesReturned records the number of candidates in one result.
func RecordCandidatesReturned(n int) {
	globalManager.candidatesReturned.Observe(float64(n))
}

// RecordFuzzyLatency records fuzzy scorer latency in milliseconds.
func RecordFuzzyLatency(latencyMs float64) {
	globalManager.fuzzyLatency.Observe(latencyMs)
}

// RecordFuzzyError increments the fuzzy scorer error counter.
func RecordFuzzyError() {
	globalManager.fuzzyErrors.Inc()
}

// RecordIndexBuild increments the index build counter.
func RecordIndexBuild() {
	globalManager.indexBuilds.Inc()
}

// RecordIndexBuildDuration records index build duration in milliseconds.
func RecordIndexBuildDuration(durationMs float64) {
	globalManager.indexBuildDuration.Observe(durationMs)
}

// UpdateIndexSizes sets the entity, team and alias gauges for the active index.
func UpdateIndexSizes(entities, teams, aliases int) {
	globalManager.indexEntities.Set(float64(entities))
	globalManager.indexTeams.Set(float64(teams))
	globalManager.indexAliases.Set(float64(aliases))
}

// RecordCacheHit increments the cache hit counter.
func RecordCacheHit() {
	globalManager.cacheHits.Inc()
}

// RecordCacheMiss increments the cache miss counter.
func RecordCacheMiss() {
	globalManager.cacheMisses.Inc()
}

// UpdateCacheSize sets the current cache size.
func UpdateCacheSize(size int) {
	globalManager.cacheSize.Set(float64(size))
}

// UpdatePoolWorkers sets the number of pool workers.
func UpdatePoolWorkers(count int) {
	globalManager.poolWorkers.Set(float64(count))
}

// UpdatePoolDepth sets the current pool queue depth.
func UpdatePoolDepth(depth int) {
	globalManager.poolDepth.Set(float64(depth))
}

// RecordPoolRejected increments the pool rejection counter.
func RecordPoolRejected() {
	globalManager.poolRejected.Inc()
}

// RecordPoolTaskDelay records how long a task waited for a worker.
func RecordPoolTaskDelay(delayMs float64) {
	globalManager.poolTaskDelay.Observe(delayMs)
}

// RecordHTTPRequest records an HTTP request.
func RecordHTTPRequest(endpoint, method, statusCode string) {
	globalManager.httpRequests.WithLabelValues(endpoint, method, statusCode).Inc()
}

// RecordHTTPRequestDuration records HTTP request duration.
func RecordHTTPRequestDuration(endpoint, method, statusCode string, duration float64) {
	globalManager.httpRequestDuration.WithLabelValues(endpoint, method, statusCode).Observe(duration)
}

// RecordErrorByComponent records an error with component and type labels.
func RecordErrorByComponent(component, errorType string) {
	globalManager.errorsByComponent.WithLabelValues(component, errorType).Inc()
}

// GetRegistry returns the custom Prometheus registry used by our metrics.
func GetRegistry() *prometheus.Registry {
	return customRegistry
}
