// Package metrics provides Prometheus metrics for the lootpool service.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Fetch outcomes recorded on the pool fetch counter.
const (
	OutcomeHit     = "hit"
	OutcomeFetched = "fetched"
	OutcomeError   = "error"
)

// Mapping refresh outcomes.
const (
	RefreshSuccess = "success"
	RefreshPartial = "partial"
	RefreshFailed  = "failed"
)

// Manager manages all Prometheus metrics for the lootpool service.
type Manager struct {
	namespace        string
	subsystem        string
	histogramBuckets []float64
	enabled          bool
	registry         prometheus.Registerer

	// Pool aggregation metrics
	poolFetches *prometheus.CounterVec
	poolAspects *prometheus.GaugeVec

	// Cache metrics
	cacheHits     *prometheus.CounterVec
	cacheMisses   *prometheus.CounterVec
	sharedFetches *prometheus.CounterVec

	// Category mapping metrics
	mappingRefreshes *prometheus.CounterVec
	mappingSize      prometheus.Gauge

	// Upstream metrics
	upstreamRequestDuration *prometheus.HistogramVec
	upstreamErrors          *prometheus.CounterVec

	// Prefetch metrics
	prefetchRuns prometheus.Counter

	// HTTP metrics
	httpRequests        *prometheus.CounterVec
	httpRequestDuration *prometheus.HistogramVec
}

// Global metrics manager instance.
var globalManager *Manager //nolint:gochecknoglobals // intentional global for singleton metrics manager

// Custom registry to avoid default Go metrics.
var customRegistry = prometheus.NewRegistry() //nolint:gochecknoglobals // intentional global for metrics registry

func init() { //nolint:gochecknoinits // intentional init for global metrics setup
	globalManager = NewManager(WithPrometheusRegistry(customRegistry))
}

// NewManager creates a new metrics manager with default configuration.
func NewManager(opts ...Option) *Manager {
	m := &Manager{
		namespace:        "lootpool",
		subsystem:        "core",
		histogramBuckets: prometheus.DefBuckets,
		enabled:          true,
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

	m.poolFetches = auto.NewCounterVec(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "pool_fetches_total",
		Help:      "Pool snapshot requests by pool type and outcome (hit, fetched, error)",
	}, []string{"pool_type", "outcome"})

	m.poolAspects = auto.NewGaugeVec(prometheus.GaugeOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "pool_aspects",
		Help:      "Number of aspects in the most recent snapshot per pool type",
	}, []string{"pool_type"})

	m.cacheHits = auto.NewCounterVec(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "cache_hits_total",
		Help:      "Cache reads answered within TTL, per cache",
	}, []string{"cache"})

	m.cacheMisses = auto.NewCounterVec(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "cache_misses_total",
		Help:      "Cache reads that were absent or expired, per cache",
	}, []string{"cache"})

	m.sharedFetches = auto.NewCounterVec(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "shared_fetches_total",
		Help:      "Fetches collapsed into an in-flight call by single-flight, per cache",
	}, []string{"cache"})

	m.mappingRefreshes = auto.NewCounterVec(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "mapping_refreshes_total",
		Help:      "Category mapping refresh attempts by outcome (success, partial, failed)",
	}, []string{"outcome"})

	m.mappingSize = auto.NewGauge(prometheus.GaugeOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "mapping_size",
		Help:      "Number of entries in the current category mapping",
	})

	m.upstreamRequestDuration = auto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "upstream_request_duration_milliseconds",
		Help:      "Histogram of upstream request latency in milliseconds, per source",
		Buckets:   m.histogramBuckets,
	}, []string{"source"})

	m.upstreamErrors = auto.NewCounterVec(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "upstream_errors_total",
		Help:      "Upstream requests that failed or returned a non-success status, per source",
	}, []string{"source"})

	m.prefetchRuns = auto.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "prefetch_runs_total",
		Help:      "Background prefetch cycles completed",
	})

	m.httpRequests = auto.NewCounterVec(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "http_requests_total",
		Help:      "HTTP requests by endpoint, method, and status code",
	}, []string{"endpoint", "method", "status_code"})

	m.httpRequestDuration = auto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "http_request_duration_milliseconds",
		Help:      "Histogram of HTTP request duration in milliseconds",
		Buckets:   m.histogramBuckets,
	}, []string{"endpoint", "method", "status_code"})
}

// RecordPoolFetch records a pool snapshot request outcome.
func RecordPoolFetch(poolType, outcome string) {
	if globalManager != nil && globalManager.enabled {
		globalManager.poolFetches.WithLabelValues(poolType, outcome).Inc()
	}
}

// UpdatePoolAspects sets the aspect count of the latest snapshot for a pool.
func UpdatePoolAspects(poolType string, count int) {
	if globalManager != nil && globalManager.enabled {
		globalManager.poolAspects.WithLabelValues(poolType).Set(float64(count))
	}
}

// RecordCacheHit records a cache read served within TTL.
func RecordCacheHit(cache string) {
	if globalManager != nil && globalManager.enabled {
		globalManager.cacheHits.WithLabelValues(cache).Inc()
	}
}

// RecordCacheMiss records a cache read that was absent or expired.
func RecordCacheMiss(cache string) {
	if globalManager != nil && globalManager.enabled {
		globalManager.cacheMisses.WithLabelValues(cache).Inc()
	}
}

// RecordSharedFetch records a fetch collapsed into an in-flight call.
func RecordSharedFetch(cache string) {
	if globalManager != nil && globalManager.enabled {
		globalManager.sharedFetches.WithLabelValues(cache).Inc()
	}
}

// RecordMappingRefresh records a category mapping refresh attempt.
func RecordMappingRefresh(outcome string) {
	if globalManager != nil && globalManager.enabled {
		globalManager.mappingRefreshes.WithLabelValues(outcome).Inc()
	}
}

// UpdateMappingSize sets the size of the current category mapping.
func UpdateMappingSize(size int) {
	if globalManager != nil && globalManager.enabled {
		globalManager.mappingSize.Set(float64(size))
	}
}

// ObserveUpstreamRequest records an upstream request duration.
func ObserveUpstreamRequest(source string, durationMs float64) {
	if globalManager != nil && globalManager.enabled {
		globalManager.upstreamRequestDuration.WithLabelValues(source).Observe(durationMs)
	}
}

// RecordUpstreamError records a failed upstream request.
func RecordUpstreamError(source string) {
	if globalManager != nil && globalManager.enabled {
		globalManager.upstreamErrors.WithLabelValues(source).Inc()
	}
}

// RecordPrefetchRun records a completed prefetch cycle.
func RecordPrefetchRun() {
	if globalManager != nil && globalManager.enabled {
		globalManager.prefetchRuns.Inc()
	}
}

// RecordHTTPRequest records an HTTP request.
func RecordHTTPRequest(endpoint, method, statusCode string) {
	if globalManager != nil && globalManager.enabled {
		globalManager.httpRequests.WithLabelValues(endpoint, method, statusCode).Inc()
	}
}

// RecordHTTPRequestDuration records an HTTP request duration.
func RecordHTTPRequestDuration(endpoint, method, statusCode string, durationMs float64) {
	if globalManager != nil && globalManager.enabled {
		globalManager.httpRequestDuration.WithLabelValues(endpoint, method, statusCode).Observe(durationMs)
	}
}

// GetRegistry returns the custom Prometheus registry used by our metrics.
func GetRegistry() *prometheus.Registry {
	return customRegistry
}
