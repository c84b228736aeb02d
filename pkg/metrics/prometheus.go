// Package metrics provides Prometheus metrics for the spell cooldown service.
package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const (
	defaultRefreshInterval = 10 * time.Second
)

// Wait duration buckets in seconds: one poll up to the six minute ceiling.
var defaultWaitBuckets = []float64{1, 5, 15, 30, 60, 90, 120, 180, 240, 300, 360, 420}

// Manager owns every collector exported by the service.
type Manager struct {
	namespace        string
	subsystem        string
	histogramBuckets []float64
	waitBuckets      []float64
	enabled          bool
	refreshInterval  time.Duration
	customLabels     map[string]string
	metricPrefix     string
	registry         prometheus.Registerer

	// Cooldown lifecycle
	registrations *prometheus.CounterVec
	waits         *prometheus.CounterVec
	waitDuration  prometheus.Histogram
	activeWaiters prometheus.Gauge
	waitPolls     prometheus.Counter

	// Store
	storeOperations *prometheus.CounterVec
	storeErrors     *prometheus.CounterVec
	storeLatency    *prometheus.HistogramVec
	storeEntries    prometheus.Gauge
	storeSwept      prometheus.Counter

	// Match-data provider
	matchLookups       *prometheus.CounterVec
	matchLookupLatency prometheus.Histogram
	championsLoaded    prometheus.Gauge

	// HTTP
	httpRequests        *prometheus.CounterVec
	httpRequestDuration *prometheus.HistogramVec

	// Errors
	errorRateByComponent *prometheus.CounterVec
	errorRateByType      *prometheus.CounterVec
	errorRateByEndpoint  *prometheus.CounterVec
	errorLatency         *prometheus.HistogramVec

	// System
	systemMemoryUsage    prometheus.Gauge
	systemGoroutineCount prometheus.Gauge
	systemGCPauseTime    prometheus.Histogram
}

var globalManager *Manager //nolint:gochecknoglobals // singleton metrics manager

// Custom registry to avoid default Go metrics.
var customRegistry = prometheus.NewRegistry() //nolint:gochecknoglobals // metrics registry

func init() { //nolint:gochecknoinits // global metrics setup
	globalManager = NewManager(WithPrometheusRegistry(customRegistry))
}

// NewManager creates a new metrics manager with default configuration.
func NewManager(opts ...Option) *Manager {
	m := &Manager{
		namespace:        "spelltimer",
		subsystem:        "cooldown",
		histogramBuckets: prometheus.DefBuckets,
		waitBuckets:      defaultWaitBuckets,
		enabled:          true,
		refreshInterval:  defaultRefreshInterval,
		customLabels:     make(map[string]string),
		metricPrefix:     "",
		registry:         prometheus.DefaultRegisterer,
	}

	for _, opt := range opts {
		opt(m)
	}

	m.initializeMetrics()

	return m
}

func (m *Manager) name(n string) string {
	if m.metricPrefix == "" {
		return n
	}
	return m.metricPrefix + "_" + n
}

func (m *Manager) initializeMetrics() { //nolint:funlen // one place for every collector
	auto := promauto.With(m.registry)
	labels := prometheus.Labels(m.customLabels)

	m.registrations = auto.NewCounterVec(prometheus.CounterOpts{
		Namespace:   m.namespace,
		Subsystem:   m.subsystem,
		Name:        m.name("registrations_total"),
		Help:        "Spell reports processed, by outcome",
		ConstLabels: labels,
	}, []string{"outcome"})

	m.waits = auto.NewCounterVec(prometheus.CounterOpts{
		Namespace:   m.namespace,
		Subsystem:   m.subsystem,
		Name:        m.name("waits_total"),
		Help:        "Cooldown waits finished, by outcome (expired, timeout, canceled, error)",
		ConstLabels: labels,
	}, []string{"outcome"})

	m.waitDuration = auto.NewHistogram(prometheus.HistogramOpts{
		Namespace:   m.namespace,
		Subsystem:   m.subsystem,
		Name:        m.name("wait_duration_seconds"),
		Help:        "Time spent blocked in a cooldown wait",
		Buckets:     m.waitBuckets,
		ConstLabels: labels,
	})

	m.activeWaiters = auto.NewGauge(prometheus.GaugeOpts{
		Namespace:   m.namespace,
		Subsystem:   m.subsystem,
		Name:        m.name("active_waiters"),
		Help:        "Number of callers currently blocked waiting for a cooldown",
		ConstLabels: labels,
	})

	m.waitPolls = auto.NewCounter(prometheus.CounterOpts{
		Namespace:   m.namespace,
		Subsystem:   m.subsystem,
		Name:        m.name("wait_polls_total"),
		Help:        "Store existence checks issued by waiters",
		ConstLabels: labels,
	})

	m.storeOperations = auto.NewCounterVec(prometheus.CounterOpts{
		Namespace:   m.namespace,
		Subsystem:   m.subsystem,
		Name:        m.name("store_operations_total"),
		Help:        "Cooldown store operations by backend and operation",
		ConstLabels: labels,
	}, []string{"backend", "operation"})

	m.storeErrors = auto.NewCounterVec(prometheus.CounterOpts{
		Namespace:   m.namespace,
		Subsystem:   m.subsystem,
		Name:        m.name("store_errors_total"),
		Help:        "Cooldown store failures by backend and operation",
		ConstLabels: labels,
	}, []string{"backend", "operation"})

	m.storeLatency = auto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace:   m.namespace,
		Subsystem:   m.subsystem,
		Name:        m.name("store_latency_milliseconds"),
		Help:        "Cooldown store operation latency in milliseconds",
		Buckets:     m.histogramBuckets,
		ConstLabels: labels,
	}, []string{"backend", "operation"})

	m.storeEntries = auto.NewGauge(prometheus.GaugeOpts{
		Namespace:   m.namespace,
		Subsystem:   m.subsystem,
		Name:        m.name("store_entries"),
		Help:        "Live entries held by the in-memory cooldown store",
		ConstLabels: labels,
	})

	m.storeSwept = auto.NewCounter(prometheus.CounterOpts{
		Namespace:   m.namespace,
		Subsystem:   m.subsystem,
		Name:        m.name("store_swept_total"),
		Help:        "Expired entries removed by the in-memory sweep",
		ConstLabels: labels,
	})

	m.matchLookups = auto.NewCounterVec(prometheus.CounterOpts{
		Namespace:   m.namespace,
		Subsystem:   m.subsystem,
		Name:        m.name("match_lookups_total"),
		Help:        "Live match lookups against the match-data provider, by result",
		ConstLabels: labels,
	}, []string{"result"})

	m.matchLookupLatency = auto.NewHistogram(prometheus.HistogramOpts{
		Namespace:   m.namespace,
		Subsystem:   m.subsystem,
		Name:        m.name("match_lookup_latency_milliseconds"),
		Help:        "Latency of live match lookups in milliseconds",
		Buckets:     m.histogramBuckets,
		ConstLabels: labels,
	})

	m.championsLoaded = auto.NewGauge(prometheus.GaugeOpts{
		Namespace:   m.namespace,
		Subsystem:   m.subsystem,
		Name:        m.name("champions_loaded"),
		Help:        "Champion display names available to the resolver",
		ConstLabels: labels,
	})

	m.httpRequests = auto.NewCounterVec(prometheus.CounterOpts{
		Namespace:   m.namespace,
		Subsystem:   m.subsystem,
		Name:        m.name("http_requests_total"),
		Help:        "Total number of HTTP requests by endpoint and method",
		ConstLabels: labels,
	}, []string{"endpoint", "method", "status_code"})

	m.httpRequestDuration = auto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace:   m.namespace,
		Subsystem:   m.subsystem,
		Name:        m.name("http_request_duration_milliseconds"),
		Help:        "HTTP request duration in milliseconds",
		Buckets:     m.histogramBuckets,
		ConstLabels: labels,
	}, []string{"endpoint", "method", "status_code"})

	m.errorRateByComponent = auto.NewCounterVec(prometheus.CounterOpts{
		Namespace:   m.namespace,
		Subsystem:   m.subsystem,
		Name:        m.name("errors_by_component_total"),
		Help:        "Errors by component and type",
		ConstLabels: labels,
	}, []string{"component", "error_type"})

	m.errorRateByType = auto.NewCounterVec(prometheus.CounterOpts{
		Namespace:   m.namespace,
		Subsystem:   m.subsystem,
		Name:        m.name("errors_by_type_total"),
		Help:        "Errors by type and severity",
		ConstLabels: labels,
	}, []string{"error_type", "severity"})

	m.errorRateByEndpoint = auto.NewCounterVec(prometheus.CounterOpts{
		Namespace:   m.namespace,
		Subsystem:   m.subsystem,
		Name:        m.name("errors_by_endpoint_total"),
		Help:        "Errors by endpoint, method and type",
		ConstLabels: labels,
	}, []string{"endpoint", "method", "error_type"})

	m.errorLatency = auto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace:   m.namespace,
		Subsystem:   m.subsystem,
		Name:        m.name("error_latency_milliseconds"),
		Help:        "Latency of operations that ended in an error",
		Buckets:     m.histogramBuckets,
		ConstLabels: labels,
	}, []string{"component", "error_type"})

	m.systemMemoryUsage = auto.NewGauge(prometheus.GaugeOpts{
		Namespace:   m.namespace,
		Subsystem:   "system",
		Name:        m.name("memory_usage_bytes"),
		Help:        "Heap bytes allocated",
		ConstLabels: labels,
	})

	m.systemGoroutineCount = auto.NewGauge(prometheus.GaugeOpts{
		Namespace:   m.namespace,
		Subsystem:   "system",
		Name:        m.name("goroutines"),
		Help:        "Number of goroutines (each waiter holds one)",
		ConstLabels: labels,
	})

	m.systemGCPauseTime = auto.NewHistogram(prometheus.HistogramOpts{
		Namespace:   m.namespace,
		Subsystem:   "system",
		Name:        m.name("gc_pause_milliseconds"),
		Help:        "Average GC pause time in milliseconds",
		Buckets:     m.histogramBuckets,
		ConstLabels: labels,
	})
}

// Cooldown lifecycle.

// RecordRegistration counts a processed spell report.
func RecordRegistration(outcome string) {
	if !globalManager.enabled {
		return
	}
	globalManager.registrations.WithLabelValues(outcome).Inc()
}

// RecordWait counts a finished wait and observes how long it blocked.
func RecordWait(outcome string, waited time.Duration) {
	if !globalManager.enabled {
		return
	}
	globalManager.waits.WithLabelValues(outcome).Inc()
	globalManager.waitDuration.Observe(waited.Seconds())
}

// IncActiveWaiters marks a waiter as started.
func IncActiveWaiters() {
	globalManager.activeWaiters.Inc()
}

// DecActiveWaiters marks a waiter as finished.
func DecActiveWaiters() {
	globalManager.activeWaiters.Dec()
}

// RecordWaitPoll counts one existence check made by a waiter.
func RecordWaitPoll() {
	globalManager.waitPolls.Inc()
}

// Store.

// RecordStoreOperation counts a store call and its latency.
func RecordStoreOperation(backend, operation string, latencyMs float64) {
	if !globalManager.enabled {
		return
	}
	globalManager.storeOperations.WithLabelValues(backend, operation).Inc()
	globalManager.storeLatency.WithLabelValues(backend, operation).Observe(latencyMs)
}

// RecordStoreError counts a failed store call.
func RecordStoreError(backend, operation string) {
	globalManager.storeErrors.WithLabelValues(backend, operation).Inc()
}

// UpdateStoreEntries sets the number of live in-memory entries.
func UpdateStoreEntries(count int) {
	globalManager.storeEntries.Set(float64(count))
}

// RecordStoreSwept counts entries removed by the expiry sweep.
func RecordStoreSwept(count int) {
	globalManager.storeSwept.Add(float64(count))
}

// Match-data provider.

// RecordMatchLookup counts a live match lookup and its latency.
func RecordMatchLookup(result string, latencyMs float64) {
	if !globalManager.enabled {
		return
	}
	globalManager.matchLookups.WithLabelValues(result).Inc()
	globalManager.matchLookupLatency.Observe(latencyMs)
}

// UpdateChampionsLoaded sets the number of resolvable champion names.
func UpdateChampionsLoaded(count int) {
	globalManager.championsLoaded.Set(float64(count))
}

// HTTP.

// RecordHTTPRequest increments the HTTP request counter.
func RecordHTTPRequest(endpoint, method, statusCode string) {
	globalManager.httpRequests.WithLabelValues(endpoint, method, statusCode).Inc()
}

// RecordHTTPRequestDuration records HTTP request duration.
func RecordHTTPRequestDuration(endpoint, method, statusCode string, duration float64) {
	globalManager.httpRequestDuration.WithLabelValues(endpoint, method, statusCode).Observe(duration)
}

// Errors.

// RecordErrorByComponent records an error with component and type labels.
func RecordErrorByComponent(component, errorType string) {
	globalManager.errorRateByComponent.WithLabelValues(component, errorType).Inc()
}

// RecordErrorByType records an error with type and severity labels.
func RecordErrorByType(errorType, severity string) {
	globalManager.errorRateByType.WithLabelValues(errorType, severity).Inc()
}

// RecordErrorByEndpoint records an error with endpoint, method, and error type labels.
func RecordErrorByEndpoint(endpoint, method, errorType string) {
	globalManager.errorRateByEndpoint.WithLabelValues(endpoint, method, errorType).Inc()
}

// RecordErrorLatency records the latency of an operation that resulted in an error.
func RecordErrorLatency(component, errorType string, latencyMs float64) {
	globalManager.errorLatency.WithLabelValues(component, errorType).Observe(latencyMs)
}

// System.

// UpdateSystemMemoryUsage sets the system memory usage in bytes.
func UpdateSystemMemoryUsage(bytes uint64) {
	globalManager.systemMemoryUsage.Set(float64(bytes))
}

// UpdateSystemGoroutineCount sets the number of goroutines.
func UpdateSystemGoroutineCount(count int) {
	globalManager.systemGoroutineCount.Set(float64(count))
}

// RecordSystemGCPauseTime records GC pause time in milliseconds.
func RecordSystemGCPauseTime(pauseMs float64) {
	globalManager.systemGCPauseTime.Observe(pauseMs)
}

// GetRegistry returns the custom Prometheus registry used by our metrics.
func GetRegistry() *prometheus.Registry {
	return customRegistry
}

// SinceMs returns the milliseconds elapsed since start.
func SinceMs(start time.Time) float64 {
	return float64(time.Since(start).Microseconds()) / 1000
}
