// Package metrics provides Prometheus metrics for the risk prediction gateway.
package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const defaultNamespace = "risk_gateway"

// Manager owns the gateway's collectors and the registry they are exposed from.
// A nil *Manager is valid and records nothing.
type Manager struct {
	namespace        string
	histogramBuckets []float64
	registry         *prometheus.Registry

	predictions    *prometheus.CounterVec
	engineFailures *prometheus.CounterVec
	cacheHits      *prometheus.CounterVec
	engineLatency  *prometheus.HistogramVec

	httpRequests        *prometheus.CounterVec
	httpRequestDuration *prometheus.HistogramVec
}

// Option configures a Manager.
type Option func(*Manager)

// WithNamespace overrides the metric namespace.
func WithNamespace(namespace string) Option {
	return func(m *Manager) {
		if namespace != "" {
			m.namespace = namespace
		}
	}
}

// WithHistogramBuckets overrides the latency histogram buckets.
func WithHistogramBuckets(buckets []float64) Option {
	return func(m *Manager) {
		if len(buckets) > 0 {
			m.histogramBuckets = buckets
		}
	}
}

// WithRegistry registers collectors on registry instead of a fresh one.
func WithRegistry(registry *prometheus.Registry) Option {
	return func(m *Manager) {
		m.registry = registry
	}
}

// NewManager creates the collectors. Go runtime and process collectors are registered
// alongside them.
func NewManager(opts ...Option) *Manager {
	m := &Manager{
		namespace:        defaultNamespace,
		histogramBuckets: prometheus.DefBuckets,
	}
	for _, opt := range opts {
		opt(m)
	}
	if m.registry == nil {
		m.registry = prometheus.NewRegistry()
		m.registry.MustRegister(
			collectors.NewGoCollector(),
			collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		)
	}

	auto := promauto.With(m.registry)

	m.predictions = auto.NewCounterVec(prometheus.CounterOpts{
		Namespace: m.namespace,
		Name:      "predictions_total",
		Help:      "Engine results produced, by engine and normalized result status",
	}, []string{"engine", "status"})

	m.engineFailures = auto.NewCounterVec(prometheus.CounterOpts{
		Namespace: m.namespace,
		Name:      "engine_failures_total",
		Help:      "Engine invocations that returned an error, panicked or timed out",
	}, []string{"engine"})

	m.cacheHits = auto.NewCounterVec(prometheus.CounterOpts{
		Namespace: m.namespace,
		Name:      "cache_hits_total",
		Help:      "Engine results served from cache, by tier",
	}, []string{"tier"})

	m.engineLatency = auto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: m.namespace,
		Name:      "engine_latency_seconds",
		Help:      "Engine invocation latency, cache hits excluded",
		Buckets:   m.histogramBuckets,
	}, []string{"engine"})

	m.httpRequests = auto.NewCounterVec(prometheus.CounterOpts{
		Namespace: m.namespace,
		Name:      "http_requests_total",
		Help:      "HTTP requests by method, route and status code",
	}, []string{"method", "path", "status"})

	m.httpRequestDuration = auto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: m.namespace,
		Name:      "http_request_duration_seconds",
		Help:      "HTTP request latency by method and route",
		Buckets:   m.histogramBuckets,
	}, []string{"method", "path"})

	return m
}

// RecordPrediction counts one engine result with its normalized status.
func (m *Manager) RecordPrediction(engine, status string) {
	if m == nil {
		return
	}
	m.predictions.WithLabelValues(engine, status).Inc()
}

// RecordEngineFailure counts one failed engine invocation.
func (m *Manager) RecordEngineFailure(engine string) {
	if m == nil {
		return
	}
	m.engineFailures.WithLabelValues(engine).Inc()
}

// RecordCacheHit counts one cache hit on tier.
func (m *Manager) RecordCacheHit(tier string) {
	if m == nil {
		return
	}
	m.cacheHits.WithLabelValues(tier).Inc()
}

// ObserveEngineLatency records how long an engine invocation took.
func (m *Manager) ObserveEngineLatency(engine string, d time.Duration) {
	if m == nil {
		return
	}
	m.engineLatency.WithLabelValues(engine).Observe(d.Seconds())
}

// RecordHTTPRequest counts and times one HTTP request. path should be the route
// template, not the raw URL, to keep label cardinality bounded.
func (m *Manager) RecordHTTPRequest(method, path string, status int, d time.Duration) {
	if m == nil {
		return
	}
	m.httpRequests.WithLabelValues(method, path, strconv.Itoa(status)).Inc()
	m.httpRequestDuration.WithLabelValues(method, path).Observe(d.Seconds())
}

// Registry returns the registry the collectors are registered on.
func (m *Manager) Registry() *prometheus.Registry {
	return m.registry
}

// Handler exposes the registry in the Prometheus text format.
func (m *Manager) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}
