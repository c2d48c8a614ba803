package server

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// metricsNamespace prefixes every metric exposed by the application.
const metricsNamespace = "aicompare"

// Metrics holds the Prometheus instruments for the metrics endpoint. Each
// instance carries its own registry, so tests can construct Metrics freely
// without tripping over duplicate registration.
type Metrics struct {
	registry *prometheus.Registry
	handler  http.Handler

	comparisonsTotal prometheus.Counter
	backendFailures  *prometheus.CounterVec
	activeRequests   prometheus.Gauge
	backendLatency   *prometheus.HistogramVec
}

// NewMetrics creates the application's Prometheus instruments alongside the
// standard Go runtime and process collectors.
func NewMetrics() *Metrics {
	registry := prometheus.NewRegistry()
	registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)

	m := &Metrics{
		registry: registry,
		comparisonsTotal: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: metricsNamespace,
			Name:      "comparisons_total",
			Help:      "Total number of comparisons run.",
		}),
		backendFailures: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: metricsNamespace,
			Name:      "backend_failures_total",
			Help:      "Total number of backend call failures by kind.",
		}, []string{"kind"}),
		activeRequests: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: metricsNamespace,
			Name:      "active_requests",
			Help:      "Number of requests currently being served.",
		}),
		backendLatency: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: metricsNamespace,
			Name:      "backend_latency_seconds",
			Help:      "Latency of backend calls by backend ID.",
			Buckets:   prometheus.ExponentialBuckets(0.1, 2, 10),
		}, []string{"backend"}),
	}
	registry.MustRegister(m.comparisonsTotal, m.backendFailures, m.activeRequests, m.backendLatency)

	m.handler = promhttp.HandlerFor(registry, promhttp.HandlerOpts{})
	return m
}

// RecordComparison counts one settled comparison.
func (m *Metrics) RecordComparison() {
	m.comparisonsTotal.Inc()
}

// RecordBackendFailure counts one backend failure by kind.
func (m *Metrics) RecordBackendFailure(kind string) {
	m.backendFailures.WithLabelValues(kind).Inc()
}

// ObserveBackendLatency records the latency of one backend call.
func (m *Metrics) ObserveBackendLatency(backendID string, d time.Duration) {
	m.backendLatency.WithLabelValues(backendID).Observe(d.Seconds())
}

// IncrementActiveRequests increments the active request gauge.
func (m *Metrics) IncrementActiveRequests() {
	m.activeRequests.Inc()
}

// DecrementActiveRequests decrements the active request gauge.
func (m *Metrics) DecrementActiveRequests() {
	m.activeRequests.Dec()
}

// WritePrometheus serves the metrics in Prometheus exposition format.
func (m *Metrics) WritePrometheus(w http.ResponseWriter, r *http.Request) {
	m.handler.ServeHTTP(w, r)
}
