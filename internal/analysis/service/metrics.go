package service

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Status label values.
const (
	StatusOK       = "ok"
	StatusGuidance = "guidance"
	StatusError    = "error"
)

// Metrics tracks analysis calls on a private registry
type Metrics struct {
	registry    *prometheus.Registry
	requests    *prometheus.CounterVec
	latency     *prometheus.HistogramVec
	cacheEvents *prometheus.CounterVec
}

// NewMetrics creates and registers the analysis collectors
func NewMetrics() *Metrics {
	m := &Metrics{
		registry: prometheus.NewRegistry(),
		requests: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: "camel",
				Subsystem: "analysis",
				Name:      "requests_total",
				Help:      "Total number of analysis requests",
			},
			[]string{"operation", "status"},
		),
		latency: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: "camel",
				Subsystem: "analysis",
				Name:      "latency_seconds",
				Help:      "Analysis latency in seconds",
				Buckets:   []float64{0.0005, 0.001, 0.005, 0.01, 0.05, 0.1, 0.5, 1, 5},
			},
			[]string{"operation"},
		),
		cacheEvents: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: "camel",
				Subsystem: "cache",
				Name:      "events_total",
				Help:      "Result cache lookups by outcome",
			},
			[]string{"result"},
		),
	}

	m.registry.MustRegister(m.requests, m.latency, m.cacheEvents)
	return m
}

// recordAnalysis records one dispatched request
func (m *Metrics) recordAnalysis(operation, status string, d time.Duration) {
	if m == nil {
		return
	}
	m.requests.WithLabelValues(operation, status).Inc()
	m.latency.WithLabelValues(operation).Observe(d.Seconds())
}

// recordCache records a cache hit, miss or error
func (m *Metrics) recordCache(result string) {
	if m == nil {
		return
	}
	m.cacheEvents.WithLabelValues(result).Inc()
}

// Handler serves the registry in the Prometheus exposition format
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}
