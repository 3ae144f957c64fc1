// This file contains Prometheus instrumentation for the HTTP API.

package server

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Prometheus collectors are process-wide singletons; package-level promauto
// registration keeps re-registration panics out of NewMetrics.
var (
	activeRequests = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "primecalc_active_requests",
		Help: "Number of HTTP requests currently being served.",
	})

	requestsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "primecalc_requests_total",
		Help: "Total number of HTTP requests by path and status code.",
	}, []string{"path", "code"})

	requestDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "primecalc_request_duration_seconds",
		Help:    "HTTP request latency by path.",
		Buckets: prometheus.ExponentialBuckets(0.0005, 4, 10),
	}, []string{"path"})
)

// Metrics exposes HTTP-level instrumentation backed by the default
// Prometheus registry.
type Metrics struct {
	handler http.Handler
}

// NewMetrics returns a Metrics tied to the default Prometheus registry.
func NewMetrics() *Metrics {
	return &Metrics{handler: promhttp.Handler()}
}

// IncrementActiveRequests records the start of a request.
func (m *Metrics) IncrementActiveRequests() {
	activeRequests.Inc()
}

// DecrementActiveRequests records the end of a request.
func (m *Metrics) DecrementActiveRequests() {
	activeRequests.Dec()
}

// ObserveRequest records a completed request with its status code and latency
// in seconds.
func (m *Metrics) ObserveRequest(path, code string, seconds float64) {
	requestsTotal.WithLabelValues(path, code).Inc()
	requestDuration.WithLabelValues(path).Observe(seconds)
}

// WritePrometheus serves the metrics in Prometheus exposition format.
func (m *Metrics) WritePrometheus(w http.ResponseWriter, r *http.Request) {
	m.handler.ServeHTTP(w, r)
}
