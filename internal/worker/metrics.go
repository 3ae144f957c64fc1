package worker

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Prometheus metrics for the worker pool. Registered once on the default
// registry; the server's /metrics endpoint exposes them alongside the HTTP
// metrics.
var (
	jobsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "primecalc_worker_jobs_total",
		Help: "Background jobs by terminal outcome.",
	}, []string{"outcome"})

	jobsActive = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "primecalc_worker_jobs_active",
		Help: "Background jobs currently queued or running.",
	})

	jobDuration = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "primecalc_worker_job_duration_seconds",
		Help:    "Wall-clock execution time of background jobs.",
		Buckets: prometheus.ExponentialBuckets(0.0001, 4, 12),
	})
)
