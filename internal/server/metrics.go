package server

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	httpRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "ridgemark_http_requests_total",
			Help: "Total number of HTTP requests",
		},
		[]string{"method", "endpoint", "status"},
	)

	httpRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "ridgemark_http_request_duration_seconds",
			Help:    "HTTP request duration in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "endpoint"},
	)

	analyzeRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "ridgemark_analyze_requests_total",
			Help: "Total number of analysis requests",
		},
		[]string{"status"},
	)

	analyzeDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "ridgemark_analyze_duration_seconds",
			Help:    "Fingerprint analysis duration in seconds",
			Buckets: []float64{.05, .1, .25, .5, 1, 2.5, 5, 10},
		},
	)

	ridgeCountObserved = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "ridgemark_ridge_count",
			Help:    "Ridge counts reported for selected regions",
			Buckets: []float64{0, 1, 2, 4, 8, 12, 16, 24, 32},
		},
	)

	uploadSizeBytes = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "ridgemark_upload_size_bytes",
			Help:    "Size of uploaded files in bytes",
			Buckets: []float64{1024, 10 * 1024, 100 * 1024, 1024 * 1024, 10 * 1024 * 1024},
		},
	)
)
