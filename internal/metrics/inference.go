// Package metrics exposes Prometheus metrics for the inference service.
package metrics

import "github.com/prometheus/client_golang/prometheus"

// Inference Prometheus metrics.
var (
	InferenceRequestsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "suiron",
			Name:      "inference_requests_total",
			Help:      "Total number of inference requests",
		},
		[]string{"operation", "status"}, // status: "ok" / "invalid_input" / "error" / "empty"
	)

	InferenceDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "suiron",
			Name:      "inference_duration_seconds",
			Help:      "Inference call duration in seconds",
			Buckets:   []float64{0.01, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10, 30},
		},
		[]string{"operation"},
	)

	PoolQueueDepth = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Namespace: "suiron",
			Name:      "pool_queue_depth",
			Help:      "Number of inference jobs waiting in the worker pool queue",
		},
	)
)

var registered bool

// Register registers the inference metrics. Must be called once from main.
func Register() {
	if registered {
		return
	}
	prometheus.MustRegister(InferenceRequestsTotal)
	prometheus.MustRegister(InferenceDuration)
	prometheus.MustRegister(PoolQueueDepth)
	registered = true
}

// Observe records one finished inference call.
func Observe(operation, status string, seconds float64) {
	InferenceRequestsTotal.WithLabelValues(operation, status).Inc()
	InferenceDuration.WithLabelValues(operation).Observe(seconds)
}
