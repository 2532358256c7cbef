package lifi

import (
	"context"
	"errors"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	RequestResults = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "bridge",
		Subsystem: "provider",
		Name:      "request_results_total",
	}, []string{"endpoint", "status"})

	RequestDurations = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: "bridge",
		Subsystem: "provider",
		Name:      "request_duration_seconds",
		Buckets:   []float64{0.05, 0.1, 0.2, 0.5, 1, 2, 5, 10, 20},
	}, []string{"endpoint"})
)

func ObserveError(endpoint string, err error) {
	if err != nil {
		if errors.Is(err, context.DeadlineExceeded) {
			RequestResults.WithLabelValues(endpoint, "timeout").Inc()
		} else {
			RequestResults.WithLabelValues(endpoint, "error").Inc()
		}
	} else {
		RequestResults.WithLabelValues(endpoint, "ok").Inc()
	}
}

func ObserveDuration(endpoint string) func() time.Duration {
	return prometheus.NewTimer(RequestDurations.WithLabelValues(endpoint)).ObserveDuration
}
