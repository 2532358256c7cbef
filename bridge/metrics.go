package bridge

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	BridgesStarted = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: "bridge",
		Subsystem: "orchestrator",
		Name:      "started_total",
	})
	RouteRetries = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: "bridge",
		Subsystem: "orchestrator",
		Name:      "route_retries_total",
	})
	ExecutionRetries = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: "bridge",
		Subsystem: "orchestrator",
		Name:      "execution_retries_total",
	})
	ExecutionsCompleted = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: "bridge",
		Subsystem: "orchestrator",
		Name:      "executions_completed_total",
	})
	ExecutionsExhausted = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: "bridge",
		Subsystem: "orchestrator",
		Name:      "executions_exhausted_total",
	})
)
