package bridge

import (
	"context"
	"sync"

	"github.com/google/uuid"

	"github.com/omni/bridge-orchestrator/config"
	"github.com/omni/bridge-orchestrator/logging"
	"github.com/omni/bridge-orchestrator/utils"
)

// ExecutionMonitor drives the execution provider against resolved routes,
// detached from the request that started the bridge. One goroutine per
// execution id; the only shared state between executions is the record
// store. It is the only component that updates records.
type ExecutionMonitor struct {
	ctx      context.Context
	provider ExecutionProvider
	recorder *Recorder
	policy   *config.PolicyConfig
	logger   logging.Logger
	wg       sync.WaitGroup
}

// NewExecutionMonitor creates a monitor whose background executions live on
// ctx; cancelling it stops in-flight executions on process shutdown.
func NewExecutionMonitor(ctx context.Context, provider ExecutionProvider, recorder *Recorder, policy *config.PolicyConfig, logger logging.Logger) *ExecutionMonitor {
	return &ExecutionMonitor{
		ctx:      ctx,
		provider: provider,
		recorder: recorder,
		policy:   policy,
		logger:   logger,
	}
}

// Start launches the detached execution for an already-persisted record and
// returns immediately. Nothing is reported back to the caller; every outcome
// ends in the record's status or in the log.
func (m *ExecutionMonitor) Start(id uuid.UUID, route *Route) {
	m.wg.Add(1)
	go func() {
		defer m.wg.Done()
		m.run(id, route)
	}()
}

// Wait blocks until all started executions have reached a terminal state.
func (m *ExecutionMonitor) Wait() {
	m.wg.Wait()
}

func (m *ExecutionMonitor) run(id uuid.UUID, route *Route) {
	logger := m.logger.WithField("execution_id", id)

	onProgress := func(updated *Route) {
		// A lost progress update is less severe than aborting an
		// in-flight transfer, keep going.
		if err := m.recorder.Update(m.ctx, id, updated); err != nil {
			logger.WithError(err).Error("can't persist bridge progress update")
		}
	}

	for attempt := uint(1); attempt <= m.policy.MaxExecutionRetries; attempt++ {
		if attempt > 1 {
			ExecutionRetries.Inc()
			logger.WithField("attempt", attempt).Info("retrying bridge execution on the same route")
			if utils.ContextSleep(m.ctx, m.policy.ExecutionRetryDelay) == nil {
				logger.Warn("bridge execution cancelled during retry backoff")
				return
			}
		}
		err := m.provider.Execute(m.ctx, route, onProgress)
		if err == nil {
			ExecutionsCompleted.Inc()
			logger.Info("bridge execution completed")
			return
		}
		logger.WithError(err).WithField("attempt", attempt).Error("bridge execution attempt failed")
	}

	ExecutionsExhausted.Inc()
	logger.Error("bridge execution retries exhausted, giving up")
}
