package bridge

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/google/uuid"

	"github.com/omni/bridge-orchestrator/entity"
	"github.com/omni/bridge-orchestrator/logging"
)

// Recorder adapts the persistent store to the orchestration flow: it
// snapshots routes into bridge records and derives the aggregate status from
// per-step execution state on every progress update.
type Recorder struct {
	repo   entity.BridgeRecordsRepo
	logger logging.Logger
}

func NewRecorder(repo entity.BridgeRecordsRepo, logger logging.Logger) *Recorder {
	return &Recorder{
		repo:   repo,
		logger: logger,
	}
}

// Create persists a fresh record for the route with every step pending and
// returns the store-generated execution id.
func (r *Recorder) Create(ctx context.Context, route *Route) (uuid.UUID, error) {
	raw, err := json.Marshal(route)
	if err != nil {
		return uuid.Nil, fmt.Errorf("can't marshal route snapshot: %w", err)
	}
	steps := make(entity.Steps, len(route.Steps))
	for i, step := range route.Steps {
		steps[i] = entity.Step{
			Tool:   step.Tool,
			Status: entity.StepStatusPending,
		}
	}
	record := &entity.BridgeRecord{
		FromAddress:      route.FromAddress,
		ToAddress:        route.ToAddress,
		FromChainID:      route.FromChainID,
		ToChainID:        route.ToChainID,
		FromAmount:       route.FromAmount,
		FromTokenAddress: route.FromTokenAddress,
		ToTokenAddress:   route.ToTokenAddress,
		Steps:            steps,
		Status:           entity.StatusPending,
		RawRoute:         raw,
	}
	if err = r.repo.Create(ctx, record); err != nil {
		return uuid.Nil, fmt.Errorf("can't create bridge record: %w", err)
	}
	return record.ID, nil
}

// Update recomputes the step projection and aggregate status from the route
// snapshot and persists the replacement. Terminal records are shielded from
// stale snapshots by the repository's monotone merge.
func (r *Recorder) Update(ctx context.Context, id uuid.UUID, route *Route) error {
	raw, err := json.Marshal(route)
	if err != nil {
		return fmt.Errorf("can't marshal route snapshot: %w", err)
	}
	steps := ProjectSteps(route)
	record := &entity.BridgeRecord{
		ID:       id,
		Steps:    steps,
		Status:   entity.AggregateStatus(steps),
		RawRoute: raw,
	}
	if err = r.repo.Update(ctx, record); err != nil {
		return fmt.Errorf("can't update bridge record: %w", err)
	}
	return nil
}

// GetStatus returns the aggregate status for an execution id, db.ErrNotFound
// when no record exists.
func (r *Recorder) GetStatus(ctx context.Context, id uuid.UUID) (entity.Status, error) {
	record, err := r.repo.GetByID(ctx, id)
	if err != nil {
		return "", err
	}
	return record.Status, nil
}

// ProjectSteps maps provider-reported execution state onto the persisted
// step projection. Anything other than DONE or FAILED counts as pending.
func ProjectSteps(route *Route) entity.Steps {
	steps := make(entity.Steps, len(route.Steps))
	for i, step := range route.Steps {
		projected := entity.Step{
			Tool:   step.Tool,
			Status: entity.StepStatusPending,
		}
		if step.Execution != nil {
			switch step.Execution.Status {
			case ExecutionStatusDone:
				projected.Status = entity.StepStatusDone
			case ExecutionStatusFailed:
				projected.Status = entity.StepStatusFailed
			}
			if len(step.Execution.TxHashes) > 0 {
				txHash := step.Execution.TxHashes[0]
				projected.TxHash = &txHash
			}
		}
		steps[i] = projected
	}
	return steps
}
