package presenter

import (
	"github.com/google/uuid"

	"github.com/omni/bridge-orchestrator/entity"
)

type StartBridgeResult struct {
	ExecutionID uuid.UUID `json:"executionId"`
}

type BridgeStatusResult struct {
	ExecutionID uuid.UUID     `json:"executionId"`
	Status      entity.Status `json:"status"`
}
