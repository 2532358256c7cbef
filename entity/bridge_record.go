package entity

import (
	"context"
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"time"

	"github.com/ethereum/go-ethereum/common"
	"github.com/google/uuid"
	"github.com/jmoiron/sqlx/types"
)

// Status is the aggregate state of a bridge execution record.
type Status string

const (
	StatusPending   Status = "PENDING"
	StatusCompleted Status = "COMPLETED"
	StatusFailed    Status = "FAILED"
)

// IsTerminal tells whether no further status transitions are allowed.
func (s Status) IsTerminal() bool {
	return s == StatusCompleted || s == StatusFailed
}

// StepStatus is the per-step state as reported by the execution provider.
// In-flight provider states are collapsed to StepStatusPending before they
// reach the record.
type StepStatus string

const (
	StepStatusPending StepStatus = "PENDING"
	StepStatusDone    StepStatus = "DONE"
	StepStatusFailed  StepStatus = "FAILED"
)

// Step is the persisted projection of a single route hop.
type Step struct {
	Tool   string       `json:"tool"`
	Status StepStatus   `json:"status"`
	TxHash *common.Hash `json:"txHash,omitempty"`
}

type Steps []Step

func (s Steps) Value() (driver.Value, error) {
	blob, err := json.Marshal(s)
	if err != nil {
		return nil, fmt.Errorf("can't marshal steps: %w", err)
	}
	return blob, nil
}

func (s *Steps) Scan(src interface{}) error {
	var blob []byte
	switch v := src.(type) {
	case []byte:
		blob = v
	case string:
		blob = []byte(v)
	default:
		return fmt.Errorf("can't scan steps from %T", src)
	}
	if err := json.Unmarshal(blob, s); err != nil {
		return fmt.Errorf("can't unmarshal steps: %w", err)
	}
	return nil
}

// AggregateStatus derives the record status from the step list. The record
// is completed only when every step is done; a single failed step marks it
// failed; anything else, including an empty step list, is still pending.
func AggregateStatus(steps Steps) Status {
	if len(steps) == 0 {
		return StatusPending
	}
	allDone := true
	anyFailed := false
	for _, step := range steps {
		if step.Status != StepStatusDone {
			allDone = false
		}
		if step.Status == StepStatusFailed {
			anyFailed = true
		}
	}
	if allDone {
		return StatusCompleted
	}
	if anyFailed {
		return StatusFailed
	}
	return StatusPending
}

// BridgeRecord is the persisted state of a single bridge execution, keyed by
// the caller-visible execution id. Endpoint fields are snapshotted from the
// resolved route at creation and never change; steps, status and the raw
// route snapshot are replaced wholesale on every progress update.
type BridgeRecord struct {
	ID               uuid.UUID      `db:"id"`
	FromAddress      common.Address `db:"from_address"`
	ToAddress        common.Address `db:"to_address"`
	FromChainID      uint64         `db:"from_chain_id"`
	ToChainID        uint64         `db:"to_chain_id"`
	FromAmount       string         `db:"from_amount"`
	FromTokenAddress common.Address `db:"from_token_address"`
	ToTokenAddress   common.Address `db:"to_token_address"`
	Steps            Steps          `db:"steps"`
	Status           Status         `db:"status"`
	RawRoute         types.JSONText `db:"raw_route"`
	CreatedAt        *time.Time     `db:"created_at"`
	UpdatedAt        *time.Time     `db:"updated_at"`
}

type BridgeRecordsRepo interface {
	// Create persists a new record and fills in the store-generated id.
	Create(ctx context.Context, record *BridgeRecord) error
	// Update replaces steps, status and the raw route snapshot of an
	// existing record. Records in a terminal status are left untouched.
	Update(ctx context.Context, record *BridgeRecord) error
	GetByID(ctx context.Context, id uuid.UUID) (*BridgeRecord, error)
}
