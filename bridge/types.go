package bridge

import (
	"github.com/ethereum/go-ethereum/common"
)

// BridgeRequest is the caller-supplied input of StartBridging. The source
// side of the transfer is always the orchestrator's own custody account on
// the configured source chain.
type BridgeRequest struct {
	ToChainID         uint64   `json:"destinationChainId"`
	Asset             string   `json:"asset"`
	Amount            string   `json:"amount"`
	ToAddress         string   `json:"destinationAddress"`
	SlippageTolerance *float64 `json:"slippageTolerance,omitempty"`
}

// RouteQuery is the provider-facing request derived from a validated
// BridgeRequest. Immutable once built.
type RouteQuery struct {
	FromChainID      uint64         `json:"fromChainId"`
	ToChainID        uint64         `json:"toChainId"`
	FromTokenAddress common.Address `json:"fromTokenAddress"`
	ToTokenAddress   common.Address `json:"toTokenAddress"`
	FromAmount       string         `json:"fromAmount"`
	FromAddress      common.Address `json:"fromAddress"`
	ToAddress        common.Address `json:"toAddress"`
	Options          RouteOptions   `json:"options"`
}

type RouteOptions struct {
	Slippage         float64 `json:"slippage"`
	AllowSwitchChain bool    `json:"allowSwitchChain"`
	Order            string  `json:"order"`
}

// Route is a provider-chosen transfer plan. The description itself is
// immutable; per-step execution state is layered on top as steps progress.
type Route struct {
	ID               string         `json:"id"`
	FromChainID      uint64         `json:"fromChainId"`
	ToChainID        uint64         `json:"toChainId"`
	FromAmount       string         `json:"fromAmount"`
	ToAmount         string         `json:"toAmount"`
	GasCostUSD       string         `json:"gasCostUSD,omitempty"`
	FromTokenAddress common.Address `json:"fromTokenAddress"`
	ToTokenAddress   common.Address `json:"toTokenAddress"`
	FromAddress      common.Address `json:"fromAddress"`
	ToAddress        common.Address `json:"toAddress"`
	Steps            []*Step        `json:"steps"`
}

// Step is one hop of a route, executed by a specific sub-protocol ("tool").
type Step struct {
	ID                string         `json:"id"`
	Tool              string         `json:"tool"`
	EstimatedDuration uint64         `json:"estimatedDurationSeconds"`
	Execution         *StepExecution `json:"execution,omitempty"`
}

// ExecutionStatus is the provider-reported state of a single step.
type ExecutionStatus string

const (
	ExecutionStatusPending ExecutionStatus = "PENDING"
	ExecutionStatusDone    ExecutionStatus = "DONE"
	ExecutionStatusFailed  ExecutionStatus = "FAILED"
)

type StepExecution struct {
	Status   ExecutionStatus `json:"status"`
	TxHashes []common.Hash   `json:"txHashes,omitempty"`
}
