package lifi

import (
	"context"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/common/hexutil"

	"github.com/omni/bridge-orchestrator/bridge"
)

// TransactionRequest is the raw transaction payload the provider prepares
// for a step. Submission is delegated to a TxSender, the client itself never
// signs anything.
type TransactionRequest struct {
	ChainID  uint64         `json:"chainId"`
	To       common.Address `json:"to"`
	Data     hexutil.Bytes  `json:"data"`
	Value    *hexutil.Big   `json:"value,omitempty"`
	GasLimit hexutil.Uint64 `json:"gasLimit,omitempty"`
	GasPrice *hexutil.Big   `json:"gasPrice,omitempty"`
}

type TxSender interface {
	SendTransaction(ctx context.Context, tx *TransactionRequest) (common.Hash, error)
}

type routesRequest struct {
	FromChainID      uint64         `json:"fromChainId"`
	ToChainID        uint64         `json:"toChainId"`
	FromTokenAddress common.Address `json:"fromTokenAddress"`
	ToTokenAddress   common.Address `json:"toTokenAddress"`
	FromAmount       string         `json:"fromAmount"`
	FromAddress      common.Address `json:"fromAddress"`
	ToAddress        common.Address `json:"toAddress"`
	Options          routesOptions  `json:"options"`
}

type routesOptions struct {
	Slippage         float64 `json:"slippage"`
	AllowSwitchChain bool    `json:"allowSwitchChain"`
	Order            string  `json:"order"`
	Integrator       string  `json:"integrator,omitempty"`
}

type routesResponse struct {
	Routes []*wireRoute `json:"routes"`
}

type wireToken struct {
	Address common.Address `json:"address"`
	Symbol  string         `json:"symbol,omitempty"`
}

type wireRoute struct {
	ID          string         `json:"id"`
	FromChainID uint64         `json:"fromChainId"`
	ToChainID   uint64         `json:"toChainId"`
	FromAmount  string         `json:"fromAmount"`
	ToAmount    string         `json:"toAmount"`
	GasCostUSD  string         `json:"gasCostUSD"`
	FromToken   wireToken      `json:"fromToken"`
	ToToken     wireToken      `json:"toToken"`
	FromAddress common.Address `json:"fromAddress"`
	ToAddress   common.Address `json:"toAddress"`
	Steps       []*wireStep    `json:"steps"`
}

type wireStep struct {
	ID       string       `json:"id"`
	Tool     string       `json:"tool"`
	Estimate wireEstimate `json:"estimate"`
}

type wireEstimate struct {
	ExecutionDuration uint64 `json:"executionDuration"`
}

func (r *wireRoute) toRoute() *bridge.Route {
	steps := make([]*bridge.Step, len(r.Steps))
	for i, step := range r.Steps {
		steps[i] = &bridge.Step{
			ID:                step.ID,
			Tool:              step.Tool,
			EstimatedDuration: step.Estimate.ExecutionDuration,
		}
	}
	return &bridge.Route{
		ID:               r.ID,
		FromChainID:      r.FromChainID,
		ToChainID:        r.ToChainID,
		FromAmount:       r.FromAmount,
		ToAmount:         r.ToAmount,
		GasCostUSD:       r.GasCostUSD,
		FromTokenAddress: r.FromToken.Address,
		ToTokenAddress:   r.ToToken.Address,
		FromAddress:      r.FromAddress,
		ToAddress:        r.ToAddress,
		Steps:            steps,
	}
}

type stepTransactionRequest struct {
	RouteID string `json:"routeId"`
	StepID  string `json:"stepId"`
}

type stepTransactionResponse struct {
	TransactionRequest *TransactionRequest `json:"transactionRequest"`
}

type statusResponse struct {
	Status    string `json:"status"`
	Substatus string `json:"substatus,omitempty"`
}

type errorResponse struct {
	Message string `json:"message"`
}
