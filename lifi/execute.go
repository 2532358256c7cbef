package lifi

import (
	"context"
	"fmt"
	"net/url"
	"strconv"

	"github.com/ethereum/go-ethereum/common"
	"github.com/sirupsen/logrus"

	"github.com/omni/bridge-orchestrator/bridge"
	"github.com/omni/bridge-orchestrator/utils"
)

// Provider-reported step states. Everything that is neither DONE nor FAILED
// counts as still in flight.
const (
	statusDone   = "DONE"
	statusFailed = "FAILED"
)

// Execute drives the route one step at a time: fetch the prepared
// transaction for the step, submit it through the TxSender, then poll the
// provider's status endpoint until the step settles. The progress callback
// fires on every observed state change.
func (c *Client) Execute(ctx context.Context, route *bridge.Route, onProgress bridge.ProgressFunc) error {
	for _, step := range route.Steps {
		if step.Execution != nil && step.Execution.Status == bridge.ExecutionStatusDone {
			// already settled during a previous attempt
			continue
		}
		if err := c.executeStep(ctx, route, step, onProgress); err != nil {
			return err
		}
	}
	return nil
}

func (c *Client) executeStep(ctx context.Context, route *bridge.Route, step *bridge.Step, onProgress bridge.ProgressFunc) error {
	logger := c.logger.WithFields(logrus.Fields{
		"route_id": route.ID,
		"step_id":  step.ID,
		"tool":     step.Tool,
	})

	res := new(stepTransactionResponse)
	err := c.post(ctx, stepTransactionEndpoint, &stepTransactionRequest{RouteID: route.ID, StepID: step.ID}, res)
	if err != nil {
		return fmt.Errorf("can't fetch step transaction: %w", err)
	}
	if res.TransactionRequest == nil {
		return fmt.Errorf("provider returned no transaction for step %s", step.ID)
	}

	txHash, err := c.txSender.SendTransaction(ctx, res.TransactionRequest)
	if err != nil {
		step.Execution = &bridge.StepExecution{Status: bridge.ExecutionStatusFailed}
		onProgress(route)
		return fmt.Errorf("can't submit step transaction: %w", err)
	}
	logger.WithField("tx_hash", txHash).Info("step transaction submitted")
	step.Execution = &bridge.StepExecution{
		Status:   bridge.ExecutionStatusPending,
		TxHashes: []common.Hash{txHash},
	}
	onProgress(route)

	return c.waitForStep(ctx, route, step, txHash, onProgress)
}

func (c *Client) waitForStep(ctx context.Context, route *bridge.Route, step *bridge.Step, txHash common.Hash, onProgress bridge.ProgressFunc) error {
	query := url.Values{
		"txHash":    {txHash.Hex()},
		"fromChain": {strconv.FormatUint(route.FromChainID, 10)},
		"toChain":   {strconv.FormatUint(route.ToChainID, 10)},
		"bridge":    {step.Tool},
	}
	for {
		res := new(statusResponse)
		if err := c.get(ctx, statusEndpoint, query, res); err != nil {
			// transient status poll failures are retried on the next tick
			c.logger.WithError(err).WithField("step_id", step.ID).Warn("can't fetch step status")
		} else {
			switch res.Status {
			case statusDone:
				step.Execution.Status = bridge.ExecutionStatusDone
				onProgress(route)
				return nil
			case statusFailed:
				step.Execution.Status = bridge.ExecutionStatusFailed
				onProgress(route)
				return fmt.Errorf("step %s failed: %s", step.ID, res.Substatus)
			}
		}
		if utils.ContextSleep(ctx, c.pollInterval) == nil {
			return ctx.Err()
		}
	}
}
