package bridge

import (
	"math/big"
	"strings"

	"github.com/ethereum/go-ethereum/common"

	"github.com/omni/bridge-orchestrator/config"
)

// Validator checks bridge requests for well-formedness and policy limits
// before any external call is made. Pure and deterministic.
type Validator struct {
	cfg *config.Config
}

func NewValidator(cfg *config.Config) *Validator {
	return &Validator{cfg: cfg}
}

// Validate applies the checks in a fixed order, first failure wins.
func (v *Validator) Validate(req *BridgeRequest) error {
	if req.ToChainID == 0 {
		return ErrMissingChainID
	}
	toChain := v.cfg.ChainByID(req.ToChainID)
	if toChain == nil {
		return ErrInvalidChainID
	}
	if !isPositiveInteger(req.Amount) {
		return ErrMissingAmount
	}
	if req.Asset == "" {
		return ErrMissingAsset
	}
	if toChain.Tokens[req.Asset] == "" || v.cfg.SourceChainConfig().Tokens[req.Asset] == "" {
		return ErrInvalidAsset
	}
	if !strings.HasPrefix(req.ToAddress, "0x") || !common.IsHexAddress(req.ToAddress) {
		return ErrMissingAddress
	}
	if req.SlippageTolerance != nil {
		if s := *req.SlippageTolerance; s <= 0 || s > v.cfg.Policy.MaxSlippage {
			return ErrSlippageOutOfRange
		}
	}
	return nil
}

func isPositiveInteger(amount string) bool {
	if amount == "" {
		return false
	}
	n, ok := new(big.Int).SetString(amount, 10)
	return ok && n.Sign() > 0
}
