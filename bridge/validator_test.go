package bridge_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/omni/bridge-orchestrator/bridge"
)

func floatPtr(v float64) *float64 {
	return &v
}

func TestValidate(t *testing.T) {
	t.Parallel()

	validator := bridge.NewValidator(testConfig())

	for _, test := range []struct {
		Name        string
		Request     *bridge.BridgeRequest
		ExpectedErr error
	}{
		{
			Name: "Valid request",
			Request: &bridge.BridgeRequest{
				ToChainID: 137,
				Asset:     "USDC",
				Amount:    "1000000000000000000",
				ToAddress: testToAddress,
			},
			ExpectedErr: nil,
		},
		{
			Name: "Valid request with slippage",
			Request: &bridge.BridgeRequest{
				ToChainID:         137,
				Asset:             "USDC",
				Amount:            "100000",
				ToAddress:         testToAddress,
				SlippageTolerance: floatPtr(0.01),
			},
			ExpectedErr: nil,
		},
		{
			Name: "Missing chain id wins over missing amount",
			Request: &bridge.BridgeRequest{
				ToChainID: 0,
				Amount:    "0",
			},
			ExpectedErr: bridge.ErrMissingChainID,
		},
		{
			Name: "Unsupported chain id",
			Request: &bridge.BridgeRequest{
				ToChainID: 42161,
				Asset:     "USDC",
				Amount:    "100000",
				ToAddress: testToAddress,
			},
			ExpectedErr: bridge.ErrInvalidChainID,
		},
		{
			Name: "Zero amount",
			Request: &bridge.BridgeRequest{
				ToChainID: 137,
				Asset:     "USDC",
				Amount:    "0",
				ToAddress: testToAddress,
			},
			ExpectedErr: bridge.ErrMissingAmount,
		},
		{
			Name: "Non-numeric amount",
			Request: &bridge.BridgeRequest{
				ToChainID: 137,
				Asset:     "USDC",
				Amount:    "one hundred",
				ToAddress: testToAddress,
			},
			ExpectedErr: bridge.ErrMissingAmount,
		},
		{
			Name: "Missing amount wins over missing asset",
			Request: &bridge.BridgeRequest{
				ToChainID: 137,
			},
			ExpectedErr: bridge.ErrMissingAmount,
		},
		{
			Name: "Missing asset",
			Request: &bridge.BridgeRequest{
				ToChainID: 137,
				Amount:    "100000",
				ToAddress: testToAddress,
			},
			ExpectedErr: bridge.ErrMissingAsset,
		},
		{
			Name: "Asset not available on source chain",
			Request: &bridge.BridgeRequest{
				ToChainID: 137,
				Asset:     "USDT",
				Amount:    "100000",
				ToAddress: testToAddress,
			},
			ExpectedErr: bridge.ErrInvalidAsset,
		},
		{
			Name: "Unknown asset",
			Request: &bridge.BridgeRequest{
				ToChainID: 137,
				Asset:     "DOGE",
				Amount:    "100000",
				ToAddress: testToAddress,
			},
			ExpectedErr: bridge.ErrInvalidAsset,
		},
		{
			Name: "Missing destination address",
			Request: &bridge.BridgeRequest{
				ToChainID: 137,
				Asset:     "USDC",
				Amount:    "100000",
			},
			ExpectedErr: bridge.ErrMissingAddress,
		},
		{
			Name: "Destination address without prefix",
			Request: &bridge.BridgeRequest{
				ToChainID: 137,
				Asset:     "USDC",
				Amount:    "100000",
				ToAddress: "abcabcabcabcabcabcabcabcabcabcabcabcabca",
			},
			ExpectedErr: bridge.ErrMissingAddress,
		},
		{
			Name: "Zero slippage",
			Request: &bridge.BridgeRequest{
				ToChainID:         137,
				Asset:             "USDC",
				Amount:            "100000",
				ToAddress:         testToAddress,
				SlippageTolerance: floatPtr(0),
			},
			ExpectedErr: bridge.ErrSlippageOutOfRange,
		},
		{
			Name: "Slippage above policy limit",
			Request: &bridge.BridgeRequest{
				ToChainID:         137,
				Asset:             "USDC",
				Amount:            "100000",
				ToAddress:         testToAddress,
				SlippageTolerance: floatPtr(0.05),
			},
			ExpectedErr: bridge.ErrSlippageOutOfRange,
		},
	} {
		t.Logf("Running sub-test %q", test.Name)
		err := validator.Validate(test.Request)
		if test.ExpectedErr == nil {
			require.NoError(t, err, "Failed %s", test.Name)
		} else {
			require.ErrorIs(t, err, test.ExpectedErr, "Failed %s", test.Name)
		}
	}
}

func TestValidateErrorCode(t *testing.T) {
	t.Parallel()

	validator := bridge.NewValidator(testConfig())
	err := validator.Validate(&bridge.BridgeRequest{})
	validationErr := new(bridge.ValidationError)
	require.ErrorAs(t, err, &validationErr)
	require.Equal(t, "MissingChainId", validationErr.Code)
}
