package config_test

import (
	"testing"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/require"

	"github.com/omni/bridge-orchestrator/config"
)

const testCfg = `
chains:
  polygon:
    rpc:
      host: https://polygon-rpc.com
      timeout: 30s
    chain_id: 137
    tokens:
      USDC: "0x3c499c542cEF5E3811e1192ce70d8cC03d5c3359"
      USDT: "0xc2132D05D31c914a87C6611C10748AEb04B58e8F"
  base:
    rpc:
      host: https://mainnet.base.org
      timeout: 20s
    chain_id: 8453
    tokens:
      USDC: "0x833589fCD6eDb6E08f4c7C32D4f71b54bdA02913"
source_chain: polygon
provider:
  url: https://li.quest
  timeout: 15s
  integrator: trade-bridge
signer:
  private_key: ${BRIDGE_SIGNER_KEY}
policy:
  max_slippage: 0.03
  default_slippage: 0.01
  max_route_retries: 5
  route_retry_delay: 1s
postgres:
  user: test_user
  password: test_password
  host: test_host
  port: 5432
  database: test_db
log_level: debug
presenter:
  host: 0.0.0.0:3333
`

//nolint:paralleltest
func TestReadConfigWithEnv(t *testing.T) {
	t.Setenv("BRIDGE_SIGNER_KEY", "4c0883a69102937d6231471b5dbb6204fe51296170827936ea5cce4b76994b0f")
	cfg, err := config.ReadConfigWithEnv([]byte(testCfg))
	require.NoError(t, err)
	require.Equal(t, &config.Config{
		Chains: map[string]*config.ChainConfig{
			"polygon": {
				RPC: &config.RPCConfig{
					Host:    "https://polygon-rpc.com",
					Timeout: 30 * time.Second,
				},
				ChainID: 137,
				Tokens: map[string]string{
					"USDC": "0x3c499c542cEF5E3811e1192ce70d8cC03d5c3359",
					"USDT": "0xc2132D05D31c914a87C6611C10748AEb04B58e8F",
				},
			},
			"base": {
				RPC: &config.RPCConfig{
					Host:    "https://mainnet.base.org",
					Timeout: 20 * time.Second,
				},
				ChainID: 8453,
				Tokens: map[string]string{
					"USDC": "0x833589fCD6eDb6E08f4c7C32D4f71b54bdA02913",
				},
			},
		},
		SourceChain: "polygon",
		Provider: &config.ProviderConfig{
			URL:        "https://li.quest",
			Timeout:    15 * time.Second,
			Integrator: "trade-bridge",
			Order:      "RECOMMENDED",
		},
		Signer: &config.SignerConfig{
			PrivateKey: "4c0883a69102937d6231471b5dbb6204fe51296170827936ea5cce4b76994b0f",
		},
		Policy: &config.PolicyConfig{
			MaxSlippage:         0.03,
			DefaultSlippage:     0.01,
			MaxRouteRetries:     5,
			RouteRetryDelay:     time.Second,
			MaxExecutionRetries: 3,
			ExecutionRetryDelay: 2 * time.Second,
			StatusPollInterval:  5 * time.Second,
		},
		DBConfig: &config.DBConfig{
			User:     "test_user",
			Password: "test_password",
			Host:     "test_host",
			Port:     5432,
			DB:       "test_db",
		},
		LogLevel: config.Level(logrus.DebugLevel),
		Presenter: &config.PresenterConfig{
			Host: "0.0.0.0:3333",
		},
	}, cfg)
}

func TestReadConfigUnknownSourceChain(t *testing.T) {
	t.Parallel()

	_, err := config.ReadConfigWithEnv([]byte(`
chains:
  polygon:
    chain_id: 137
source_chain: optimism
provider:
  url: https://li.quest
`))
	require.Error(t, err)
	require.Contains(t, err.Error(), `unknown source chain "optimism"`)
}

func TestReadConfigUnknownField(t *testing.T) {
	t.Parallel()

	_, err := config.ReadConfigWithEnv([]byte(`
chains:
  polygon:
    chain_id: 137
source_chain: polygon
provider:
  url: https://li.quest
unknown_key: 1
`))
	require.Error(t, err)
}
