package config

import (
	"fmt"
	"os"
	"time"

	"github.com/sirupsen/logrus"
	"gopkg.in/yaml.v3"
)

const (
	DefaultMaxSlippage         = 0.03
	DefaultSlippage            = 0.03
	DefaultMaxRouteRetries     = 3
	DefaultRouteRetryDelay     = 2 * time.Second
	DefaultMaxExecutionRetries = 3
	DefaultExecutionRetryDelay = 2 * time.Second
	DefaultStatusPollInterval  = 5 * time.Second
)

type Level logrus.Level

func (l *Level) UnmarshalYAML(node *yaml.Node) error {
	var raw string
	if err := node.Decode(&raw); err != nil {
		return fmt.Errorf("can't decode log level: %w", err)
	}
	parsed, err := logrus.ParseLevel(raw)
	if err != nil {
		return fmt.Errorf("can't parse log level: %w", err)
	}
	*l = Level(parsed)
	return nil
}

type RPCConfig struct {
	Host    string        `yaml:"host"`
	Timeout time.Duration `yaml:"timeout"`
}

type ChainConfig struct {
	RPC     *RPCConfig        `yaml:"rpc"`
	ChainID uint64            `yaml:"chain_id"`
	Tokens  map[string]string `yaml:"tokens"`
}

type ProviderConfig struct {
	URL        string        `yaml:"url"`
	Timeout    time.Duration `yaml:"timeout"`
	Integrator string        `yaml:"integrator"`
	Order      string        `yaml:"order"`
}

type SignerConfig struct {
	PrivateKey string `yaml:"private_key"`
}

type PolicyConfig struct {
	MaxSlippage         float64       `yaml:"max_slippage"`
	DefaultSlippage     float64       `yaml:"default_slippage"`
	MaxRouteRetries     uint          `yaml:"max_route_retries"`
	RouteRetryDelay     time.Duration `yaml:"route_retry_delay"`
	MaxExecutionRetries uint          `yaml:"max_execution_retries"`
	ExecutionRetryDelay time.Duration `yaml:"execution_retry_delay"`
	StatusPollInterval  time.Duration `yaml:"status_poll_interval"`
}

type DBConfig struct {
	User     string `yaml:"user"`
	Password string `yaml:"password"`
	Host     string `yaml:"host"`
	Port     int    `yaml:"port"`
	DB       string `yaml:"database"`
}

type PresenterConfig struct {
	Host string `yaml:"host"`
}

type Config struct {
	Chains      map[string]*ChainConfig `yaml:"chains"`
	SourceChain string                  `yaml:"source_chain"`
	Provider    *ProviderConfig         `yaml:"provider"`
	Signer      *SignerConfig           `yaml:"signer"`
	Policy      *PolicyConfig           `yaml:"policy"`
	DBConfig    *DBConfig               `yaml:"postgres"`
	LogLevel    Level                   `yaml:"log_level"`
	Presenter   *PresenterConfig        `yaml:"presenter"`
}

func (cfg *Config) init() error {
	if len(cfg.Chains) == 0 {
		return fmt.Errorf("no chains configured")
	}
	if cfg.SourceChain == "" {
		return fmt.Errorf("source_chain is not set")
	}
	if cfg.Chains[cfg.SourceChain] == nil {
		return fmt.Errorf("unknown source chain %q", cfg.SourceChain)
	}
	if cfg.Provider == nil || cfg.Provider.URL == "" {
		return fmt.Errorf("provider url is not set")
	}
	if cfg.Provider.Timeout == 0 {
		cfg.Provider.Timeout = 30 * time.Second
	}
	if cfg.Provider.Order == "" {
		cfg.Provider.Order = "RECOMMENDED"
	}
	if cfg.Policy == nil {
		cfg.Policy = &PolicyConfig{}
	}
	if cfg.Presenter == nil {
		cfg.Presenter = &PresenterConfig{Host: ":3000"}
	}
	cfg.Policy.init()
	return nil
}

func (p *PolicyConfig) init() {
	if p.MaxSlippage == 0 {
		p.MaxSlippage = DefaultMaxSlippage
	}
	if p.DefaultSlippage == 0 {
		p.DefaultSlippage = DefaultSlippage
	}
	if p.MaxRouteRetries == 0 {
		p.MaxRouteRetries = DefaultMaxRouteRetries
	}
	if p.RouteRetryDelay == 0 {
		p.RouteRetryDelay = DefaultRouteRetryDelay
	}
	if p.MaxExecutionRetries == 0 {
		p.MaxExecutionRetries = DefaultMaxExecutionRetries
	}
	if p.ExecutionRetryDelay == 0 {
		p.ExecutionRetryDelay = DefaultExecutionRetryDelay
	}
	if p.StatusPollInterval == 0 {
		p.StatusPollInterval = DefaultStatusPollInterval
	}
}

// SourceChainConfig returns the chain the orchestrator bridges from.
func (cfg *Config) SourceChainConfig() *ChainConfig {
	return cfg.Chains[cfg.SourceChain]
}

// ChainByID looks up a configured chain by its numeric chain id.
func (cfg *Config) ChainByID(chainID uint64) *ChainConfig {
	for _, chain := range cfg.Chains {
		if chain.ChainID == chainID {
			return chain
		}
	}
	return nil
}

func ReadConfigWithEnv(blob []byte) (*Config, error) {
	blob = []byte(os.ExpandEnv(string(blob)))
	cfg := new(Config)
	cfg.LogLevel = Level(logrus.InfoLevel)
	if err := parseYaml(cfg, blob); err != nil {
		return nil, err
	}
	if err := cfg.init(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	return cfg, nil
}

func ReadConfigFromFile(path string) (*Config, error) {
	blob, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("can't read config file: %w", err)
	}
	return ReadConfigWithEnv(blob)
}
