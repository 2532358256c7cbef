package config

import (
	"bytes"
	"fmt"
	"time"

	"gopkg.in/yaml.v3"
)

func parseYaml(out interface{}, blob []byte) error {
	dec := yaml.NewDecoder(bytes.NewReader(blob))
	dec.KnownFields(true)
	if err := dec.Decode(out); err != nil {
		return fmt.Errorf("can't parse yaml: %w", err)
	}
	return nil
}

// duration decodes yaml strings like "30s" into a time.Duration.
type duration time.Duration

func (d *duration) UnmarshalYAML(node *yaml.Node) error {
	var raw string
	if err := node.Decode(&raw); err != nil {
		return fmt.Errorf("can't decode duration: %w", err)
	}
	v, err := time.ParseDuration(raw)
	if err != nil {
		return fmt.Errorf("can't parse duration: %w", err)
	}
	*d = duration(v)
	return nil
}

func (c *RPCConfig) UnmarshalYAML(node *yaml.Node) error {
	raw := struct {
		Host    string   `yaml:"host"`
		Timeout duration `yaml:"timeout"`
	}{}
	if err := node.Decode(&raw); err != nil {
		return err
	}
	*c = RPCConfig{
		Host:    raw.Host,
		Timeout: time.Duration(raw.Timeout),
	}
	return nil
}

func (c *ProviderConfig) UnmarshalYAML(node *yaml.Node) error {
	raw := struct {
		URL        string   `yaml:"url"`
		Timeout    duration `yaml:"timeout"`
		Integrator string   `yaml:"integrator"`
		Order      string   `yaml:"order"`
	}{}
	if err := node.Decode(&raw); err != nil {
		return err
	}
	*c = ProviderConfig{
		URL:        raw.URL,
		Timeout:    time.Duration(raw.Timeout),
		Integrator: raw.Integrator,
		Order:      raw.Order,
	}
	return nil
}

func (p *PolicyConfig) UnmarshalYAML(node *yaml.Node) error {
	raw := struct {
		MaxSlippage         float64  `yaml:"max_slippage"`
		DefaultSlippage     float64  `yaml:"default_slippage"`
		MaxRouteRetries     uint     `yaml:"max_route_retries"`
		RouteRetryDelay     duration `yaml:"route_retry_delay"`
		MaxExecutionRetries uint     `yaml:"max_execution_retries"`
		ExecutionRetryDelay duration `yaml:"execution_retry_delay"`
		StatusPollInterval  duration `yaml:"status_poll_interval"`
	}{}
	if err := node.Decode(&raw); err != nil {
		return err
	}
	*p = PolicyConfig{
		MaxSlippage:         raw.MaxSlippage,
		DefaultSlippage:     raw.DefaultSlippage,
		MaxRouteRetries:     raw.MaxRouteRetries,
		RouteRetryDelay:     time.Duration(raw.RouteRetryDelay),
		MaxExecutionRetries: raw.MaxExecutionRetries,
		ExecutionRetryDelay: time.Duration(raw.ExecutionRetryDelay),
		StatusPollInterval:  time.Duration(raw.StatusPollInterval),
	}
	return nil
}
