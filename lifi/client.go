package lifi

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"github.com/omni/bridge-orchestrator/bridge"
	"github.com/omni/bridge-orchestrator/config"
	"github.com/omni/bridge-orchestrator/logging"
)

const (
	routesEndpoint          = "/v1/advanced/routes"
	stepTransactionEndpoint = "/v1/advanced/stepTransaction"
	statusEndpoint          = "/v1/status"
)

// Client talks to a LI.FI-style routing/execution REST API. It implements
// both bridge.RoutingProvider and bridge.ExecutionProvider.
type Client struct {
	baseURL      string
	integrator   string
	client       *http.Client
	txSender     TxSender
	pollInterval time.Duration
	logger       logging.Logger
}

func NewClient(cfg *config.ProviderConfig, txSender TxSender, pollInterval time.Duration, logger logging.Logger) *Client {
	return &Client{
		baseURL:    cfg.URL,
		integrator: cfg.Integrator,
		client: &http.Client{
			Timeout: cfg.Timeout,
		},
		txSender:     txSender,
		pollInterval: pollInterval,
		logger:       logger,
	}
}

// FindRoutes asks the provider for candidate routes, best first per the
// requested ordering preference.
func (c *Client) FindRoutes(ctx context.Context, query *bridge.RouteQuery) ([]*bridge.Route, error) {
	req := &routesRequest{
		FromChainID:      query.FromChainID,
		ToChainID:        query.ToChainID,
		FromTokenAddress: query.FromTokenAddress,
		ToTokenAddress:   query.ToTokenAddress,
		FromAmount:       query.FromAmount,
		FromAddress:      query.FromAddress,
		ToAddress:        query.ToAddress,
		Options: routesOptions{
			Slippage:         query.Options.Slippage,
			AllowSwitchChain: query.Options.AllowSwitchChain,
			Order:            query.Options.Order,
			Integrator:       c.integrator,
		},
	}
	res := new(routesResponse)
	if err := c.post(ctx, routesEndpoint, req, res); err != nil {
		return nil, fmt.Errorf("can't fetch routes: %w", err)
	}
	routes := make([]*bridge.Route, len(res.Routes))
	for i, route := range res.Routes {
		routes[i] = route.toRoute()
	}
	return routes, nil
}

func (c *Client) post(ctx context.Context, endpoint string, body, out interface{}) error {
	var err error
	defer ObserveDuration(endpoint)()
	defer func() {
		ObserveError(endpoint, err)
	}()

	blob, err := json.Marshal(body)
	if err != nil {
		return fmt.Errorf("can't marshal request body: %w", err)
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+endpoint, bytes.NewReader(blob))
	if err != nil {
		return fmt.Errorf("can't build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	err = c.do(req, out)
	return err
}

func (c *Client) get(ctx context.Context, endpoint string, query url.Values, out interface{}) error {
	var err error
	defer ObserveDuration(endpoint)()
	defer func() {
		ObserveError(endpoint, err)
	}()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+endpoint+"?"+query.Encode(), nil)
	if err != nil {
		return fmt.Errorf("can't build request: %w", err)
	}
	err = c.do(req, out)
	return err
}

func (c *Client) do(req *http.Request, out interface{}) error {
	res, err := c.client.Do(req)
	if err != nil {
		return fmt.Errorf("can't send request: %w", err)
	}
	defer res.Body.Close()

	if res.StatusCode >= http.StatusBadRequest {
		apiErr := new(errorResponse)
		if err = json.NewDecoder(res.Body).Decode(apiErr); err != nil || apiErr.Message == "" {
			return fmt.Errorf("provider returned status %d", res.StatusCode)
		}
		return fmt.Errorf("provider returned status %d: %s", res.StatusCode, apiErr.Message)
	}
	if err = json.NewDecoder(res.Body).Decode(out); err != nil {
		return fmt.Errorf("can't decode response: %w", err)
	}
	return nil
}
