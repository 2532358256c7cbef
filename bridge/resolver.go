package bridge

import (
	"context"
	"fmt"

	"github.com/ethereum/go-ethereum/common"
	"github.com/sirupsen/logrus"

	"github.com/omni/bridge-orchestrator/config"
	"github.com/omni/bridge-orchestrator/logging"
	"github.com/omni/bridge-orchestrator/utils"
)

// RouteResolver turns validated requests into provider queries and picks the
// route to execute. Selection policy lives here only: the first route of the
// provider's ordering wins, the ordering preference itself is configured on
// the query.
type RouteResolver struct {
	cfg      *config.Config
	provider RoutingProvider
	account  SigningAccount
	logger   logging.Logger
}

func NewRouteResolver(cfg *config.Config, provider RoutingProvider, account SigningAccount, logger logging.Logger) *RouteResolver {
	return &RouteResolver{
		cfg:      cfg,
		provider: provider,
		account:  account,
		logger:   logger,
	}
}

// Resolve queries the routing provider with a bounded fixed-delay retry
// loop. Provider faults and empty route lists are retried alike; the caller
// is suspended for at most MaxRouteRetries*RouteRetryDelay.
func (r *RouteResolver) Resolve(ctx context.Context, req *BridgeRequest) (*Route, error) {
	query := r.buildQuery(req)
	policy := r.cfg.Policy

	var lastErr error
	for attempt := uint(1); attempt <= policy.MaxRouteRetries; attempt++ {
		if attempt > 1 {
			RouteRetries.Inc()
			if utils.ContextSleep(ctx, policy.RouteRetryDelay) == nil {
				return nil, ctx.Err()
			}
		}
		routes, err := r.provider.FindRoutes(ctx, query)
		if err != nil {
			lastErr = err
			r.logger.WithError(err).WithField("attempt", attempt).Error("can't fetch routes from provider")
			continue
		}
		if len(routes) == 0 {
			lastErr = ErrNoRouteFound
			r.logger.WithField("attempt", attempt).Warn("provider returned no routes")
			continue
		}
		route := routes[0]
		r.logger.WithFields(logrus.Fields{
			"route_id":  route.ID,
			"steps":     len(route.Steps),
			"to_amount": route.ToAmount,
		}).Info("route selected")
		return route, nil
	}
	if lastErr == ErrNoRouteFound {
		return nil, ErrNoRouteFound
	}
	return nil, fmt.Errorf("can't resolve route after %d attempts: %w", policy.MaxRouteRetries, lastErr)
}

func (r *RouteResolver) buildQuery(req *BridgeRequest) *RouteQuery {
	sourceChain := r.cfg.SourceChainConfig()
	toChain := r.cfg.ChainByID(req.ToChainID)

	slippage := r.cfg.Policy.DefaultSlippage
	if req.SlippageTolerance != nil {
		slippage = *req.SlippageTolerance
	}

	return &RouteQuery{
		FromChainID:      sourceChain.ChainID,
		ToChainID:        req.ToChainID,
		FromTokenAddress: common.HexToAddress(sourceChain.Tokens[req.Asset]),
		ToTokenAddress:   common.HexToAddress(toChain.Tokens[req.Asset]),
		FromAmount:       req.Amount,
		FromAddress:      r.account.Address(),
		ToAddress:        common.HexToAddress(req.ToAddress),
		Options: RouteOptions{
			Slippage:         slippage,
			AllowSwitchChain: true,
			Order:            r.cfg.Provider.Order,
		},
	}
}
