package bridge

import (
	"context"

	"github.com/ethereum/go-ethereum/common"
)

// ProgressFunc receives route snapshots with updated per-step execution
// state while an execution attempt is in flight.
type ProgressFunc func(route *Route)

// RoutingProvider finds candidate routes for a query, best first.
type RoutingProvider interface {
	FindRoutes(ctx context.Context, query *RouteQuery) ([]*Route, error)
}

// ExecutionProvider drives a route to completion, reporting progress zero or
// more times before settling. A nil error means all steps completed.
type ExecutionProvider interface {
	Execute(ctx context.Context, route *Route, onProgress ProgressFunc) error
}

// SigningAccount is the custody account used as the default source address.
type SigningAccount interface {
	Address() common.Address
}
