package bridge

import (
	"context"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/omni/bridge-orchestrator/entity"
	"github.com/omni/bridge-orchestrator/logging"
)

// Service is the bridge orchestrator: validate, resolve a route, persist a
// trackable record, hand the route to the detached execution monitor and
// return the execution id. Everything before record creation fails the call;
// nothing after it does.
type Service struct {
	validator *Validator
	resolver  *RouteResolver
	recorder  *Recorder
	monitor   *ExecutionMonitor
	logger    logging.Logger
}

func NewService(validator *Validator, resolver *RouteResolver, recorder *Recorder, monitor *ExecutionMonitor, logger logging.Logger) *Service {
	return &Service{
		validator: validator,
		resolver:  resolver,
		recorder:  recorder,
		monitor:   monitor,
		logger:    logger,
	}
}

func (s *Service) StartBridging(ctx context.Context, req *BridgeRequest) (uuid.UUID, error) {
	if err := s.validator.Validate(req); err != nil {
		return uuid.Nil, err
	}
	route, err := s.resolver.Resolve(ctx, req)
	if err != nil {
		return uuid.Nil, err
	}
	id, err := s.recorder.Create(ctx, route)
	if err != nil {
		return uuid.Nil, err
	}
	s.logger.WithFields(logrus.Fields{
		"execution_id": id,
		"to_chain_id":  req.ToChainID,
		"asset":        req.Asset,
		"amount":       req.Amount,
	}).Info("bridge record created, starting execution")
	BridgesStarted.Inc()
	s.monitor.Start(id, route)
	return id, nil
}

func (s *Service) GetStatus(ctx context.Context, id uuid.UUID) (entity.Status, error) {
	return s.recorder.GetStatus(ctx, id)
}
