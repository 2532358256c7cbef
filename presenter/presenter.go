package presenter

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/google/uuid"

	"github.com/omni/bridge-orchestrator/bridge"
	"github.com/omni/bridge-orchestrator/db"
	"github.com/omni/bridge-orchestrator/entity"
	"github.com/omni/bridge-orchestrator/logging"
	"github.com/omni/bridge-orchestrator/presenter/http/middleware"
	"github.com/omni/bridge-orchestrator/presenter/http/render"
)

// BridgeService is the part of the orchestrator the HTTP layer needs.
type BridgeService interface {
	StartBridging(ctx context.Context, req *bridge.BridgeRequest) (uuid.UUID, error)
	GetStatus(ctx context.Context, id uuid.UUID) (entity.Status, error)
}

type Presenter struct {
	logger  logging.Logger
	service BridgeService
	root    chi.Router
}

func NewPresenter(logger logging.Logger, service BridgeService) *Presenter {
	p := &Presenter{
		logger:  logger,
		service: service,
		root:    chi.NewMux(),
	}
	p.root.Use(chimiddleware.Throttle(100))
	p.root.Use(chimiddleware.RequestID)
	p.root.Use(middleware.NewLoggerMiddleware(p.logger))
	p.root.Use(middleware.Recoverer)
	p.root.Post("/api/bridge", p.StartBridge)
	p.root.Get("/api/bridge/{executionID}", p.GetBridgeStatus)
	return p
}

func (p *Presenter) Handler() http.Handler {
	return p.root
}

func (p *Presenter) Serve(addr string) error {
	p.logger.WithField("addr", addr).Info("starting presenter service")
	return http.ListenAndServe(addr, p.root)
}

func (p *Presenter) StartBridge(w http.ResponseWriter, r *http.Request) {
	req := new(bridge.BridgeRequest)
	if err := json.NewDecoder(r.Body).Decode(req); err != nil {
		render.Error(w, r, http.StatusBadRequest, fmt.Errorf("can't decode request body: %w", err))
		return
	}

	id, err := p.service.StartBridging(r.Context(), req)
	if err != nil {
		validationErr := new(bridge.ValidationError)
		switch {
		case errors.As(err, &validationErr):
			render.JSON(w, r, http.StatusBadRequest, &render.ErrorResult{
				Error: validationErr.Message,
				Code:  validationErr.Code,
			})
		case errors.Is(err, bridge.ErrNoRouteFound):
			render.Error(w, r, http.StatusUnprocessableEntity, err)
		default:
			render.Error(w, r, http.StatusInternalServerError, err)
		}
		return
	}

	render.JSON(w, r, http.StatusOK, &StartBridgeResult{ExecutionID: id})
}

func (p *Presenter) GetBridgeStatus(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "executionID"))
	if err != nil {
		render.Error(w, r, http.StatusBadRequest, fmt.Errorf("can't parse execution id: %w", err))
		return
	}

	status, err := p.service.GetStatus(r.Context(), id)
	if err != nil {
		if errors.Is(err, db.ErrNotFound) {
			render.Error(w, r, http.StatusNotFound, fmt.Errorf("execution %s not found", id))
			return
		}
		render.Error(w, r, http.StatusInternalServerError, err)
		return
	}

	render.JSON(w, r, http.StatusOK, &BridgeStatusResult{ExecutionID: id, Status: status})
}
