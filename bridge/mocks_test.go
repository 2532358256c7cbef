package bridge_test

import (
	"context"
	"sync"
	"time"

	"github.com/ethereum/go-ethereum/common"
	"github.com/google/uuid"

	"github.com/omni/bridge-orchestrator/bridge"
	"github.com/omni/bridge-orchestrator/config"
	"github.com/omni/bridge-orchestrator/db"
	"github.com/omni/bridge-orchestrator/entity"
	"github.com/omni/bridge-orchestrator/logging"
)

var (
	testAccountAddress = common.HexToAddress("0x1111111111111111111111111111111111111111")
	testToAddress      = "0xabcabcabcabcabcabcabcabcabcabcabcabcabca"
	testTxHash         = common.HexToHash("0x2222222222222222222222222222222222222222222222222222222222222222")
)

func testConfig() *config.Config {
	return &config.Config{
		Chains: map[string]*config.ChainConfig{
			"base": {
				ChainID: 8453,
				Tokens: map[string]string{
					"USDC": "0x833589fCD6eDb6E08f4c7C32D4f71b54bdA02913",
				},
			},
			"polygon": {
				ChainID: 137,
				Tokens: map[string]string{
					"USDC": "0x3c499c542cEF5E3811e1192ce70d8cC03d5c3359",
					"USDT": "0xc2132D05D31c914a87C6611C10748AEb04B58e8F",
				},
			},
		},
		SourceChain: "base",
		Provider: &config.ProviderConfig{
			URL:   "http://localhost",
			Order: "RECOMMENDED",
		},
		Policy: &config.PolicyConfig{
			MaxSlippage:         0.03,
			DefaultSlippage:     0.03,
			MaxRouteRetries:     3,
			RouteRetryDelay:     time.Millisecond,
			MaxExecutionRetries: 3,
			ExecutionRetryDelay: time.Millisecond,
			StatusPollInterval:  time.Millisecond,
		},
	}
}

func testRoute() *bridge.Route {
	return &bridge.Route{
		ID:               "route-1",
		FromChainID:      8453,
		ToChainID:        137,
		FromAmount:       "1000000000000000000",
		ToAmount:         "999000000000000000",
		FromTokenAddress: common.HexToAddress("0x833589fCD6eDb6E08f4c7C32D4f71b54bdA02913"),
		ToTokenAddress:   common.HexToAddress("0x3c499c542cEF5E3811e1192ce70d8cC03d5c3359"),
		FromAddress:      testAccountAddress,
		ToAddress:        common.HexToAddress(testToAddress),
		Steps: []*bridge.Step{
			{ID: "step-1", Tool: "stargate", EstimatedDuration: 120},
		},
	}
}

type fakeAccount struct{}

func (fakeAccount) Address() common.Address {
	return testAccountAddress
}

// fakeRoutingProvider replays scripted FindRoutes results and counts calls.
type fakeRoutingProvider struct {
	mu        sync.Mutex
	responses []func() ([]*bridge.Route, error)
	calls     int
	lastQuery *bridge.RouteQuery
}

func (p *fakeRoutingProvider) FindRoutes(_ context.Context, query *bridge.RouteQuery) ([]*bridge.Route, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.lastQuery = query
	resp := p.responses[p.calls]
	p.calls++
	return resp()
}

func routesResponse(routes ...*bridge.Route) func() ([]*bridge.Route, error) {
	return func() ([]*bridge.Route, error) {
		return routes, nil
	}
}

func errorResponse(err error) func() ([]*bridge.Route, error) {
	return func() ([]*bridge.Route, error) {
		return nil, err
	}
}

// fakeExecutionProvider runs a scripted function per attempt.
type fakeExecutionProvider struct {
	mu       sync.Mutex
	attempts []func(route *bridge.Route, onProgress bridge.ProgressFunc) error
	calls    int
}

func (p *fakeExecutionProvider) Execute(_ context.Context, route *bridge.Route, onProgress bridge.ProgressFunc) error {
	p.mu.Lock()
	attempt := p.attempts[p.calls]
	p.calls++
	p.mu.Unlock()
	return attempt(route, onProgress)
}

func (p *fakeExecutionProvider) callCount() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.calls
}

// fakeRecordsRepo is an in-memory store honoring the repo contract,
// including the monotone status merge on update.
type fakeRecordsRepo struct {
	mu        sync.Mutex
	records   map[uuid.UUID]*entity.BridgeRecord
	createErr error
	updateErr error
}

func newFakeRecordsRepo() *fakeRecordsRepo {
	return &fakeRecordsRepo{
		records: make(map[uuid.UUID]*entity.BridgeRecord),
	}
}

func (r *fakeRecordsRepo) Create(_ context.Context, record *entity.BridgeRecord) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.createErr != nil {
		return r.createErr
	}
	record.ID = uuid.New()
	clone := *record
	r.records[record.ID] = &clone
	return nil
}

func (r *fakeRecordsRepo) Update(_ context.Context, record *entity.BridgeRecord) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.updateErr != nil {
		return r.updateErr
	}
	existing, ok := r.records[record.ID]
	if !ok {
		return nil
	}
	if existing.Status.IsTerminal() && existing.Status != record.Status {
		return nil
	}
	existing.Steps = record.Steps
	existing.Status = record.Status
	existing.RawRoute = record.RawRoute
	return nil
}

func (r *fakeRecordsRepo) GetByID(_ context.Context, id uuid.UUID) (*entity.BridgeRecord, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	record, ok := r.records[id]
	if !ok {
		return nil, db.ErrNotFound
	}
	clone := *record
	return &clone, nil
}

func (r *fakeRecordsRepo) count() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.records)
}

func testLogger() logging.Logger {
	return logging.New()
}
