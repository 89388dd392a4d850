package tier

import (
	"context"
	"fmt"

	"golang.org/x/sync/errgroup"

	"opslink/internal/domain"
	"opslink/internal/port"
)

// Executor runs an execution strategy over the configured backends. Backends
// are ordered: index 0 is the designated primary.
type Executor struct {
	backends []port.Backend
	policy   RoutePolicy
}

// NewExecutor creates an Executor. At least one backend is required.
func NewExecutor(backends []port.Backend, policy RoutePolicy) (*Executor, error) {
	if len(backends) == 0 {
		return nil, fmt.Errorf("at least one backend is required")
	}
	if policy == nil {
		policy = &alternatePolicy{}
	}
	return &Executor{backends: backends, policy: policy}, nil
}

// Backends returns the configured backends in order.
func (e *Executor) Backends() []port.Backend {
	return e.backends
}

// Execute invokes the backends demanded by the strategy and returns their
// results in backend order. Ensemble invocations run concurrently and the
// call returns only once every backend has settled; no result is consumed
// before the join completes.
func (e *Executor) Execute(ctx context.Context, strategy domain.ExecutionStrategy, doc domain.Document) ([]domain.BackendResult, error) {
	switch strategy {
	case domain.StrategySingle:
		return []domain.BackendResult{e.backends[0].Extract(ctx, doc)}, nil

	case domain.StrategyRouted:
		chosen := e.backends[e.policy.Pick(len(e.backends))]
		return []domain.BackendResult{chosen.Extract(ctx, doc)}, nil

	case domain.StrategyEnsemble:
		results := make([]domain.BackendResult, len(e.backends))
		var g errgroup.Group
		for i, b := range e.backends {
			g.Go(func() error {
				results[i] = b.Extract(ctx, doc)
				return nil
			})
		}
		// Extract never returns an error; Wait is purely the fan-in join.
		_ = g.Wait()
		return results, nil

	default:
		return nil, fmt.Errorf("unsupported execution strategy: %s", strategy)
	}
}
