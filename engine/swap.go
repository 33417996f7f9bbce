package engine

import (
	"context"
	"fmt"
	"time"

	"github.com/cwbudde/algo-engine/engine/graph"
)

const swapPollInterval = 100 * time.Microsecond

// SwapGraph replaces the running graph without stopping the audio goroutine.
// next is initialised here with the negotiated session, published with one
// atomic store, and the call returns once no Process call can still be using
// the previous graph. The previous graph is returned to the caller.
//
// If ctx ends before the audio goroutine leaves its current block, next stays
// installed and the previous graph is not returned.
func (e *Engine) SwapGraph(ctx context.Context, next *graph.Graph) (*graph.Graph, error) {
	if next == nil {
		return nil, ErrNilGraph
	}

	e.mu.Lock()
	defer e.mu.Unlock()

	st := e.State()
	if st != StateInitialized && st != StateProcessing {
		return nil, fmt.Errorf("%w: swap graph while %s", ErrInvalidState, st)
	}

	if err := next.Initialize(e.layout, e.cfg); err != nil {
		return nil, fmt.Errorf("engine: swap graph: %w", err)
	}

	prev := e.graph.Swap(next)

	if err := e.waitForBlockBoundary(ctx); err != nil {
		e.logger.Warn("engine graph swap not confirmed", "error", err)
		return nil, fmt.Errorf("engine: swap graph: %w", err)
	}

	e.logger.Info("engine graph swapped", "nodes", next.Len(), "previous_nodes", prev.Len())

	return prev, nil
}

// waitForBlockBoundary returns once any Process call that started before it
// was called has finished. Calls starting later load the new graph.
func (e *Engine) waitForBlockBoundary(ctx context.Context) error {
	start := e.epoch.Load()
	if start%2 == 0 {
		return nil
	}

	ticker := time.NewTicker(swapPollInterval)
	defer ticker.Stop()

	for e.epoch.Load() == start {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
		}
	}

	return nil
}
