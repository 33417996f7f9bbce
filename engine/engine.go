package engine

import (
	"fmt"
	"log/slog"
	"runtime"
	"sync"
	"sync/atomic"

	"github.com/cwbudde/algo-engine/engine/audio"
	"github.com/cwbudde/algo-engine/engine/graph"
	"github.com/cwbudde/algo-engine/engine/param"
)

// Engine owns a graph and the session negotiated with the host.
type Engine struct {
	graph atomic.Pointer[graph.Graph]
	state atomic.Int32
	// epoch is odd while a Process call is running.
	epoch atomic.Uint64
	// resetPending is set by Reset and consumed by the next Process call.
	resetPending atomic.Bool

	// mu serialises control-side lifecycle calls. Process never takes it.
	mu     sync.Mutex
	layout audio.Layout
	cfg    audio.BufferConfig

	ctx    audio.ProcessContext
	logger *slog.Logger
}

// New returns an uninitialised engine around g. A nil g is an empty chain.
func New(g *graph.Graph, opts ...Option) *Engine {
	if g == nil {
		g = graph.New()
	}

	cfg := applyOptions(opts)

	e := &Engine{logger: cfg.logger}
	e.graph.Store(g)

	return e
}

// State returns the current lifecycle state.
func (e *Engine) State() State {
	return State(e.state.Load())
}

// Layout returns the negotiated channel layout.
func (e *Engine) Layout() audio.Layout {
	e.mu.Lock()
	defer e.mu.Unlock()

	return e.layout
}

// Config returns the negotiated buffer configuration.
func (e *Engine) Config() audio.BufferConfig {
	e.mu.Lock()
	defer e.mu.Unlock()

	return e.cfg
}

// Graph returns the graph currently being processed.
func (e *Engine) Graph() *graph.Graph {
	return e.graph.Load()
}

// Initialize negotiates layout and cfg with the graph. It is valid from
// Uninitialized and Deactivated; on failure the state does not change.
func (e *Engine) Initialize(layout audio.Layout, cfg audio.BufferConfig) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	st := e.State()
	if st != StateUninitialized && st != StateDeactivated {
		return fmt.Errorf("%w: initialize while %s", ErrInvalidState, st)
	}

	g := e.graph.Load()
	if err := g.Initialize(layout, cfg); err != nil {
		e.logger.Warn("engine initialize rejected",
			"error", err,
			"sample_rate", cfg.SampleRate,
			"max_block_size", cfg.MaxBlockSize,
			"inputs", layout.InputChannels,
			"outputs", layout.OutputChannels)

		return fmt.Errorf("engine: initialize: %w", err)
	}

	e.layout = layout
	e.cfg = cfg
	e.ctx = audio.ProcessContext{SampleRate: cfg.SampleRate, MaxBlockSize: cfg.MaxBlockSize}
	e.resetPending.Store(false)
	e.state.Store(int32(StateInitialized))

	e.logger.Info("engine initialized",
		"nodes", g.Len(),
		"sample_rate", cfg.SampleRate,
		"max_block_size", cfg.MaxBlockSize,
		"inputs", layout.InputChannels,
		"outputs", layout.OutputChannels)

	return nil
}

// Process runs the graph over block in place. ctx may be nil, in which case
// the engine advances its own sample time. Outside the Initialized state it
// returns Fail(ErrNotInitialized).
func (e *Engine) Process(block audio.Block, ctx *audio.ProcessContext) audio.Status {
	if !e.state.CompareAndSwap(int32(StateInitialized), int32(StateProcessing)) {
		return audio.Fail(ErrNotInitialized)
	}

	e.epoch.Add(1)
	status := e.process(block, ctx)
	e.epoch.Add(1)

	e.state.Store(int32(StateInitialized))

	return status
}

func (e *Engine) process(block audio.Block, ctx *audio.ProcessContext) audio.Status {
	if block.Channels() != e.layout.OutputChannels {
		return audio.Fail(audio.ErrChannelCount)
	}

	if err := block.Validate(e.cfg.MaxBlockSize); err != nil {
		return audio.Fail(err)
	}

	if ctx != nil {
		e.ctx.SampleTime = ctx.SampleTime
	}

	g := e.graph.Load()
	if e.resetPending.Load() && e.resetPending.CompareAndSwap(true, false) {
		g.Reset()
	}

	status := g.Process(block, &e.ctx)
	e.ctx.SampleTime += int64(block.Frames())

	return status
}

// Reset clears phase and smoother progress of every node. It is safe from
// any goroutine: the request is recorded and the audio goroutine applies it
// at the start of the next Process call, before any node runs.
func (e *Engine) Reset() error {
	if e.State() == StateUninitialized {
		return ErrInvalidState
	}

	e.resetPending.Store(true)

	return nil
}

// Deactivate ends the session. It waits for a running Process call to return.
// Deactivating a deactivated engine is a no-op.
func (e *Engine) Deactivate() error {
	e.mu.Lock()
	defer e.mu.Unlock()

	for {
		switch e.State() {
		case StateDeactivated:
			return nil
		case StateUninitialized:
			return fmt.Errorf("%w: deactivate before initialize", ErrInvalidState)
		case StateProcessing:
			runtime.Gosched()
			continue
		}

		if e.state.CompareAndSwap(int32(StateInitialized), int32(StateDeactivated)) {
			break
		}
	}

	e.logger.Info("engine deactivated")

	return nil
}

// Parameters describes every parameter of the current graph in chain order.
func (e *Engine) Parameters() []param.Info {
	params := e.graph.Load().Parameters()

	infos := make([]param.Info, len(params))
	for i, p := range params {
		infos[i] = p.Info()
	}

	return infos
}

// Parameter looks a parameter up by id.
func (e *Engine) Parameter(id string) (*param.Parameter, bool) {
	return e.graph.Load().Parameter(id)
}

// SetParameter sets a parameter by id from a control goroutine.
func (e *Engine) SetParameter(id string, v float64) error {
	p, ok := e.Parameter(id)
	if !ok {
		return fmt.Errorf("%w: %q", ErrUnknownParameter, id)
	}

	return p.SetValue(v)
}
