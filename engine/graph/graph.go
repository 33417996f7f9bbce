// Package graph runs an ordered chain of nodes over one block at a time.
//
// The output of node i is the input of node i+1; all nodes work in place on
// the same block. The topology is fixed once Initialize succeeds.
package graph

import (
	"fmt"

	"github.com/cwbudde/algo-engine/engine/audio"
	"github.com/cwbudde/algo-engine/engine/node"
	"github.com/cwbudde/algo-engine/engine/param"
)

// Graph is a serial chain of nodes.
type Graph struct {
	nodes  []node.Node
	params []*param.Parameter
	byID   map[string]*param.Parameter

	layout audio.Layout
	cfg    audio.BufferConfig
	locked bool
}

// New returns a graph running nodes in the given order. Nil nodes are dropped.
func New(nodes ...node.Node) *Graph {
	g := &Graph{}
	for _, n := range nodes {
		if n != nil {
			g.nodes = append(g.nodes, n)
		}
	}

	return g
}

// Append adds n at the end of the chain.
func (g *Graph) Append(n node.Node) error {
	if g.locked {
		return ErrTopologyLocked
	}

	if n == nil {
		return ErrNilNode
	}

	g.nodes = append(g.nodes, n)

	return nil
}

// Len returns the number of nodes.
func (g *Graph) Len() int { return len(g.nodes) }

// Nodes returns a copy of the node list.
func (g *Graph) Nodes() []node.Node {
	return append([]node.Node(nil), g.nodes...)
}

// Initialized reports whether Initialize has succeeded.
func (g *Graph) Initialized() bool { return g.locked }

// Layout returns the layout of the last successful Initialize.
func (g *Graph) Layout() audio.Layout { return g.layout }

// Config returns the buffer configuration of the last successful Initialize.
func (g *Graph) Config() audio.BufferConfig { return g.cfg }

// Initialize validates the chain against layout and cfg, prepares every node
// and locks the topology. All failures are *ConfigError.
func (g *Graph) Initialize(layout audio.Layout, cfg audio.BufferConfig) error {
	if err := cfg.Validate(); err != nil {
		return configErr(-1, err)
	}

	if err := layout.Validate(); err != nil {
		return configErr(-1, err)
	}

	if err := g.checkChannels(layout); err != nil {
		return err
	}

	params, byID, err := g.collectParameters()
	if err != nil {
		return err
	}

	for i, n := range g.nodes {
		if err := n.Prepare(cfg); err != nil {
			return configErr(i, err)
		}
	}

	g.params = params
	g.byID = byID
	g.layout = layout
	g.cfg = cfg
	g.locked = true

	return nil
}

// checkChannels enforces that the chain needs no implicit up or down-mixing.
// Every block carries layout.OutputChannels channels, so declared counts must
// agree with each other and with that width, and a chain whose head consumes
// input needs as many input channels as it produces.
func (g *Graph) checkChannels(layout audio.Layout) error {
	width := layout.OutputChannels
	prev, prevIdx := 0, -1

	for i, n := range g.nodes {
		ch := n.Ports().Channels
		if ch == 0 {
			continue
		}

		if prev != 0 && ch != prev {
			return configErr(i, fmt.Errorf("%w: node %d has %d channels, node %d has %d",
				ErrChannelMismatch, prevIdx, prev, i, ch))
		}

		if ch != width {
			return configErr(i, fmt.Errorf("%w: node has %d channels, layout has %d outputs",
				ErrChannelMismatch, ch, width))
		}

		prev, prevIdx = ch, i
	}

	headIsSource := len(g.nodes) > 0 && g.nodes[0].Ports().Source
	if !headIsSource && layout.InputChannels != width {
		return configErr(0, fmt.Errorf("%w: %d input channels feed a %d channel chain",
			ErrChannelMismatch, layout.InputChannels, width))
	}

	return nil
}

func (g *Graph) collectParameters() ([]*param.Parameter, map[string]*param.Parameter, error) {
	var params []*param.Parameter

	byID := make(map[string]*param.Parameter)

	for i, n := range g.nodes {
		for _, p := range n.Parameters() {
			if _, dup := byID[p.ID()]; dup {
				return nil, nil, configErr(i, fmt.Errorf("%w: %s", ErrDuplicateParameter, p.ID()))
			}

			byID[p.ID()] = p
			params = append(params, p)
		}
	}

	return params, byID, nil
}

// Process runs every node over block in order. A block of the wrong width,
// with ragged channels or longer than the negotiated size fails before any
// node runs. The first Error stops the chain and is returned as is; otherwise
// statuses merge with the precedence KeepAlive > Tail > Normal.
func (g *Graph) Process(block audio.Block, ctx *audio.ProcessContext) audio.Status {
	if !g.locked {
		return audio.Fail(ErrNotInitialized)
	}

	if block.Channels() != g.layout.OutputChannels {
		return audio.Fail(audio.ErrChannelCount)
	}

	if err := block.Validate(g.cfg.MaxBlockSize); err != nil {
		return audio.Fail(err)
	}

	status := audio.Normal()

	for _, n := range g.nodes {
		st := n.Process(block, ctx)
		if st.IsError() {
			return st
		}

		status = audio.Merge(status, st)
	}

	return status
}

// Reset forwards to every node in order.
func (g *Graph) Reset() {
	for _, n := range g.nodes {
		n.Reset()
	}
}

// Parameters returns every node's parameters in chain order.
func (g *Graph) Parameters() []*param.Parameter {
	if g.locked {
		return append([]*param.Parameter(nil), g.params...)
	}

	var params []*param.Parameter
	for _, n := range g.nodes {
		params = append(params, n.Parameters()...)
	}

	return params
}

// Parameter looks a parameter up by id.
func (g *Graph) Parameter(id string) (*param.Parameter, bool) {
	if g.locked {
		p, ok := g.byID[id]
		return p, ok
	}

	for _, p := range g.Parameters() {
		if p.ID() == id {
			return p, true
		}
	}

	return nil, false
}
