// Package node defines the processing unit of a graph and the processors the
// engine ships with.
//
// Prepare is the only place a node may allocate. Process and Reset run on the
// audio thread: they never allocate, block or panic, and report failures
// through the returned audio.Status.
package node

import (
	"errors"

	"github.com/cwbudde/algo-engine/engine/audio"
	"github.com/cwbudde/algo-engine/engine/param"
)

var (
	// ErrNotPrepared is reported by Process before a successful Prepare.
	ErrNotPrepared = errors.New("node: not prepared")
	// ErrBlockTooLarge is reported for blocks longer than the prepared size.
	ErrBlockTooLarge = errors.New("node: block exceeds prepared size")
	// ErrNonFinite is reported when a node observes NaN or Inf samples.
	ErrNonFinite = errors.New("node: non-finite sample")
	// ErrInvalidOption is returned by constructors for rejected options.
	ErrInvalidOption = errors.New("node: invalid option")
)

// Node is one stage of a serial processing chain.
type Node interface {
	// Prepare allocates per-session state for cfg.
	Prepare(cfg audio.BufferConfig) error
	// Process transforms block in place, or overwrites it for source nodes.
	Process(block audio.Block, ctx *audio.ProcessContext) audio.Status
	// Reset clears phase and smoother progress without deallocating.
	Reset()
	// Parameters lists the node's parameters in a stable order.
	Parameters() []*param.Parameter
	// Ports declares the node's channel contract.
	Ports() Ports
}

// Ports is the channel contract of a node.
type Ports struct {
	// Channels is the channel count the node requires. Zero adapts to the block.
	Channels int
	// Source nodes ignore the incoming block contents.
	Source bool
}

// checkBlock validates the parts of the block shape every node relies on.
func checkBlock(block audio.Block, ports Ports, maxFrames int) audio.Status {
	if maxFrames == 0 {
		return audio.Fail(ErrNotPrepared)
	}

	if err := block.Validate(0); err != nil {
		return audio.Fail(err)
	}

	if block.Frames() > maxFrames {
		return audio.Fail(ErrBlockTooLarge)
	}

	if ports.Channels > 0 && block.Channels() != ports.Channels {
		return audio.Fail(audio.ErrChannelCount)
	}

	return audio.Normal()
}
