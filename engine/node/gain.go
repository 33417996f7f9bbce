package node

import (
	"fmt"

	vecmath "github.com/cwbudde/algo-vecmath"

	"github.com/cwbudde/algo-engine/engine/audio"
	"github.com/cwbudde/algo-engine/engine/param"
)

const (
	// MaxGain is the upper bound of the gain parameter (+12 dB).
	MaxGain = 4.0

	defaultGain            = 1.0
	defaultGainSmoothingMs = 10.0
)

// GainProcessor scales every channel by one smoothed gain value per frame.
type GainProcessor struct {
	gain  *param.Parameter
	ports Ports

	gains     []float64
	maxFrames int
}

// NewGainProcessor creates a gain stage at unity unless WithValue says otherwise.
func NewGainProcessor(opts ...Option) (*GainProcessor, error) {
	cfg, err := applyOptions(opts)
	if err != nil {
		return nil, err
	}

	p, err := cfg.newParam("gain", "Gain", param.Range{Min: 0, Max: MaxGain}, defaultGain,
		param.Linear(defaultGainSmoothingMs), "x")
	if err != nil {
		return nil, fmt.Errorf("node: gain: %w", err)
	}

	return &GainProcessor{gain: p, ports: Ports{Channels: cfg.channels}}, nil
}

// Gain returns the gain parameter.
func (g *GainProcessor) Gain() *param.Parameter { return g.gain }

// Prepare implements Node.
func (g *GainProcessor) Prepare(cfg audio.BufferConfig) error {
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("node: gain: %w", err)
	}

	if cap(g.gains) < cfg.MaxBlockSize {
		g.gains = make([]float64, cfg.MaxBlockSize)
	}

	g.gains = g.gains[:cfg.MaxBlockSize]
	g.maxFrames = cfg.MaxBlockSize
	g.gain.Prepare(cfg.SampleRate)

	return nil
}

// Process implements Node. While the gain is settled the block is scaled by a
// constant; during a ramp the per-frame gains are rendered once and shared by
// all channels.
func (g *GainProcessor) Process(block audio.Block, _ *audio.ProcessContext) audio.Status {
	if st := checkBlock(block, g.ports, g.maxFrames); st.IsError() {
		return st
	}

	s := g.gain.Smoothed()
	s.Sync()

	if !s.IsSmoothing() {
		v := s.Current()
		if v == 1 {
			return audio.Normal()
		}

		for ch := range block.Channels() {
			vecmath.ScaleBlockInPlace(block.Channel(ch), v)
		}

		return audio.Normal()
	}

	gains := g.gains[:block.Frames()]
	s.NextBlock(gains)

	for ch := range block.Channels() {
		vecmath.MulBlockInPlace(block.Channel(ch), gains)
	}

	return audio.Normal()
}

// Reset implements Node.
func (g *GainProcessor) Reset() {
	g.gain.Reset()
}

// Parameters implements Node.
func (g *GainProcessor) Parameters() []*param.Parameter {
	return []*param.Parameter{g.gain}
}

// Ports implements Node.
func (g *GainProcessor) Ports() Ports { return g.ports }
