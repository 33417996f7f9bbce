package node

import (
	"fmt"
	"math"
	"sync/atomic"

	"github.com/cwbudde/algo-engine/engine/analysis"
	"github.com/cwbudde/algo-engine/engine/audio"
	"github.com/cwbudde/algo-engine/engine/param"
)

// Levels is a snapshot of a Meter reading.
type Levels struct {
	Peak     float64
	RMS      float64
	PeakHold float64
}

// Meter passes audio through unchanged and publishes the level of the last
// block to the control side. Readers never block the audio thread.
type Meter struct {
	ports     Ports
	maxFrames int

	peak atomic.Uint64
	rms  atomic.Uint64
	hold atomic.Uint64
}

// NewMeter creates a pass-through meter. Only WithChannels applies.
func NewMeter(opts ...Option) (*Meter, error) {
	cfg, err := applyOptions(opts)
	if err != nil {
		return nil, err
	}

	return &Meter{ports: Ports{Channels: cfg.channels}}, nil
}

// Prepare implements Node.
func (m *Meter) Prepare(cfg audio.BufferConfig) error {
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("node: meter: %w", err)
	}

	m.maxFrames = cfg.MaxBlockSize
	m.Reset()

	return nil
}

// Process implements Node. It reports ErrNonFinite when the block carries NaN
// or Inf samples.
func (m *Meter) Process(block audio.Block, _ *audio.ProcessContext) audio.Status {
	if st := checkBlock(block, m.ports, m.maxFrames); st.IsError() {
		return st
	}

	var peak, rms float64

	for ch := range block.Channels() {
		x := block.Channel(ch)

		energy := analysis.Energy(x)
		if math.IsNaN(energy) || math.IsInf(energy, 0) {
			return audio.Fail(ErrNonFinite)
		}

		peak = math.Max(peak, analysis.Peak(x))
		rms = math.Max(rms, analysis.RootMean(energy, len(x)))
	}

	m.peak.Store(math.Float64bits(peak))
	m.rms.Store(math.Float64bits(rms))

	if peak > math.Float64frombits(m.hold.Load()) {
		m.hold.Store(math.Float64bits(peak))
	}

	return audio.Normal()
}

// Levels returns the most recent reading. Safe from any goroutine.
func (m *Meter) Levels() Levels {
	return Levels{
		Peak:     math.Float64frombits(m.peak.Load()),
		RMS:      math.Float64frombits(m.rms.Load()),
		PeakHold: math.Float64frombits(m.hold.Load()),
	}
}

// Reset implements Node.
func (m *Meter) Reset() {
	m.peak.Store(0)
	m.rms.Store(0)
	m.hold.Store(0)
}

// Parameters implements Node.
func (m *Meter) Parameters() []*param.Parameter { return nil }

// Ports implements Node.
func (m *Meter) Ports() Ports { return m.ports }
