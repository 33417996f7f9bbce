package node

import (
	"fmt"
	"math"

	"github.com/cwbudde/algo-engine/engine/audio"
	"github.com/cwbudde/algo-engine/engine/param"
)

const (
	// MaxFrequency is the upper bound of oscillator frequency parameters.
	MaxFrequency = 20000.0

	defaultFrequency            = 440.0
	defaultFrequencySmoothingMs = 20.0
)

// phasor is the phase accumulator shared by the oscillators. Phase stays in [0, 1).
type phasor struct {
	freq       *param.Parameter
	ports      Ports
	sampleRate float64
	maxFrames  int
	phase      float64
}

func newPhasor(opts []Option) (phasor, error) {
	cfg, err := applyOptions(opts)
	if err != nil {
		return phasor{}, err
	}

	p, err := cfg.newParam("frequency", "Frequency", param.Range{Min: 0, Max: MaxFrequency}, defaultFrequency,
		param.Logarithmic(defaultFrequencySmoothingMs), "Hz")
	if err != nil {
		return phasor{}, fmt.Errorf("node: oscillator: %w", err)
	}

	return phasor{freq: p, ports: Ports{Channels: cfg.channels, Source: true}}, nil
}

func (o *phasor) prepare(cfg audio.BufferConfig) error {
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("node: oscillator: %w", err)
	}

	o.sampleRate = cfg.SampleRate
	o.maxFrames = cfg.MaxBlockSize
	o.freq.Prepare(cfg.SampleRate)
	o.phase = 0

	return nil
}

// advance moves the phase by one sample of the smoothed frequency.
func (o *phasor) advance(s *param.Smoother) {
	o.phase += s.Next() / o.sampleRate
	if o.phase >= 1 || o.phase < 0 {
		o.phase -= math.Floor(o.phase)
	}
}

func (o *phasor) reset() {
	o.phase = 0
	o.freq.Reset()
}

// fanOut copies channel 0 to every other channel.
func fanOut(block audio.Block) {
	src := block.Channel(0)
	for ch := 1; ch < block.Channels(); ch++ {
		copy(block.Channel(ch), src)
	}
}

// SineGenerator is a phase-accumulator sine source. It writes the same signal
// to every channel.
type SineGenerator struct {
	phasor
}

// NewSineGenerator creates a 440 Hz sine source unless WithValue says otherwise.
func NewSineGenerator(opts ...Option) (*SineGenerator, error) {
	p, err := newPhasor(opts)
	if err != nil {
		return nil, err
	}

	return &SineGenerator{phasor: p}, nil
}

// Frequency returns the frequency parameter.
func (g *SineGenerator) Frequency() *param.Parameter { return g.freq }

// Prepare implements Node.
func (g *SineGenerator) Prepare(cfg audio.BufferConfig) error { return g.prepare(cfg) }

// Process implements Node.
func (g *SineGenerator) Process(block audio.Block, _ *audio.ProcessContext) audio.Status {
	if st := checkBlock(block, g.ports, g.maxFrames); st.IsError() {
		return st
	}

	if block.Channels() == 0 {
		return audio.KeepAlive()
	}

	s := g.freq.Smoothed()

	out := block.Channel(0)
	for i := range out {
		out[i] = math.Sin(2 * math.Pi * g.phase)
		g.advance(s)
	}

	fanOut(block)

	return audio.KeepAlive()
}

// Reset implements Node.
func (g *SineGenerator) Reset() { g.reset() }

// Parameters implements Node.
func (g *SineGenerator) Parameters() []*param.Parameter { return []*param.Parameter{g.freq} }

// Ports implements Node.
func (g *SineGenerator) Ports() Ports { return g.ports }

// SawGenerator is a naive rising sawtooth in [-1, 1).
type SawGenerator struct {
	phasor
}

// NewSawGenerator creates a 440 Hz sawtooth source.
func NewSawGenerator(opts ...Option) (*SawGenerator, error) {
	p, err := newPhasor(opts)
	if err != nil {
		return nil, err
	}

	return &SawGenerator{phasor: p}, nil
}

// Frequency returns the frequency parameter.
func (g *SawGenerator) Frequency() *param.Parameter { return g.freq }

// Prepare implements Node.
func (g *SawGenerator) Prepare(cfg audio.BufferConfig) error { return g.prepare(cfg) }

// Process implements Node.
func (g *SawGenerator) Process(block audio.Block, _ *audio.ProcessContext) audio.Status {
	if st := checkBlock(block, g.ports, g.maxFrames); st.IsError() {
		return st
	}

	if block.Channels() == 0 {
		return audio.KeepAlive()
	}

	s := g.freq.Smoothed()

	out := block.Channel(0)
	for i := range out {
		out[i] = 2*g.phase - 1
		g.advance(s)
	}

	fanOut(block)

	return audio.KeepAlive()
}

// Reset implements Node.
func (g *SawGenerator) Reset() { g.reset() }

// Parameters implements Node.
func (g *SawGenerator) Parameters() []*param.Parameter { return []*param.Parameter{g.freq} }

// Ports implements Node.
func (g *SawGenerator) Ports() Ports { return g.ports }

// ImpulseGenerator emits a single unit sample after construction or Reset and
// silence afterwards.
type ImpulseGenerator struct {
	ports     Ports
	maxFrames int
	fired     bool
}

// NewImpulseGenerator creates an impulse source. Only WithChannels applies.
func NewImpulseGenerator(opts ...Option) (*ImpulseGenerator, error) {
	cfg, err := applyOptions(opts)
	if err != nil {
		return nil, err
	}

	return &ImpulseGenerator{ports: Ports{Channels: cfg.channels, Source: true}}, nil
}

// Prepare implements Node.
func (g *ImpulseGenerator) Prepare(cfg audio.BufferConfig) error {
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("node: impulse: %w", err)
	}

	g.maxFrames = cfg.MaxBlockSize

	return nil
}

// Process implements Node.
func (g *ImpulseGenerator) Process(block audio.Block, _ *audio.ProcessContext) audio.Status {
	if st := checkBlock(block, g.ports, g.maxFrames); st.IsError() {
		return st
	}

	block.Clear()

	if g.fired || block.Frames() == 0 {
		return audio.Normal()
	}

	for ch := range block.Channels() {
		block.Channel(ch)[0] = 1
	}

	g.fired = true

	return audio.Normal()
}

// Reset implements Node. The next block starts with a new impulse.
func (g *ImpulseGenerator) Reset() { g.fired = false }

// Parameters implements Node.
func (g *ImpulseGenerator) Parameters() []*param.Parameter { return nil }

// Ports implements Node.
func (g *ImpulseGenerator) Ports() Ports { return g.ports }
