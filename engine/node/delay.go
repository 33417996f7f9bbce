package node

import (
	"fmt"
	"math"

	"github.com/cwbudde/algo-engine/engine/audio"
	"github.com/cwbudde/algo-engine/engine/param"
)

const (
	// MaxFeedback keeps the feedback loop stable.
	MaxFeedback = 0.95

	defaultMaxDelayMs    = 1000.0
	defaultDelayMs       = 500.0
	defaultDelayChannels = 2
	delaySmoothingMs     = 50.0
	mixSmoothingMs       = 10.0

	// Feedback tails are reported until they decay below -80 dB.
	tailFloor = 1e-4
)

// delayLine is a circular buffer of past input samples for one channel.
type delayLine struct {
	buf      []float64
	writePos int
}

func (l *delayLine) write(x float64) {
	l.buf[l.writePos] = x
	l.writePos++

	if l.writePos == len(l.buf) {
		l.writePos = 0
	}
}

// past returns the sample written k calls ago, 1 <= k <= len(buf).
func (l *delayLine) past(k int) float64 {
	pos := l.writePos - k
	if pos < 0 {
		pos += len(l.buf)
	}

	return l.buf[pos]
}

// tap reads the line delay samples behind the current input x, with cubic
// Hermite interpolation between whole samples. A delay of 0 is x itself.
func (l *delayLine) tap(delay, x float64) float64 {
	delay = max(0, min(delay, float64(len(l.buf)-3)))

	p := int(delay)
	t := delay - float64(p)

	x0 := l.at(p, x)
	if t == 0 {
		return x0
	}

	xm1, x1, x2 := l.at(p-1, x), l.at(p+1, x), l.at(p+2, x)

	c1 := 0.5 * (x1 - xm1)
	c2 := xm1 - 2.5*x0 + 2*x1 - 0.5*x2
	c3 := 0.5*(x2-xm1) + 1.5*(x0-x1)

	return ((c3*t+c2)*t+c1)*t + x0
}

// at is past(k) extended to the current input for k <= 0.
func (l *delayLine) at(k int, x float64) float64 {
	if k <= 0 {
		return x
	}

	return l.past(k)
}

func (l *delayLine) reset() {
	clear(l.buf)
	l.writePos = 0
}

// Delay is a feedback delay. Each channel has its own line; the smoothed
// time, feedback and mix values are shared by all channels.
type Delay struct {
	time     *param.Parameter
	feedback *param.Parameter
	mix      *param.Parameter
	ports    Ports

	maxDelayMs float64
	capacity   int
	sampleRate float64
	maxFrames  int

	lines []delayLine
	times []float64
	fbs   []float64
	mixes []float64
}

// NewDelay creates a delay. WithValue sets the delay time in ms and
// WithSmoothing its ramp; WithMaxDelay bounds it (1000 ms by default).
// Without WithChannels the delay keeps lines for two channels and adapts to
// narrower blocks.
func NewDelay(opts ...Option) (*Delay, error) {
	cfg, err := applyOptions(opts)
	if err != nil {
		return nil, err
	}

	maxMs := cfg.maxDelayMs
	if maxMs == 0 {
		maxMs = defaultMaxDelayMs
	}

	t, err := cfg.newParam("time", "Time", param.Range{Min: 0, Max: maxMs}, min(defaultDelayMs, maxMs),
		param.Linear(delaySmoothingMs), "ms")
	if err != nil {
		return nil, fmt.Errorf("node: delay: %w", err)
	}

	fb, err := cfg.newAuxParam("feedback", "Feedback", param.Range{Min: 0, Max: MaxFeedback}, 0,
		param.Linear(mixSmoothingMs), "x")
	if err != nil {
		return nil, fmt.Errorf("node: delay: %w", err)
	}

	mix, err := cfg.newAuxParam("mix", "Mix", param.Range{Min: 0, Max: 1}, 1,
		param.Linear(mixSmoothingMs), "x")
	if err != nil {
		return nil, fmt.Errorf("node: delay: %w", err)
	}

	capacity := cfg.channels
	if capacity == 0 {
		capacity = defaultDelayChannels
	}

	return &Delay{
		time:       t,
		feedback:   fb,
		mix:        mix,
		ports:      Ports{Channels: cfg.channels},
		maxDelayMs: maxMs,
		capacity:   capacity,
	}, nil
}

// Time returns the delay time parameter in ms.
func (d *Delay) Time() *param.Parameter { return d.time }

// Feedback returns the share of the delayed signal fed back into the line.
func (d *Delay) Feedback() *param.Parameter { return d.feedback }

// Mix returns the wet share of the output; 1 outputs only the delayed signal.
func (d *Delay) Mix() *param.Parameter { return d.mix }

// Prepare implements Node. It sizes one line per channel for the longest
// delay at cfg.SampleRate.
func (d *Delay) Prepare(cfg audio.BufferConfig) error {
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("node: delay: %w", err)
	}

	size := int(math.Ceil(d.maxDelayMs*cfg.SampleRate/1000)) + 3

	d.lines = make([]delayLine, d.capacity)
	for ch := range d.lines {
		d.lines[ch] = delayLine{buf: make([]float64, size)}
	}

	d.times = make([]float64, cfg.MaxBlockSize)
	d.fbs = make([]float64, cfg.MaxBlockSize)
	d.mixes = make([]float64, cfg.MaxBlockSize)
	d.sampleRate = cfg.SampleRate
	d.maxFrames = cfg.MaxBlockSize

	for _, p := range d.Parameters() {
		p.Prepare(cfg.SampleRate)
	}

	return nil
}

// Process implements Node. It reports a Tail covering the delayed signal and,
// with feedback, its echoes down to -80 dB.
func (d *Delay) Process(block audio.Block, _ *audio.ProcessContext) audio.Status {
	if st := checkBlock(block, d.ports, d.maxFrames); st.IsError() {
		return st
	}

	if block.Channels() > len(d.lines) {
		return audio.Fail(audio.ErrChannelCount)
	}

	n := block.Frames()
	times, fbs, mixes := d.times[:n], d.fbs[:n], d.mixes[:n]

	d.time.Smoothed().NextBlock(times)
	d.feedback.Smoothed().NextBlock(fbs)
	d.mix.Smoothed().NextBlock(mixes)

	toSamples := d.sampleRate / 1000
	for i := range times {
		times[i] *= toSamples
	}

	for ch := range block.Channels() {
		line := &d.lines[ch]
		x := block.Channel(ch)

		for i, in := range x {
			y := line.tap(times[i], in)
			line.write(in + fbs[i]*y)
			x[i] = in + mixes[i]*(y-in)
		}
	}

	if n == 0 {
		return audio.Normal()
	}

	return audio.Tail(tailLength(times[n-1], fbs[n-1]))
}

// tailLength estimates how long the line keeps sounding after the input stops.
func tailLength(delay, feedback float64) int {
	tail := math.Ceil(delay)
	if feedback > 0 {
		tail *= math.Ceil(math.Log(tailFloor) / math.Log(feedback))
	}

	return int(tail)
}

// Reset implements Node. It silences every line.
func (d *Delay) Reset() {
	for ch := range d.lines {
		d.lines[ch].reset()
	}

	d.time.Reset()
	d.feedback.Reset()
	d.mix.Reset()
}

// Parameters implements Node.
func (d *Delay) Parameters() []*param.Parameter {
	return []*param.Parameter{d.time, d.feedback, d.mix}
}

// Ports implements Node.
func (d *Delay) Ports() Ports { return d.ports }
