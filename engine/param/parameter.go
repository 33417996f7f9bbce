package param

import (
	"fmt"
	"math"
)

// Info is the control-side description of a parameter.
type Info struct {
	ID      string
	Name    string
	Unit    string
	Range   Range
	Default float64
	Value   float64
}

// Option configures a Parameter at construction.
type Option func(*Parameter)

// WithSmoothing sets the ramp applied to SetValue updates.
func WithSmoothing(s Smoothing) Option {
	return func(p *Parameter) {
		p.smoothing = s
	}
}

// WithUnit sets the display unit, for example "Hz".
func WithUnit(unit string) Option {
	return func(p *Parameter) {
		p.unit = unit
	}
}

// Parameter is a named scalar clamped to a Range, plus the smoother that
// realises it on the audio thread. Its id never changes after creation.
type Parameter struct {
	id        string
	name      string
	unit      string
	rng       Range
	def       float64
	smoothing Smoothing

	cell update

	smoother *Smoother
}

// New creates a parameter at its default value.
func New(id, name string, r Range, def float64, opts ...Option) (*Parameter, error) {
	if id == "" {
		return nil, ErrEmptyID
	}

	if !r.valid() {
		return nil, fmt.Errorf("%w: [%v, %v]", ErrInvalidRange, r.Min, r.Max)
	}

	if !isFinite(def) || !r.Contains(def) {
		return nil, fmt.Errorf("%w: default %v outside [%v, %v]", ErrInvalidRange, def, r.Min, r.Max)
	}

	p := &Parameter{
		id:        id,
		name:      name,
		rng:       r,
		def:       def,
		smoothing: NoSmoothing(),
	}

	for _, opt := range opts {
		if opt != nil {
			opt(p)
		}
	}

	if p.name == "" {
		p.name = id
	}

	p.cell.value.Store(math.Float64bits(def))
	p.smoother = NewSmoother(p.smoothing.Type, 0, def)
	p.smoother.src = &p.cell
	p.smoother.lastSeq = p.cell.current()

	return p, nil
}

// MustNew is like New but panics on error. It is meant for package-level
// parameter tables built from constants.
func MustNew(id, name string, r Range, def float64, opts ...Option) *Parameter {
	p, err := New(id, name, r, def, opts...)
	if err != nil {
		panic(err)
	}

	return p
}

// ID returns the stable identifier.
func (p *Parameter) ID() string { return p.id }

// Name returns the display name.
func (p *Parameter) Name() string { return p.name }

// Range returns the value range.
func (p *Parameter) Range() Range { return p.rng }

// Smoothing returns the default ramp configuration.
func (p *Parameter) Smoothing() Smoothing { return p.smoothing }

// Info returns a snapshot of the parameter's description and current value.
func (p *Parameter) Info() Info {
	return Info{
		ID:      p.id,
		Name:    p.name,
		Unit:    p.unit,
		Range:   p.rng,
		Default: p.def,
		Value:   p.Value(),
	}
}

// Value returns the current unsmoothed value.
func (p *Parameter) Value() float64 {
	return p.cell.load()
}

// Normalized returns the current value mapped to [0, 1].
func (p *Parameter) Normalized() float64 {
	return p.rng.Normalize(p.Value())
}

// SetValue clamps v and makes it the new target, ramped with the parameter's
// default smoothing. It does not advance the smoother.
func (p *Parameter) SetValue(v float64) error {
	return p.set(v, useDefaultRamp)
}

// SetTarget clamps v and requests a ramp of exactly rampSamples samples.
// A ramp of 0 makes the next audio sample adopt v.
func (p *Parameter) SetTarget(v float64, rampSamples int) error {
	return p.set(v, int64(max(rampSamples, 0)))
}

// SetNormalized sets the value from n in [0, 1].
func (p *Parameter) SetNormalized(n float64) error {
	if !isFinite(n) {
		return fmt.Errorf("%w: %s normalized %v", ErrNotFinite, p.id, n)
	}

	return p.SetValue(p.rng.Denormalize(n))
}

func (p *Parameter) set(v float64, ramp int64) error {
	if !isFinite(v) {
		return fmt.Errorf("%w: %s = %v", ErrNotFinite, p.id, v)
	}

	p.cell.publish(p.rng.Clamp(v), ramp)

	return nil
}

// Prepare converts the default ramp to samples at sampleRate and snaps the
// smoother to the current value. Call it before processing starts.
func (p *Parameter) Prepare(sampleRate float64) {
	p.smoother.SetDefaultRamp(p.smoothing.RampSamples(sampleRate))
	p.Reset()
}

// Reset snaps the smoother to the current unsmoothed value, discarding any
// ramp in progress. It only touches atomics and may run on the audio thread.
func (p *Parameter) Reset() {
	p.smoother.lastSeq = p.cell.current()
	p.smoother.Reset(p.Value())
}

// Smoothed returns the audio-side smoother. Only the audio goroutine may
// advance it.
func (p *Parameter) Smoothed() *Smoother {
	return p.smoother
}
