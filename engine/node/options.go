package node

import (
	"fmt"
	"math"

	"github.com/cwbudde/algo-engine/engine/param"
)

type config struct {
	id         string
	channels   int
	smoothing  *param.Smoothing
	value      *float64
	maxDelayMs float64
}

// Option configures a node at construction.
type Option func(*config) error

// WithID prefixes every parameter id of the node, giving "id.name".
func WithID(id string) Option {
	return func(cfg *config) error {
		if id == "" {
			return fmt.Errorf("%w: empty id", ErrInvalidOption)
		}

		cfg.id = id

		return nil
	}
}

// WithChannels fixes the channel count the node accepts. Zero adapts.
func WithChannels(n int) Option {
	return func(cfg *config) error {
		if n < 0 {
			return fmt.Errorf("%w: channels %d", ErrInvalidOption, n)
		}

		cfg.channels = n

		return nil
	}
}

// WithSmoothing overrides the default smoothing of the node's parameter.
func WithSmoothing(s param.Smoothing) Option {
	return func(cfg *config) error {
		if s.RampMs < 0 || math.IsNaN(s.RampMs) || math.IsInf(s.RampMs, 0) {
			return fmt.Errorf("%w: ramp %v ms", ErrInvalidOption, s.RampMs)
		}

		cfg.smoothing = &s

		return nil
	}
}

// WithValue sets the initial value of the node's primary parameter.
func WithValue(v float64) Option {
	return func(cfg *config) error {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return fmt.Errorf("%w: value %v", ErrInvalidOption, v)
		}

		cfg.value = &v

		return nil
	}
}

// WithMaxDelay sets the longest delay time a Delay can reach, in ms. The
// ring buffers are sized from it in Prepare.
func WithMaxDelay(ms float64) Option {
	return func(cfg *config) error {
		if ms <= 0 || math.IsNaN(ms) || math.IsInf(ms, 0) {
			return fmt.Errorf("%w: max delay %v ms", ErrInvalidOption, ms)
		}

		cfg.maxDelayMs = ms

		return nil
	}
}

func applyOptions(opts []Option) (config, error) {
	var cfg config

	for _, opt := range opts {
		if opt == nil {
			continue
		}

		if err := opt(&cfg); err != nil {
			return config{}, err
		}
	}

	return cfg, nil
}

func (c config) paramID(name string) string {
	if c.id == "" {
		return name
	}

	return c.id + "." + name
}

// newParam builds the node's primary parameter from the shared options.
func (c config) newParam(name, display string, r param.Range, def float64, s param.Smoothing, unit string) (*param.Parameter, error) {
	if c.smoothing != nil {
		s = *c.smoothing
	}

	p, err := param.New(c.paramID(name), display, r, def, param.WithSmoothing(s), param.WithUnit(unit))
	if err != nil {
		return nil, err
	}

	if c.value != nil {
		if !r.Contains(*c.value) {
			return nil, fmt.Errorf("%w: %s = %v outside [%v, %v]", ErrInvalidOption, p.ID(), *c.value, r.Min, r.Max)
		}

		if err := p.SetValue(*c.value); err != nil {
			return nil, err
		}
	}

	return p, nil
}

// newAuxParam builds a secondary parameter. The shared value and smoothing
// options only apply to the primary one.
func (c config) newAuxParam(name, display string, r param.Range, def float64, s param.Smoothing, unit string) (*param.Parameter, error) {
	return param.New(c.paramID(name), display, r, def, param.WithSmoothing(s), param.WithUnit(unit))
}
