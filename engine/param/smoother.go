package param

import "math"

// LogFloor replaces non-positive values before they enter log space.
const LogFloor = 1e-5

// SmoothingType selects the interpolation curve of a ramp.
type SmoothingType int

const (
	// SmoothingNone adopts every target immediately.
	SmoothingNone SmoothingType = iota
	// SmoothingLinear interpolates in value space.
	SmoothingLinear
	// SmoothingLogarithmic interpolates in log space; suited to frequencies.
	SmoothingLogarithmic
)

// String returns the smoothing type name.
func (t SmoothingType) String() string {
	switch t {
	case SmoothingNone:
		return "none"
	case SmoothingLinear:
		return "linear"
	case SmoothingLogarithmic:
		return "logarithmic"
	default:
		return "unknown"
	}
}

// Smoothing is the default ramp a parameter applies to SetValue updates.
type Smoothing struct {
	Type   SmoothingType
	RampMs float64
}

// Linear returns a linear ramp of ms milliseconds.
func Linear(ms float64) Smoothing {
	return Smoothing{Type: SmoothingLinear, RampMs: ms}
}

// Logarithmic returns a log-space ramp of ms milliseconds.
func Logarithmic(ms float64) Smoothing {
	return Smoothing{Type: SmoothingLogarithmic, RampMs: ms}
}

// NoSmoothing disables ramping.
func NoSmoothing() Smoothing {
	return Smoothing{Type: SmoothingNone}
}

// RampSamples converts the ramp duration to samples at sampleRate.
func (s Smoothing) RampSamples(sampleRate float64) int {
	if s.Type == SmoothingNone || s.RampMs <= 0 || sampleRate <= 0 {
		return 0
	}

	return int(math.Round(s.RampMs * sampleRate / 1000))
}

// Smoother ramps from its current value to a target over a fixed number of
// samples. It is not safe for concurrent use; only the audio goroutine calls it.
type Smoother struct {
	kind        SmoothingType
	defaultRamp int

	current float64
	target  float64
	start   float64

	logStart  float64
	logTarget float64

	step  int
	steps int

	src     *update
	lastSeq uint64
}

// NewSmoother returns a settled smoother at value.
// defaultRamp is used for requests that do not carry their own ramp.
func NewSmoother(kind SmoothingType, defaultRamp int, value float64) *Smoother {
	s := &Smoother{kind: kind}
	s.SetDefaultRamp(defaultRamp)
	s.Reset(value)

	return s
}

// SetDefaultRamp changes the ramp applied to requests without an explicit one.
func (s *Smoother) SetDefaultRamp(samples int) {
	s.defaultRamp = max(samples, 0)
}

// Reset snaps the smoother to value and ends any ramp in progress.
func (s *Smoother) Reset(value float64) {
	s.current = value
	s.target = value
	s.start = value
	s.step = 0
	s.steps = 0
}

// SetTarget begins a ramp from the current value to target over ramp samples.
// A ramp <= 0, or a smoother without smoothing, adopts target immediately.
func (s *Smoother) SetTarget(target float64, ramp int) {
	if ramp <= 0 || s.kind == SmoothingNone || target == s.current {
		s.Reset(target)
		return
	}

	s.start = s.current
	s.target = target
	s.step = 0
	s.steps = ramp

	if s.kind == SmoothingLogarithmic {
		s.logStart = math.Log(math.Max(s.start, LogFloor))
		s.logTarget = math.Log(math.Max(target, LogFloor))
	}
}

// Sync applies a pending control-side update, if any, without advancing.
// It reports whether a new request was taken.
func (s *Smoother) Sync() bool {
	if s.src == nil {
		return false
	}

	v, ramp, seq, ok := s.src.poll(s.lastSeq)
	if !ok {
		return false
	}

	s.lastSeq = seq

	if ramp == useDefaultRamp {
		ramp = int64(s.defaultRamp)
	}

	s.SetTarget(v, int(ramp))

	return true
}

// Next advances the ramp by one sample and returns the new value.
// The last step of a ramp returns the target exactly.
func (s *Smoother) Next() float64 {
	s.Sync()

	if s.steps == 0 {
		return s.current
	}

	s.step++
	if s.step >= s.steps {
		s.Reset(s.target)
		return s.current
	}

	frac := float64(s.step) / float64(s.steps)

	var v float64
	if s.kind == SmoothingLogarithmic {
		v = math.Exp(s.logStart + (s.logTarget-s.logStart)*frac)
	} else {
		v = s.start + (s.target-s.start)*frac
	}

	s.current = s.bound(v)

	return s.current
}

// NextBlock fills dst with len(dst) successive Next values.
func (s *Smoother) NextBlock(dst []float64) {
	for i := range dst {
		dst[i] = s.Next()
	}
}

// bound keeps v between the ramp's start and target.
func (s *Smoother) bound(v float64) float64 {
	lo, hi := s.start, s.target
	if lo > hi {
		lo, hi = hi, lo
	}

	return math.Max(lo, math.Min(hi, v))
}

// Current returns the last value produced.
func (s *Smoother) Current() float64 { return s.current }

// Target returns the value the smoother is heading to.
func (s *Smoother) Target() float64 { return s.target }

// IsSmoothing reports whether a ramp is in progress.
func (s *Smoother) IsSmoothing() bool { return s.steps > 0 }

// Remaining returns the number of samples left in the current ramp.
func (s *Smoother) Remaining() int { return s.steps - s.step }

// Kind returns the smoothing type.
func (s *Smoother) Kind() SmoothingType { return s.kind }
