package param

import "math"

// Range is the closed interval [Min, Max] a parameter value lives in.
type Range struct {
	Min float64
	Max float64
}

func (r Range) valid() bool {
	return isFinite(r.Min) && isFinite(r.Max) && r.Min < r.Max
}

// Contains reports whether v lies inside the range.
func (r Range) Contains(v float64) bool {
	return v >= r.Min && v <= r.Max
}

// Clamp limits v to the range.
func (r Range) Clamp(v float64) float64 {
	if v < r.Min {
		return r.Min
	}

	if v > r.Max {
		return r.Max
	}

	return v
}

// Normalize maps a plain value to [0, 1].
func (r Range) Normalize(v float64) float64 {
	if r.Max <= r.Min {
		return 0
	}

	return (r.Clamp(v) - r.Min) / (r.Max - r.Min)
}

// Denormalize maps n in [0, 1] to a plain value. n is clamped first.
func (r Range) Denormalize(n float64) float64 {
	n = math.Max(0, math.Min(1, n))
	return r.Min + n*(r.Max-r.Min)
}

func isFinite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}
