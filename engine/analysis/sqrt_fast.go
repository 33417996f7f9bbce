//go:build fastmath

package analysis

import "github.com/meko-christian/algo-approx"

// sqrt trades a few ulps for speed in the meter hot path.
func sqrt(x float64) float64 {
	return approx.FastSqrt(x)
}
