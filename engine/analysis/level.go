package analysis

import vecmath "github.com/cwbudde/algo-vecmath"

// Peak returns the largest absolute sample value, or 0 for an empty slice.
func Peak(x []float64) float64 {
	if len(x) == 0 {
		return 0
	}

	return vecmath.MaxAbs(x)
}

// Energy returns the sum of squares of x. NaN or Inf samples make it non-finite.
func Energy(x []float64) float64 {
	var sum float64
	for _, v := range x {
		sum += v * v
	}

	return sum
}

// RootMean returns sqrt(energy / n), the RMS of a signal with that energy.
func RootMean(energy float64, n int) float64 {
	if n <= 0 || energy <= 0 {
		return 0
	}

	return sqrt(energy / float64(n))
}

// RMS returns the root-mean-square level of x.
func RMS(x []float64) float64 {
	return RootMean(Energy(x), len(x))
}

// ZeroCrossings counts sign changes in x. Exact zeros belong to neither side,
// so a sine sampled exactly at its zeros is not counted twice.
func ZeroCrossings(x []float64) int {
	count := 0
	last := 0

	for _, v := range x {
		sign := 0

		switch {
		case v > 0:
			sign = 1
		case v < 0:
			sign = -1
		}

		if sign == 0 {
			continue
		}

		if last != 0 && sign != last {
			count++
		}

		last = sign
	}

	return count
}
