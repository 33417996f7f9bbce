package analysis

import (
	"errors"
	"fmt"
	"math"
	"math/bits"

	algofft "github.com/MeKo-Christian/algo-fft"
	vecmath "github.com/cwbudde/algo-vecmath"
)

// MinSpectrumSize is the shortest input DominantFrequency accepts.
const MinSpectrumSize = 16

// ErrTooShort is returned for inputs shorter than MinSpectrumSize.
var ErrTooShort = errors.New("analysis: signal too short")

// DominantFrequency estimates the frequency of the strongest spectral peak in
// x. It analyses the largest power-of-two prefix of x under a Hann window and
// refines the peak bin by parabolic interpolation of the log magnitudes.
func DominantFrequency(x []float64, sampleRate float64) (float64, error) {
	if len(x) < MinSpectrumSize {
		return 0, fmt.Errorf("%w: %d samples", ErrTooShort, len(x))
	}

	if sampleRate <= 0 || math.IsNaN(sampleRate) || math.IsInf(sampleRate, 0) {
		return 0, fmt.Errorf("analysis: invalid sample rate %v", sampleRate)
	}

	n := 1 << (bits.Len(uint(len(x))) - 1)

	frame := make([]float64, n)
	copy(frame, x[:n])
	vecmath.MulBlockInPlace(frame, hann(n))

	in := make([]complex128, n)
	for i, v := range frame {
		in[i] = complex(v, 0)
	}

	plan, err := algofft.NewPlan64(n)
	if err != nil {
		return 0, fmt.Errorf("analysis: fft plan: %w", err)
	}

	out := make([]complex128, n)
	if err := plan.Forward(out, in); err != nil {
		return 0, fmt.Errorf("analysis: fft: %w", err)
	}

	half := n / 2
	mags := make([]float64, half+1)

	peak := 1
	for k := 1; k <= half; k++ {
		re, im := real(out[k]), imag(out[k])
		mags[k] = math.Sqrt(re*re + im*im)

		if mags[k] > mags[peak] {
			peak = k
		}
	}

	if mags[peak] == 0 {
		return 0, nil
	}

	offset := 0.0
	if peak > 1 && peak < half {
		a := math.Log(mags[peak-1] + 1e-300)
		b := math.Log(mags[peak])
		c := math.Log(mags[peak+1] + 1e-300)

		if d := a - 2*b + c; d != 0 {
			offset = 0.5 * (a - c) / d
		}
	}

	return (float64(peak) + offset) * sampleRate / float64(n), nil
}

func hann(n int) []float64 {
	w := make([]float64, n)
	for i := range w {
		w[i] = 0.5 - 0.5*math.Cos(2*math.Pi*float64(i)/float64(n))
	}

	return w
}
