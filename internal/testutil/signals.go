// Package testutil holds signal generators and comparison helpers shared by
// the engine's tests.
package testutil

import (
	"math"
	"math/rand"

	"github.com/cwbudde/algo-engine/engine/audio"
)

// DeterministicSine returns amplitude·sin(2π·freqHz·i/sampleRate), the
// reference every oscillator test compares against.
func DeterministicSine(freqHz, sampleRate, amplitude float64, length int) []float64 {
	out := make([]float64, length)

	w := 2 * math.Pi * freqHz / sampleRate
	for i := range out {
		out[i] = amplitude * math.Sin(w*float64(i))
	}

	return out
}

// DeterministicNoise returns uniform noise in [-amplitude, amplitude) drawn
// from a seeded source.
func DeterministicNoise(seed int64, amplitude float64, length int) []float64 {
	rng := rand.New(rand.NewSource(seed))

	out := make([]float64, length)
	for i := range out {
		out[i] = amplitude * (2*rng.Float64() - 1)
	}

	return out
}

// Impulse returns length zeros with a 1 at pos. An out-of-range pos gives
// silence.
func Impulse(length, pos int) []float64 {
	out := make([]float64, length)
	if pos >= 0 && pos < length {
		out[pos] = 1
	}

	return out
}

// DC returns length copies of value.
func DC(value float64, length int) []float64 {
	out := make([]float64, length)
	for i := range out {
		out[i] = value
	}

	return out
}

// Ones is DC(1, n).
func Ones(n int) []float64 { return DC(1, n) }

// BlockOf copies equally long channels into a new block.
func BlockOf(channels ...[]float64) audio.Block {
	frames := 0
	if len(channels) > 0 {
		frames = len(channels[0])
	}

	b := audio.NewBlock(len(channels), frames)
	for ch, x := range channels {
		copy(b.Channel(ch), x)
	}

	return b
}
