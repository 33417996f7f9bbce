package testutil

import (
	"math"
	"testing"

	"github.com/cwbudde/algo-engine/engine/audio"
)

// RequireSliceNearlyEqual stops the test at the first index where got and
// want differ by more than eps, or when their lengths differ.
func RequireSliceNearlyEqual(t *testing.T, got, want []float64, eps float64) {
	t.Helper()

	if len(got) != len(want) {
		t.Fatalf("len(got) = %d, want %d", len(got), len(want))
	}

	for i := range got {
		if d := math.Abs(got[i] - want[i]); d > eps || math.IsNaN(d) {
			t.Fatalf("[%d] = %v, want %v (|diff| %g > %g)", i, got[i], want[i], d, eps)
		}
	}
}

// RequireBlockNearlyEqual applies RequireSliceNearlyEqual channel by channel.
func RequireBlockNearlyEqual(t *testing.T, got, want audio.Block, eps float64) {
	t.Helper()

	if got.Channels() != want.Channels() {
		t.Fatalf("channels = %d, want %d", got.Channels(), want.Channels())
	}

	for ch := range got.Channels() {
		RequireSliceNearlyEqual(t, got.Channel(ch), want.Channel(ch), eps)
	}
}

// RequireFinite stops the test at the first NaN or Inf.
func RequireFinite(t *testing.T, data []float64) {
	t.Helper()

	for i, v := range data {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			t.Fatalf("[%d] = %v is not finite", i, v)
		}
	}
}

// RequireWithin stops the test at the first value outside [lo, hi].
func RequireWithin(t *testing.T, data []float64, lo, hi float64) {
	t.Helper()

	for i, v := range data {
		if v < lo || v > hi {
			t.Fatalf("[%d] = %v outside [%v, %v]", i, v, lo, hi)
		}
	}
}
