package testutil

import (
	"math"
	"slices"
	"testing"
)

func TestDeterministicSine(t *testing.T) {
	t.Parallel()

	s := DeterministicSine(1000, 48000, 1, 48)
	if len(s) != 48 {
		t.Fatalf("len = %d, want 48", len(s))
	}

	if s[0] != 0 {
		t.Fatalf("s[0] = %v, want 0", s[0])
	}

	// Quarter period of 1 kHz at 48 kHz is 12 samples.
	if math.Abs(s[12]-1) > 1e-12 {
		t.Fatalf("s[12] = %v, want 1", s[12])
	}

	RequireWithin(t, s, -1, 1)

	if !slices.Equal(s, DeterministicSine(1000, 48000, 1, 48)) {
		t.Fatal("sine not reproducible")
	}
}

func TestDeterministicNoise(t *testing.T) {
	t.Parallel()

	a := DeterministicNoise(42, 0.5, 64)
	if !slices.Equal(a, DeterministicNoise(42, 0.5, 64)) {
		t.Fatal("same seed gave different noise")
	}

	if slices.Equal(a, DeterministicNoise(43, 0.5, 64)) {
		t.Fatal("different seeds gave identical noise")
	}

	RequireWithin(t, a, -0.5, 0.5)
}

func TestImpulseAndDC(t *testing.T) {
	t.Parallel()

	if got := Impulse(4, 2); !slices.Equal(got, []float64{0, 0, 1, 0}) {
		t.Fatalf("Impulse(4, 2) = %v", got)
	}

	if got := Impulse(3, 5); !slices.Equal(got, []float64{0, 0, 0}) {
		t.Fatalf("Impulse(3, 5) = %v", got)
	}

	if got := DC(0.5, 2); !slices.Equal(got, []float64{0.5, 0.5}) {
		t.Fatalf("DC(0.5, 2) = %v", got)
	}

	if got := Ones(3); !slices.Equal(got, []float64{1, 1, 1}) {
		t.Fatalf("Ones(3) = %v", got)
	}
}

func TestBlockOf(t *testing.T) {
	t.Parallel()

	b := BlockOf([]float64{1, 2}, []float64{3, 4})
	if b.Channels() != 2 || b.Frames() != 2 {
		t.Fatalf("BlockOf shape = %dx%d", b.Channels(), b.Frames())
	}

	RequireSliceNearlyEqual(t, b.Channel(1), []float64{3, 4}, 0)

	if e := BlockOf(); e.Channels() != 0 || e.Frames() != 0 {
		t.Fatalf("BlockOf() shape = %dx%d", e.Channels(), e.Frames())
	}
}
