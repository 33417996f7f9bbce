package analysis

import (
	"math"
	"testing"

	"github.com/cwbudde/algo-engine/internal/testutil"
)

func TestZeroCrossings(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		x    []float64
		want int
	}{
		{"empty", nil, 0},
		{"dc", testutil.DC(0.3, 16), 0},
		{"alternating", []float64{1, -1, 1, -1}, 3},
		{"zeros do not double count", []float64{1, 0, -1, 0, 1}, 2},
		{"touching zero", []float64{1, 0, 1}, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			if got := ZeroCrossings(tt.x); got != tt.want {
				t.Fatalf("ZeroCrossings() = %d, want %d", got, tt.want)
			}
		})
	}
}

func TestZeroCrossingsSine(t *testing.T) {
	t.Parallel()

	x := testutil.DeterministicSine(440, 48000, 1, 48000)
	if got := ZeroCrossings(x); got < 879 || got > 881 {
		t.Fatalf("ZeroCrossings() = %d, want 880±1", got)
	}
}

func TestLevels(t *testing.T) {
	t.Parallel()

	x := testutil.DeterministicSine(1000, 48000, 0.5, 4800)

	if got := Peak(x); math.Abs(got-0.5) > 1e-3 {
		t.Fatalf("Peak() = %v, want 0.5", got)
	}

	if got, want := RMS(x), 0.5/math.Sqrt2; math.Abs(got-want) > 1e-3 {
		t.Fatalf("RMS() = %v, want %v", got, want)
	}

	if got := RMS(nil); got != 0 {
		t.Fatalf("RMS(nil) = %v, want 0", got)
	}

	if got := Peak(nil); got != 0 {
		t.Fatalf("Peak(nil) = %v, want 0", got)
	}

	if got := Energy([]float64{1, math.NaN()}); !math.IsNaN(got) {
		t.Fatalf("Energy with NaN = %v, want NaN", got)
	}
}

func TestLevelsDoNotAllocate(t *testing.T) {
	x := testutil.DeterministicNoise(7, 1, 512)

	allocs := testing.AllocsPerRun(50, func() {
		_ = Peak(x)
		_ = RMS(x)
		_ = ZeroCrossings(x)
	})
	if allocs != 0 {
		t.Fatalf("allocs = %v, want 0", allocs)
	}
}
