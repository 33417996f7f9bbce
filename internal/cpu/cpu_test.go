package cpu

import (
	"runtime"
	"testing"
)

func TestDetectFeatures(t *testing.T) {
	t.Parallel()

	f := DetectFeatures()
	if f.Architecture != runtime.GOARCH {
		t.Fatalf("Architecture = %q, want %q", f.Architecture, runtime.GOARCH)
	}

	if runtime.GOARCH == "amd64" && !f.HasSSE2 {
		t.Fatal("amd64 without SSE2")
	}

	if DetectFeatures() != f {
		t.Fatal("detection is not cached")
	}
}

func TestBest(t *testing.T) {
	t.Parallel()

	tests := []struct {
		f    Features
		want SIMDLevel
	}{
		{Features{}, SIMDNone},
		{Features{HasSSE2: true}, SIMDSSE2},
		{Features{HasSSE2: true, HasAVX: true, HasAVX2: true}, SIMDAVX2},
		{Features{HasNEON: true}, SIMDNEON},
	}

	for _, tt := range tests {
		if got := tt.f.Best(); got != tt.want {
			t.Fatalf("Best(%+v) = %v, want %v", tt.f, got, tt.want)
		}
	}

	if SIMDAVX2.String() != "AVX2" {
		t.Fatalf("String() = %q", SIMDAVX2.String())
	}
}
