// Package cpu reports the SIMD extensions of the host processor.
//
// The vector kernels behind algo-vecmath pick their implementation on their
// own; this package only surfaces what they can use, for diagnostics and logs.
package cpu

import "sync"

// SIMDLevel names the widest vector extension available.
type SIMDLevel int

const (
	// SIMDNone means only scalar kernels run.
	SIMDNone SIMDLevel = iota
	// SIMDSSE2 is the amd64 baseline.
	SIMDSSE2
	// SIMDAVX is x86-64 AVX.
	SIMDAVX
	// SIMDAVX2 is x86-64 AVX2.
	SIMDAVX2
	// SIMDAVX512 is x86-64 AVX-512F.
	SIMDAVX512
	// SIMDNEON is ARM Advanced SIMD.
	SIMDNEON
)

// String returns a human-readable name for the SIMD level.
func (s SIMDLevel) String() string {
	switch s {
	case SIMDNone:
		return "None"
	case SIMDSSE2:
		return "SSE2"
	case SIMDAVX:
		return "AVX"
	case SIMDAVX2:
		return "AVX2"
	case SIMDAVX512:
		return "AVX-512"
	case SIMDNEON:
		return "NEON"
	default:
		return "Unknown"
	}
}

// Features describes the vector capabilities of the host.
type Features struct {
	HasSSE2   bool
	HasAVX    bool
	HasAVX2   bool
	HasAVX512 bool
	HasNEON   bool

	Architecture string
}

// Best returns the widest extension in f.
func (f Features) Best() SIMDLevel {
	switch {
	case f.HasAVX512:
		return SIMDAVX512
	case f.HasAVX2:
		return SIMDAVX2
	case f.HasAVX:
		return SIMDAVX
	case f.HasSSE2:
		return SIMDSSE2
	case f.HasNEON:
		return SIMDNEON
	default:
		return SIMDNone
	}
}

var (
	detectOnce sync.Once
	detected   Features
)

// DetectFeatures returns the features of the current machine. Detection runs
// once and is cached.
func DetectFeatures() Features {
	detectOnce.Do(func() {
		detected = detectFeaturesImpl()
	})

	return detected
}
