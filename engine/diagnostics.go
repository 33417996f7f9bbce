package engine

import "github.com/cwbudde/algo-engine/internal/cpu"

// Diagnostics is a snapshot for logs and support output.
type Diagnostics struct {
	State        State
	Nodes        int
	Parameters   int
	SampleRate   float64
	MaxBlockSize int
	Architecture string
	SIMD         string
}

// Diagnostics reports the engine session and the vector extensions the
// host CPU offers to the DSP kernels.
func (e *Engine) Diagnostics() Diagnostics {
	g := e.graph.Load()
	cfg := e.Config()
	f := cpu.DetectFeatures()

	return Diagnostics{
		State:        e.State(),
		Nodes:        g.Len(),
		Parameters:   len(g.Parameters()),
		SampleRate:   cfg.SampleRate,
		MaxBlockSize: cfg.MaxBlockSize,
		Architecture: f.Architecture,
		SIMD:         f.Best().String(),
	}
}
