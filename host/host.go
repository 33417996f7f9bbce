// Package host holds what every host bridge shares: the lifecycle contract a
// bridge drives and time-stamped parameter automation.
package host

import (
	"github.com/cwbudde/algo-engine/engine/audio"
	"github.com/cwbudde/algo-engine/engine/param"
)

// Processor is the lifecycle and parameter surface a host bridge drives.
// *engine.Engine implements it.
type Processor interface {
	Initialize(layout audio.Layout, cfg audio.BufferConfig) error
	Process(block audio.Block, ctx *audio.ProcessContext) audio.Status
	Reset() error
	Deactivate() error
	Parameters() []param.Info
	SetParameter(id string, v float64) error
}
