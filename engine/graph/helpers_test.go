package graph

import (
	"github.com/cwbudde/algo-engine/engine/audio"
	"github.com/cwbudde/algo-engine/engine/node"
	"github.com/cwbudde/algo-engine/engine/param"
)

var (
	testLayout = audio.Mono()
	testConfig = audio.BufferConfig{SampleRate: 48000, MaxBlockSize: 64}
)

// stubNode records calls and returns a fixed status.
type stubNode struct {
	name       string
	channels   int
	source     bool
	status     audio.Status
	prepareErr error
	params     []*param.Parameter

	prepareCalls int
	processCalls int
	resetLog     *[]string
}

func (s *stubNode) Prepare(audio.BufferConfig) error {
	s.prepareCalls++
	return s.prepareErr
}

func (s *stubNode) Process(audio.Block, *audio.ProcessContext) audio.Status {
	s.processCalls++
	return s.status
}

func (s *stubNode) Reset() {
	if s.resetLog != nil {
		*s.resetLog = append(*s.resetLog, s.name)
	}
}

func (s *stubNode) Parameters() []*param.Parameter { return s.params }

func (s *stubNode) Ports() node.Ports { return node.Ports{Channels: s.channels, Source: s.source} }
