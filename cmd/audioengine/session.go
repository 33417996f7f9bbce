package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/cwbudde/algo-engine/engine/audio"
	"github.com/cwbudde/algo-engine/engine/graph"
	"github.com/cwbudde/algo-engine/host"
)

const defaultChain = `{"nodes": [
	{"id": "osc", "type": "sine", "params": {"frequency": 440}},
	{"id": "amp", "type": "gain", "params": {"gain": 0.5}}
]}`

// sessionFlags are shared by every command that builds an engine.
type sessionFlags struct {
	chain      string
	rate       float64
	block      int
	channels   int
	automation string
	verbose    bool
}

func (s *sessionFlags) register(fs *flag.FlagSet) {
	fs.StringVar(&s.chain, "chain", "", "JSON chain description (default: 440 Hz sine at gain 0.5)")
	fs.Float64Var(&s.rate, "rate", 48000, "sample rate in Hz")
	fs.IntVar(&s.block, "block", 512, "maximum block size in frames")
	fs.IntVar(&s.channels, "channels", 2, "output channels")
	fs.StringVar(&s.automation, "automation", "", "JSON automation events")
	fs.BoolVar(&s.verbose, "v", false, "verbose logging")
}

func (s *sessionFlags) config() audio.BufferConfig {
	return audio.BufferConfig{SampleRate: s.rate, MaxBlockSize: s.block}
}

func (s *sessionFlags) buildGraph() (*graph.Graph, error) {
	raw := []byte(defaultChain)

	if s.chain != "" {
		var err error

		raw, err = os.ReadFile(s.chain)
		if err != nil {
			return nil, fmt.Errorf("read chain: %w", err)
		}
	}

	return graph.BuildJSON(raw, graph.DefaultRegistry())
}

func (s *sessionFlags) loadAutomation() (*host.Automation, error) {
	if s.automation == "" {
		return nil, nil
	}

	f, err := os.Open(s.automation)
	if err != nil {
		return nil, fmt.Errorf("open automation: %w", err)
	}
	defer f.Close()

	return host.LoadAutomation(f)
}
