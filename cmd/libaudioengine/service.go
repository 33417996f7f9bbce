// Command libaudioengine builds the engine as a C shared library:
//
//	go build -buildmode=c-shared -o libaudioengine.so ./cmd/libaudioengine
//
// The library exports a single entry point, audio_engine_init, which builds
// the default chain and starts playback on the default output device.
package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"sync"
	"time"

	"github.com/cwbudde/algo-engine/engine"
	"github.com/cwbudde/algo-engine/engine/audio"
	"github.com/cwbudde/algo-engine/engine/graph"
	"github.com/cwbudde/algo-engine/host/device"
)

const (
	sampleRate = 44100
	blockSize  = 256
	channels   = 2

	readyTimeout = 5 * time.Second
)

const serviceChain = `{"nodes": [
	{"id": "osc", "type": "sine", "params": {"frequency": 220}},
	{"id": "amp", "type": "gain", "params": {"gain": 0.25}}
]}`

// output is the part of device.Player the service drives.
type output interface {
	Play()
	Close() error
}

type openFunc func(ctx context.Context, s *device.Stream, logger *slog.Logger) (output, error)

func openDevice(ctx context.Context, s *device.Stream, logger *slog.Logger) (output, error) {
	return device.NewPlayer(ctx, s, logger)
}

// service is the running engine owned by the library.
type service struct {
	engine *engine.Engine
	stream *device.Stream
	out    output
}

var (
	mu      sync.Mutex
	running *service
	logger  = slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelWarn}))
)

// start builds and starts the service once. Later calls are no-ops.
func start(open openFunc) error {
	mu.Lock()
	defer mu.Unlock()

	if running != nil {
		return nil
	}

	g, err := graph.BuildJSON([]byte(serviceChain), graph.DefaultRegistry())
	if err != nil {
		return err
	}

	layout := audio.Generator(channels)
	cfg := audio.BufferConfig{SampleRate: sampleRate, MaxBlockSize: blockSize}

	e := engine.New(g, engine.WithLogger(logger))
	if err := e.Initialize(layout, cfg); err != nil {
		return err
	}

	stream, err := device.NewStream(e, layout, cfg)
	if err != nil {
		_ = e.Deactivate()
		return err
	}

	ctx, cancel := context.WithTimeout(context.Background(), readyTimeout)
	defer cancel()

	out, err := open(ctx, stream, logger)
	if err != nil {
		_ = e.Deactivate()
		return fmt.Errorf("libaudioengine: %w", err)
	}

	out.Play()

	running = &service{engine: e, stream: stream, out: out}

	return nil
}

// stop tears the service down.
func stop() error {
	mu.Lock()
	defer mu.Unlock()

	if running == nil {
		return nil
	}

	err := running.out.Close()
	_ = running.engine.Deactivate()
	running = nil

	return err
}

func main() {}
