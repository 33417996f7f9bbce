package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"time"

	"github.com/cwbudde/algo-engine/engine"
	"github.com/cwbudde/algo-engine/engine/audio"
	"github.com/cwbudde/algo-engine/host/device"
)

// Automation is applied from the control side at this interval during
// playback.
const automationTick = 5 * time.Millisecond

func runPlay(ctx context.Context, args []string, stderr io.Writer) error {
	var s sessionFlags

	fs := flag.NewFlagSet("play", flag.ContinueOnError)
	fs.SetOutput(stderr)
	s.register(fs)

	duration := fs.Duration("duration", 3*time.Second, "playback length")

	if err := fs.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return nil
		}

		return errUsage
	}

	logger := newLogger(stderr, s.verbose)

	g, err := s.buildGraph()
	if err != nil {
		return err
	}

	auto, err := s.loadAutomation()
	if err != nil {
		return err
	}

	layout := audio.Generator(s.channels)
	cfg := s.config()

	e := engine.New(g, engine.WithLogger(logger))
	if err := e.Initialize(layout, cfg); err != nil {
		return err
	}

	defer func() { _ = e.Deactivate() }()

	d := e.Diagnostics()
	logger.Info("engine ready", "nodes", d.Nodes, "parameters", d.Parameters, "arch", d.Architecture, "simd", d.SIMD)

	stream, err := device.NewStream(e, layout, cfg)
	if err != nil {
		return err
	}

	player, err := device.NewPlayer(ctx, stream, logger)
	if err != nil {
		return err
	}
	defer player.Close()

	ctx, cancel := context.WithTimeout(ctx, *duration)
	defer cancel()

	player.Play()

	if auto == nil {
		return player.Wait(ctx, automationTick)
	}

	ticker := time.NewTicker(automationTick)
	defer ticker.Stop()

	for player.IsPlaying() {
		select {
		case <-ctx.Done():
			return stream.Err()
		case <-ticker.C:
			if err := auto.Apply(e, stream.Rendered(), cfg.SampleRate); err != nil {
				return fmt.Errorf("automation: %w", err)
			}
		}
	}

	return stream.Err()
}
