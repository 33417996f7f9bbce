package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"math"
	"os"

	"github.com/cwbudde/algo-engine/engine"
	"github.com/cwbudde/algo-engine/engine/analysis"
	"github.com/cwbudde/algo-engine/engine/audio"
	"github.com/cwbudde/algo-engine/host/decode"
	"github.com/cwbudde/algo-engine/host/offline"
)

func runRender(ctx context.Context, args []string, stdout, stderr io.Writer) error {
	var s sessionFlags

	fs := flag.NewFlagSet("render", flag.ContinueOnError)
	fs.SetOutput(stderr)
	s.register(fs)

	out := fs.String("o", "out.wav", "output WAV file")
	duration := fs.Float64("duration", 1, "length in seconds (default: input length when -input is set)")
	bits := fs.Int("bits", 16, "output bit depth (16 or 24)")
	input := fs.String("input", "", "input audio file (wav, aiff, mp3, ogg)")

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
	opts := []offline.Option{offline.WithLogger(logger), offline.WithAutomation(auto)}
	frames := int(math.Round(*duration * s.rate))

	if *input != "" {
		in, err := decode.File(*input)
		if err != nil {
			return err
		}

		if float64(in.SampleRate) != s.rate {
			logger.Info("using input sample rate", "input", in.SampleRate, "requested", s.rate)
			s.rate = float64(in.SampleRate)
		}

		layout = audio.Layout{InputChannels: len(in.Channels), OutputChannels: len(in.Channels)}
		opts = append(opts, offline.WithInput(in.Channels))

		if !flagSet(fs, "duration") {
			frames = in.Frames()
		}
	}

	e := engine.New(g, engine.WithLogger(logger))

	planar, status, err := offline.New(e, layout, s.config(), opts...).Render(ctx, frames)
	if err != nil {
		return err
	}

	f, err := os.Create(*out)
	if err != nil {
		return fmt.Errorf("create output: %w", err)
	}

	if err := offline.WriteWAV(f, planar, int(s.rate), *bits); err != nil {
		_ = f.Close()
		return err
	}

	if err := f.Close(); err != nil {
		return fmt.Errorf("close output: %w", err)
	}

	summarize(stdout, *out, planar, s.rate, status)

	return nil
}

func summarize(w io.Writer, path string, planar [][]float64, sampleRate float64, status audio.Status) {
	frames := 0
	if len(planar) > 0 {
		frames = len(planar[0])
	}

	fmt.Fprintf(w, "wrote %s: %d channels, %d frames, status %s\n", path, len(planar), frames, status.Kind)

	for ch, x := range planar {
		line := fmt.Sprintf("  ch%d  peak %.4f  rms %.4f", ch, analysis.Peak(x), analysis.RMS(x))
		if f0, err := analysis.DominantFrequency(x, sampleRate); err == nil {
			line += fmt.Sprintf("  dominant %.1f Hz", f0)
		}

		fmt.Fprintln(w, line)
	}
}

func flagSet(fs *flag.FlagSet, name string) bool {
	found := false

	fs.Visit(func(f *flag.Flag) {
		if f.Name == name {
			found = true
		}
	})

	return found
}
