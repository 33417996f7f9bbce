// Package offline renders a processor faster than real time, block by block,
// and writes the result to WAV.
package offline

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/cwbudde/algo-engine/engine/audio"
	"github.com/cwbudde/algo-engine/host"
)

// ErrProcess wraps the reason of a StatusError returned while rendering.
var ErrProcess = errors.New("offline: process failed")

// Option configures a Renderer.
type Option func(*Renderer)

// WithInput feeds planar samples to the processor's input channels. Frames
// past the end of the input are silent.
func WithInput(planar [][]float64) Option {
	return func(r *Renderer) { r.input = planar }
}

// WithAutomation applies a before every block.
func WithAutomation(a *host.Automation) Option {
	return func(r *Renderer) { r.automation = a }
}

// WithLogger sets the logger for session events.
func WithLogger(l *slog.Logger) Option {
	return func(r *Renderer) {
		if l != nil {
			r.logger = l
		}
	}
}

// Renderer owns one processing session of a Processor.
type Renderer struct {
	proc   host.Processor
	layout audio.Layout
	cfg    audio.BufferConfig

	input      [][]float64
	automation *host.Automation
	logger     *slog.Logger
}

// New creates a renderer for proc with the given session parameters.
func New(proc host.Processor, layout audio.Layout, cfg audio.BufferConfig, opts ...Option) *Renderer {
	r := &Renderer{
		proc:   proc,
		layout: layout,
		cfg:    cfg,
		logger: slog.New(slog.DiscardHandler),
	}

	for _, opt := range opts {
		if opt != nil {
			opt(r)
		}
	}

	return r
}

// Render initialises the processor, renders frames frames and deactivates it
// again. It returns planar output with layout.OutputChannels channels and the
// merged status of all blocks. On a StatusError the output rendered so far is
// returned together with an error wrapping ErrProcess and the reason.
func (r *Renderer) Render(ctx context.Context, frames int) ([][]float64, audio.Status, error) {
	if frames < 0 {
		return nil, audio.Status{}, fmt.Errorf("offline: negative frame count %d", frames)
	}

	if err := r.proc.Initialize(r.layout, r.cfg); err != nil {
		return nil, audio.Status{}, fmt.Errorf("offline: %w", err)
	}

	defer func() {
		if err := r.proc.Deactivate(); err != nil {
			r.logger.Warn("offline deactivate failed", "error", err)
		}
	}()

	r.logger.Info("offline render started",
		"frames", frames,
		"sample_rate", r.cfg.SampleRate,
		"block_size", r.cfg.MaxBlockSize)

	out := make([][]float64, r.layout.OutputChannels)
	for ch := range out {
		out[ch] = make([]float64, 0, frames)
	}

	block := audio.NewBlock(r.layout.OutputChannels, r.cfg.MaxBlockSize)
	pctx := audio.ProcessContext{SampleRate: r.cfg.SampleRate, MaxBlockSize: r.cfg.MaxBlockSize}
	status := audio.Normal()

	for done := 0; done < frames; done += r.cfg.MaxBlockSize {
		if err := ctx.Err(); err != nil {
			return out, status, fmt.Errorf("offline: %w", err)
		}

		b := block.Truncate(min(r.cfg.MaxBlockSize, frames-done))
		r.fillInput(b, done)

		if r.automation != nil {
			if err := r.automation.Apply(r.proc, int64(done), r.cfg.SampleRate); err != nil {
				return out, status, fmt.Errorf("offline: %w", err)
			}
		}

		pctx.SampleTime = int64(done)

		st := r.proc.Process(b, &pctx)
		if st.IsError() {
			r.logger.Error("offline render stopped", "frame", done, "error", st.Err)
			return out, st, fmt.Errorf("%w at frame %d: %w", ErrProcess, done, st.Err)
		}

		status = audio.Merge(status, st)

		for ch := range out {
			out[ch] = append(out[ch], b.Channel(ch)...)
		}
	}

	r.logger.Info("offline render finished", "frames", frames, "status", status.Kind.String())

	return out, status, nil
}

func (r *Renderer) fillInput(b audio.Block, offset int) {
	b.Clear()

	channels := min(r.layout.InputChannels, len(r.input), b.Channels())
	for ch := range channels {
		src := r.input[ch]
		if offset >= len(src) {
			continue
		}

		copy(b.Channel(ch), src[offset:])
	}
}
