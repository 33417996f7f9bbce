package device

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/hajimehoshi/oto/v2"
)

// ErrOutputFormat is returned when the output is already open with another
// sample rate or channel count.
var ErrOutputFormat = errors.New("device: output already open with another format")

// outputContext holds the one oto context a process may create. It is opened
// on first use and kept even when a caller gives up waiting for it, so a later
// NewPlayer with the same format waits on the same context again.
type outputContext[C any] struct {
	open func(sampleRate, channels, format int) (C, chan struct{}, error)

	mu         sync.Mutex
	opened     bool
	ctx        C
	ready      chan struct{}
	sampleRate int
	channels   int
}

var output = &outputContext[*oto.Context]{open: oto.NewContext}

// get returns the context for sampleRate and channels once the device is
// ready. It returns early with ctx's error; the context stays open.
func (o *outputContext[C]) get(ctx context.Context, sampleRate, channels int) (C, error) {
	var zero C

	o.mu.Lock()
	if !o.opened {
		c, ready, err := o.open(sampleRate, channels, oto.FormatFloat32LE)
		if err != nil {
			o.mu.Unlock()
			return zero, fmt.Errorf("device: open output: %w", err)
		}

		o.ctx, o.ready = c, ready
		o.sampleRate, o.channels = sampleRate, channels
		o.opened = true
	}

	c, ready := o.ctx, o.ready
	haveRate, haveChannels := o.sampleRate, o.channels
	o.mu.Unlock()

	if haveRate != sampleRate || haveChannels != channels {
		return zero, fmt.Errorf("%w: open at %d Hz with %d channels, want %d Hz with %d channels",
			ErrOutputFormat, haveRate, haveChannels, sampleRate, channels)
	}

	select {
	case <-ready:
		return c, nil
	case <-ctx.Done():
		return zero, fmt.Errorf("device: %w", ctx.Err())
	}
}

// Player drives a Stream through oto. Every Player in a process shares one
// output context, so they must all use the same format.
type Player struct {
	stream *Stream
	otoCtx *oto.Context
	player oto.Player
	logger *slog.Logger
}

// NewPlayer opens the output device at the stream's sample rate and channel
// count. It blocks until the device is ready or ctx is done. A timeout is not
// terminal: the device keeps opening and a later call may succeed.
func NewPlayer(ctx context.Context, s *Stream, logger *slog.Logger) (*Player, error) {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}

	otoCtx, err := output.get(ctx, int(s.cfg.SampleRate), s.layout.OutputChannels)
	if err != nil {
		return nil, err
	}

	logger.Info("audio device ready",
		"sample_rate", s.cfg.SampleRate,
		"channels", s.layout.OutputChannels)

	return &Player{
		stream: s,
		otoCtx: otoCtx,
		player: otoCtx.NewPlayer(s),
		logger: logger,
	}, nil
}

// Play starts playback without blocking.
func (p *Player) Play() { p.player.Play() }

// IsPlaying reports whether the device is still pulling audio.
func (p *Player) IsPlaying() bool { return p.player.IsPlaying() }

// Wait plays until ctx is done or the stream stops, polling every interval.
func (p *Player) Wait(ctx context.Context, interval time.Duration) error {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for p.player.IsPlaying() {
		select {
		case <-ctx.Done():
			return nil
		case <-ticker.C:
		}
	}

	return p.stream.Err()
}

// Close stops playback and closes the stream.
func (p *Player) Close() error {
	err := p.player.Close()
	_ = p.stream.Close()

	p.logger.Info("audio device closed", "frames", p.stream.Rendered())

	if err != nil {
		return fmt.Errorf("device: close player: %w", err)
	}

	return nil
}
