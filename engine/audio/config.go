package audio

import (
	"fmt"
	"math"
)

// BufferConfig is negotiated once with the host before processing starts.
type BufferConfig struct {
	SampleRate   float64
	MaxBlockSize int
}

// Validate reports whether the configuration can drive a processing session.
func (c BufferConfig) Validate() error {
	if math.IsNaN(c.SampleRate) || math.IsInf(c.SampleRate, 0) || c.SampleRate <= 0 {
		return fmt.Errorf("%w: sample rate %v", ErrInvalidBufferConfig, c.SampleRate)
	}

	if c.MaxBlockSize < 1 {
		return fmt.Errorf("%w: max block size %d", ErrInvalidBufferConfig, c.MaxBlockSize)
	}

	return nil
}

// Layout describes the main input and output channel counts of a session.
type Layout struct {
	InputChannels  int
	OutputChannels int
}

// Mono returns a one-in, one-out layout.
func Mono() Layout {
	return Layout{InputChannels: 1, OutputChannels: 1}
}

// Stereo returns a two-in, two-out layout.
func Stereo() Layout {
	return Layout{InputChannels: 2, OutputChannels: 2}
}

// Generator returns a layout with no input and n output channels.
func Generator(n int) Layout {
	return Layout{OutputChannels: n}
}

// Validate reports whether the layout is usable.
func (l Layout) Validate() error {
	if l.InputChannels < 0 {
		return fmt.Errorf("%w: %d input channels", ErrInvalidLayout, l.InputChannels)
	}

	if l.OutputChannels < 1 {
		return fmt.Errorf("%w: %d output channels", ErrInvalidLayout, l.OutputChannels)
	}

	return nil
}
