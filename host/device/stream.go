// Package device plays a processor in real time through the system audio
// output.
package device

import (
	"encoding/binary"
	"errors"
	"fmt"
	"io"
	"math"
	"sync"
	"sync/atomic"

	"github.com/cwbudde/algo-engine/engine/audio"
	"github.com/cwbudde/algo-engine/host"
)

// BytesPerSample is the size of one float32LE sample.
const BytesPerSample = 4

var (
	// ErrProcess wraps the reason of a StatusError from the processor.
	ErrProcess = errors.New("device: process failed")
	// ErrClosed is returned by Read after Close.
	ErrClosed = errors.New("device: stream closed")
)

// Tail lengths are packed below the status kind in one word.
const tailBits = 56

// Stream pulls blocks from an initialised processor and encodes them as
// interleaved float32LE for the output device. All buffers are allocated in
// NewStream; Read does not allocate.
//
// Read is serialised by a mutex held for the whole render. The getters and
// Close only touch atomics, so a control goroutine never waits on the audio
// callback.
type Stream struct {
	proc   host.Processor
	layout audio.Layout
	cfg    audio.BufferConfig

	// Guarded by mu.
	mu     sync.Mutex
	block  audio.Block
	ctx    audio.ProcessContext
	pcm    []byte
	pos    int
	status audio.Status

	closed   atomic.Bool
	failure  atomic.Pointer[streamError]
	merged   atomic.Uint64
	rendered atomic.Int64
}

type streamError struct{ err error }

// NewStream prepares a stream for proc, which must already be initialised with
// layout and cfg.
func NewStream(proc host.Processor, layout audio.Layout, cfg audio.BufferConfig) (*Stream, error) {
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("device: %w", err)
	}

	if err := layout.Validate(); err != nil {
		return nil, fmt.Errorf("device: %w", err)
	}

	pcm := make([]byte, cfg.MaxBlockSize*layout.OutputChannels*BytesPerSample)

	return &Stream{
		proc:   proc,
		layout: layout,
		cfg:    cfg,
		block:  audio.NewBlock(layout.OutputChannels, cfg.MaxBlockSize),
		ctx:    audio.ProcessContext{SampleRate: cfg.SampleRate, MaxBlockSize: cfg.MaxBlockSize},
		pcm:    pcm,
		pos:    len(pcm),
		status: audio.Normal(),
	}, nil
}

// Read implements io.Reader. It renders as many blocks as needed to fill p.
func (s *Stream) Read(p []byte) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed.Load() {
		return 0, ErrClosed
	}

	if f := s.failure.Load(); f != nil {
		return 0, f.err
	}

	n := 0
	for n < len(p) {
		if s.pos == len(s.pcm) {
			if err := s.render(); err != nil {
				s.failure.Store(&streamError{err: err})
				if n > 0 {
					return n, nil
				}

				return 0, err
			}
		}

		c := copy(p[n:], s.pcm[s.pos:])
		s.pos += c
		n += c
	}

	return n, nil
}

func (s *Stream) render() error {
	rendered := s.rendered.Load()
	s.ctx.SampleTime = rendered

	st := s.proc.Process(s.block, &s.ctx)
	if st.IsError() {
		return fmt.Errorf("%w at frame %d: %w", ErrProcess, rendered, st.Err)
	}

	s.status = audio.Merge(s.status, st)
	s.merged.Store(packStatus(s.status))
	s.rendered.Store(rendered + int64(s.block.Frames()))

	channels := s.block.Channels()
	for ch := range channels {
		x := s.block.Channel(ch)
		for i, v := range x {
			off := (i*channels + ch) * BytesPerSample
			binary.LittleEndian.PutUint32(s.pcm[off:], math.Float32bits(float32(v)))
		}
	}

	s.pos = 0

	return nil
}

// Rendered returns the number of frames rendered so far.
func (s *Stream) Rendered() int64 {
	return s.rendered.Load()
}

// Status returns the merged status of every block rendered so far.
func (s *Stream) Status() audio.Status {
	return unpackStatus(s.merged.Load())
}

// Err returns the error that stopped the stream, if any.
func (s *Stream) Err() error {
	if f := s.failure.Load(); f != nil {
		return f.err
	}

	return nil
}

// Close makes further reads fail with ErrClosed. It does not deactivate the
// processor or wait for a Read in progress.
func (s *Stream) Close() error {
	s.closed.Store(true)

	return nil
}

func packStatus(st audio.Status) uint64 {
	return uint64(st.Kind)<<tailBits | uint64(st.TailSamples)&(1<<tailBits-1)
}

func unpackStatus(w uint64) audio.Status {
	return audio.Status{
		Kind:        audio.StatusKind(w >> tailBits),
		TailSamples: int(w & (1<<tailBits - 1)),
	}
}

var _ io.ReadCloser = (*Stream)(nil)
