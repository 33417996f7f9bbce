package decode

import (
	"errors"
	"fmt"
	"io"

	"github.com/go-audio/aiff"
	goaudio "github.com/go-audio/audio"
	"github.com/go-audio/wav"
)

func decodeWAV(r io.ReadSeeker) (Audio, error) {
	dec := wav.NewDecoder(r)
	if !dec.IsValidFile() {
		return Audio{}, fmt.Errorf("%w: not a wav file", ErrInvalidFile)
	}

	buf, err := dec.FullPCMBuffer()
	if err != nil {
		return Audio{}, fmt.Errorf("decode: wav: %w", err)
	}

	channels := int(dec.NumChans)
	if channels < 1 {
		return Audio{}, fmt.Errorf("%w: wav with %d channels", ErrInvalidFile, channels)
	}

	return Audio{
		Channels:   deinterleave(buf.Data, channels, fullScale(int(dec.BitDepth))),
		SampleRate: int(dec.SampleRate),
	}, nil
}

// Samples per channel read from the AIFF decoder per call.
const aiffChunk = 4096

func decodeAIFF(r io.ReadSeeker) (Audio, error) {
	dec := aiff.NewDecoder(r)
	if !dec.IsValidFile() {
		return Audio{}, fmt.Errorf("%w: not an aiff file", ErrInvalidFile)
	}

	dec.ReadInfo()

	format := dec.Format()
	if format == nil || format.NumChannels < 1 {
		return Audio{}, fmt.Errorf("%w: aiff without a usable format", ErrInvalidFile)
	}

	var data []int

	buf := &goaudio.IntBuffer{Data: make([]int, aiffChunk*format.NumChannels), Format: format}
	for {
		n, err := dec.PCMBuffer(buf)
		data = append(data, buf.Data[:n]...)

		if errors.Is(err, io.EOF) {
			break
		}

		if err != nil {
			return Audio{}, fmt.Errorf("decode: aiff: %w", err)
		}

		if n == 0 {
			break
		}
	}

	return Audio{
		Channels:   deinterleave(data, format.NumChannels, fullScale(int(dec.BitDepth))),
		SampleRate: format.SampleRate,
	}, nil
}
