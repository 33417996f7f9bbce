package decode

import (
	"encoding/binary"
	"fmt"
	"io"

	gomp3 "github.com/hajimehoshi/go-mp3"
	"github.com/jfreymuth/oggvorbis"
)

// go-mp3 always yields 16-bit little-endian stereo.
const mp3Channels = 2

func decodeMP3(r io.Reader) (Audio, error) {
	dec, err := gomp3.NewDecoder(r)
	if err != nil {
		return Audio{}, fmt.Errorf("%w: mp3: %w", ErrInvalidFile, err)
	}

	raw, err := io.ReadAll(dec)
	if err != nil {
		return Audio{}, fmt.Errorf("decode: mp3: %w", err)
	}

	samples := make([]int, len(raw)/2)
	for i := range samples {
		samples[i] = int(int16(binary.LittleEndian.Uint16(raw[2*i:])))
	}

	return Audio{
		Channels:   deinterleave(samples, mp3Channels, fullScale(16)),
		SampleRate: dec.SampleRate(),
	}, nil
}

func decodeOgg(r io.Reader) (Audio, error) {
	data, format, err := oggvorbis.ReadAll(r)
	if err != nil {
		return Audio{}, fmt.Errorf("%w: ogg: %w", ErrInvalidFile, err)
	}

	if format.Channels < 1 {
		return Audio{}, fmt.Errorf("%w: ogg with %d channels", ErrInvalidFile, format.Channels)
	}

	frames := len(data) / format.Channels

	out := make([][]float64, format.Channels)
	for ch := range out {
		out[ch] = make([]float64, frames)
		for i := range frames {
			out[ch][i] = float64(data[i*format.Channels+ch])
		}
	}

	return Audio{Channels: out, SampleRate: format.SampleRate}, nil
}
