package offline

import (
	"errors"
	"fmt"
	"io"
	"math"

	goaudio "github.com/go-audio/audio"
	"github.com/go-audio/wav"
)

// ErrUnsupportedBitDepth is returned for bit depths other than 16 and 24.
var ErrUnsupportedBitDepth = errors.New("offline: unsupported bit depth")

const wavFormatPCM = 1

// WriteWAV encodes planar samples in [-1, 1] as integer PCM. Samples outside
// the range are clipped.
func WriteWAV(w io.WriteSeeker, planar [][]float64, sampleRate, bitDepth int) error {
	if bitDepth != 16 && bitDepth != 24 {
		return fmt.Errorf("%w: %d", ErrUnsupportedBitDepth, bitDepth)
	}

	if len(planar) == 0 {
		return errors.New("offline: no channels to write")
	}

	frames := len(planar[0])
	for ch := range planar {
		if len(planar[ch]) != frames {
			return fmt.Errorf("offline: channel %d has %d frames, want %d", ch, len(planar[ch]), frames)
		}
	}

	scale := float64(int(1)<<(bitDepth-1)) - 1
	data := make([]int, frames*len(planar))

	for i := range frames {
		for ch := range planar {
			v := math.Max(-1, math.Min(1, planar[ch][i]))
			data[i*len(planar)+ch] = int(math.Round(v * scale))
		}
	}

	buf := &goaudio.IntBuffer{
		Format:         &goaudio.Format{NumChannels: len(planar), SampleRate: sampleRate},
		Data:           data,
		SourceBitDepth: bitDepth,
	}

	enc := wav.NewEncoder(w, sampleRate, bitDepth, len(planar), wavFormatPCM)
	if err := enc.Write(buf); err != nil {
		return fmt.Errorf("offline: encode wav: %w", err)
	}

	if err := enc.Close(); err != nil {
		return fmt.Errorf("offline: finalize wav: %w", err)
	}

	return nil
}
