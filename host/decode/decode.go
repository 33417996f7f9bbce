// Package decode reads audio files into planar float64 samples for the
// offline renderer: WAV and AIFF through go-audio, MP3 through go-mp3 and
// Ogg Vorbis through oggvorbis.
package decode

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
)

var (
	// ErrUnknownFormat is returned for formats no decoder handles.
	ErrUnknownFormat = errors.New("decode: unknown format")
	// ErrInvalidFile is returned when the data does not match its format.
	ErrInvalidFile = errors.New("decode: invalid file")
)

// Format names an input container.
type Format string

const (
	FormatWAV  Format = "wav"
	FormatAIFF Format = "aiff"
	FormatMP3  Format = "mp3"
	FormatOgg  Format = "ogg"
)

// Audio is decoded sample data, one slice per channel, in [-1, 1].
type Audio struct {
	Channels   [][]float64
	SampleRate int
}

// Frames returns the length of the decoded signal.
func (a Audio) Frames() int {
	if len(a.Channels) == 0 {
		return 0
	}

	return len(a.Channels[0])
}

// FormatFromPath guesses the format from the file extension.
func FormatFromPath(path string) (Format, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".wav", ".wave":
		return FormatWAV, nil
	case ".aif", ".aiff":
		return FormatAIFF, nil
	case ".mp3":
		return FormatMP3, nil
	case ".ogg", ".oga":
		return FormatOgg, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnknownFormat, filepath.Ext(path))
	}
}

// File decodes the file at path, choosing the decoder by extension.
func File(path string) (Audio, error) {
	format, err := FormatFromPath(path)
	if err != nil {
		return Audio{}, err
	}

	f, err := os.Open(path)
	if err != nil {
		return Audio{}, fmt.Errorf("decode: %w", err)
	}
	defer f.Close()

	return Reader(format, f)
}

// Reader decodes r as format. WAV and AIFF need to seek; other readers are
// buffered in memory first.
func Reader(format Format, r io.Reader) (Audio, error) {
	switch format {
	case FormatWAV:
		return decodeWAV(seekable(r))
	case FormatAIFF:
		return decodeAIFF(seekable(r))
	case FormatMP3:
		return decodeMP3(r)
	case FormatOgg:
		return decodeOgg(r)
	default:
		return Audio{}, fmt.Errorf("%w: %q", ErrUnknownFormat, format)
	}
}

// seekable returns r as an io.ReadSeeker, reading it into memory if needed.
// Read errors surface from the decoder as an empty stream.
func seekable(r io.Reader) io.ReadSeeker {
	if rs, ok := r.(io.ReadSeeker); ok {
		return rs
	}

	data, _ := io.ReadAll(r)

	return bytes.NewReader(data)
}

// deinterleave splits interleaved samples into planar channels, scaling by
// 1/full.
func deinterleave(data []int, channels int, full float64) [][]float64 {
	frames := len(data) / channels

	out := make([][]float64, channels)
	for ch := range out {
		out[ch] = make([]float64, frames)
	}

	for i := range frames {
		for ch := range channels {
			out[ch][i] = float64(data[i*channels+ch]) / full
		}
	}

	return out
}

// fullScale returns the magnitude of the most negative value at bitDepth.
func fullScale(bitDepth int) float64 {
	if bitDepth < 1 || bitDepth > 32 {
		bitDepth = 16
	}

	return float64(int64(1) << (bitDepth - 1))
}
