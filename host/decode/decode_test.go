package decode_test

import (
	"bytes"
	"io"
	"math"
	"os"
	"path/filepath"
	"testing"

	"github.com/go-audio/aiff"
	goaudio "github.com/go-audio/audio"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cwbudde/algo-engine/host/decode"
	"github.com/cwbudde/algo-engine/host/offline"
)

func ramp(frames int, scale float64) []float64 {
	out := make([]float64, frames)
	for i := range out {
		out[i] = scale * (2*float64(i)/float64(frames) - 1)
	}

	return out
}

func TestFormatFromPath(t *testing.T) {
	t.Parallel()

	cases := map[string]decode.Format{
		"a.wav":      decode.FormatWAV,
		"b.WAVE":     decode.FormatWAV,
		"c.aif":      decode.FormatAIFF,
		"d.aiff":     decode.FormatAIFF,
		"dir/e.mp3":  decode.FormatMP3,
		"f.ogg":      decode.FormatOgg,
		"/abs/g.OGA": decode.FormatOgg,
	}
	for path, want := range cases {
		got, err := decode.FormatFromPath(path)
		require.NoError(t, err, path)
		assert.Equal(t, want, got, path)
	}

	_, err := decode.FormatFromPath("song.flac")
	require.ErrorIs(t, err, decode.ErrUnknownFormat)
}

func TestWAVRoundTrip(t *testing.T) {
	t.Parallel()

	left := ramp(1000, 0.9)
	right := ramp(1000, -0.5)

	path := filepath.Join(t.TempDir(), "ramp.wav")
	f, err := os.Create(path)
	require.NoError(t, err)
	require.NoError(t, offline.WriteWAV(f, [][]float64{left, right}, 44100, 16))
	require.NoError(t, f.Close())

	got, err := decode.File(path)
	require.NoError(t, err)

	assert.Equal(t, 44100, got.SampleRate)
	require.Len(t, got.Channels, 2)
	require.Equal(t, 1000, got.Frames())

	for i := range left {
		assert.InDelta(t, left[i], got.Channels[0][i], 1e-4)
		assert.InDelta(t, right[i], got.Channels[1][i], 1e-4)
	}
}

func TestReaderBuffersNonSeekableInput(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "mono.wav")
	f, err := os.Create(path)
	require.NoError(t, err)
	require.NoError(t, offline.WriteWAV(f, [][]float64{ramp(256, 0.25)}, 48000, 24))
	require.NoError(t, f.Close())

	raw, err := os.ReadFile(path)
	require.NoError(t, err)

	got, err := decode.Reader(decode.FormatWAV, io.MultiReader(bytes.NewReader(raw)))
	require.NoError(t, err)
	assert.Equal(t, 48000, got.SampleRate)
	assert.Equal(t, 256, got.Frames())
}

func TestAIFF(t *testing.T) {
	t.Parallel()

	const frames = 500

	data := make([]int, 2*frames)
	for i := range frames {
		data[2*i] = int(math.Round(16000 * math.Sin(float64(i)/10)))
		data[2*i+1] = -data[2*i]
	}

	path := filepath.Join(t.TempDir(), "sine.aiff")
	f, err := os.Create(path)
	require.NoError(t, err)

	enc := aiff.NewEncoder(f, 22050, 16, 2)
	require.NoError(t, enc.Write(&goaudio.IntBuffer{
		Format:         &goaudio.Format{NumChannels: 2, SampleRate: 22050},
		Data:           data,
		SourceBitDepth: 16,
	}))
	require.NoError(t, enc.Close())
	require.NoError(t, f.Close())

	got, err := decode.File(path)
	require.NoError(t, err)
	assert.Equal(t, 22050, got.SampleRate)
	require.Len(t, got.Channels, 2)
	require.Equal(t, frames, got.Frames())

	for i := range frames {
		assert.InDelta(t, float64(data[2*i])/32768, got.Channels[0][i], 1e-12)
		assert.InDelta(t, -got.Channels[0][i], got.Channels[1][i], 1e-12)
	}
}

func TestInvalidInput(t *testing.T) {
	t.Parallel()

	junk := []byte("definitely not audio data at all")

	for _, format := range []decode.Format{decode.FormatWAV, decode.FormatAIFF, decode.FormatMP3, decode.FormatOgg} {
		_, err := decode.Reader(format, bytes.NewReader(junk))
		require.ErrorIs(t, err, decode.ErrInvalidFile, string(format))
	}

	_, err := decode.Reader("flac", bytes.NewReader(junk))
	require.ErrorIs(t, err, decode.ErrUnknownFormat)
}

func TestFileMissing(t *testing.T) {
	t.Parallel()

	_, err := decode.File(filepath.Join(t.TempDir(), "missing.wav"))
	require.Error(t, err)
}
