package offline_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/go-audio/wav"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cwbudde/algo-engine/host/offline"
)

func TestWriteWAV(t *testing.T) {
	t.Parallel()

	for _, depth := range []int{16, 24} {
		path := filepath.Join(t.TempDir(), "out.wav")

		f, err := os.Create(path)
		require.NoError(t, err)

		planar := [][]float64{
			{0, 0.5, 1, 1.5, -2},
			{-0.25, 0, 0.25, -1, 0},
		}
		require.NoError(t, offline.WriteWAV(f, planar, 44100, depth))
		require.NoError(t, f.Close())

		f, err = os.Open(path)
		require.NoError(t, err)
		t.Cleanup(func() { _ = f.Close() })

		dec := wav.NewDecoder(f)
		require.True(t, dec.IsValidFile())

		buf, err := dec.FullPCMBuffer()
		require.NoError(t, err)

		assert.EqualValues(t, 44100, dec.SampleRate)
		assert.EqualValues(t, 2, dec.NumChans)
		assert.EqualValues(t, depth, dec.BitDepth)

		full := float64(int(1)<<(depth-1)) - 1
		want := []float64{0, -0.25, 0.5, 0, 1, 0.25, 1, -1, -1, 0}
		require.Len(t, buf.Data, len(want))

		for i, w := range want {
			assert.InDelta(t, w*full, float64(buf.Data[i]), 0.5, "depth %d sample %d", depth, i)
		}
	}
}

func TestWriteWAVRejects(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()

	f, err := os.Create(filepath.Join(dir, "bad.wav"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = f.Close() })

	err = offline.WriteWAV(f, [][]float64{{0}}, 44100, 8)
	require.ErrorIs(t, err, offline.ErrUnsupportedBitDepth)

	require.Error(t, offline.WriteWAV(f, nil, 44100, 16))
	require.Error(t, offline.WriteWAV(f, [][]float64{{0, 1}, {0}}, 44100, 16))
}
