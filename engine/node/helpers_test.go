package node

import (
	"testing"

	"github.com/cwbudde/algo-engine/engine/audio"
)

var testConfig = audio.BufferConfig{SampleRate: 48000, MaxBlockSize: 480}

func mustPrepare(t *testing.T, n Node, cfg audio.BufferConfig) {
	t.Helper()

	if err := n.Prepare(cfg); err != nil {
		t.Fatalf("Prepare() error = %v", err)
	}
}

// render runs n over total frames in blocks of blockSize and returns channel 0.
func render(t *testing.T, n Node, channels, total, blockSize int) []float64 {
	t.Helper()

	out := make([]float64, 0, total)
	block := audio.NewBlock(channels, blockSize)
	ctx := audio.ProcessContext{SampleRate: testConfig.SampleRate, MaxBlockSize: blockSize}

	for done := 0; done < total; done += blockSize {
		b := block.Truncate(min(blockSize, total-done))
		if st := n.Process(b, &ctx); st.IsError() {
			t.Fatalf("Process() = %v", st.Err)
		}

		out = append(out, b.Channel(0)...)
		ctx.SampleTime += int64(b.Frames())
	}

	return out
}
