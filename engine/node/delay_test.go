package node

import (
	"errors"
	"math"
	"testing"

	"github.com/cwbudde/algo-engine/engine/audio"
)

func newTestDelay(t *testing.T, opts ...Option) *Delay {
	t.Helper()

	d, err := NewDelay(opts...)
	if err != nil {
		t.Fatalf("NewDelay() error = %v", err)
	}

	mustPrepare(t, d, testConfig)

	return d
}

func impulse(n int) []float64 {
	x := make([]float64, n)
	x[0] = 1

	return x
}

func TestDelayImpulseReappearsAfterDelay(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		ms    float64
		delay int
	}{
		{name: "1ms", ms: 1, delay: 48},
		{name: "10ms", ms: 10, delay: 480},
		{name: "zero", ms: 0, delay: 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			d := newTestDelay(t, WithValue(tt.ms), WithMaxDelay(20))

			x := impulse(1024)

			var ctx audio.ProcessContext
			for off := 0; off < len(x); off += testConfig.MaxBlockSize {
				end := min(off+testConfig.MaxBlockSize, len(x))
				if st := d.Process(audio.WrapBlock([][]float64{x[off:end]}), &ctx); st.IsError() {
					t.Fatalf("Process() = %v", st.Err)
				}
			}

			for i, v := range x {
				want := 0.0
				if i == tt.delay {
					want = 1
				}

				if v != want {
					t.Fatalf("out[%d] = %v, want %v", i, v, want)
				}
			}
		})
	}
}

func TestDelayFeedbackRepeats(t *testing.T) {
	t.Parallel()

	d := newTestDelay(t, WithValue(1), WithMaxDelay(2))
	if err := d.Feedback().SetValue(0.5); err != nil {
		t.Fatal(err)
	}

	d.Reset()

	x := impulse(200)
	st := d.Process(audio.WrapBlock([][]float64{x}), nil)

	if st.Kind != audio.StatusTail {
		t.Fatalf("Kind = %v, want tail", st.Kind)
	}

	// 48 samples per repeat, 14 halvings to fall below -80 dB.
	if st.TailSamples != 48*14 {
		t.Fatalf("TailSamples = %d, want %d", st.TailSamples, 48*14)
	}

	for i, want := range map[int]float64{0: 0, 48: 1, 96: 0.5, 144: 0.25, 192: 0.125} {
		if x[i] != want {
			t.Fatalf("out[%d] = %v, want %v", i, x[i], want)
		}
	}
}

func TestDelayFractionalTimeInterpolatesRamp(t *testing.T) {
	t.Parallel()

	// 7/32 ms is 10.5 samples at 48 kHz.
	d := newTestDelay(t, WithValue(7.0/32), WithMaxDelay(1))

	x := make([]float64, 64)
	for i := range x {
		x[i] = float64(i)
	}

	if st := d.Process(audio.WrapBlock([][]float64{x}), nil); st.IsError() {
		t.Fatalf("Process() = %v", st.Err)
	}

	for i := 12; i < len(x); i++ {
		want := float64(i) - 10.5
		if math.Abs(x[i]-want) > 1e-9 {
			t.Fatalf("out[%d] = %v, want %v", i, x[i], want)
		}
	}
}

func TestDelayMixBlendsDrySignal(t *testing.T) {
	t.Parallel()

	d := newTestDelay(t, WithValue(1), WithMaxDelay(2))
	if err := d.Mix().SetValue(0.25); err != nil {
		t.Fatal(err)
	}

	d.Reset()

	x := impulse(100)
	d.Process(audio.WrapBlock([][]float64{x}), nil)

	if x[0] != 0.75 || x[48] != 0.25 {
		t.Fatalf("out[0], out[48] = %v, %v, want 0.75, 0.25", x[0], x[48])
	}
}

func TestDelayResetClearsLines(t *testing.T) {
	t.Parallel()

	d := newTestDelay(t, WithValue(1), WithMaxDelay(2))

	d.Process(audio.WrapBlock([][]float64{impulse(10), impulse(10)}), nil)
	d.Reset()

	block := audio.NewBlock(2, 100)
	d.Process(block, nil)

	for ch := range block.Channels() {
		for i, v := range block.Channel(ch) {
			if v != 0 {
				t.Fatalf("channel %d out[%d] = %v after Reset, want 0", ch, i, v)
			}
		}
	}
}

func TestDelayChannelsAreIndependent(t *testing.T) {
	t.Parallel()

	d := newTestDelay(t, WithValue(1), WithMaxDelay(2))

	left, right := impulse(100), make([]float64, 100)
	d.Process(audio.WrapBlock([][]float64{left, right}), nil)

	if left[48] != 1 {
		t.Fatalf("left[48] = %v, want 1", left[48])
	}

	for i, v := range right {
		if v != 0 {
			t.Fatalf("right[%d] = %v, want 0", i, v)
		}
	}
}

func TestDelayRejectsBlocks(t *testing.T) {
	t.Parallel()

	unprepared, err := NewDelay()
	if err != nil {
		t.Fatal(err)
	}

	if st := unprepared.Process(audio.NewBlock(1, 8), nil); !errors.Is(st.Err, ErrNotPrepared) {
		t.Fatalf("unprepared Process() = %v, want ErrNotPrepared", st.Err)
	}

	d := newTestDelay(t)

	if st := d.Process(audio.NewBlock(3, 8), nil); !errors.Is(st.Err, audio.ErrChannelCount) {
		t.Fatalf("3 channels: Process() = %v, want ErrChannelCount", st.Err)
	}

	if st := d.Process(audio.NewBlock(2, 481), nil); !errors.Is(st.Err, ErrBlockTooLarge) {
		t.Fatalf("481 frames: Process() = %v, want ErrBlockTooLarge", st.Err)
	}

	wide := newTestDelay(t, WithChannels(4))
	if st := wide.Process(audio.NewBlock(4, 8), nil); st.IsError() {
		t.Fatalf("WithChannels(4): Process() = %v", st.Err)
	}
}

func TestDelayOptions(t *testing.T) {
	t.Parallel()

	for _, ms := range []float64{0, -1, math.NaN(), math.Inf(1)} {
		if _, err := NewDelay(WithMaxDelay(ms)); !errors.Is(err, ErrInvalidOption) {
			t.Fatalf("WithMaxDelay(%v) error = %v, want ErrInvalidOption", ms, err)
		}
	}

	if _, err := NewDelay(WithMaxDelay(100), WithValue(200)); err == nil {
		t.Fatal("NewDelay() accepted a time above the maximum")
	}

	d, err := NewDelay(WithMaxDelay(100))
	if err != nil {
		t.Fatal(err)
	}

	if got := d.Time().Value(); got != 100 {
		t.Fatalf("default time = %v, want clamp to max 100", got)
	}

	if err := d.Feedback().SetValue(1); err != nil {
		t.Fatal(err)
	}

	if got := d.Feedback().Value(); got != MaxFeedback {
		t.Fatalf("Feedback().SetValue(1) = %v, want clamp to %v", got, MaxFeedback)
	}
}

func TestDelayProcessDoesNotAllocate(t *testing.T) {
	d := newTestDelay(t, WithValue(5.3))
	if err := d.Feedback().SetValue(0.4); err != nil {
		t.Fatal(err)
	}

	block := audio.NewBlock(2, 480)
	v := 5.3

	allocs := testing.AllocsPerRun(100, func() {
		v = 12 - v
		_ = d.Time().SetValue(v)
		d.Process(block, nil)
	})
	if allocs != 0 {
		t.Fatalf("allocs = %v, want 0", allocs)
	}
}
