package graph

import (
	"errors"
	"testing"

	"github.com/cwbudde/algo-engine/engine/audio"
	"github.com/cwbudde/algo-engine/engine/node"
	"github.com/cwbudde/algo-engine/engine/param"
)

var errStub = errors.New("stub failure")

func requireConfigError(t *testing.T, err error, node int, want error) {
	t.Helper()

	var ce *ConfigError
	if !errors.As(err, &ce) {
		t.Fatalf("error = %v, want *ConfigError", err)
	}

	if ce.Node != node {
		t.Fatalf("ConfigError.Node = %d, want %d", ce.Node, node)
	}

	if !errors.Is(err, want) {
		t.Fatalf("error = %v, want %v", err, want)
	}
}

func TestInitializeRejectsConfig(t *testing.T) {
	t.Parallel()

	g := New(&stubNode{})

	err := g.Initialize(testLayout, audio.BufferConfig{SampleRate: 48000})
	requireConfigError(t, err, -1, audio.ErrInvalidBufferConfig)

	err = g.Initialize(audio.Layout{InputChannels: 1}, testConfig)
	requireConfigError(t, err, -1, audio.ErrInvalidLayout)

	if g.Initialized() {
		t.Fatal("graph locked after failed Initialize")
	}
}

func TestInitializeChannelChecks(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		nodes  []node.Node
		layout audio.Layout
		node   int
		ok     bool
	}{
		{"adaptive chain", []node.Node{&stubNode{}, &stubNode{}}, audio.Stereo(), 0, true},
		{"declared chain", []node.Node{&stubNode{channels: 2}, &stubNode{channels: 2}}, audio.Stereo(), 0, true},
		{"adjacent mismatch", []node.Node{&stubNode{channels: 2}, &stubNode{}, &stubNode{channels: 1}}, audio.Stereo(), 2, false},
		{"width mismatch", []node.Node{&stubNode{channels: 1}}, audio.Stereo(), 0, false},
		{"source head", []node.Node{&stubNode{source: true}}, audio.Generator(2), 0, true},
		{"effect head without input", []node.Node{&stubNode{}}, audio.Generator(1), 0, false},
		{"input width differs", []node.Node{&stubNode{}}, audio.Layout{InputChannels: 1, OutputChannels: 2}, 0, false},
		{"empty passthrough", nil, audio.Mono(), 0, true},
		{"empty generator", nil, audio.Generator(1), 0, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			err := New(tt.nodes...).Initialize(tt.layout, testConfig)
			if tt.ok {
				if err != nil {
					t.Fatalf("Initialize() error = %v", err)
				}

				return
			}

			requireConfigError(t, err, tt.node, ErrChannelMismatch)
		})
	}
}

func TestInitializeDuplicateParameters(t *testing.T) {
	t.Parallel()

	a, err := node.NewGainProcessor()
	if err != nil {
		t.Fatal(err)
	}

	b, err := node.NewGainProcessor()
	if err != nil {
		t.Fatal(err)
	}

	err = New(a, b).Initialize(testLayout, testConfig)
	requireConfigError(t, err, 1, ErrDuplicateParameter)

	c, err := node.NewGainProcessor(node.WithID("post"))
	if err != nil {
		t.Fatal(err)
	}

	if err := New(a, c).Initialize(testLayout, testConfig); err != nil {
		t.Fatalf("Initialize() error = %v", err)
	}
}

func TestInitializePrepareError(t *testing.T) {
	t.Parallel()

	g := New(&stubNode{}, &stubNode{prepareErr: errStub})
	requireConfigError(t, g.Initialize(testLayout, testConfig), 1, errStub)
}

func TestTopologyLockedAfterInitialize(t *testing.T) {
	t.Parallel()

	g := New()
	if err := g.Append(&stubNode{}); err != nil {
		t.Fatalf("Append() error = %v", err)
	}

	if err := g.Append(nil); !errors.Is(err, ErrNilNode) {
		t.Fatalf("Append(nil) error = %v", err)
	}

	if err := g.Initialize(testLayout, testConfig); err != nil {
		t.Fatal(err)
	}

	if err := g.Append(&stubNode{}); !errors.Is(err, ErrTopologyLocked) {
		t.Fatalf("Append() error = %v, want ErrTopologyLocked", err)
	}

	if g.Len() != 1 {
		t.Fatalf("Len() = %d, want 1", g.Len())
	}
}

func TestProcessBeforeInitialize(t *testing.T) {
	t.Parallel()

	st := New(&stubNode{}).Process(audio.NewBlock(1, 8), nil)
	if !errors.Is(st.Err, ErrNotInitialized) {
		t.Fatalf("Process() = %+v, want ErrNotInitialized", st)
	}
}

func TestProcessRejectsMalformedBlocks(t *testing.T) {
	t.Parallel()

	amp, err := node.NewGainProcessor()
	if err != nil {
		t.Fatal(err)
	}

	g := New(amp)
	if err := g.Initialize(audio.Stereo(), audio.BufferConfig{SampleRate: 48000, MaxBlockSize: 8}); err != nil {
		t.Fatal(err)
	}

	tests := []struct {
		name  string
		block audio.Block
		want  error
	}{
		{"ragged", audio.WrapBlock([][]float64{make([]float64, 4), make([]float64, 2)}), audio.ErrRaggedBlock},
		{"too large", audio.NewBlock(2, 9), audio.ErrBlockTooLarge},
		{"wrong width", audio.NewBlock(1, 4), audio.ErrChannelCount},
	}

	for _, tt := range tests {
		if st := g.Process(tt.block, nil); !errors.Is(st.Err, tt.want) {
			t.Fatalf("%s: Process() = %+v, want %v", tt.name, st, tt.want)
		}
	}

	if st := g.Process(audio.NewBlock(2, 8), nil); st.IsError() {
		t.Fatalf("Process() = %+v after rejected blocks", st)
	}
}

func TestProcessAggregation(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		statuses []audio.Status
		want     audio.Status
		calls    []int
	}{
		{"all normal", []audio.Status{audio.Normal(), audio.Normal()}, audio.Normal(), []int{1, 1}},
		{"longest tail", []audio.Status{audio.Tail(10), audio.Normal(), audio.Tail(30)}, audio.Tail(30), []int{1, 1, 1}},
		{"keep-alive wins", []audio.Status{audio.KeepAlive(), audio.Tail(10)}, audio.KeepAlive(), []int{1, 1}},
		{"error short-circuits", []audio.Status{audio.KeepAlive(), audio.Fail(errStub), audio.Normal()}, audio.Fail(errStub), []int{1, 1, 0}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			stubs := make([]*stubNode, len(tt.statuses))
			nodes := make([]node.Node, len(tt.statuses))

			for i, st := range tt.statuses {
				stubs[i] = &stubNode{status: st}
				nodes[i] = stubs[i]
			}

			g := New(nodes...)
			if err := g.Initialize(testLayout, testConfig); err != nil {
				t.Fatal(err)
			}

			got := g.Process(audio.NewBlock(1, 8), nil)
			if got.Kind != tt.want.Kind || got.TailSamples != tt.want.TailSamples || !errors.Is(got.Err, tt.want.Err) {
				t.Fatalf("Process() = %+v, want %+v", got, tt.want)
			}

			for i, s := range stubs {
				if s.processCalls != tt.calls[i] {
					t.Fatalf("node %d ran %d times, want %d", i, s.processCalls, tt.calls[i])
				}
			}
		})
	}
}

func TestResetForwardsInOrder(t *testing.T) {
	t.Parallel()

	var log []string

	g := New(&stubNode{name: "a", resetLog: &log}, &stubNode{name: "b", resetLog: &log}, &stubNode{name: "c", resetLog: &log})
	g.Reset()

	if len(log) != 3 || log[0] != "a" || log[1] != "b" || log[2] != "c" {
		t.Fatalf("reset order = %v", log)
	}
}

func TestParametersInChainOrder(t *testing.T) {
	t.Parallel()

	p1 := param.MustNew("one", "", param.Range{Min: 0, Max: 1}, 0)
	p2 := param.MustNew("two", "", param.Range{Min: 0, Max: 1}, 0)
	p3 := param.MustNew("three", "", param.Range{Min: 0, Max: 1}, 0)

	g := New(&stubNode{params: []*param.Parameter{p1, p2}}, &stubNode{}, &stubNode{params: []*param.Parameter{p3}})

	for _, phase := range []string{"before", "after"} {
		params := g.Parameters()
		if len(params) != 3 || params[0] != p1 || params[1] != p2 || params[2] != p3 {
			t.Fatalf("%s Initialize: Parameters() = %v", phase, params)
		}

		if p, ok := g.Parameter("three"); !ok || p != p3 {
			t.Fatalf("%s Initialize: Parameter(three) = %v, %v", phase, p, ok)
		}

		if _, ok := g.Parameter("four"); ok {
			t.Fatalf("%s Initialize: found unknown parameter", phase)
		}

		if err := g.Initialize(testLayout, testConfig); err != nil {
			t.Fatal(err)
		}
	}
}

func TestSineIntoGainChain(t *testing.T) {
	t.Parallel()

	osc, err := node.NewSineGenerator(node.WithValue(440))
	if err != nil {
		t.Fatal(err)
	}

	amp, err := node.NewGainProcessor(node.WithValue(0))
	if err != nil {
		t.Fatal(err)
	}

	g := New(osc, amp)
	if err := g.Initialize(audio.Generator(2), testConfig); err != nil {
		t.Fatal(err)
	}

	block := audio.NewBlock(2, 64)
	for range 10 {
		if st := g.Process(block, nil); st.Kind != audio.StatusKeepAlive {
			t.Fatalf("Process() = %+v, want keep-alive", st)
		}

		for ch := range 2 {
			for i, v := range block.Channel(ch) {
				if v != 0 {
					t.Fatalf("ch %d [%d] = %v, want silence", ch, i, v)
				}
			}
		}
	}
}
