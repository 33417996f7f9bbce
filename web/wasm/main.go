//go:build js && wasm

package main

import (
	"syscall/js"

	"github.com/cwbudde/algo-engine/engine"
	"github.com/cwbudde/algo-engine/engine/audio"
	"github.com/cwbudde/algo-engine/engine/graph"
)

const (
	blockSize = 128

	defaultChain = `{"nodes": [
		{"id": "osc", "type": "sine", "params": {"frequency": 440}},
		{"id": "amp", "type": "gain", "params": {"gain": 0.5}}
	]}`
)

var (
	eng   *engine.Engine
	block audio.Block
	funcs []js.Func
)

func main() {
	api := js.Global().Get("Object").New()

	// init(sampleRate?, chainJSON?) returns null or an error message.
	api.Set("init", export(func(args []js.Value) any {
		sr := 48000.0
		if len(args) > 0 && args[0].Type() == js.TypeNumber {
			sr = args[0].Float()
		}

		chain := defaultChain
		if len(args) > 1 && args[1].Type() == js.TypeString {
			chain = args[1].String()
		}

		g, err := graph.BuildJSON([]byte(chain), graph.DefaultRegistry())
		if err != nil {
			return err.Error()
		}

		e := engine.New(g)
		if err := e.Initialize(audio.Generator(1), audio.BufferConfig{SampleRate: sr, MaxBlockSize: blockSize}); err != nil {
			return err.Error()
		}

		if eng != nil {
			_ = eng.Deactivate()
		}

		eng = e
		block = audio.NewBlock(1, blockSize)

		return js.Null()
	}))

	api.Set("setParam", export(func(args []js.Value) any {
		if eng == nil || len(args) < 2 {
			return js.Null()
		}

		if err := eng.SetParameter(args[0].String(), args[1].Float()); err != nil {
			return err.Error()
		}

		return js.Null()
	}))

	api.Set("params", export(func(args []js.Value) any {
		arr := js.Global().Get("Array").New()
		if eng == nil {
			return arr
		}

		for i, p := range eng.Parameters() {
			item := js.Global().Get("Object").New()
			item.Set("id", p.ID)
			item.Set("name", p.Name)
			item.Set("unit", p.Unit)
			item.Set("min", p.Range.Min)
			item.Set("max", p.Range.Max)
			item.Set("default", p.Default)
			item.Set("value", p.Value)
			arr.SetIndex(i, item)
		}

		return arr
	}))

	// render(n) returns n mono frames; it stops early on a processing error.
	api.Set("render", export(func(args []js.Value) any {
		if eng == nil || len(args) < 1 {
			return js.Global().Get("Float32Array").New(0)
		}

		n := args[0].Int()
		arr := js.Global().Get("Float32Array").New(n)

		for done := 0; done < n; done += blockSize {
			b := block.Truncate(min(blockSize, n-done))
			if st := eng.Process(b, nil); st.IsError() {
				js.Global().Get("console").Call("error", st.Err.Error())
				break
			}

			for i, v := range b.Channel(0) {
				arr.SetIndex(done+i, v)
			}
		}

		return arr
	}))

	js.Global().Set("AlgoEngine", api)
	select {}
}

func export(fn func([]js.Value) any) js.Func {
	f := js.FuncOf(func(_ js.Value, args []js.Value) any {
		return fn(args)
	})
	funcs = append(funcs, f)

	return f
}
