package graph

import (
	"fmt"

	"github.com/cwbudde/algo-engine/engine/node"
	"github.com/cwbudde/algo-engine/engine/param"
)

// DefaultRegistry returns a Registry with the built-in node types:
// sine, saw, impulse, gain, delay and meter.
func DefaultRegistry() *Registry {
	r := NewRegistry()

	r.MustRegister("sine", func(p Params) (node.Node, error) {
		opts, err := commonOptions(p, "frequency")
		if err != nil {
			return nil, err
		}

		return asNode(node.NewSineGenerator(opts...))
	})
	r.MustRegister("saw", func(p Params) (node.Node, error) {
		opts, err := commonOptions(p, "frequency")
		if err != nil {
			return nil, err
		}

		return asNode(node.NewSawGenerator(opts...))
	})
	r.MustRegister("impulse", func(p Params) (node.Node, error) {
		return asNode(node.NewImpulseGenerator(node.WithChannels(int(p.GetNum("channels", 0)))))
	})
	r.MustRegister("gain", func(p Params) (node.Node, error) {
		opts, err := commonOptions(p, "gain")
		if err != nil {
			return nil, err
		}

		return asNode(node.NewGainProcessor(opts...))
	})
	r.MustRegister("delay", func(p Params) (node.Node, error) {
		opts, err := commonOptions(p, "time")
		if err != nil {
			return nil, err
		}

		if p.HasNum("maxTime") {
			opts = append(opts, node.WithMaxDelay(p.Num["maxTime"]))
		}

		d, err := node.NewDelay(opts...)
		if err != nil {
			return nil, err
		}

		if p.HasNum("feedback") {
			if err := d.Feedback().SetValue(p.Num["feedback"]); err != nil {
				return nil, err
			}
		}

		if p.HasNum("mix") {
			if err := d.Mix().SetValue(p.Num["mix"]); err != nil {
				return nil, err
			}
		}

		return d, nil
	})
	r.MustRegister("meter", func(p Params) (node.Node, error) {
		return asNode(node.NewMeter(node.WithChannels(int(p.GetNum("channels", 0)))))
	})

	return r
}

// asNode keeps a failed constructor from yielding a non-nil interface.
func asNode[T node.Node](n T, err error) (node.Node, error) {
	if err != nil {
		return nil, err
	}

	return n, nil
}

// commonOptions maps the settings every parameterised node understands:
// the primary value, "channels", "smoothing" ("none", "linear", "log") and
// "smoothingMs".
func commonOptions(p Params, valueKey string) ([]node.Option, error) {
	opts := []node.Option{
		node.WithID(p.ID),
		node.WithChannels(int(p.GetNum("channels", 0))),
	}

	if p.HasNum(valueKey) {
		opts = append(opts, node.WithValue(p.Num[valueKey]))
	}

	kind, hasKind := p.Str["smoothing"]
	if !hasKind && !p.HasNum("smoothingMs") {
		return opts, nil
	}

	ms := p.GetNum("smoothingMs", 10)

	switch kind {
	case "", "linear":
		opts = append(opts, node.WithSmoothing(param.Linear(ms)))
	case "log", "logarithmic":
		opts = append(opts, node.WithSmoothing(param.Logarithmic(ms)))
	case "none":
		opts = append(opts, node.WithSmoothing(param.NoSmoothing()))
	default:
		return nil, fmt.Errorf("graph: node %s: unknown smoothing %q", p.ID, kind)
	}

	return opts, nil
}
