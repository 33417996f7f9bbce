package host

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"math"
	"sort"
)

// ErrInvalidEvent reports an automation event with a negative or non-finite
// time, an empty parameter id or a non-finite value.
var ErrInvalidEvent = errors.New("host: invalid automation event")

// Event sets Param to Value at Time seconds from the start of rendering.
type Event struct {
	Time  float64 `json:"time"`
	Param string  `json:"param"`
	Value float64 `json:"value"`
}

// Automation replays events in time order. Events that share a time keep
// their file order. It is not safe for concurrent use.
type Automation struct {
	events []Event
	next   int
}

// NewAutomation validates and sorts events.
func NewAutomation(events []Event) (*Automation, error) {
	sorted := append([]Event(nil), events...)

	for i, ev := range sorted {
		if ev.Param == "" || ev.Time < 0 || !finite(ev.Time) || !finite(ev.Value) {
			return nil, fmt.Errorf("%w: #%d %+v", ErrInvalidEvent, i, ev)
		}
	}

	sort.SliceStable(sorted, func(i, j int) bool { return sorted[i].Time < sorted[j].Time })

	return &Automation{events: sorted}, nil
}

// ParseAutomation decodes a JSON array of events:
//
//	[{"time": 0.5, "param": "amp.gain", "value": 0.25}]
func ParseAutomation(raw []byte) (*Automation, error) {
	var events []Event
	if err := json.Unmarshal(raw, &events); err != nil {
		return nil, fmt.Errorf("host: invalid automation json: %w", err)
	}

	return NewAutomation(events)
}

// LoadAutomation reads and parses automation from r.
func LoadAutomation(r io.Reader) (*Automation, error) {
	raw, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("host: read automation: %w", err)
	}

	return ParseAutomation(raw)
}

// Len returns the number of events.
func (a *Automation) Len() int { return len(a.events) }

// Pending returns the number of events not yet applied.
func (a *Automation) Pending() int { return len(a.events) - a.next }

// Apply sends every event due at or before frame to p. Call it from the
// control side between blocks.
func (a *Automation) Apply(p Processor, frame int64, sampleRate float64) error {
	for a.next < len(a.events) {
		ev := a.events[a.next]
		if int64(math.Round(ev.Time*sampleRate)) > frame {
			return nil
		}

		a.next++

		if err := p.SetParameter(ev.Param, ev.Value); err != nil {
			return fmt.Errorf("host: automation at %gs: %w", ev.Time, err)
		}
	}

	return nil
}

// Rewind restarts playback from the first event.
func (a *Automation) Rewind() { a.next = 0 }

func finite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}
