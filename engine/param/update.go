package param

import (
	"math"
	"sync"
	"sync/atomic"
)

// useDefaultRamp asks the reader to apply the parameter's configured ramp.
const useDefaultRamp = -1

// update carries the latest (target, ramp) request from the control side to
// the audio side. Writers take mu; the single reader only loads atomics.
//
// seq is odd while a write is in progress. A reader that sees an odd or
// changed seq discards what it loaded and tries again on its next poll.
type update struct {
	mu    sync.Mutex
	seq   atomic.Uint64
	value atomic.Uint64
	ramp  atomic.Int64
}

func (u *update) publish(v float64, ramp int64) {
	u.mu.Lock()
	defer u.mu.Unlock()

	u.seq.Add(1)
	u.value.Store(math.Float64bits(v))
	u.ramp.Store(ramp)
	u.seq.Add(1)
}

// poll returns the snapshot newer than last, if a complete one is available.
func (u *update) poll(last uint64) (v float64, ramp int64, seq uint64, ok bool) {
	seq = u.seq.Load()
	if seq == last || seq&1 == 1 {
		return 0, 0, last, false
	}

	v = math.Float64frombits(u.value.Load())
	ramp = u.ramp.Load()

	if u.seq.Load() != seq {
		return 0, 0, last, false
	}

	return v, ramp, seq, true
}

// load returns the latest published value, complete or not.
func (u *update) load() float64 {
	return math.Float64frombits(u.value.Load())
}

// current returns the sequence number a reader should treat as already seen.
func (u *update) current() uint64 {
	return u.seq.Load()
}
