// Package param provides ranged, automatable parameters and the smoothers that
// ramp their effective value on the audio thread.
//
// A Parameter has two sides. The control side (SetValue, SetTarget,
// SetNormalized) may be called from any goroutine; concurrent writers are
// serialised among themselves. The audio side is the Smoother returned by
// Smoothed, which must only be advanced by the goroutine that processes audio.
// Updates cross from one side to the other through a sequence-counted atomic
// snapshot, so the audio side never blocks and never allocates.
package param
