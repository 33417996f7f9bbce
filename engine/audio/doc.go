// Package audio defines the value types shared by every layer of the engine:
// the negotiated buffer configuration and channel layout, the channel-major
// Block handed to each process call, the per-call ProcessContext and the
// Status value that replaces panics on the audio thread.
//
// Nothing in this package allocates once a Block has been created, so all of
// it is safe to use from a real-time callback.
package audio
