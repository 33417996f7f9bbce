// Package engine drives a graph through the host-facing lifecycle:
//
//	Uninitialized -> Initialized <-> Processing
//	Initialized -> Deactivated -> Initialized
//
// Lifecycle and parameter calls come from control goroutines. Process comes
// from the single audio goroutine; it never allocates, locks or panics, and
// hands the graph's status back to the host unchanged.
package engine
