package engine

import "errors"

var (
	// ErrInvalidState reports a lifecycle call made in the wrong state.
	ErrInvalidState = errors.New("engine: invalid state")
	// ErrNotInitialized is reported by Process outside the Initialized state.
	ErrNotInitialized = errors.New("engine: not initialized")
	// ErrUnknownParameter is returned for ids no node exposes.
	ErrUnknownParameter = errors.New("engine: unknown parameter")
	// ErrNilGraph is returned when swapping in a nil graph.
	ErrNilGraph = errors.New("engine: nil graph")
)
