package engine

// State is the lifecycle state of an Engine.
type State int32

const (
	// StateUninitialized is the state of a new engine.
	StateUninitialized State = iota
	// StateInitialized accepts Process calls.
	StateInitialized
	// StateProcessing is held for the duration of a Process call.
	StateProcessing
	// StateDeactivated needs a new Initialize before processing again.
	StateDeactivated
)

// String returns the state name.
func (s State) String() string {
	switch s {
	case StateUninitialized:
		return "uninitialized"
	case StateInitialized:
		return "initialized"
	case StateProcessing:
		return "processing"
	case StateDeactivated:
		return "deactivated"
	default:
		return "unknown"
	}
}
