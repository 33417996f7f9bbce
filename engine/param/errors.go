package param

import "errors"

var (
	// ErrEmptyID is returned when a parameter is created without an id.
	ErrEmptyID = errors.New("param: empty id")
	// ErrInvalidRange reports min >= max, non-finite bounds or an out-of-range default.
	ErrInvalidRange = errors.New("param: invalid range")
	// ErrNotFinite rejects NaN and infinite updates.
	ErrNotFinite = errors.New("param: value is not finite")
)
