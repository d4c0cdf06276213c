package model

import "errors"

// Error taxonomy shared by the entities and the simulation engine.
// Callers match with errors.Is; wrapping adds the offending values.
var (
	// ErrInvalidConfiguration reports a violated construction precondition.
	ErrInvalidConfiguration = errors.New("invalid configuration")
	// ErrMalformedInput reports an arrival record that failed to parse.
	ErrMalformedInput = errors.New("malformed input")
	// ErrCapacityExceeded reports boarding a full elevator.
	ErrCapacityExceeded = errors.New("capacity exceeded")
	// ErrInvalidDirection reports a move outside [1, max_floor].
	ErrInvalidDirection = errors.New("invalid direction")
	// ErrNotFound reports removing a passenger that is not onboard.
	ErrNotFound = errors.New("passenger not found")
)
