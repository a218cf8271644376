package model

import "errors"

var (
	// ErrCorruptData indicates persisted totals were malformed and discarded.
	ErrCorruptData = errors.New("corrupt data")
	// ErrPersistenceFailure indicates a storage write or read failed.
	// A mutating operation returning it has still been applied in memory.
	ErrPersistenceFailure = errors.New("persistence failure")
	// ErrDuplicateActivity indicates an add with a name already registered.
	ErrDuplicateActivity = errors.New("duplicate activity")
	// ErrInvalidTransition indicates an operation the current state forbids.
	ErrInvalidTransition = errors.New("invalid transition")
	// ErrUnknownActivity indicates an operation on an unregistered name.
	ErrUnknownActivity = errors.New("unknown activity")
	// ErrInvalidInput indicates an empty name or a negative total.
	ErrInvalidInput = errors.New("invalid input")
)
