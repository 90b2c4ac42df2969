package errors

import "errors"

var (
	// ErrNotFound is a generic sentinel for missing resources.
	ErrNotFound = errors.New("not found")
	// ErrUnauthorized is a generic sentinel for auth failures.
	ErrUnauthorized = errors.New("unauthorized")
	// ErrInvalidArgument is a generic sentinel for malformed or out-of-range input.
	ErrInvalidArgument = errors.New("invalid argument")
	// ErrBusinessRule is a sentinel for semantically invalid combinations,
	// e.g. an advancement target outside the CCIS level range.
	ErrBusinessRule = errors.New("business rule violation")
	// ErrConflict is a sentinel for unique-constraint collisions.
	ErrConflict = errors.New("conflict")
)
