package domain

import "errors"

// Sentinel errors used across all layers.
var (
	// ErrMissingInput marks the fatal case: the card export could not be
	// read or parsed, so no dashboard can be built.
	ErrMissingInput = errors.New("required input missing")

	ErrNotFound   = errors.New("not found")
	ErrValidation = errors.New("validation error")
)
