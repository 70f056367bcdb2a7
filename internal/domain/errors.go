package domain

import "errors"

// Todo store error kinds. Adapters wrap one of these so that callers can
// branch with errors.Is and decide their own status mapping.

var (
	// ErrNotFound indicates the id does not resolve to a stored todo
	ErrNotFound = errors.New("todo not found")

	// ErrInvalidInput indicates the store rejected the shape of a todo
	ErrInvalidInput = errors.New("invalid input")

	// ErrStoreUnavailable indicates the store could not be reached
	ErrStoreUnavailable = errors.New("store unavailable")
)
