package domain

import "errors"

var (
	ErrListingNotFound = errors.New("listing not found")
	ErrForbidden       = errors.New("not authorized to perform this action")
)

// ValidationError names the first data-model invariant a write violated.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return e.Message
}
