package shared

import "errors"

var (
	// ErrNotFound indicates a record id absent from its store.
	ErrNotFound = errors.New("not found")
	// ErrDuplicate indicates an id already present in a store.
	ErrDuplicate = errors.New("duplicate id")
	// ErrValidation marks input rejected by a form rule set.
	ErrValidation = errors.New("validation failed")
	// ErrInvalidCredentials indicates login failure.
	ErrInvalidCredentials = errors.New("invalid credentials")
	// ErrTokenRevoked occurs when a bearer token was logged out.
	ErrTokenRevoked = errors.New("token revoked")
	// ErrInvalidTransition occurs when a status change is not allowed from the current status.
	ErrInvalidTransition = errors.New("invalid status transition")
)
