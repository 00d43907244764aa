package errors

import "errors"

// Common application errors. Services wrap these with %w plus contextual
// detail; handlers map them to HTTP statuses with errors.Is.
var (
	// ErrNotFound is returned when a record or resource does not exist.
	ErrNotFound = errors.New("record not found")

	// ErrUnauthorized is returned for credential failures. The message shown
	// to the client never says which part of the credentials was wrong.
	ErrUnauthorized = errors.New("unauthorized")

	// ErrForbidden is returned when the caller is authenticated but the
	// account state or role does not permit the action.
	ErrForbidden = errors.New("forbidden")

	// ErrValidation is returned for malformed or missing input.
	ErrValidation = errors.New("validation failed")

	// ErrConflict is returned for duplicate unique keys and for attempts to
	// transition an entity that already left the pending state.
	ErrConflict = errors.New("resource state conflict")

	// ErrExpiredToken is returned when a session token has expired.
	ErrExpiredToken = errors.New("token is expired")
)
