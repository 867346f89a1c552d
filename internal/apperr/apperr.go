// Package apperr defines the closed error taxonomy shared by every service.
// Services wrap these sentinels with context via fmt.Errorf and %w; handlers
// map them back to HTTP status codes with errors.Is. Failures are surfaced
// verbatim, never masked as success.
package apperr

import "errors"

var (
	// ErrUnauthorized - no identity on the request.
	ErrUnauthorized = errors.New("unauthorized")
	// ErrForbidden - wrong identity for the target resource.
	ErrForbidden = errors.New("forbidden")
	// ErrInvalidArgument - missing or malformed required field.
	ErrInvalidArgument = errors.New("invalid argument")
	// ErrBlocked - contact blocklist hit; nothing was written.
	ErrBlocked = errors.New("contact is blocked")
	// ErrQuotaExceeded - owner already holds the maximum number of
	// non-rejected listings; nothing was written.
	ErrQuotaExceeded = errors.New("listing quota exceeded")
	// ErrNotFound - unknown id.
	ErrNotFound = errors.New("not found")
	// ErrInvalidState - illegal status transition.
	ErrInvalidState = errors.New("invalid state transition")
	// ErrStorageFailure - object-store error. Recoverable: the image phase
	// may be retried against the same property id.
	ErrStorageFailure = errors.New("storage failure")
	// ErrPersistence - underlying database error, surfaced as-is.
	ErrPersistence = errors.New("persistence failure")
)
