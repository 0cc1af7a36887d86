package domain

import "errors"

// Error message string constants - single source of truth for error messages
// Use these in assert.Contains() checks when testing error messages
const (
	// Collection errors
	ErrMsgCollectionNotFound = "collection not found"

	// Identity errors
	ErrMsgUnauthorized   = "unauthorized"
	ErrMsgIdentityExpire = "identity expired"

	// Backend errors
	ErrMsgUnavailable = "backend unavailable"
	ErrMsgTimeout     = "operation timed out"

	// Profile errors
	ErrMsgProfileNotFound = "profile not found"

	// Input errors
	ErrMsgInvalidInput = "invalid input"
)

// Common domain errors
// These errors should be used consistently across all layers of the application.
// Wrap these errors with fmt.Errorf("%w: %s", domain.ErrXxx, details) for additional context.
var (
	// ErrCollectionNotFound is returned by a store when a user has no collection yet.
	// Readers treat it as an empty collection.
	ErrCollectionNotFound = errors.New(ErrMsgCollectionNotFound)

	// ErrUnauthorized is returned when the caller identity does not own the target collection.
	ErrUnauthorized = errors.New(ErrMsgUnauthorized)

	// ErrUnavailable marks transient backend failures. Safe to retry.
	ErrUnavailable = errors.New(ErrMsgUnavailable)

	// ErrTimeout marks operations that did not resolve in time. Safe to retry.
	ErrTimeout = errors.New(ErrMsgTimeout)

	// ErrProfileNotFound is returned when a member profile does not exist.
	ErrProfileNotFound = errors.New(ErrMsgProfileNotFound)

	// ErrInvalidInput is returned for malformed caller input.
	ErrInvalidInput = errors.New(ErrMsgInvalidInput)
)

// IsRetryable reports whether err is a transient failure that the caller may retry.
func IsRetryable(err error) bool {
	return errors.Is(err, ErrUnavailable) || errors.Is(err, ErrTimeout)
}
