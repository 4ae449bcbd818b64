package service

import "errors"

// Typed failures returned by service operations. Callers route on these
// with errors.Is; the API layer maps them to JSON-RPC error codes.
var (
	// ErrNotFound is returned when a lookup by id or email yields no row
	ErrNotFound = errors.New("not found")

	// ErrDuplicateEmail is returned when registering an email that is
	// already taken (case-sensitive exact match)
	ErrDuplicateEmail = errors.New("email already registered")

	// ErrInvalidCredentials is returned when email/password or
	// id/password verification fails
	ErrInvalidCredentials = errors.New("invalid credentials")

	// ErrPasswordMismatch is returned when a new password and its
	// confirmation differ
	ErrPasswordMismatch = errors.New("passwords do not match")

	// ErrUnauthorized is returned when a caller lacks the right to
	// perform an operation (non-admin moderation, non-owner edit/delete,
	// missing session)
	ErrUnauthorized = errors.New("unauthorized")

	// ErrSelfFollow is returned when an account attempts to follow itself
	ErrSelfFollow = errors.New("cannot follow yourself")

	// ErrRemoteUnavailable is returned when a remote store call failed
	ErrRemoteUnavailable = errors.New("remote store unavailable")
)

// remoteErr tags a store failure so callers can match both
// ErrRemoteUnavailable and the underlying error.
func remoteErr(err error) error {
	return errors.Join(ErrRemoteUnavailable, err)
}
