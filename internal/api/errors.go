package api

import (
	"errors"
	"fmt"

	"github.com/campuslink/campuslink/internal/service"
)

// Error represents an API error
type Error struct {
	Code    int
	Message string
}

// NewError creates a new API error
func NewError(code int, message string) *Error {
	return &Error{
		Code:    code,
		Message: message,
	}
}

// Error implements the error interface
func (e *Error) Error() string {
	return fmt.Sprintf("API error %d: %s", e.Code, e.Message)
}

// Standard JSON-RPC error codes
const (
	ErrParseError     = -32700
	ErrInvalidRequest = -32600
	ErrMethodNotFound = -32601
	ErrInvalidParams  = -32602
	ErrInternalError  = -32603
)

// Application error codes, in the implementation-defined server range
const (
	ErrInvalidCredentials = -32001
	ErrRemoteUnavailable  = -32002
	ErrUnauthorized       = -32003
	ErrNotFound           = -32004
	ErrDuplicateEmail     = -32005
	ErrPasswordMismatch   = -32006
	ErrSelfFollow         = -32007
)

// errBadParams marks a parameter decoding failure so dispatch can map it
// to ErrInvalidParams
var errBadParams = errors.New("invalid params")

// classify maps a handler error to its JSON-RPC code and message. Typed
// service errors get stable application codes; anything unrecognized is
// an internal error.
func classify(err error) (int, string) {
	switch {
	case errors.Is(err, errBadParams):
		return ErrInvalidParams, "Invalid params"
	case errors.Is(err, service.ErrInvalidCredentials):
		return ErrInvalidCredentials, "Invalid credentials"
	case errors.Is(err, service.ErrUnauthorized):
		return ErrUnauthorized, "Unauthorized"
	case errors.Is(err, service.ErrNotFound):
		return ErrNotFound, "Not found"
	case errors.Is(err, service.ErrDuplicateEmail):
		return ErrDuplicateEmail, "Email already registered"
	case errors.Is(err, service.ErrPasswordMismatch):
		return ErrPasswordMismatch, "Passwords do not match"
	case errors.Is(err, service.ErrSelfFollow):
		return ErrSelfFollow, "Cannot follow yourself"
	case errors.Is(err, service.ErrRemoteUnavailable):
		return ErrRemoteUnavailable, "Data store unavailable"
	default:
		return ErrInternalError, "Server error"
	}
}
