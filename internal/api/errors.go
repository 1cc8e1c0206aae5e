package api

import "fmt"

// Error is a failure surfaced by a lookup operation. List operations never
// return one; they fall back to an empty page instead.
type Error struct {
	Op      string
	Code    string
	Message string
	Cause   error
}

// Error implements the error interface
func (e *Error) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s: %s (caused by: %v)", e.Op, e.Code, e.Message, e.Cause)
	}
	return fmt.Sprintf("%s: %s: %s", e.Op, e.Code, e.Message)
}

// Unwrap returns the underlying cause
func (e *Error) Unwrap() error {
	return e.Cause
}

// Error codes for lookup operations
const (
	ErrUpstreamFailure  = "UPSTREAM_FAILURE"
	ErrNotFound         = "NOT_FOUND"
	ErrInvalidRequest   = "INVALID_REQUEST"
	ErrPriceUnavailable = "PRICE_UNAVAILABLE"
)

func newUpstreamError(op string, cause error) *Error {
	return &Error{
		Op:      op,
		Code:    ErrUpstreamFailure,
		Message: "upstream call failed",
		Cause:   cause,
	}
}

func newNotFoundError(op, what string) *Error {
	return &Error{
		Op:      op,
		Code:    ErrNotFound,
		Message: fmt.Sprintf("%s not found", what),
	}
}

func newInvalidRequestError(op, message string) *Error {
	return &Error{
		Op:      op,
		Code:    ErrInvalidRequest,
		Message: message,
	}
}

func newPriceUnavailableError(op, message string, cause error) *Error {
	return &Error{
		Op:      op,
		Code:    ErrPriceUnavailable,
		Message: message,
		Cause:   cause,
	}
}
