package session

import (
	"errors"
	"fmt"
	"net/http"
)

// SessionError represents a session-related error
type SessionError struct {
	Code    string
	Message string
	Cause   error
}

// Error implements the error interface
func (e *SessionError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s (caused by: %v)", e.Code, e.Message, e.Cause)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// Unwrap returns the underlying cause
func (e *SessionError) Unwrap() error {
	return e.Cause
}

// Error codes for session operations
const (
	ErrSessionNotFound   = "SESSION_NOT_FOUND"
	ErrSessionExpired    = "SESSION_EXPIRED"
	ErrSessionInvalid    = "SESSION_INVALID"
	ErrSessionMissing    = "SESSION_MISSING"
	ErrSessionGeneration = "SESSION_GENERATION_FAILED"
	ErrSessionStorage    = "SESSION_STORAGE_ERROR"
)

// NewSessionNotFoundError creates a session not found error
func NewSessionNotFoundError(sessionID string) *SessionError {
	return &SessionError{
		Code:    ErrSessionNotFound,
		Message: fmt.Sprintf("session not found: %s", sessionID),
	}
}

// NewSessionExpiredError creates a session expired error
func NewSessionExpiredError(sessionID string) *SessionError {
	return &SessionError{
		Code:    ErrSessionExpired,
		Message: fmt.Sprintf("session expired: %s", sessionID),
	}
}

// NewSessionInvalidError creates a session invalid error
func NewSessionInvalidError(sessionID string, cause error) *SessionError {
	return &SessionError{
		Code:    ErrSessionInvalid,
		Message: fmt.Sprintf("session invalid: %s", sessionID),
		Cause:   cause,
	}
}

// NewSessionGenerationError creates a session generation error
func NewSessionGenerationError(cause error) *SessionError {
	return &SessionError{
		Code:    ErrSessionGeneration,
		Message: "failed to generate session ID",
		Cause:   cause,
	}
}

// NewSessionStorageError creates a session storage error
func NewSessionStorageError(operation string, cause error) *SessionError {
	return &SessionError{
		Code:    ErrSessionStorage,
		Message: fmt.Sprintf("session storage error during %s", operation),
		Cause:   cause,
	}
}

// ErrorCode extracts the code of a SessionError anywhere in err's chain.
func ErrorCode(err error) string {
	var sessionErr *SessionError
	if errors.As(err, &sessionErr) {
		return sessionErr.Code
	}
	return "UNKNOWN_ERROR"
}

// StatusCode maps a session error to the HTTP status a client should see.
// Unknown and expired sessions answer 404 so the client starts a new one.
func StatusCode(err error) int {
	switch ErrorCode(err) {
	case ErrSessionInvalid, ErrSessionMissing:
		return http.StatusBadRequest
	case ErrSessionNotFound, ErrSessionExpired:
		return http.StatusNotFound
	default:
		return http.StatusInternalServerError
	}
}
