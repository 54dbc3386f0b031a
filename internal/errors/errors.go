package errors

import (
	"errors"
	"fmt"
)

// ErrorCode represents a category of application error.
type ErrorCode string

const (
	// ErrCodeTokenExchangeFailed indicates the authorization code could not be traded for a token.
	// Invalid client, expired code, reused code and provider outages all collapse into this code.
	ErrCodeTokenExchangeFailed ErrorCode = "token_exchange_failed"
	// ErrCodeFetchFailed indicates a provider API request did not return 200.
	ErrCodeFetchFailed ErrorCode = "fetch_failed"
	// ErrCodeUnsupportedSubjectType indicates the OAuth principal is not a user.
	ErrCodeUnsupportedSubjectType ErrorCode = "unsupported_subject_type"
	// ErrCodeInvalidState indicates the callback state did not match the session.
	ErrCodeInvalidState ErrorCode = "invalid_state"
	// ErrCodeMissingCode indicates the callback carried no authorization code.
	ErrCodeMissingCode ErrorCode = "missing_code"
	// ErrCodeMalformedProfile indicates a required field was absent from a provider response.
	ErrCodeMalformedProfile ErrorCode = "malformed_profile"
)

// AppError represents a structured application error with a code, message, and optional cause.
// It supports error wrapping and unwrapping for use with errors.Is and errors.As.
type AppError struct {
	// Code categorizes the error type
	Code ErrorCode
	// Message is a human-readable error message
	Message string
	// Cause is the underlying error that caused this error (optional)
	Cause error
	// Field is the specific field that caused the error (optional)
	Field string
}

// Error implements the error interface.
func (e *AppError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Cause)
	}
	return e.Message
}

// Unwrap returns the underlying cause, enabling errors.Is and errors.As.
func (e *AppError) Unwrap() error {
	return e.Cause
}

// TokenExchangeFailed creates a new TokenExchangeFailed error.
func TokenExchangeFailed(cause error) *AppError {
	return &AppError{
		Code:    ErrCodeTokenExchangeFailed,
		Message: "token exchange failed",
		Cause:   cause,
	}
}

// FetchFailed creates a new FetchFailed error for the given endpoint.
func FetchFailed(endpoint string, cause error) *AppError {
	return &AppError{
		Code:    ErrCodeFetchFailed,
		Message: fmt.Sprintf("fetch %s failed", endpoint),
		Cause:   cause,
	}
}

// UnsupportedSubjectType creates a new UnsupportedSubjectType error.
func UnsupportedSubjectType(subjectType string) *AppError {
	return &AppError{
		Code:    ErrCodeUnsupportedSubjectType,
		Message: fmt.Sprintf("unsupported subject type %q", subjectType),
		Field:   "data.type",
	}
}

// InvalidState creates a new InvalidState error.
func InvalidState() *AppError {
	return &AppError{
		Code:    ErrCodeInvalidState,
		Message: "invalid state parameter",
		Field:   "state",
	}
}

// MissingCode creates a new MissingCode error.
func MissingCode() *AppError {
	return &AppError{
		Code:    ErrCodeMissingCode,
		Message: "authorization code is required",
		Field:   "code",
	}
}

// MalformedProfile creates a new MalformedProfile error for a missing or mistyped field.
func MalformedProfile(field string, cause error) *AppError {
	return &AppError{
		Code:    ErrCodeMalformedProfile,
		Message: fmt.Sprintf("profile field %s missing or invalid", field),
		Cause:   cause,
		Field:   field,
	}
}

// isCode checks if an error has a specific error code.
func isCode(err error, code ErrorCode) bool {
	var appErr *AppError
	return errors.As(err, &appErr) && appErr.Code == code
}

// IsTokenExchangeFailed checks if an error is a TokenExchangeFailed error.
func IsTokenExchangeFailed(err error) bool {
	return isCode(err, ErrCodeTokenExchangeFailed)
}

// IsFetchFailed checks if an error is a FetchFailed error.
func IsFetchFailed(err error) bool {
	return isCode(err, ErrCodeFetchFailed)
}

// IsUnsupportedSubjectType checks if an error is an UnsupportedSubjectType error.
func IsUnsupportedSubjectType(err error) bool {
	return isCode(err, ErrCodeUnsupportedSubjectType)
}

// IsInvalidState checks if an error is an InvalidState error.
func IsInvalidState(err error) bool {
	return isCode(err, ErrCodeInvalidState)
}

// IsMissingCode checks if an error is a MissingCode error.
func IsMissingCode(err error) bool {
	return isCode(err, ErrCodeMissingCode)
}

// IsMalformedProfile checks if an error is a MalformedProfile error.
func IsMalformedProfile(err error) bool {
	return isCode(err, ErrCodeMalformedProfile)
}

// GetCode returns the ErrorCode from an error, or empty string if not an AppError.
func GetCode(err error) ErrorCode {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr.Code
	}
	return ""
}

// GetField returns the Field from an error, or empty string if not an AppError or no field set.
func GetField(err error) string {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr.Field
	}
	return ""
}
