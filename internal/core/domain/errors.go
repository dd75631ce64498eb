// Package domain defines the core domain models for ota.
package domain

import (
	"errors"
	"fmt"
)

// DomainError represents an ota error with a structured error code.
type DomainError struct {
	Code    string // Error code (e.g., "OTA-ARGS-1001")
	Message string // Human-readable message
	Details string // Optional additional details
	Cause   error  // Underlying error (if any)
}

// Error implements the error interface.
func (e *DomainError) Error() string {
	msg := e.Message
	if e.Details != "" {
		msg += ": " + e.Details
	}
	if e.Cause != nil {
		msg += ": " + e.Cause.Error()
	}
	return fmt.Sprintf("[%s] %s", e.Code, msg)
}

// Unwrap returns the underlying error for errors.Unwrap() support.
func (e *DomainError) Unwrap() error {
	return e.Cause
}

// Is implements errors.Is() support for error comparison.
func (e *DomainError) Is(target error) bool {
	t, ok := target.(*DomainError)
	if !ok {
		return false
	}
	return e.Code == t.Code
}

// NewDomainError creates a new DomainError with the given code and message.
func NewDomainError(code, message string) *DomainError {
	return &DomainError{
		Code:    code,
		Message: message,
	}
}

// WithDetails returns a copy of the error with additional details.
func (e *DomainError) WithDetails(details string) *DomainError {
	return &DomainError{
		Code:    e.Code,
		Message: e.Message,
		Details: details,
		Cause:   e.Cause,
	}
}

// WithDetailsf is WithDetails with fmt.Sprintf formatting.
func (e *DomainError) WithDetailsf(format string, args ...any) *DomainError {
	return e.WithDetails(fmt.Sprintf(format, args...))
}

// WithCause returns a copy of the error wrapping the given cause.
func (e *DomainError) WithCause(cause error) *DomainError {
	return &DomainError{
		Code:    e.Code,
		Message: e.Message,
		Details: e.Details,
		Cause:   cause,
	}
}

// IsDomainError checks if an error is a DomainError with the given code.
// If code is empty, it only checks if the error is a DomainError.
func IsDomainError(err error, code string) bool {
	var de *DomainError
	if errors.As(err, &de) {
		if code == "" {
			return true
		}
		return de.Code == code
	}
	return false
}

// GetErrorCode extracts the error code from an error if it's a DomainError.
func GetErrorCode(err error) string {
	var de *DomainError
	if errors.As(err, &de) {
		return de.Code
	}
	return ""
}

// ============================================================================
// Input Errors
// ============================================================================

var (
	// ErrArgs indicates missing, malformed or conflicting command arguments.
	ErrArgs = NewDomainError("OTA-ARGS-1001", "command args")

	// ErrUnknownCommand indicates a command token outside the grammar.
	ErrUnknownCommand = NewDomainError("OTA-CMD-1002", "command input")

	// ErrParse indicates a value could not be parsed (format, UUID, URL, TOML, JSON).
	ErrParse = NewDomainError("OTA-PARSE-1003", "parse error")
)

// ============================================================================
// Authentication Errors
// ============================================================================

var (
	// ErrAuthConfig indicates the credentials carry no usable auth method.
	ErrAuthConfig = NewDomainError("OTA-AUTH-4010", "authorization")

	// ErrToken indicates an access token could not be obtained or interpreted.
	ErrToken = NewDomainError("OTA-TOKN-4011", "parsing access token")
)

// ============================================================================
// Resource Errors
// ============================================================================

var (
	// ErrNotFound indicates a local resource is missing. Details carry the hint.
	ErrNotFound = NewDomainError("OTA-NF-4040", "not found")

	// ErrFilesystem indicates a local I/O failure.
	ErrFilesystem = NewDomainError("OTA-IO-5001", "i/o")

	// ErrArchive indicates the credentials archive could not be read.
	ErrArchive = NewDomainError("OTA-ZIP-5003", "zip i/o")
)

// ============================================================================
// Transport Errors
// ============================================================================

var (
	// ErrTransport indicates the HTTP exchange itself failed.
	ErrTransport = NewDomainError("OTA-HTTP-5020", "http")

	// ErrHTTPStatus indicates the server answered with an error status.
	ErrHTTPStatus = NewDomainError("OTA-HTTP-4000", "request failed")
)

// NotFound builds a not-found error for name with an optional remediation hint.
func NotFound(name, hint string) *DomainError {
	e := ErrNotFound.WithDetails(name + " not found")
	if hint != "" {
		e.Details += ". " + hint
	}
	return e
}
