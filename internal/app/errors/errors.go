package errors

import (
	"fmt"
)

// Common error types
var (
	// Configuration errors
	ErrMissingConfig    = New("configuration is required")
	ErrInvalidConfig    = New("invalid configuration")
	ErrMissingAPIKey    = New("API key is required")
	ErrProviderNotFound = New("provider not found")

	// Upload and file errors
	ErrMissingUpload   = New("no file uploaded")
	ErrEmptyUpload     = New("uploaded file is empty")
	ErrUploadTooLarge  = New("uploaded file is too large")
	ErrFileNotFound    = New("file not found")
	ErrFileReadFailed  = New("file read failed")
	ErrFileWriteFailed = New("file write failed")

	// External tool errors
	ErrBinaryNotFound      = New("binary not found")
	ErrModelNotFound       = New("model not found")
	ErrTranscriptionFailed = New("transcription failed")
	ErrConversionFailed    = New("conversion failed")

	// Network errors
	ErrRequestFailed   = New("request failed")
	ErrResponseInvalid = New("invalid response")
)

// Error represents a standardized error
type Error struct {
	message string
	cause   error
}

// New creates a new error
func New(message string) *Error {
	return &Error{message: message}
}

// Newf creates a new formatted error
func Newf(format string, args ...interface{}) *Error {
	return &Error{message: fmt.Sprintf(format, args...)}
}

// Wrap wraps an error with additional context
func Wrap(err error, message string) error {
	if err == nil {
		return nil
	}
	return &Error{
		message: message,
		cause:   err,
	}
}

// Wrapf wraps an error with formatted context
func Wrapf(err error, format string, args ...interface{}) error {
	if err == nil {
		return nil
	}
	return &Error{
		message: fmt.Sprintf(format, args...),
		cause:   err,
	}
}

// Error implements the error interface
func (e *Error) Error() string {
	if e.cause != nil {
		return fmt.Sprintf("%s: %v", e.message, e.cause)
	}
	return e.message
}

// Unwrap returns the underlying error
func (e *Error) Unwrap() error {
	return e.cause
}

// Is checks if the error matches target
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok {
		return false
	}
	return e.message == t.message
}

// RequiredField returns an error for missing required fields
func RequiredField(field string) error {
	return Wrapf(ErrMissingConfig, "%s is required", field)
}

// InvalidField returns an error for invalid field values
func InvalidField(field string, reason string) error {
	return Wrapf(ErrInvalidConfig, "%s is invalid: %s", field, reason)
}
