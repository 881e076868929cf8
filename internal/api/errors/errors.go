package errors

import (
	stderrors "errors"
	"net/http"

	apperrors "audio-api/internal/app/errors"
)

// ErrorKind represents different types of API errors
type ErrorKind string

const (
	KindBadRequest         ErrorKind = "bad_request"
	KindPayloadTooLarge    ErrorKind = "payload_too_large"
	KindUpload             ErrorKind = "upload"
	KindTranscription      ErrorKind = "transcription"
	KindConversion         ErrorKind = "conversion"
	KindInternal           ErrorKind = "internal"
	KindServiceUnavailable ErrorKind = "service_unavailable"
)

// APIError is the typed failure outcome of an endpoint. It renders as
// {"error": "<message>"}; kind and request id stay out of the body.
type APIError struct {
	Kind      ErrorKind `json:"-"`
	Message   string    `json:"error"`
	RequestID string    `json:"-"`
	cause     error
}

// Error implements the error interface
func (e *APIError) Error() string {
	return e.Message
}

// Unwrap returns the underlying error
func (e *APIError) Unwrap() error {
	return e.cause
}

// HTTPStatus returns the appropriate HTTP status code for the error kind
func (e *APIError) HTTPStatus() int {
	switch e.Kind {
	case KindBadRequest:
		return http.StatusBadRequest
	case KindPayloadTooLarge:
		return http.StatusRequestEntityTooLarge
	case KindTranscription:
		return http.StatusUnprocessableEntity
	case KindServiceUnavailable:
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}

// NewBadRequestError creates a bad request error
func NewBadRequestError(message string) *APIError {
	return &APIError{Kind: KindBadRequest, Message: message}
}

// NewInternalError creates an internal server error
func NewInternalError(message string) *APIError {
	return &APIError{Kind: KindInternal, Message: message}
}

// NewServiceUnavailableError creates a service unavailable error
func NewServiceUnavailableError(message string) *APIError {
	return &APIError{Kind: KindServiceUnavailable, Message: message}
}

// WrapError wraps an existing error with API error context. The message is
// the wrapped error's text so clients see what actually failed.
func WrapError(err error, kind ErrorKind) *APIError {
	if err == nil {
		return nil
	}

	var apiErr *APIError
	if stderrors.As(err, &apiErr) {
		return apiErr
	}

	if stderrors.Is(err, apperrors.ErrUploadTooLarge) {
		kind = KindPayloadTooLarge
	}

	return &APIError{
		Kind:    kind,
		Message: err.Error(),
		cause:   err,
	}
}

// AsAPIError converts any error into an APIError, defaulting to internal.
func AsAPIError(err error) *APIError {
	return WrapError(err, KindInternal)
}
