package errors

import (
	"context"
	"errors"
	"fmt"
	"net/http"
)

// Kind classifies why a call to the WMS backend failed
type Kind string

const (
	// KindAuth is an authentication failure (envelope code 401 or HTTP 401)
	KindAuth Kind = "AUTH"
	// KindApplication is a non-success envelope code with a user-facing message
	KindApplication Kind = "APPLICATION"
	// KindTransport is a non-2xx status, network failure, timeout or open breaker
	KindTransport Kind = "TRANSPORT"
	// KindInvalidRequest is a request rejected before it reached the network
	KindInvalidRequest Kind = "INVALID_REQUEST"
	// KindDecode is a payload that did not decode into the caller's type
	KindDecode Kind = "DECODE"
)

// Envelope codes understood by the interpreter
const (
	CodeOK           = 200
	CodeOKAlt        = 0
	CodeCreated      = 201
	CodeUnauthorized = 401
	// CodeInvalid marks an envelope whose code member is not an integer
	CodeInvalid = -1
)

// Sentinel errors
var (
	ErrSessionExpired = errors.New("session expired")
	ErrSessionClosed  = errors.New("session closed")
	ErrCircuitOpen    = errors.New("circuit breaker is open")
)

// APIError is the error every failed WMS call resolves to
type APIError struct {
	Kind    Kind   `json:"kind"`
	Status  int    `json:"status,omitempty"`
	Code    int    `json:"code,omitempty"`
	Message string `json:"message"`
	Err     error  `json:"-"`

	notified bool
}

// Error returns the user-facing message unchanged so callers can show it as is.
func (e *APIError) Error() string {
	return e.Message
}

// Unwrap returns the wrapped error
func (e *APIError) Unwrap() error {
	return e.Err
}

// MarkNotified records that the user has been shown this error
func (e *APIError) MarkNotified() {
	e.notified = true
}

// Notified reports whether MarkNotified was called
func (e *APIError) Notified() bool {
	return e.notified
}

// Wrap wraps an existing error
func (e *APIError) Wrap(err error) *APIError {
	e.Err = err
	return e
}

// Detail renders the error with its classification, for logs
func (e *APIError) Detail() string {
	switch {
	case e.Err != nil && e.Status != 0:
		return fmt.Sprintf("%s(%d): %s: %v", e.Kind, e.Status, e.Message, e.Err)
	case e.Err != nil:
		return fmt.Sprintf("%s: %s: %v", e.Kind, e.Message, e.Err)
	case e.Status != 0:
		return fmt.Sprintf("%s(%d): %s", e.Kind, e.Status, e.Message)
	default:
		return fmt.Sprintf("%s: %s", e.Kind, e.Message)
	}
}

// NewAPIError creates a new APIError
func NewAPIError(kind Kind, status int, message string) *APIError {
	return &APIError{
		Kind:    kind,
		Status:  status,
		Message: message,
	}
}

// ErrApplication creates the error for a non-success envelope code
func ErrApplication(code int, message string) *APIError {
	e := NewAPIError(KindApplication, http.StatusOK, message)
	e.Code = code
	return e
}

// ErrEnvelopeUnauthorized creates the error for an envelope carrying code 401
func ErrEnvelopeUnauthorized() *APIError {
	e := NewAPIError(KindAuth, http.StatusOK, ErrSessionExpired.Error())
	e.Code = CodeUnauthorized
	return e.Wrap(ErrSessionExpired)
}

// ErrTransport creates the error for a failed HTTP exchange
func ErrTransport(status int, message string, cause error) *APIError {
	if status == http.StatusUnauthorized {
		e := NewAPIError(KindAuth, status, message)
		if cause == nil {
			cause = ErrSessionExpired
		}
		return e.Wrap(cause)
	}
	return NewAPIError(KindTransport, status, message).Wrap(cause)
}

// ErrInvalidRequest creates the error for a request rejected before sending
func ErrInvalidRequest(cause error) *APIError {
	return NewAPIError(KindInvalidRequest, 0, cause.Error()).Wrap(cause)
}

// ErrDecode creates the error for a payload that failed to decode
func ErrDecode(cause error) *APIError {
	return NewAPIError(KindDecode, 0, fmt.Sprintf("failed to decode response: %v", cause)).Wrap(cause)
}

// AsAPIError converts an error to an APIError if possible
func AsAPIError(err error) (*APIError, bool) {
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return apiErr, true
	}
	return nil, false
}

// IsAuthFailure reports whether err ended the session
func IsAuthFailure(err error) bool {
	if errors.Is(err, ErrSessionExpired) {
		return true
	}
	apiErr, ok := AsAPIError(err)
	return ok && apiErr.Kind == KindAuth
}

// IsKind reports whether err is an APIError of the given kind
func IsKind(err error, kind Kind) bool {
	apiErr, ok := AsAPIError(err)
	return ok && apiErr.Kind == kind
}

// Message returns the text to show a user for err.
func Message(err error) string {
	if err == nil {
		return ""
	}
	if apiErr, ok := AsAPIError(err); ok && apiErr.Message != "" {
		return apiErr.Message
	}
	if errors.Is(err, context.DeadlineExceeded) {
		return StatusMessage(http.StatusRequestTimeout)
	}
	if msg := err.Error(); msg != "" {
		return msg
	}
	return MessageNetworkError
}
