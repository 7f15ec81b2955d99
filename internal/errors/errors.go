package errors

import (
	stderrors "errors"
	"fmt"
	"net/http"
)

type ValidationDetail struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

type ValidationError struct {
	Message string
	Details []ValidationDetail
}

func (e *ValidationError) Error() string {
	return e.Message
}

// Field returns the message recorded for field, if any.
func (e *ValidationError) Field(field string) string {
	for _, d := range e.Details {
		if d.Field == field {
			return d.Message
		}
	}
	return ""
}

func NewValidationError(message string, details ...ValidationDetail) *ValidationError {
	return &ValidationError{
		Message: message,
		Details: details,
	}
}

func IsValidationError(err error) (*ValidationError, bool) {
	var ve *ValidationError
	if stderrors.As(err, &ve) {
		return ve, true
	}
	return nil, false
}

// TransportError means the request never produced an HTTP response.
type TransportError struct {
	Op    string
	Cause error
}

func (e *TransportError) Error() string {
	return fmt.Sprintf("%s: backend unreachable: %v", e.Op, e.Cause)
}

func (e *TransportError) Unwrap() error {
	return e.Cause
}

func NewTransportError(op string, cause error) *TransportError {
	return &TransportError{
		Op:    op,
		Cause: cause,
	}
}

func IsTransportError(err error) (*TransportError, bool) {
	var te *TransportError
	if stderrors.As(err, &te) {
		return te, true
	}
	return nil, false
}

// ServerError is a non-2xx response from the backend.
type ServerError struct {
	Op         string
	StatusCode int
	Message    string
}

func (e *ServerError) Error() string {
	msg := e.Message
	if msg == "" {
		msg = http.StatusText(e.StatusCode)
	}
	return fmt.Sprintf("%s: server responded %d: %s", e.Op, e.StatusCode, msg)
}

func NewServerError(op string, statusCode int, message string) *ServerError {
	return &ServerError{
		Op:         op,
		StatusCode: statusCode,
		Message:    message,
	}
}

func IsServerError(err error) (*ServerError, bool) {
	var se *ServerError
	if stderrors.As(err, &se) {
		return se, true
	}
	return nil, false
}

type InternalError struct {
	Message string
	Cause   error
}

func (e *InternalError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Cause)
	}
	return e.Message
}

func (e *InternalError) Unwrap() error {
	return e.Cause
}

func NewInternalError(message string, cause error) *InternalError {
	return &InternalError{
		Message: message,
		Cause:   cause,
	}
}

// UserMessage renders err as the short text shown in a notification.
func UserMessage(err error) string {
	if ve, ok := IsValidationError(err); ok {
		return ve.Message
	}
	if se, ok := IsServerError(err); ok {
		if se.Message != "" {
			return se.Message
		}
		return http.StatusText(se.StatusCode)
	}
	if _, ok := IsTransportError(err); ok {
		return "the inventory service is unreachable"
	}
	return "an unexpected error occurred"
}
