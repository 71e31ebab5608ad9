// Package errx provides coded, typed errors that carry their own HTTP mapping.
//
// Every package declares a Registry with a prefix and registers its codes once
// at init time. Handlers return *Error values and the fiber error handler
// renders them with ToHTTPResponse.
package errx

import (
	"errors"
	"fmt"
	"net/http"
)

// ErrorType is the closed set of error kinds. Callers switch on it instead of
// inspecting messages.
type ErrorType string

const (
	TypeValidation     ErrorType = "VALIDATION"
	TypeUpload         ErrorType = "UPLOAD"
	TypeNotFound       ErrorType = "NOT_FOUND"
	TypePersistence    ErrorType = "PERSISTENCE"
	TypeAuthentication ErrorType = "AUTHENTICATION"
	TypeAuthorization  ErrorType = "AUTHORIZATION"
	TypeConflict       ErrorType = "CONFLICT"
	TypeBusiness       ErrorType = "BUSINESS"
	TypeInternal       ErrorType = "INTERNAL"
	TypeExternal       ErrorType = "EXTERNAL"
)

// DefaultStatus returns the HTTP status used when an error of this type is
// created without an explicit one.
func (t ErrorType) DefaultStatus() int {
	switch t {
	case TypeValidation, TypeUpload, TypePersistence, TypeBusiness:
		return http.StatusBadRequest
	case TypeNotFound:
		return http.StatusNotFound
	case TypeAuthentication:
		return http.StatusUnauthorized
	case TypeAuthorization:
		return http.StatusForbidden
	case TypeConflict:
		return http.StatusConflict
	case TypeExternal:
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}

// FieldError is a single field-level problem.
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// Error is the error value returned across package boundaries.
type Error struct {
	Type       ErrorType      `json:"type"`
	Code       string         `json:"code"`
	Message    string         `json:"message"`
	HTTPStatus int            `json:"-"`
	Details    map[string]any `json:"details,omitempty"`
	Fields     []FieldError   `json:"errors,omitempty"`
	Cause      error          `json:"-"`
}

func (e *Error) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("[%s] %s: %v", e.Code, e.Message, e.Cause)
	}
	return fmt.Sprintf("[%s] %s", e.Code, e.Message)
}

func (e *Error) Unwrap() error {
	return e.Cause
}

// WithDetail attaches a diagnostic key/value. Details are logged, not rendered.
func (e *Error) WithDetail(key string, value any) *Error {
	if e.Details == nil {
		e.Details = make(map[string]any)
	}
	e.Details[key] = value
	return e
}

// WithDetails merges a set of diagnostic key/values.
func (e *Error) WithDetails(details map[string]any) *Error {
	for k, v := range details {
		e.WithDetail(k, v)
	}
	return e
}

// WithFields appends field-level errors, preserving order.
func (e *Error) WithFields(fields ...FieldError) *Error {
	e.Fields = append(e.Fields, fields...)
	return e
}

// WithMessage replaces the user-facing message.
func (e *Error) WithMessage(msg string) *Error {
	e.Message = msg
	return e
}

// WithCause records the underlying error.
func (e *Error) WithCause(err error) *Error {
	e.Cause = err
	return e
}

// HTTPResponse is the uniform failure envelope.
type HTTPResponse struct {
	Success bool         `json:"success"`
	Message string       `json:"message"`
	Code    string       `json:"code,omitempty"`
	Errors  []FieldError `json:"errors,omitempty"`
}

// ToHTTPResponse renders the error as a response body.
func (e *Error) ToHTTPResponse() HTTPResponse {
	return HTTPResponse{
		Success: false,
		Message: e.Message,
		Code:    e.Code,
		Errors:  e.Fields,
	}
}

// New creates an unregistered error of the given type.
func New(t ErrorType, msg string) *Error {
	return &Error{
		Type:       t,
		Code:       string(t),
		Message:    msg,
		HTTPStatus: t.DefaultStatus(),
	}
}

// Wrap classifies err. An err that already is an *Error is returned as is so
// that typed errors raised further down keep their meaning.
func Wrap(err error, msg string, t ErrorType) *Error {
	if err == nil {
		return nil
	}
	if e, ok := As(err); ok {
		return e
	}
	return New(t, msg).WithCause(err)
}

// As returns the first *Error in err's chain.
func As(err error) (*Error, bool) {
	var e *Error
	if errors.As(err, &e) {
		return e, true
	}
	return nil, false
}

// IsType reports whether err is an *Error of type t.
func IsType(err error, t ErrorType) bool {
	e, ok := As(err)
	return ok && e.Type == t
}

// IsCode reports whether err is an *Error carrying code.
func IsCode(err error, code Code) bool {
	e, ok := As(err)
	return ok && e.Code == string(code)
}
