// Package apperror defines the client-facing error kinds returned by services.
// Anything that is not an *Error is treated as an internal failure by the
// transport layer and never shown to the caller.
package apperror

import (
	"errors"
	"net/http"
)

type Error struct {
	Code    int         `json:"-"`
	Message string      `json:"message"`
	Details interface{} `json:"details"`
}

func (e *Error) Error() string {
	return e.Message
}

func New(code int, message string) *Error {
	return &Error{Code: code, Message: message}
}

// WithDetails returns a copy of e carrying details. Sentinel values stay untouched.
func (e *Error) WithDetails(details interface{}) *Error {
	return &Error{Code: e.Code, Message: e.Message, Details: details}
}

// Is matches on code and message so copies made by WithDetails still satisfy errors.Is.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok {
		return false
	}
	return e.Code == t.Code && e.Message == t.Message
}

func Unauthorized(message string) *Error { return New(http.StatusUnauthorized, message) }
func Forbidden(message string) *Error    { return New(http.StatusForbidden, message) }
func NotFound(message string) *Error     { return New(http.StatusNotFound, message) }
func Conflict(message string) *Error     { return New(http.StatusConflict, message) }
func BadRequest(message string) *Error   { return New(http.StatusBadRequest, message) }

var (
	ErrUnauthorized     = Unauthorized("Unauthorized")
	ErrForbidden        = Forbidden("Forbidden")
	ErrValidationFailed = BadRequest("Validation failed")
)

// Validation builds the 400 returned when request input fails validation.
func Validation(fieldErrors map[string][]string) *Error {
	return ErrValidationFailed.WithDetails(FieldErrors{FieldErrors: fieldErrors})
}

// FieldErrors is the details payload of a validation failure.
type FieldErrors struct {
	FieldErrors map[string][]string `json:"fieldErrors"`
}

// As unwraps err into an *Error when it is one.
func As(err error) (*Error, bool) {
	var appErr *Error
	if errors.As(err, &appErr) {
		return appErr, true
	}
	return nil, false
}
