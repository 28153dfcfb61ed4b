// Package apperror defines the error taxonomy shared by every handler.
// Each error carries the HTTP status it should surface with; the error
// middleware is the single place where errors become JSON responses.
package apperror

import "net/http"

type Error struct {
	Status  int    `json:"-"`
	Message string `json:"error"`
}

func (e *Error) Error() string {
	return e.Message
}

func New(status int, message string) *Error {
	return &Error{Status: status, Message: message}
}

// Unauthorized signals a missing credential.
func Unauthorized(message string) *Error {
	return New(http.StatusUnauthorized, message)
}

// InvalidCredential covers bad or expired tokens and wrong passwords.
// The source surfaces these with different statuses depending on the
// route, so the status is supplied by the caller.
func InvalidCredential(status int, message string) *Error {
	return New(status, message)
}

func Forbidden(message string) *Error {
	return New(http.StatusForbidden, message)
}

func NotFound(message string) *Error {
	return New(http.StatusNotFound, message)
}

func Validation(message string) *Error {
	return New(http.StatusBadRequest, message)
}

func Conflict(message string) *Error {
	return New(http.StatusConflict, message)
}

func Internal(message string) *Error {
	return New(http.StatusInternalServerError, message)
}

// StatusOf returns the HTTP status for err, defaulting to 500 for
// anything outside the taxonomy.
func StatusOf(err error) int {
	if appErr, ok := err.(*Error); ok {
		return appErr.Status
	}
	return http.StatusInternalServerError
}
