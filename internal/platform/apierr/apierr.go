package apierr

import (
	"fmt"
	"net/http"
)

// Error carries the HTTP status a failure should map to, a short machine
// code, and the underlying cause. Services return it; the handler layer is
// the single point converting it to a response.
type Error struct {
	Status int
	Code   string
	Err    error
}

func (e *Error) Error() string {
	if e == nil {
		return ""
	}
	if e.Err != nil {
		return e.Err.Error()
	}
	if e.Code != "" {
		return e.Code
	}
	if e.Status != 0 {
		return fmt.Sprintf("api error (%d)", e.Status)
	}
	return "api error"
}

func (e *Error) Unwrap() error { return e.Err }

func New(status int, code string, err error) *Error {
	return &Error{Status: status, Code: code, Err: err}
}

func Validation(code string, err error) *Error {
	return New(http.StatusBadRequest, code, err)
}

func NotFound(code string, err error) *Error {
	return New(http.StatusNotFound, code, err)
}

func Internal(code string, err error) *Error {
	return New(http.StatusInternalServerError, code, err)
}

func NotFoundf(code, format string, args ...interface{}) *Error {
	return NotFound(code, fmt.Errorf(format, args...))
}

func Internalf(code, format string, args ...interface{}) *Error {
	return Internal(code, fmt.Errorf(format, args...))
}
