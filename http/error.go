package http

import (
	"errors"

	"github.com/freekieb7/cobble/body"
)

// StatusError is implemented by handler errors that map to a specific
// status code.
type StatusError interface {
	error
	Status() int
}

// Error is a plain status-carrying handler error.
type Error struct {
	Code int
	Msg  string
}

func NewError(code int, msg string) *Error {
	return &Error{Code: code, Msg: msg}
}

func (e *Error) Error() string {
	if e.Msg != "" {
		return e.Msg
	}
	return StatusText(e.Code)
}

func (e *Error) Status() int {
	return e.Code
}

// ResponseFromError maps a handler error to the response sent in its
// place. Errors implementing StatusError pick their own status code,
// everything else becomes a 500.
func ResponseFromError(err error) *Response {
	status := StatusInternalServerError

	var statusErr StatusError
	if errors.As(err, &statusErr) {
		status = statusErr.Status()
	}

	res := NewResponse(status)
	res.Header.Set("content-type", "text/plain; charset=utf-8")
	res.Body = body.NewBytes([]byte(err.Error()))
	return res
}
