package server

import (
	"errors"
	"fmt"
)

// Error error dengan code, code dipakai handler buat pilih http status.
type Error struct {
	orig error
	msg  string
	code error
}

func (e *Error) Error() string {
	if e.orig != nil {
		return fmt.Sprintf("%s: %v", e.msg, e.orig)
	}

	return e.msg
}

func (e *Error) Unwrap() error {
	return e.orig
}

func WrapErrorf(orig error, code error, format string, a ...interface{}) error {
	return &Error{
		code: code,
		orig: orig,
		msg:  fmt.Sprintf(format, a...),
	}
}

func (e *Error) Code() error {
	return e.code
}

// Message pesan tanpa error asli, aman buat dikirim ke client.
func (e *Error) Message() string {
	return e.msg
}

var (
	// ErrInternalServerError will throw if any the Internal Server Error happen
	ErrInternalServerError = errors.New("internal Server Error")
	// ErrNotFound will throw if the requested location does not exist
	ErrNotFound = errors.New("your requested Item is not found")
	// ErrBadParamInput will throw if the given request-body or params is not valid
	ErrBadParamInput = errors.New("given Param is not valid")
	// ErrUnprocessableEntity will throw if the search gave up before reaching the goal
	ErrUnprocessableEntity = errors.New("request could not be processed")
)

var MessageInternalServerError string = "internal server error"
