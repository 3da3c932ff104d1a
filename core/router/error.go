package router

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/dmitrymomot/polljoy/core/handler"
)

var (
	ErrNoContextFactory = errors.New("no context factory provided")
	ErrNilResponse      = errors.New("nil response")
	ErrInvalidMethod    = errors.New("invalid http method")
	ErrNilSubrouter     = errors.New("nil subrouter")
	ErrInvalidPattern   = errors.New("invalid route path pattern")
)

var (
	ErrMethodNotAllowed error = routingError{errors.New("method not allowed"), http.StatusMethodNotAllowed}
	ErrNotFound         error = routingError{errors.New("not found"), http.StatusNotFound}
)

type statusCode interface {
	StatusCode() int
}

// routingError carries an HTTP status so error handlers that look for
// StatusCode() (response.JSONErrorHandler) render 404/405 correctly.
type routingError struct {
	err    error
	status int
}

func (e routingError) Error() string   { return e.err.Error() }
func (e routingError) Unwrap() error   { return e.err }
func (e routingError) StatusCode() int { return e.status }

// defaultErrorHandler writes err as plain text.
func defaultErrorHandler[C handler.Context](ctx C, err error) {
	w := ctx.ResponseWriter()
	if ww, ok := w.(*responseWriter); ok && ww.Written() {
		return
	}

	status := http.StatusInternalServerError
	var sc statusCode
	if errors.As(err, &sc) {
		status = sc.StatusCode()
	}

	http.Error(w, err.Error(), status)
}

// PanicError lets error handlers detect recovered panics.
type PanicError interface {
	error
	Value() any
	Stack() []byte
}

type panicError struct {
	value any
	stack []byte
}

func (e *panicError) Error() string {
	return fmt.Sprintf("panic: %v", e.value)
}

func (e *panicError) Value() any {
	return e.value
}

func (e *panicError) Stack() []byte {
	return e.stack
}

// Unwrap allows errors.Is/As to see errors passed to panic.
func (e *panicError) Unwrap() error {
	if err, ok := e.value.(error); ok {
		return err
	}
	return nil
}
