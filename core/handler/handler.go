package handler

import "net/http"

// Response renders an HTTP response.
// Errors returned while rendering are passed to the router's ErrorHandler.
type Response func(w http.ResponseWriter, r *http.Request) error

// HandlerFunc is a request handler bound to a concrete context type.
type HandlerFunc[C Context] func(ctx C) Response

// ErrorHandler renders errors produced by handlers or the router itself.
type ErrorHandler[C Context] func(ctx C, err error)

// Middleware wraps a handler with cross-cutting behaviour.
type Middleware[C Context] func(next HandlerFunc[C]) HandlerFunc[C]

// Chain applies middlewares so that the first one is the outermost.
func Chain[C Context](h HandlerFunc[C], middlewares ...Middleware[C]) HandlerFunc[C] {
	for i := len(middlewares) - 1; i >= 0; i-- {
		h = middlewares[i](h)
	}
	return h
}
