package handler

import (
	"context"
	"net/http"
)

// Context is the request context handed to every handler.
// It embeds the request's context.Context so it can be passed to any
// blocking call (outbound HTTP, session stores) directly.
type Context interface {
	context.Context
	Request() *http.Request
	ResponseWriter() http.ResponseWriter
	// Param returns the named path parameter, or "" when the route has none.
	Param(key string) string
	// SetValue stores a request-scoped value readable through Value.
	SetValue(key, val any)
}
