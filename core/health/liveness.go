package health

import (
	"github.com/dmitrymomot/polljoy/core/handler"
	"github.com/dmitrymomot/polljoy/core/response"
)

// Liveness always answers "ALIVE". It checks no dependencies.
func Liveness[C handler.Context](C) handler.Response {
	return response.String("ALIVE")
}
