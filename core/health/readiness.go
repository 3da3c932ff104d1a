package health

import (
	"context"
	"log/slog"

	"github.com/dmitrymomot/polljoy/core/handler"
	"github.com/dmitrymomot/polljoy/core/logger"
	"github.com/dmitrymomot/polljoy/core/response"
)

// Check reports whether a dependency is usable.
type Check func(context.Context) error

// Readiness answers "READY" when every check passes and 503 otherwise.
func Readiness[C handler.Context](log *slog.Logger, checks ...Check) handler.HandlerFunc[C] {
	if log == nil {
		log = logger.Discard()
	}
	return func(ctx C) handler.Response {
		for _, check := range checks {
			if err := check(ctx); err != nil {
				log.ErrorContext(ctx, "readiness check failed", logger.Error(err))
				return response.Error(response.ErrServiceUnavailable.WithError(err))
			}
		}
		return response.String("READY")
	}
}
