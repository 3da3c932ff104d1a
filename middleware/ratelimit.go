package middleware

import (
	"context"
	"math"
	"strconv"

	"github.com/dmitrymomot/polljoy/core/handler"
	"github.com/dmitrymomot/polljoy/core/response"
	"github.com/dmitrymomot/polljoy/pkg/clientip"
	"github.com/dmitrymomot/polljoy/pkg/ratelimiter"
)

// RateLimiter is satisfied by ratelimiter.Bucket.
type RateLimiter interface {
	Allow(ctx context.Context, key string) (ratelimiter.Result, error)
}

// RateLimitConfig configures the rate limiting middleware.
type RateLimitConfig struct {
	Limiter RateLimiter
	Skip    func(ctx handler.Context) bool
	// KeyFunc picks the bucket key. The default is the connection's remote
	// address; X-Appengine-User-Ip is only trustworthy behind App Engine, so
	// keying on it must be opted into with a custom KeyFunc.
	KeyFunc func(ctx handler.Context) string
	// FailOpen lets requests through when the limiter errors.
	FailOpen bool
}

// RateLimit limits requests per remote address.
func RateLimit[C handler.Context](limiter RateLimiter) handler.Middleware[C] {
	return RateLimitWithConfig[C](RateLimitConfig{Limiter: limiter, FailOpen: true})
}

// RateLimitWithConfig rejects requests over the limit with 429 and a
// Retry-After header. X-RateLimit-Limit and X-RateLimit-Remaining are set on
// every limited request.
func RateLimitWithConfig[C handler.Context](cfg RateLimitConfig) handler.Middleware[C] {
	if cfg.Limiter == nil {
		panic("middleware: rate limiter is required")
	}
	if cfg.KeyFunc == nil {
		cfg.KeyFunc = func(ctx handler.Context) string {
			return clientip.RemoteIP(ctx.Request())
		}
	}

	return func(next handler.HandlerFunc[C]) handler.HandlerFunc[C] {
		return func(ctx C) handler.Response {
			if cfg.Skip != nil && cfg.Skip(ctx) {
				return next(ctx)
			}

			res, err := cfg.Limiter.Allow(ctx, cfg.KeyFunc(ctx))
			if err != nil {
				if cfg.FailOpen {
					return next(ctx)
				}
				return response.Error(response.ErrServiceUnavailable.WithError(err))
			}

			h := ctx.ResponseWriter().Header()
			h.Set("X-RateLimit-Limit", strconv.Itoa(res.Limit))
			h.Set("X-RateLimit-Remaining", strconv.Itoa(max(res.Remaining, 0)))

			if !res.Allowed() {
				retry := int(math.Ceil(res.RetryAfter().Seconds()))
				h.Set("Retry-After", strconv.Itoa(max(retry, 1)))
				return response.Error(response.ErrTooManyRequests.WithDetails(map[string]any{
					"retry_after": max(retry, 1),
				}))
			}
			return next(ctx)
		}
	}
}

var _ RateLimiter = (*ratelimiter.Bucket)(nil)
