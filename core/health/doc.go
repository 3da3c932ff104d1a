// Package health provides liveness and readiness handlers.
//
//	r.Get("/health/live", health.Liveness[*router.Context])
//	r.Get("/health/ready", health.Readiness[*router.Context](log, redis.Healthcheck(client)))
//
// Readiness checks take the request context and fail the probe with 503 on
// the first error.
package health
