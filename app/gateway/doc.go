// Package gateway assembles the polljoy connector into a runnable HTTP
// service.
//
// NewApp reads Config from the environment, then builds:
//
//   - a session store: Redis when REDIS_URL is set, process memory otherwise
//   - a signed session cookie carrying the session handle
//   - the polljoy Connector mounted on POLLJOY_BASE_PATH and POLLJOY_BASE_PATH/{appId}
//   - per-IP rate limiting on the connector routes (RATE_LIMIT_*)
//   - /health/live and /health/ready (pings Redis when configured)
//
// Run serves until the context is cancelled and sweeps expired sessions
// every SESSION_CLEANUP_INTERVAL.
package gateway
