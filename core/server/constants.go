package server

import "time"

const (
	DefaultReadTimeout = 15 * time.Second

	// DefaultWriteTimeout leaves room for a proxied backend call that uses
	// its own 30s client timeout.
	DefaultWriteTimeout = 45 * time.Second

	DefaultIdleTimeout     = 60 * time.Second
	DefaultShutdownTimeout = 30 * time.Second
	DefaultMaxHeaderBytes  = 1 << 20
)
