package session

import "time"

// Config holds session manager configuration with environment variable support.
type Config struct {
	// TTL is the idle timeout.
	TTL time.Duration `env:"SESSION_TTL" envDefault:"24h"`
	// TouchInterval throttles expiry extension writes. Zero extends on every access.
	TouchInterval time.Duration `env:"SESSION_TOUCH_INTERVAL" envDefault:"5m"`
	// CleanupInterval is how often expired sessions are swept. Zero disables the sweep.
	CleanupInterval time.Duration `env:"SESSION_CLEANUP_INTERVAL" envDefault:"10m"`
}

// NewManagerFromConfig creates a Manager using cfg's TTL and touch interval.
func NewManagerFromConfig[Data any](store Store[Data], cfg Config) *Manager[Data] {
	return NewManager(store, cfg.TTL, cfg.TouchInterval)
}
