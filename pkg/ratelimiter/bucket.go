package ratelimiter

import (
	"context"
	"fmt"
	"time"
)

// Config describes a token bucket.
type Config struct {
	// Capacity is the burst size.
	Capacity int `env:"RATE_LIMIT_CAPACITY" envDefault:"60"`
	// RefillRate tokens are added every RefillInterval.
	RefillRate     int           `env:"RATE_LIMIT_REFILL_RATE" envDefault:"1"`
	RefillInterval time.Duration `env:"RATE_LIMIT_REFILL_INTERVAL" envDefault:"1s"`
}

func (c Config) validate() error {
	switch {
	case c.Capacity <= 0:
		return fmt.Errorf("%w: capacity must be positive", ErrInvalidConfig)
	case c.RefillRate <= 0:
		return fmt.Errorf("%w: refill rate must be positive", ErrInvalidConfig)
	case c.RefillInterval <= 0:
		return fmt.Errorf("%w: refill interval must be positive", ErrInvalidConfig)
	}
	return nil
}

// Store keeps bucket state per key.
type Store interface {
	// ConsumeTokens takes tokens from the bucket for key when enough are
	// available and reports what is left and when the next refill happens.
	ConsumeTokens(ctx context.Context, key string, tokens int, cfg Config) (allowed bool, remaining int, resetAt time.Time, err error)
	Reset(ctx context.Context, key string) error
}

// Result is the outcome of a consumption attempt.
type Result struct {
	Limit     int
	Remaining int
	ResetAt   time.Time
	allowed   bool
}

// Allowed reports whether the tokens were granted.
func (r Result) Allowed() bool {
	return r.allowed
}

// RetryAfter is how long to wait before the bucket refills. Zero when allowed.
func (r Result) RetryAfter() time.Duration {
	if r.allowed {
		return 0
	}
	return max(time.Until(r.ResetAt), 0)
}

// Bucket is a token bucket limiter over a Store.
type Bucket struct {
	store Store
	cfg   Config
}

func NewBucket(store Store, cfg Config) (*Bucket, error) {
	if store == nil {
		return nil, fmt.Errorf("%w: nil store", ErrInvalidConfig)
	}
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return &Bucket{store: store, cfg: cfg}, nil
}

// Allow consumes one token for key.
func (b *Bucket) Allow(ctx context.Context, key string) (Result, error) {
	return b.AllowN(ctx, key, 1)
}

// AllowN consumes n tokens for key.
func (b *Bucket) AllowN(ctx context.Context, key string, n int) (Result, error) {
	if n <= 0 || n > b.cfg.Capacity {
		return Result{}, fmt.Errorf("%w: %d", ErrInvalidTokenCount, n)
	}

	allowed, remaining, resetAt, err := b.store.ConsumeTokens(ctx, key, n, b.cfg)
	if err != nil {
		return Result{}, err
	}
	return Result{
		Limit:     b.cfg.Capacity,
		Remaining: remaining,
		ResetAt:   resetAt,
		allowed:   allowed,
	}, nil
}

// Reset refills the bucket for key.
func (b *Bucket) Reset(ctx context.Context, key string) error {
	return b.store.Reset(ctx, key)
}
