package ratelimiter

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/dmitrymomot/polljoy/core/logger"
)

type bucket struct {
	tokens     int
	lastRefill time.Time
	lastAccess time.Time
}

// MemoryStore keeps buckets in process memory. Buckets idle for longer than
// the stale threshold are dropped by the cleanup loop started with Run.
type MemoryStore struct {
	mu      sync.Mutex
	buckets map[string]*bucket

	cleanupInterval time.Duration
	staleAfter      time.Duration
	logger          *slog.Logger
	running         bool
}

type MemoryStoreOption func(*MemoryStore)

// WithCleanupInterval sets how often stale buckets are removed.
func WithCleanupInterval(interval time.Duration) MemoryStoreOption {
	return func(ms *MemoryStore) {
		ms.cleanupInterval = interval
	}
}

// WithStaleAfter sets the idle time after which a bucket is removed.
func WithStaleAfter(d time.Duration) MemoryStoreOption {
	return func(ms *MemoryStore) {
		if d > 0 {
			ms.staleAfter = d
		}
	}
}

func WithMemoryStoreLogger(logger *slog.Logger) MemoryStoreOption {
	return func(ms *MemoryStore) {
		if logger != nil {
			ms.logger = logger
		}
	}
}

func NewMemoryStore(opts ...MemoryStoreOption) *MemoryStore {
	ms := &MemoryStore{
		buckets:         make(map[string]*bucket),
		cleanupInterval: 5 * time.Minute,
		staleAfter:      time.Hour,
		logger:          logger.Discard(),
	}
	for _, opt := range opts {
		opt(ms)
	}
	return ms
}

// ConsumeTokens refills the bucket for the elapsed intervals, then takes
// tokens only when enough are available.
func (ms *MemoryStore) ConsumeTokens(_ context.Context, key string, tokens int, cfg Config) (bool, int, time.Time, error) {
	ms.mu.Lock()
	defer ms.mu.Unlock()

	now := time.Now()
	b, ok := ms.buckets[key]
	if !ok {
		b = &bucket{tokens: cfg.Capacity, lastRefill: now}
		ms.buckets[key] = b
	}

	// Capped so a long idle period cannot overflow the multiplication.
	maxIntervals := int64(cfg.Capacity/cfg.RefillRate + 1)
	intervals := int(min(int64(now.Sub(b.lastRefill)/cfg.RefillInterval), maxIntervals))
	if intervals > 0 {
		b.tokens = min(b.tokens+intervals*cfg.RefillRate, cfg.Capacity)
		b.lastRefill = b.lastRefill.Add(time.Duration(intervals) * cfg.RefillInterval)
		if b.tokens == cfg.Capacity {
			b.lastRefill = now
		}
	}
	b.lastAccess = now

	allowed := b.tokens >= tokens
	if allowed {
		b.tokens -= tokens
	}
	return allowed, b.tokens, b.lastRefill.Add(cfg.RefillInterval), nil
}

func (ms *MemoryStore) Reset(_ context.Context, key string) error {
	ms.mu.Lock()
	defer ms.mu.Unlock()

	delete(ms.buckets, key)
	return nil
}

// Len returns the number of tracked buckets.
func (ms *MemoryStore) Len() int {
	ms.mu.Lock()
	defer ms.mu.Unlock()
	return len(ms.buckets)
}

// Run returns a func for errgroup.Group.Go that removes stale buckets until
// ctx is cancelled. Cancellation is not reported as an error.
func (ms *MemoryStore) Run(ctx context.Context) func() error {
	return func() error {
		ms.mu.Lock()
		if ms.running {
			ms.mu.Unlock()
			return ErrAlreadyStarted
		}
		ms.running = true
		ms.mu.Unlock()

		defer func() {
			ms.mu.Lock()
			ms.running = false
			ms.mu.Unlock()
		}()

		if ms.cleanupInterval <= 0 {
			<-ctx.Done()
			return nil
		}

		ticker := time.NewTicker(ms.cleanupInterval)
		defer ticker.Stop()

		for {
			select {
			case <-ctx.Done():
				return nil
			case <-ticker.C:
				if removed := ms.RemoveStale(); removed > 0 {
					ms.logger.DebugContext(ctx, "stale rate limit buckets removed", slog.Int("removed", removed))
				}
			}
		}
	}
}

// RemoveStale drops buckets idle for longer than the stale threshold.
func (ms *MemoryStore) RemoveStale() int {
	ms.mu.Lock()
	defer ms.mu.Unlock()

	now := time.Now()
	removed := 0
	for key, b := range ms.buckets {
		if now.Sub(b.lastAccess) > ms.staleAfter {
			delete(ms.buckets, key)
			removed++
		}
	}
	return removed
}
