// Package ratelimiter implements token bucket rate limiting.
//
// A Bucket holds the bucket shape (capacity, refill rate and interval) and
// delegates per-key state to a Store. MemoryStore is the in-process store;
// run its cleanup loop next to the HTTP server so idle keys are dropped:
//
//	store := ratelimiter.NewMemoryStore()
//	limiter, err := ratelimiter.NewBucket(store, ratelimiter.Config{
//		Capacity:       60,
//		RefillRate:     1,
//		RefillInterval: time.Second,
//	})
//	if err != nil {
//		return err
//	}
//	g.Go(store.Run(ctx))
//
//	res, err := limiter.Allow(ctx, clientIP)
//	if err == nil && !res.Allowed() {
//		// reject, retry after res.RetryAfter()
//	}
package ratelimiter
