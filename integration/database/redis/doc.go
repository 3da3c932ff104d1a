// Package redis connects to Redis with retries and provides a Redis-backed
// session.Store.
//
//	client, err := redis.Connect(ctx, cfg) // pings with doubling retry interval
//	if err != nil {
//		return err
//	}
//	defer client.Close()
//
//	store := redis.NewSessionStore[polljoy.SessionRecord](client, cfg.KeyPrefix)
//	mgr := session.NewManager[polljoy.SessionRecord](store, 24*time.Hour, 5*time.Minute)
//
//	r.Get("/health/ready", health.Readiness[*router.Context](log, redis.Healthcheck(client)))
//
// Only redis:// and rediss:// URLs are accepted. Session keys carry a TTL equal
// to the session's remaining lifetime, so expired sessions need no sweeping.
package redis
