// Package session keeps generic, token-addressed server-side sessions.
//
// A Session[Data] holds application data under a random token that the
// transport layer (see core/sessiontransport) hands to the client. The
// Manager validates expiry on read, extends sessions on activity at most once
// per touch interval, and deletes sessions marked with Invalidate.
//
//	type Record struct {
//		DeviceID string `json:"device_id"`
//	}
//
//	mgr := session.NewManager[Record](session.NewMemoryStore[Record](), 24*time.Hour, 5*time.Minute)
//
//	sess, err := mgr.Open(ctx, token) // existing session or a fresh one for token
//	if err != nil {
//		return err
//	}
//	sess.SetData(Record{DeviceID: "abc"})
//	if err := mgr.Store(ctx, sess); err != nil {
//		return err
//	}
//
// Store implementations must be safe for concurrent use. MemoryStore lives in
// this package; a Redis store lives in integration/database/redis.
package session
