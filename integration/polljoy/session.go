package polljoy

import (
	"context"
	"errors"

	"github.com/dmitrymomot/polljoy/core/session"
)

// SessionRecord is what the connector remembers per browser session.
type SessionRecord struct {
	// DeviceID is the device id the current session was registered for.
	DeviceID string `json:"device_id"`
	// CurrentSession is the sanitized registerSession payload.
	CurrentSession string `json:"current_session,omitempty"`
}

// Active reports whether a registered session is cached.
func (r SessionRecord) Active() bool {
	return r.CurrentSession != ""
}

// SessionStore persists session records by an opaque handle.
// Load returns a zero record for unknown handles.
type SessionStore interface {
	Load(ctx context.Context, handle string) (SessionRecord, error)
	Save(ctx context.Context, handle string, record SessionRecord) error
	Invalidate(ctx context.Context, handle string) error
}

// managerStore adapts a session manager to SessionStore. The handle is the
// session token. An empty handle is treated as a session that is never stored.
type managerStore struct {
	manager *session.Manager[SessionRecord]
}

// NewSessionStore returns a SessionStore backed by manager.
func NewSessionStore(manager *session.Manager[SessionRecord]) SessionStore {
	return &managerStore{manager: manager}
}

func (s *managerStore) Load(ctx context.Context, handle string) (SessionRecord, error) {
	if handle == "" {
		return SessionRecord{}, nil
	}
	sess, err := s.manager.GetByToken(ctx, handle)
	switch {
	case err == nil:
		return sess.Data, nil
	case errors.Is(err, session.ErrNotFound), errors.Is(err, session.ErrExpired):
		return SessionRecord{}, nil
	default:
		return SessionRecord{}, errors.Join(ErrSessionStore, err)
	}
}

func (s *managerStore) Save(ctx context.Context, handle string, record SessionRecord) error {
	if handle == "" {
		return nil
	}
	sess, err := s.manager.Open(ctx, handle)
	if err != nil {
		return errors.Join(ErrSessionStore, err)
	}
	sess.SetData(record)
	if err := s.manager.Store(ctx, sess); err != nil {
		return errors.Join(ErrSessionStore, err)
	}
	return nil
}

// Invalidate drops the cached registration and keeps the rest of the record.
func (s *managerStore) Invalidate(ctx context.Context, handle string) error {
	if handle == "" {
		return nil
	}
	sess, err := s.manager.GetByToken(ctx, handle)
	switch {
	case errors.Is(err, session.ErrNotFound), errors.Is(err, session.ErrExpired):
		return nil
	case err != nil:
		return errors.Join(ErrSessionStore, err)
	}
	if !sess.Data.Active() {
		return nil
	}

	record := sess.Data
	record.CurrentSession = ""
	sess.SetData(record)
	if err := s.manager.Store(ctx, sess); err != nil {
		return errors.Join(ErrSessionStore, err)
	}
	return nil
}
