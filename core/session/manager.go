package session

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
)

// Manager handles session lifecycle: lookup with expiry checks, throttled
// expiry extension, persistence and deletion.
type Manager[Data any] struct {
	store         Store[Data]
	ttl           time.Duration
	touchInterval time.Duration
}

func NewManager[Data any](store Store[Data], ttl, touchInterval time.Duration) *Manager[Data] {
	return &Manager[Data]{
		store:         store,
		ttl:           ttl,
		touchInterval: touchInterval,
	}
}

// GetByID retrieves a session by ID and validates expiration.
func (m *Manager[Data]) GetByID(ctx context.Context, id uuid.UUID) (Session[Data], error) {
	sess, err := m.store.GetByID(ctx, id)
	if err != nil {
		return Session[Data]{}, err
	}
	if sess.IsExpired() {
		return Session[Data]{}, ErrExpired
	}
	return *sess, nil
}

// GetByToken retrieves a session by token and validates expiration.
func (m *Manager[Data]) GetByToken(ctx context.Context, token string) (Session[Data], error) {
	sess, err := m.store.GetByToken(ctx, token)
	if err != nil {
		return Session[Data]{}, err
	}
	if sess.IsExpired() {
		return Session[Data]{}, ErrExpired
	}
	return *sess, nil
}

// Open returns the live session for token, or a new unsaved one bound to
// token when none exists or it has expired.
func (m *Manager[Data]) Open(ctx context.Context, token string) (Session[Data], error) {
	sess, err := m.GetByToken(ctx, token)
	switch {
	case err == nil:
		return sess, nil
	case errors.Is(err, ErrNotFound), errors.Is(err, ErrExpired):
		return NewWithToken[Data](token, m.ttl)
	default:
		return Session[Data]{}, err
	}
}

// Store persists sess according to its state: deleted sessions are removed,
// others are touched and saved when modified.
func (m *Manager[Data]) Store(ctx context.Context, sess Session[Data]) error {
	if sess.IsDeleted() {
		if err := m.store.Delete(ctx, sess.ID); err != nil && !errors.Is(err, ErrNotFound) {
			return errors.Join(ErrDeleteSession, err)
		}
		return nil
	}

	sess.Touch(m.ttl, m.touchInterval)

	if sess.IsModified() {
		if err := m.store.Save(ctx, &sess); err != nil {
			return errors.Join(ErrSaveSession, err)
		}
	}
	return nil
}

// Destroy deletes the session behind token. Unknown tokens are not an error.
func (m *Manager[Data]) Destroy(ctx context.Context, token string) error {
	sess, err := m.store.GetByToken(ctx, token)
	if errors.Is(err, ErrNotFound) {
		return nil
	}
	if err != nil {
		return err
	}
	sess.Invalidate()
	return m.Store(ctx, *sess)
}

// CleanupExpired removes expired sessions and returns how many were removed.
func (m *Manager[Data]) CleanupExpired(ctx context.Context) (int64, error) {
	return m.store.DeleteExpired(ctx)
}

func (m *Manager[Data]) GetTTL() time.Duration {
	return m.ttl
}
