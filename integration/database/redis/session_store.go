package redis

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/google/uuid"
	goredis "github.com/redis/go-redis/v9"

	"github.com/dmitrymomot/polljoy/core/session"
)

// SessionStore implements session.Store on Redis. Sessions are stored as JSON
// under "<prefix>token:<token>" with a TTL matching their expiry; an
// "<prefix>id:<id>" key maps the stable ID to the current token.
type SessionStore[Data any] struct {
	client goredis.UniversalClient
	prefix string
}

// NewSessionStore creates a store. An empty prefix defaults to "session:".
func NewSessionStore[Data any](client goredis.UniversalClient, prefix string) *SessionStore[Data] {
	if prefix == "" {
		prefix = "session:"
	}
	return &SessionStore[Data]{client: client, prefix: prefix}
}

func (s *SessionStore[Data]) tokenKey(token string) string {
	return s.prefix + "token:" + token
}

func (s *SessionStore[Data]) idKey(id uuid.UUID) string {
	return s.prefix + "id:" + id.String()
}

func (s *SessionStore[Data]) GetByToken(ctx context.Context, token string) (*session.Session[Data], error) {
	raw, err := s.client.Get(ctx, s.tokenKey(token)).Bytes()
	if errors.Is(err, goredis.Nil) {
		return nil, session.ErrNotFound
	}
	if err != nil {
		return nil, err
	}

	var sess session.Session[Data]
	if err := json.Unmarshal(raw, &sess); err != nil {
		return nil, errors.Join(ErrDecodeSession, err)
	}
	return &sess, nil
}

func (s *SessionStore[Data]) GetByID(ctx context.Context, id uuid.UUID) (*session.Session[Data], error) {
	token, err := s.client.Get(ctx, s.idKey(id)).Result()
	if errors.Is(err, goredis.Nil) {
		return nil, session.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return s.GetByToken(ctx, token)
}

// Save writes the session and its ID index in one transaction. A rotated
// token's old key is removed; an already expired session is deleted instead.
func (s *SessionStore[Data]) Save(ctx context.Context, sess *session.Session[Data]) error {
	ttl := time.Until(sess.ExpiresAt)
	if ttl <= 0 {
		err := s.Delete(ctx, sess.ID)
		if errors.Is(err, session.ErrNotFound) {
			return nil
		}
		return err
	}

	raw, err := json.Marshal(sess)
	if err != nil {
		return errors.Join(ErrEncodeSession, err)
	}

	prevToken, err := s.client.Get(ctx, s.idKey(sess.ID)).Result()
	if err != nil && !errors.Is(err, goredis.Nil) {
		return err
	}

	_, err = s.client.TxPipelined(ctx, func(pipe goredis.Pipeliner) error {
		if prevToken != "" && prevToken != sess.Token {
			pipe.Del(ctx, s.tokenKey(prevToken))
		}
		pipe.Set(ctx, s.tokenKey(sess.Token), raw, ttl)
		pipe.Set(ctx, s.idKey(sess.ID), sess.Token, ttl)
		return nil
	})
	return err
}

func (s *SessionStore[Data]) Delete(ctx context.Context, id uuid.UUID) error {
	token, err := s.client.Get(ctx, s.idKey(id)).Result()
	if errors.Is(err, goredis.Nil) {
		return session.ErrNotFound
	}
	if err != nil {
		return err
	}
	return s.client.Del(ctx, s.tokenKey(token), s.idKey(id)).Err()
}

// DeleteExpired is a no-op: Redis expires keys on its own.
func (s *SessionStore[Data]) DeleteExpired(context.Context) (int64, error) {
	return 0, nil
}

var _ session.Store[struct{}] = (*SessionStore[struct{}])(nil)
