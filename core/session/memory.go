package session

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
)

// MemoryStore keeps sessions in process memory. Sessions are lost on restart.
type MemoryStore[Data any] struct {
	mu      sync.RWMutex
	byID    map[uuid.UUID]Session[Data]
	byToken map[string]uuid.UUID
}

func NewMemoryStore[Data any]() *MemoryStore[Data] {
	return &MemoryStore[Data]{
		byID:    make(map[uuid.UUID]Session[Data]),
		byToken: make(map[string]uuid.UUID),
	}
}

func (s *MemoryStore[Data]) GetByID(_ context.Context, id uuid.UUID) (*Session[Data], error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	sess, ok := s.byID[id]
	if !ok {
		return nil, ErrNotFound
	}
	return &sess, nil
}

func (s *MemoryStore[Data]) GetByToken(ctx context.Context, token string) (*Session[Data], error) {
	s.mu.RLock()
	id, ok := s.byToken[token]
	s.mu.RUnlock()
	if !ok {
		return nil, ErrNotFound
	}
	return s.GetByID(ctx, id)
}

// Save stores a copy of sess, replacing any previous version and token.
func (s *MemoryStore[Data]) Save(_ context.Context, sess *Session[Data]) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if prev, ok := s.byID[sess.ID]; ok && prev.Token != sess.Token {
		delete(s.byToken, prev.Token)
	}
	stored := *sess
	stored.isModified = false
	s.byID[sess.ID] = stored
	s.byToken[sess.Token] = sess.ID
	return nil
}

func (s *MemoryStore[Data]) Delete(_ context.Context, id uuid.UUID) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	sess, ok := s.byID[id]
	if !ok {
		return ErrNotFound
	}
	delete(s.byID, id)
	s.dropToken(sess.Token, id)
	return nil
}

func (s *MemoryStore[Data]) DeleteExpired(_ context.Context) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := time.Now()
	var n int64
	for id, sess := range s.byID {
		if now.After(sess.ExpiresAt) {
			delete(s.byID, id)
			s.dropToken(sess.Token, id)
			n++
		}
	}
	return n, nil
}

// dropToken removes the token index only while it still points at id. An
// expired session's token may already be reissued to a newer session.
func (s *MemoryStore[Data]) dropToken(token string, id uuid.UUID) {
	if s.byToken[token] == id {
		delete(s.byToken, token)
	}
}
