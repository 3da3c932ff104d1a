package session

import (
	"crypto/rand"
	"encoding/base64"
	"errors"
	"time"

	"github.com/google/uuid"
)

// Session is a token-addressed session carrying application data.
type Session[Data any] struct {
	// ID is stable for the session's lifetime; Token may be rotated.
	ID uuid.UUID `json:"id"`

	// Token is 32 random bytes, base64url encoded. It is the client-facing handle.
	Token string `json:"token"`

	Data Data `json:"data"`

	ExpiresAt time.Time `json:"expires_at"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
	DeletedAt time.Time `json:"deleted_at,omitzero"`

	isModified bool
}

// New creates a session with a freshly generated token.
func New[Data any](ttl time.Duration) (Session[Data], error) {
	token, err := GenerateToken()
	if err != nil {
		return Session[Data]{}, err
	}
	return NewWithToken[Data](token, ttl)
}

// NewWithToken creates a session bound to a token issued elsewhere.
func NewWithToken[Data any](token string, ttl time.Duration) (Session[Data], error) {
	if token == "" {
		return Session[Data]{}, ErrMissingToken
	}

	now := time.Now()
	return Session[Data]{
		ID:         uuid.New(),
		Token:      token,
		ExpiresAt:  now.Add(ttl),
		CreatedAt:  now,
		UpdatedAt:  now,
		isModified: true,
	}, nil
}

// SetData replaces the session data.
func (s *Session[Data]) SetData(data Data) {
	s.Data = data
	s.UpdatedAt = time.Now()
	s.isModified = true
}

// Touch extends expiration when at least touchInterval has passed since the last update.
func (s *Session[Data]) Touch(ttl, touchInterval time.Duration) {
	if time.Since(s.UpdatedAt) >= touchInterval {
		now := time.Now()
		s.ExpiresAt = now.Add(ttl)
		s.UpdatedAt = now
		s.isModified = true
	}
}

// Refresh rotates the token and keeps the ID.
func (s *Session[Data]) Refresh() error {
	token, err := GenerateToken()
	if err != nil {
		return err
	}
	s.Token = token
	s.UpdatedAt = time.Now()
	s.isModified = true
	return nil
}

// Invalidate marks the session for deletion on the next Manager.Store.
func (s *Session[Data]) Invalidate() {
	s.DeletedAt = time.Now()
	s.isModified = true
}

func (s Session[Data]) IsDeleted() bool {
	return !s.DeletedAt.IsZero()
}

func (s Session[Data]) IsModified() bool {
	return s.isModified
}

func (s Session[Data]) IsExpired() bool {
	return time.Now().After(s.ExpiresAt)
}

// GenerateToken returns 256 random bits as unpadded base64url.
func GenerateToken() (string, error) {
	b := make([]byte, 32)
	if _, err := rand.Read(b); err != nil {
		return "", errors.Join(ErrTokenGeneration, err)
	}
	return base64.RawURLEncoding.EncodeToString(b), nil
}
