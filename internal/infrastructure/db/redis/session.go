package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/tableside/restaurant-console/internal/core/domain"
)

// SessionStore persists sessions under session:<id> with a TTL bounded by the
// backend token's expiry. It is the single owner of session state; nothing
// else reads or writes these keys.
type SessionStore struct {
	client *redis.Client
	ttl    time.Duration
}

// NewSessionStore wraps a Redis client. ttl caps a session's lifetime when
// the token expiry is missing or further out.
func NewSessionStore(client *redis.Client, ttl time.Duration) *SessionStore {
	if ttl <= 0 {
		ttl = 24 * time.Hour
	}
	return &SessionStore{client: client, ttl: ttl}
}

func (s *SessionStore) key(id string) string {
	return "session:" + id
}

// Get returns the session for id, or domain.ErrNotFound when the key is
// missing or the stored session has outlived its token.
func (s *SessionStore) Get(ctx context.Context, id string) (*domain.Session, error) {
	raw, err := s.client.Get(ctx, s.key(id)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, domain.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("session get: %w", err)
	}

	var sess domain.Session
	if err := json.Unmarshal(raw, &sess); err != nil {
		return nil, fmt.Errorf("session decode: %w", err)
	}
	if sess.Expired(time.Now()) {
		_ = s.client.Del(ctx, s.key(id)).Err()
		return nil, domain.ErrNotFound
	}
	return &sess, nil
}

// Set stores the session, expiring with the token where that is sooner than
// the configured cap.
func (s *SessionStore) Set(ctx context.Context, sess *domain.Session) error {
	raw, err := json.Marshal(sess)
	if err != nil {
		return fmt.Errorf("session encode: %w", err)
	}

	ttl := s.ttl
	if !sess.ExpiresAt.IsZero() {
		if until := time.Until(sess.ExpiresAt); until > 0 && until < ttl {
			ttl = until
		}
	}
	return s.client.Set(ctx, s.key(sess.ID), raw, ttl).Err()
}

// Clear removes the session. Clearing an absent session is not an error.
func (s *SessionStore) Clear(ctx context.Context, id string) error {
	return s.client.Del(ctx, s.key(id)).Err()
}
