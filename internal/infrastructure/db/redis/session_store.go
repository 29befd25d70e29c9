package redis

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/TinLeaves/members-portal/internal/core/domain"
)

// SessionStore persists session records in Redis.
// Key format: session:<session_id>
//
// Each key carries a TTL matching the record's ExpiresAt, so expired sessions
// vanish on their own and no sweep is ever needed.
type SessionStore struct {
	client *redis.Client
}

// NewSessionStore creates a SessionStore wrapping the given Redis client.
func NewSessionStore(client *redis.Client) *SessionStore {
	return &SessionStore{client: client}
}

type sessionDoc struct {
	ID            string    `json:"id"`
	Authenticated bool      `json:"authenticated"`
	Username      string    `json:"username,omitempty"`
	Email         string    `json:"email,omitempty"`
	Role          string    `json:"role,omitempty"`
	CreatedAt     time.Time `json:"created_at"`
	ExpiresAt     time.Time `json:"expires_at"`
}

// Put writes the session record with a TTL running to its expiry instant.
// A record that is already past its expiry is simply deleted.
func (s *SessionStore) Put(ctx context.Context, session *domain.Session) error {
	ttl := time.Until(session.ExpiresAt)
	if ttl <= 0 {
		return s.Delete(ctx, session.ID)
	}

	doc := sessionDoc{
		ID:            session.ID,
		Authenticated: session.Authenticated,
		Username:      session.Identity.Username,
		Email:         session.Identity.Email,
		Role:          string(session.Identity.Role),
		CreatedAt:     session.CreatedAt,
		ExpiresAt:     session.ExpiresAt,
	}
	payload, err := json.Marshal(doc)
	if err != nil {
		return fmt.Errorf("marshal session: %w", err)
	}

	if err := s.client.Set(ctx, s.key(session.ID), payload, ttl).Err(); err != nil {
		return fmt.Errorf("put session: %w", err)
	}
	return nil
}

// Get returns domain.ErrSessionNotFound for missing or already-expired keys.
func (s *SessionStore) Get(ctx context.Context, id string) (*domain.Session, error) {
	payload, err := s.client.Get(ctx, s.key(id)).Bytes()
	if err == redis.Nil {
		return nil, domain.ErrSessionNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get session: %w", err)
	}

	var doc sessionDoc
	if err := json.Unmarshal(payload, &doc); err != nil {
		return nil, fmt.Errorf("unmarshal session: %w", err)
	}

	return &domain.Session{
		ID:            doc.ID,
		Authenticated: doc.Authenticated,
		Identity: domain.Identity{
			Username: doc.Username,
			Email:    doc.Email,
			Role:     domain.Role(doc.Role),
		},
		CreatedAt: doc.CreatedAt,
		ExpiresAt: doc.ExpiresAt,
	}, nil
}

// Delete removes the session key. Deleting an absent key is not an error.
func (s *SessionStore) Delete(ctx context.Context, id string) error {
	if err := s.client.Del(ctx, s.key(id)).Err(); err != nil {
		return fmt.Errorf("delete session: %w", err)
	}
	return nil
}

func (s *SessionStore) key(id string) string {
	return "session:" + id
}
