package domain

import (
	"errors"
	"time"
)

var ErrSessionNotFound = errors.New("session not found")

// Identity is the username/email/role snapshot copied into a session when it
// authenticates. It is not a live reference: a role change made after login
// does not touch sessions that were already issued.
type Identity struct {
	Username string `json:"username"`
	Email    string `json:"email"`
	Role     Role   `json:"role"`
}

// Session binds an opaque server-held token to an identity snapshot and an
// absolute expiry. Only the ID ever reaches the client.
type Session struct {
	ID            string    `json:"id"`
	Authenticated bool      `json:"authenticated"`
	Identity      Identity  `json:"identity"`
	CreatedAt     time.Time `json:"created_at"`
	ExpiresAt     time.Time `json:"expires_at"`
}

// Expired reports whether the session's fixed window has elapsed at now.
func (s *Session) Expired(now time.Time) bool {
	return !s.ExpiresAt.IsZero() && now.After(s.ExpiresAt)
}
