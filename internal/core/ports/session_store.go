package ports

import (
	"context"

	"github.com/TinLeaves/members-portal/internal/core/domain"
)

// SessionStore persists session records keyed by their opaque ID. The store
// must honour each record's ExpiresAt so that expired sessions become
// unreadable without a scan (a per-key TTL in the Redis implementation).
type SessionStore interface {
	// Put writes or overwrites a session record.
	Put(ctx context.Context, session *domain.Session) error
	// Get returns domain.ErrSessionNotFound for missing or expired sessions.
	Get(ctx context.Context, id string) (*domain.Session, error)
	// Delete removes a session. Deleting an absent session is not an error.
	Delete(ctx context.Context, id string) error
}
