package service

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"errors"
	"fmt"
	"time"

	"github.com/TinLeaves/members-portal/internal/core/domain"
	"github.com/TinLeaves/members-portal/internal/core/ports"
)

const defaultSessionTTL = time.Hour

// SessionManager owns the session lifecycle: anonymous issue, promotion to
// authenticated with an identity snapshot, lazy expiry at resolution time,
// and idempotent destruction. It is the only writer of session records.
type SessionManager struct {
	store ports.SessionStore
	ttl   time.Duration
	now   func() time.Time
}

// NewSessionManager creates a manager with a fixed expiry window. If ttl <= 0,
// defaultSessionTTL is used.
func NewSessionManager(store ports.SessionStore, ttl time.Duration) *SessionManager {
	if ttl <= 0 {
		ttl = defaultSessionTTL
	}
	return &SessionManager{store: store, ttl: ttl, now: time.Now}
}

// Issue creates and persists a new anonymous session. Anonymous sessions get
// the same fixed window as authenticated ones so abandoned records age out.
func (m *SessionManager) Issue(ctx context.Context) (*domain.Session, error) {
	id, err := newSessionID()
	if err != nil {
		return nil, err
	}

	now := m.now().UTC()
	session := &domain.Session{
		ID:        id,
		CreatedAt: now,
		ExpiresAt: now.Add(m.ttl),
	}
	if err := m.store.Put(ctx, session); err != nil {
		return nil, err
	}
	return session, nil
}

// Authenticate promotes an anonymous session, snapshotting the identity and
// restarting the fixed expiry window from this instant.
func (m *SessionManager) Authenticate(ctx context.Context, sessionID string, ident domain.Identity) (*domain.Session, error) {
	session, err := m.Resolve(ctx, sessionID)
	if err != nil {
		return nil, err
	}

	session.Authenticated = true
	session.Identity = ident
	session.ExpiresAt = m.now().UTC().Add(m.ttl)

	if err := m.store.Put(ctx, session); err != nil {
		return nil, err
	}
	return session, nil
}

// Resolve looks up a session by ID. Missing, destroyed and expired sessions
// are indistinguishable: all yield domain.ErrSessionNotFound. Expiry is
// checked lazily here; the store's TTL is the backstop.
func (m *SessionManager) Resolve(ctx context.Context, sessionID string) (*domain.Session, error) {
	if sessionID == "" {
		return nil, domain.ErrSessionNotFound
	}

	session, err := m.store.Get(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	if session.Expired(m.now().UTC()) {
		_ = m.store.Delete(ctx, sessionID)
		return nil, domain.ErrSessionNotFound
	}
	return session, nil
}

// Destroy removes the session record entirely so the token is permanently
// invalid. Destroying an absent session is a no-op, never an error.
func (m *SessionManager) Destroy(ctx context.Context, sessionID string) error {
	if sessionID == "" {
		return nil
	}
	if err := m.store.Delete(ctx, sessionID); err != nil && !errors.Is(err, domain.ErrSessionNotFound) {
		return err
	}
	return nil
}

// newSessionID returns a 256-bit random token, hex encoded. The token is the
// only value that ever reaches the client, so it must be unguessable.
func newSessionID() (string, error) {
	buf := make([]byte, 32)
	if _, err := rand.Read(buf); err != nil {
		return "", fmt.Errorf("generate session id: %w", err)
	}
	return hex.EncodeToString(buf), nil
}
