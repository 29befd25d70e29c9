package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/TinLeaves/members-portal/internal/core/domain"
)

func newTestSessionManager() (*SessionManager, *stubSessionStore, *fakeClock) {
	store := newStubSessionStore()
	clock := &fakeClock{t: time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)}
	mgr := NewSessionManager(store, time.Hour)
	mgr.now = clock.Now
	return mgr, store, clock
}

func TestSessionManager_Issue_Anonymous(t *testing.T) {
	mgr, _, _ := newTestSessionManager()

	session, err := mgr.Issue(context.Background())
	if err != nil {
		t.Fatalf("issue failed: %v", err)
	}
	if session.ID == "" {
		t.Fatalf("expected a session ID")
	}
	if session.Authenticated {
		t.Fatalf("fresh session must be anonymous")
	}

	resolved, err := mgr.Resolve(context.Background(), session.ID)
	if err != nil {
		t.Fatalf("resolve failed: %v", err)
	}
	if resolved.Authenticated {
		t.Fatalf("resolved session must still be anonymous")
	}
}

func TestSessionManager_Issue_UniqueIDs(t *testing.T) {
	mgr, _, _ := newTestSessionManager()

	seen := make(map[string]struct{})
	for i := 0; i < 50; i++ {
		session, err := mgr.Issue(context.Background())
		if err != nil {
			t.Fatalf("issue failed: %v", err)
		}
		if _, dup := seen[session.ID]; dup {
			t.Fatalf("duplicate session ID issued: %s", session.ID)
		}
		seen[session.ID] = struct{}{}
	}
}

func TestSessionManager_Authenticate_SnapshotsIdentity(t *testing.T) {
	mgr, _, clock := newTestSessionManager()

	session, _ := mgr.Issue(context.Background())
	ident := domain.Identity{Username: "alice", Email: "alice@example.com", Role: domain.RoleUser}

	authed, err := mgr.Authenticate(context.Background(), session.ID, ident)
	if err != nil {
		t.Fatalf("authenticate failed: %v", err)
	}
	if !authed.Authenticated {
		t.Fatalf("expected authenticated session")
	}
	if authed.Identity != ident {
		t.Fatalf("unexpected snapshot: %+v", authed.Identity)
	}
	if want := clock.t.Add(time.Hour); !authed.ExpiresAt.Equal(want) {
		t.Fatalf("expected expiry %v, got %v", want, authed.ExpiresAt)
	}
}

func TestSessionManager_Authenticate_UnknownSession(t *testing.T) {
	mgr, _, _ := newTestSessionManager()

	_, err := mgr.Authenticate(context.Background(), "missing", domain.Identity{Username: "x"})
	if !errors.Is(err, domain.ErrSessionNotFound) {
		t.Fatalf("expected ErrSessionNotFound, got %v", err)
	}
}

func TestSessionManager_Resolve_Expired(t *testing.T) {
	mgr, store, clock := newTestSessionManager()

	session, _ := mgr.Issue(context.Background())
	if _, err := mgr.Authenticate(context.Background(), session.ID, domain.Identity{Username: "bob"}); err != nil {
		t.Fatalf("authenticate failed: %v", err)
	}

	clock.t = clock.t.Add(61 * time.Minute)
	if _, err := mgr.Resolve(context.Background(), session.ID); !errors.Is(err, domain.ErrSessionNotFound) {
		t.Fatalf("expected ErrSessionNotFound for expired session, got %v", err)
	}
	// lazy expiry also drops the record
	if _, ok := store.sessions[session.ID]; ok {
		t.Fatalf("expired session record should have been deleted")
	}
}

func TestSessionManager_Destroy_Idempotent(t *testing.T) {
	mgr, _, _ := newTestSessionManager()

	session, _ := mgr.Issue(context.Background())
	if err := mgr.Destroy(context.Background(), session.ID); err != nil {
		t.Fatalf("destroy failed: %v", err)
	}
	if err := mgr.Destroy(context.Background(), session.ID); err != nil {
		t.Fatalf("second destroy failed: %v", err)
	}
	if err := mgr.Destroy(context.Background(), "never-issued"); err != nil {
		t.Fatalf("destroy of unknown session failed: %v", err)
	}

	if _, err := mgr.Resolve(context.Background(), session.ID); !errors.Is(err, domain.ErrSessionNotFound) {
		t.Fatalf("destroyed session should not resolve, got %v", err)
	}
}

func TestSessionManager_Resolve_EmptyID(t *testing.T) {
	mgr, _, _ := newTestSessionManager()

	if _, err := mgr.Resolve(context.Background(), ""); !errors.Is(err, domain.ErrSessionNotFound) {
		t.Fatalf("expected ErrSessionNotFound for empty ID, got %v", err)
	}
}
