package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/TinLeaves/members-portal/internal/core/domain"
)

func seededRepo(t *testing.T) *stubUserRepo {
	t.Helper()
	repo := newStubUserRepo()
	now := time.Now().UTC()
	for _, u := range []*domain.User{
		{Username: "alice", Email: "alice@example.com", PasswordHash: "x", Role: domain.RoleUser, CreatedAt: now},
		{Username: "root", Email: "root@example.com", PasswordHash: "x", Role: domain.RoleAdmin, CreatedAt: now},
	} {
		if _, err := repo.Create(context.Background(), u); err != nil {
			t.Fatalf("seed user %s: %v", u.Username, err)
		}
	}
	return repo
}

var actingAdmin = domain.Identity{Username: "root", Email: "root@example.com", Role: domain.RoleAdmin}
var actingUser = domain.Identity{Username: "alice", Email: "alice@example.com", Role: domain.RoleUser}

func TestAccountService_PromoteDemote(t *testing.T) {
	repo := seededRepo(t)
	svc := NewAccountService(repo)

	if err := svc.Promote(context.Background(), actingAdmin, "alice"); err != nil {
		t.Fatalf("promote failed: %v", err)
	}
	if got := repo.users["alice"].Role; got != domain.RoleAdmin {
		t.Fatalf("expected admin after promote, got %s", got)
	}

	if err := svc.Demote(context.Background(), actingAdmin, "alice"); err != nil {
		t.Fatalf("demote failed: %v", err)
	}
	if got := repo.users["alice"].Role; got != domain.RoleUser {
		t.Fatalf("expected user after demote, got %s", got)
	}
}

func TestAccountService_SetRole_Forbidden(t *testing.T) {
	repo := seededRepo(t)
	svc := NewAccountService(repo)

	if err := svc.SetRole(context.Background(), actingUser, "root", domain.RoleUser); !errors.Is(err, domain.ErrForbidden) {
		t.Fatalf("expected ErrForbidden for non-admin actor, got %v", err)
	}
	if got := repo.users["root"].Role; got != domain.RoleAdmin {
		t.Fatalf("role must not change on forbidden call, got %s", got)
	}
}

func TestAccountService_SetRole_UnknownRole(t *testing.T) {
	svc := NewAccountService(seededRepo(t))

	if err := svc.SetRole(context.Background(), actingAdmin, "alice", domain.Role("owner")); !errors.Is(err, domain.ErrUnknownRole) {
		t.Fatalf("expected ErrUnknownRole, got %v", err)
	}
}

func TestAccountService_SetRole_NotFound(t *testing.T) {
	svc := NewAccountService(seededRepo(t))

	if err := svc.Promote(context.Background(), actingAdmin, "ghost"); !errors.Is(err, domain.ErrUserNotFound) {
		t.Fatalf("expected ErrUserNotFound, got %v", err)
	}
}

func TestAccountService_ListUsers_Projection(t *testing.T) {
	svc := NewAccountService(seededRepo(t))

	users, err := svc.ListUsers(context.Background())
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}
	if len(users) != 2 {
		t.Fatalf("expected 2 users, got %d", len(users))
	}
	for _, u := range users {
		if u.Username == "" || !u.Role.Valid() {
			t.Fatalf("incomplete projection entry: %+v", u)
		}
	}
}
