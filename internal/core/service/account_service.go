package service

import (
	"context"

	"github.com/TinLeaves/members-portal/internal/core/domain"
	"github.com/TinLeaves/members-portal/internal/core/ports"
)

// AccountService implements the admin-only user listing and role mutations.
// Every mutation re-checks the acting identity's role, independent of the
// route gating, so a mis-wired route cannot reach it.
type AccountService struct {
	users ports.UserRepository
}

func NewAccountService(users ports.UserRepository) *AccountService {
	return &AccountService{users: users}
}

// ListUsers returns the username+role projection for the admin dashboard.
func (s *AccountService) ListUsers(ctx context.Context) ([]domain.UserSummary, error) {
	return s.users.ListAll(ctx)
}

// SetRole changes a user's role. Concurrent calls on the same user resolve to
// last write wins; sessions already open for that user keep their snapshotted
// role until they are reissued.
func (s *AccountService) SetRole(ctx context.Context, acting domain.Identity, username string, role domain.Role) error {
	if acting.Role != domain.RoleAdmin {
		return domain.ErrForbidden
	}
	if !role.Valid() {
		return domain.ErrUnknownRole
	}
	return s.users.SetRole(ctx, username, role)
}

// Promote grants the admin role.
func (s *AccountService) Promote(ctx context.Context, acting domain.Identity, username string) error {
	return s.SetRole(ctx, acting, username, domain.RoleAdmin)
}

// Demote reverts a user to the default role.
func (s *AccountService) Demote(ctx context.Context, acting domain.Identity, username string) error {
	return s.SetRole(ctx, acting, username, domain.RoleUser)
}
