package ports

import (
	"context"

	"github.com/TinLeaves/members-portal/internal/core/domain"
)

// AccountService exposes the admin-only operations. The acting identity is
// passed explicitly so each call re-checks the admin role independently of
// the route gating.
type AccountService interface {
	ListUsers(ctx context.Context) ([]domain.UserSummary, error)
	SetRole(ctx context.Context, acting domain.Identity, username string, role domain.Role) error
	Promote(ctx context.Context, acting domain.Identity, username string) error
	Demote(ctx context.Context, acting domain.Identity, username string) error
}
