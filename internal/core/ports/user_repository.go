package ports

import (
	"context"

	"github.com/TinLeaves/members-portal/internal/core/domain"
)

// UserRepository defines the persistence contract for user credentials.
// Create must be atomic with respect to the username/email uniqueness
// constraint: a duplicate insert fails with domain.ErrUserExists rather than
// relying on a separate caller-side existence check.
type UserRepository interface {
	Create(ctx context.Context, user *domain.User) (*domain.User, error)
	FindByUsername(ctx context.Context, username string) (*domain.User, error)
	FindByEmail(ctx context.Context, email string) (*domain.User, error)
	SetRole(ctx context.Context, username string, role domain.Role) error
	ListAll(ctx context.Context) ([]domain.UserSummary, error)
}
