package ports

import (
	"context"

	"github.com/TinLeaves/members-portal/internal/core/domain"
)

// AuthService is the boundary the presentation layer calls for the credential
// and session lifecycle.
type AuthService interface {
	// Register validates input, stores the new user with role "user" and
	// returns a freshly authenticated session.
	Register(ctx context.Context, username, email, password string) (*domain.Session, error)
	// Login verifies credentials by email and returns a freshly authenticated
	// session. Unknown email and wrong password fail identically with
	// domain.ErrInvalidCredentials.
	Login(ctx context.Context, email, password string) (*domain.Session, error)
	// Logout destroys the session. Always succeeds, including for sessions
	// that are already gone.
	Logout(ctx context.Context, sessionID string) error
	// CheckSession resolves a session ID to its identity snapshot. Missing,
	// destroyed and expired sessions all come back as (nil, false, nil).
	CheckSession(ctx context.Context, sessionID string) (*domain.Identity, bool, error)
	// RequireRole returns nil when the session is authenticated and its
	// snapshotted role matches exactly; domain.ErrSessionNotFound when not
	// authenticated; domain.ErrForbidden when authenticated with the wrong
	// role.
	RequireRole(ctx context.Context, sessionID string, role domain.Role) error
}
