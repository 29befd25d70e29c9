package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/go-playground/validator/v10"

	"github.com/TinLeaves/members-portal/internal/core/domain"
	"github.com/TinLeaves/members-portal/internal/core/ports"
)

// dummyHash is a syntactically valid bcrypt hash compared against when a
// login email matches no account, so the unknown-email and wrong-password
// paths cost roughly the same.
const dummyHash = "$2a$12$ZirRjCXgcpkLLheQDTIS4uBb4jEVNCdC9iL9FrTCQQZDVBisqMO2e"

var validate = validator.New()

// AuthService implements registration, login and session checks.
type AuthService struct {
	users    ports.UserRepository
	hasher   ports.PasswordHasher
	sessions *SessionManager
}

func NewAuthService(users ports.UserRepository, hasher ports.PasswordHasher, sessions *SessionManager) *AuthService {
	return &AuthService{users: users, hasher: hasher, sessions: sessions}
}

// Register validates input, hashes the password, persists the user with the
// default role and issues an authenticated session. Uniqueness is enforced by
// the store's conditional insert, not a separate lookup.
func (s *AuthService) Register(ctx context.Context, username, email, password string) (*domain.Session, error) {
	if err := validateField("username", username, "required,alphanum,max=20"); err != nil {
		return nil, err
	}
	if err := validateField("email", email, "required,email"); err != nil {
		return nil, err
	}
	if err := validateField("password", password, "required,max=20"); err != nil {
		return nil, err
	}

	hash, err := s.hasher.Hash(password)
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	user := &domain.User{
		Username:     username,
		Email:        email,
		PasswordHash: hash,
		Role:         domain.RoleUser,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	created, err := s.users.Create(ctx, user)
	if err != nil {
		return nil, err
	}

	return s.openSession(ctx, created)
}

// Login verifies credentials by email. Unknown email and wrong password are
// deliberately indistinguishable: both fail with ErrInvalidCredentials and
// the unknown-email path still burns a bcrypt comparison.
func (s *AuthService) Login(ctx context.Context, email, password string) (*domain.Session, error) {
	if err := validateField("email", email, "required,email"); err != nil {
		return nil, err
	}
	if err := validateField("password", password, "required,max=20"); err != nil {
		return nil, err
	}

	user, err := s.users.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			_, _ = s.hasher.Verify(password, dummyHash)
			return nil, domain.ErrInvalidCredentials
		}
		return nil, err
	}

	ok, err := s.hasher.Verify(password, user.PasswordHash)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, domain.ErrInvalidCredentials
	}

	return s.openSession(ctx, user)
}

// Logout destroys the session. Idempotent: a second logout, or a logout with
// an unknown token, succeeds and leaves the session equally unusable.
func (s *AuthService) Logout(ctx context.Context, sessionID string) error {
	return s.sessions.Destroy(ctx, sessionID)
}

// CheckSession resolves a session ID to its snapshotted identity. Missing,
// destroyed, expired and never-authenticated sessions all collapse to
// (nil, false, nil); the error return is reserved for store failures.
func (s *AuthService) CheckSession(ctx context.Context, sessionID string) (*domain.Identity, bool, error) {
	session, err := s.sessions.Resolve(ctx, sessionID)
	if err != nil {
		if errors.Is(err, domain.ErrSessionNotFound) {
			return nil, false, nil
		}
		return nil, false, err
	}
	if !session.Authenticated {
		return nil, false, nil
	}
	ident := session.Identity
	return &ident, true, nil
}

// RequireRole grants when the session is authenticated and its snapshotted
// role matches exactly. The two denial reasons stay distinct so callers can
// redirect anonymous visitors but reject mis-roled ones.
func (s *AuthService) RequireRole(ctx context.Context, sessionID string, role domain.Role) error {
	ident, authenticated, err := s.CheckSession(ctx, sessionID)
	if err != nil {
		return err
	}
	if !authenticated {
		return domain.ErrSessionNotFound
	}
	if ident.Role != role {
		return domain.ErrForbidden
	}
	return nil
}

// openSession issues a fresh session and promotes it with the user's identity
// snapshot. The snapshot is fixed at this instant: later role changes do not
// reach it.
func (s *AuthService) openSession(ctx context.Context, user *domain.User) (*domain.Session, error) {
	session, err := s.sessions.Issue(ctx)
	if err != nil {
		return nil, err
	}
	return s.sessions.Authenticate(ctx, session.ID, domain.Identity{
		Username: user.Username,
		Email:    user.Email,
		Role:     user.Role,
	})
}

func validateField(name, value, rules string) error {
	if err := validate.Var(value, rules); err != nil {
		return fmt.Errorf("%w: invalid %s", domain.ErrValidation, name)
	}
	return nil
}
