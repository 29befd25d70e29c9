package domain

import (
	"errors"
	"time"
)

// Role is the coarse-grained privilege level attached to a user.
type Role string

const (
	RoleUser  Role = "user"
	RoleAdmin Role = "admin"
)

// Valid reports whether r is one of the known roles.
func (r Role) Valid() bool {
	return r == RoleUser || r == RoleAdmin
}

var ErrValidation = errors.New("invalid input")
var ErrUserExists = errors.New("user already exists")
var ErrUserNotFound = errors.New("user not found")
var ErrInvalidCredentials = errors.New("invalid email/password combination")
var ErrUnknownRole = errors.New("unknown role")
var ErrForbidden = errors.New("not authorized")
var ErrHashFormat = errors.New("malformed password hash")

// User models a registered account. Username is the human-facing handle and
// the lookup key for privileged operations; Email is the login key. Both are
// unique, enforced by the credential store.
type User struct {
	ID           string    `json:"id"`
	Username     string    `json:"username"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"`
	Role         Role      `json:"role"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// UserSummary is the administrative listing projection. It deliberately
// carries no email and no password hash.
type UserSummary struct {
	Username string `json:"username"`
	Role     Role   `json:"role"`
}
