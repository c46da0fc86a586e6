package domain

import (
	"errors"
	"time"

	roledomain "blog-platform/backend/internal/role/domain"
)

// User is the core account entity. PasswordHash and RefreshTokenHash are
// excluded from default store projections and only populated when a caller
// asks for them explicitly; they must never be serialized outward.
type User struct {
	ID           string
	Name         string
	Email        string
	PasswordHash string
	IsActive     bool
	Role         roledomain.Role

	// Refresh session state: at most one live refresh token per user.
	// Issuing a new one overwrites both fields; logout clears them.
	RefreshTokenHash      string
	RefreshTokenExpiresAt *time.Time

	CreatedAt time.Time
	UpdatedAt time.Time
}

// Validate validates the user for persistence. Returns an error describing
// the first validation failure.
func (u *User) Validate() error {
	if u.Email == "" {
		return errors.New("email is required")
	}
	if u.Name == "" {
		return errors.New("name is required")
	}
	if !u.Role.Code.Valid() {
		return errors.New("role code is not a known role")
	}
	return nil
}
