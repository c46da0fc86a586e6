package repository

import (
	"context"
	"errors"
	"time"

	"blog-platform/backend/internal/user/domain"
)

// ErrDuplicateEmail is returned by Create when the store-level unique
// constraint on email rejects the insert. The unique constraint, not the
// application-level existence check, is the arbiter for concurrent registers.
var ErrDuplicateEmail = errors.New("email already registered")

// Repository is the user store contract used by the auth service.
type Repository interface {
	// GetByEmail returns the user with the given email joined with its role,
	// or nil if not found. The password hash is excluded unless
	// includePasswordHash is set (defense-in-depth: credential material is
	// opt-in, never part of the default projection).
	GetByEmail(ctx context.Context, email string, includePasswordHash bool) (*domain.User, error)
	// GetByID returns the user for id joined with its role, or nil if not
	// found. The stored refresh-token digest is excluded unless
	// includeRefreshHash is set.
	GetByID(ctx context.Context, id string, includeRefreshHash bool) (*domain.User, error)
	// ExistsByEmail reports whether a user with the given email exists.
	ExistsByEmail(ctx context.Context, email string) (bool, error)
	// Create persists the user. The user must have ID and Role.ID set.
	// Returns ErrDuplicateEmail on a unique-constraint violation.
	Create(ctx context.Context, u *domain.User) error
	// UpdateRefreshState replaces the stored refresh digest and server-side
	// expiry for the user; nil values clear the slot (logout). Returns the
	// number of rows affected. The overwrite is unconditional: two concurrent
	// refreshes of the same token race last-writer-wins, and closing that
	// fully would need a compare-and-swap on the stored digest.
	UpdateRefreshState(ctx context.Context, id string, refreshTokenHash *string, expiresAt *time.Time) (int64, error)
}
