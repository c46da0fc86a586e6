package repository

import (
	"context"

	"blog-platform/backend/internal/role/domain"
)

// Repository is the role lookup contract used by the auth service and seeders.
type Repository interface {
	// GetByCode returns the role with the given stable code, or nil if not found.
	GetByCode(ctx context.Context, code domain.Code) (*domain.Role, error)
	// GetByName returns the role with the given display name, or nil if not found.
	// Kept for migration tolerance: older datasets identify roles by name only.
	GetByName(ctx context.Context, name string) (*domain.Role, error)
	// Create persists the role. The role must have ID set.
	Create(ctx context.Context, r *domain.Role) error
}
