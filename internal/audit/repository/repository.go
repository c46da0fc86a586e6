package repository

import (
	"context"

	"blog-platform/backend/internal/audit/domain"
)

// Repository is the audit log store contract.
type Repository interface {
	// Create persists one audit log entry.
	Create(ctx context.Context, entry *domain.AuditLog) error
	// ListByUser returns up to limit entries for the user, newest first.
	ListByUser(ctx context.Context, userID string, limit int32) ([]*domain.AuditLog, error)
}
