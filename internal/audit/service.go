package audit

import (
	"context"
	"log"

	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"blog-platform/backend/internal/audit/domain"
	auditrepo "blog-platform/backend/internal/audit/repository"
	"blog-platform/backend/internal/platform/rbac"
)

const (
	defaultListLimit = 50
	maxListLimit     = 200
)

// Service serves audit log queries. Reads are admin-only: the trail exists
// for operators, not for the users it records.
type Service struct {
	repo auditrepo.Repository
}

// NewService returns an audit query Service backed by the given repository.
func NewService(repo auditrepo.Repository) *Service {
	return &Service{repo: repo}
}

// ListForUser returns up to limit audit entries for the target user, newest
// first. The caller identity in ctx must carry the ADMIN role. limit values
// outside (0, maxListLimit] are clamped to the defaults.
func (s *Service) ListForUser(ctx context.Context, targetUserID string, limit int32) ([]*domain.AuditLog, error) {
	if _, err := rbac.RequireAdmin(ctx); err != nil {
		return nil, err
	}
	if targetUserID == "" {
		return nil, status.Error(codes.InvalidArgument, "user id required")
	}
	if limit <= 0 {
		limit = defaultListLimit
	}
	if limit > maxListLimit {
		limit = maxListLimit
	}
	entries, err := s.repo.ListByUser(ctx, targetUserID, limit)
	if err != nil {
		log.Printf("audit: failed to list entries for %s: %v", targetUserID, err)
		return nil, status.Error(codes.Internal, "failed to list audit logs")
	}
	return entries, nil
}
