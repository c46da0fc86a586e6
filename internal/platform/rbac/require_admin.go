// Package rbac holds role-based guards evaluated against the request identity
// placed in context by the auth interceptor.
package rbac

import (
	"context"

	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	roledomain "blog-platform/backend/internal/role/domain"
	"blog-platform/backend/internal/server/interceptors"
)

// RequireAdmin ensures the caller is authenticated and carries the ADMIN role.
// Returns (userID, nil) on success; returns a gRPC error (Unauthenticated or
// PermissionDenied) on failure. Role is read from the validated token, not the
// store, so a role change takes effect on the next token issuance.
func RequireAdmin(ctx context.Context) (userID string, err error) {
	userID, okUser := interceptors.GetUserID(ctx)
	roleCode, okRole := interceptors.GetRoleCode(ctx)
	if !okUser || userID == "" || !okRole {
		return "", status.Error(codes.Unauthenticated, "user context required")
	}
	if roledomain.Code(roleCode) != roledomain.CodeAdmin {
		return "", status.Error(codes.PermissionDenied, "admin role required")
	}
	return userID, nil
}
