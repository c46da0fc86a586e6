package interceptors

import (
	"context"

	"google.golang.org/grpc"
	"google.golang.org/grpc/status"

	"blog-platform/backend/internal/apperrors"
)

// ErrorMappingUnary returns a unary server interceptor that converts service
// sentinel errors escaping a handler into transport status errors. Errors that
// already carry a status pass through unchanged; anything unmapped collapses
// to Internal with a generic message so storage or crypto detail never
// crosses the boundary.
func ErrorMappingUnary() grpc.UnaryServerInterceptor {
	return func(ctx context.Context, req interface{}, info *grpc.UnaryServerInfo, handler grpc.UnaryHandler) (interface{}, error) {
		resp, err := handler(ctx, req)
		if err == nil {
			return resp, nil
		}
		if _, ok := status.FromError(err); ok {
			return resp, err
		}
		return resp, apperrors.ToStatus(err)
	}
}
