package interceptors

import (
	"context"
	"errors"
	"strings"
	"testing"

	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	authservice "blog-platform/backend/internal/auth/service"
)

func TestErrorMappingUnary_Sentinel(t *testing.T) {
	interceptor := ErrorMappingUnary()

	handler := func(ctx context.Context, req interface{}) (interface{}, error) {
		return nil, authservice.ErrInvalidCredentials
	}
	_, err := interceptor(context.Background(), "request", &grpc.UnaryServerInfo{
		FullMethod: "/test.Service/Login",
	}, handler)

	st, ok := status.FromError(err)
	if !ok {
		t.Fatalf("error is not a gRPC status: %v", err)
	}
	if st.Code() != codes.Unauthenticated {
		t.Errorf("status code = %v, want %v", st.Code(), codes.Unauthenticated)
	}
	if st.Message() != "Invalid credentials" {
		t.Errorf("message = %q", st.Message())
	}
}

func TestErrorMappingUnary_StatusPassthrough(t *testing.T) {
	interceptor := ErrorMappingUnary()

	want := status.Error(codes.PermissionDenied, "admin role required")
	handler := func(ctx context.Context, req interface{}) (interface{}, error) {
		return nil, want
	}
	_, err := interceptor(context.Background(), "request", &grpc.UnaryServerInfo{
		FullMethod: "/test.Service/Admin",
	}, handler)
	if !errors.Is(err, want) {
		t.Errorf("status error was rewritten: %v", err)
	}
}

func TestErrorMappingUnary_UnknownLeaksNothing(t *testing.T) {
	interceptor := ErrorMappingUnary()

	handler := func(ctx context.Context, req interface{}) (interface{}, error) {
		return nil, errors.New("pq: connection refused to 10.0.3.7:5432")
	}
	_, err := interceptor(context.Background(), "request", &grpc.UnaryServerInfo{
		FullMethod: "/test.Service/Anything",
	}, handler)

	st, ok := status.FromError(err)
	if !ok {
		t.Fatalf("error is not a gRPC status: %v", err)
	}
	if st.Code() != codes.Internal {
		t.Errorf("status code = %v, want %v", st.Code(), codes.Internal)
	}
	if strings.Contains(st.Message(), "10.0.3.7") {
		t.Errorf("internal detail leaked: %q", st.Message())
	}
}

func TestErrorMappingUnary_Success(t *testing.T) {
	interceptor := ErrorMappingUnary()

	resp, err := interceptor(context.Background(), "request", &grpc.UnaryServerInfo{
		FullMethod: "/test.Service/OK",
	}, okHandler)
	if err != nil {
		t.Fatalf("interceptor: %v", err)
	}
	if resp != "success" {
		t.Errorf("response = %v, want %q", resp, "success")
	}
}
