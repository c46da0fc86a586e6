package interceptors

import (
	"context"
	"testing"

	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/metadata"
	"google.golang.org/grpc/status"

	"blog-platform/backend/internal/security"
)

func TestAuthUnary_PublicMethod(t *testing.T) {
	tokens, err := security.NewTestTokenProvider()
	if err != nil {
		t.Fatalf("NewTestTokenProvider: %v", err)
	}
	publicMethods := map[string]bool{
		"/test.Service/PublicMethod": true,
	}
	interceptor := AuthUnary(tokens, publicMethods)

	ctx := context.Background()
	handler := func(ctx context.Context, req interface{}) (interface{}, error) {
		return "success", nil
	}

	resp, err := interceptor(ctx, "request", &grpc.UnaryServerInfo{
		FullMethod: "/test.Service/PublicMethod",
	}, handler)
	if err != nil {
		t.Fatalf("interceptor: %v", err)
	}
	if resp != "success" {
		t.Errorf("response = %v, want %q", resp, "success")
	}
}

func TestAuthUnary_ProtectedMethod_NoToken(t *testing.T) {
	tokens, err := security.NewTestTokenProvider()
	if err != nil {
		t.Fatalf("NewTestTokenProvider: %v", err)
	}
	interceptor := AuthUnary(tokens, map[string]bool{})

	handler := func(ctx context.Context, req interface{}) (interface{}, error) {
		return "success", nil
	}

	_, err = interceptor(context.Background(), "request", &grpc.UnaryServerInfo{
		FullMethod: "/test.Service/ProtectedMethod",
	}, handler)
	if err == nil {
		t.Fatal("expected error for missing token")
	}
	st, ok := status.FromError(err)
	if !ok {
		t.Fatalf("error is not a gRPC status: %v", err)
	}
	if st.Code() != codes.Unauthenticated {
		t.Errorf("status code = %v, want %v", st.Code(), codes.Unauthenticated)
	}
}

func TestAuthUnary_ProtectedMethod_ValidToken(t *testing.T) {
	tokens, err := security.NewTestTokenProvider()
	if err != nil {
		t.Fatalf("NewTestTokenProvider: %v", err)
	}
	token, _, err := tokens.IssueAccess("user-1", "BLOGGER")
	if err != nil {
		t.Fatalf("IssueAccess: %v", err)
	}

	interceptor := AuthUnary(tokens, map[string]bool{})

	ctx := metadata.NewIncomingContext(context.Background(), metadata.New(map[string]string{
		"authorization": "Bearer " + token,
	}))
	handler := func(ctx context.Context, req interface{}) (interface{}, error) {
		userID, ok := GetUserID(ctx)
		if !ok || userID != "user-1" {
			t.Errorf("user_id = %q, ok = %v, want %q", userID, ok, "user-1")
		}
		roleCode, ok := GetRoleCode(ctx)
		if !ok || roleCode != "BLOGGER" {
			t.Errorf("role_code = %q, ok = %v, want %q", roleCode, ok, "BLOGGER")
		}
		return "success", nil
	}

	resp, err := interceptor(ctx, "request", &grpc.UnaryServerInfo{
		FullMethod: "/test.Service/ProtectedMethod",
	}, handler)
	if err != nil {
		t.Fatalf("interceptor: %v", err)
	}
	if resp != "success" {
		t.Errorf("response = %v, want %q", resp, "success")
	}
}

func TestAuthUnary_ProtectedMethod_InvalidToken(t *testing.T) {
	tokens, err := security.NewTestTokenProvider()
	if err != nil {
		t.Fatalf("NewTestTokenProvider: %v", err)
	}
	interceptor := AuthUnary(tokens, map[string]bool{})

	ctx := metadata.NewIncomingContext(context.Background(), metadata.New(map[string]string{
		"authorization": "Bearer invalid-token",
	}))
	handler := func(ctx context.Context, req interface{}) (interface{}, error) {
		return "success", nil
	}

	_, err = interceptor(ctx, "request", &grpc.UnaryServerInfo{
		FullMethod: "/test.Service/ProtectedMethod",
	}, handler)
	if err == nil {
		t.Fatal("expected error for invalid token")
	}
	st, ok := status.FromError(err)
	if !ok {
		t.Fatalf("error is not a gRPC status: %v", err)
	}
	if st.Code() != codes.Unauthenticated {
		t.Errorf("status code = %v, want %v", st.Code(), codes.Unauthenticated)
	}
}

func TestAuthUnary_RefreshTokenRejectedAsBearer(t *testing.T) {
	tokens, err := security.NewTestTokenProvider()
	if err != nil {
		t.Fatalf("NewTestTokenProvider: %v", err)
	}
	// Refresh tokens are signed with the refresh secret; presenting one as a
	// Bearer credential must fail access validation.
	refresh, _, err := tokens.IssueRefresh("user-1", "BLOGGER")
	if err != nil {
		t.Fatalf("IssueRefresh: %v", err)
	}

	interceptor := AuthUnary(tokens, map[string]bool{})
	ctx := metadata.NewIncomingContext(context.Background(), metadata.New(map[string]string{
		"authorization": "Bearer " + refresh,
	}))
	handler := func(ctx context.Context, req interface{}) (interface{}, error) {
		return "success", nil
	}

	_, err = interceptor(ctx, "request", &grpc.UnaryServerInfo{
		FullMethod: "/test.Service/ProtectedMethod",
	}, handler)
	if err == nil {
		t.Fatal("expected error for refresh token presented as access token")
	}
	if st, _ := status.FromError(err); st.Code() != codes.Unauthenticated {
		t.Errorf("status code = %v, want %v", st.Code(), codes.Unauthenticated)
	}
}

func TestExtractBearer_Valid(t *testing.T) {
	ctx := metadata.NewIncomingContext(context.Background(), metadata.New(map[string]string{
		"authorization": "Bearer token123",
	}))
	if token := extractBearer(ctx); token != "token123" {
		t.Errorf("token = %q, want %q", token, "token123")
	}
}

func TestExtractBearer_CaseInsensitive(t *testing.T) {
	ctx := metadata.NewIncomingContext(context.Background(), metadata.New(map[string]string{
		"authorization": "bearer token123",
	}))
	if token := extractBearer(ctx); token != "token123" {
		t.Errorf("token = %q, want %q", token, "token123")
	}
}

func TestExtractBearer_Missing(t *testing.T) {
	if token := extractBearer(context.Background()); token != "" {
		t.Errorf("token = %q, want empty", token)
	}
}

func TestExtractBearer_InvalidPrefix(t *testing.T) {
	ctx := metadata.NewIncomingContext(context.Background(), metadata.New(map[string]string{
		"authorization": "Basic token123",
	}))
	if token := extractBearer(ctx); token != "" {
		t.Errorf("token = %q, want empty", token)
	}
}

func TestExtractBearer_Whitespace(t *testing.T) {
	ctx := metadata.NewIncomingContext(context.Background(), metadata.New(map[string]string{
		"authorization": "  Bearer   token123  ",
	}))
	if token := extractBearer(ctx); token != "token123" {
		t.Errorf("token = %q, want %q", token, "token123")
	}
}
