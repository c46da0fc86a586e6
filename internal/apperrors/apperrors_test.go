package apperrors

import (
	"errors"
	"fmt"
	"net/http"
	"strings"
	"testing"

	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	authservice "blog-platform/backend/internal/auth/service"
	"blog-platform/backend/internal/profile"
)

func TestMap(t *testing.T) {
	cases := []struct {
		name       string
		err        error
		statusCode int
		grpcCode   codes.Code
		message    string
	}{
		{"invalid input", authservice.ErrInvalidInput, http.StatusBadRequest, codes.InvalidArgument, "invalid input"},
		{"invalid credentials", authservice.ErrInvalidCredentials, http.StatusUnauthorized, codes.Unauthenticated, "Invalid credentials"},
		{"invalid refresh token", authservice.ErrInvalidRefreshToken, http.StatusUnauthorized, codes.Unauthenticated, "Invalid refresh token"},
		{"user disabled", authservice.ErrUserDisabled, http.StatusForbidden, codes.PermissionDenied, "User is disabled"},
		{"duplicate email", authservice.ErrEmailAlreadyRegistered, http.StatusConflict, codes.AlreadyExists, "Email already registered"},
		{"profile not found", profile.ErrNotFound, http.StatusNotFound, codes.NotFound, "User not found"},
		{"default role missing", authservice.ErrDefaultRoleMissing, http.StatusInternalServerError, codes.Internal, "Internal server error"},
		{"configuration missing", authservice.ErrConfigurationMissing, http.StatusInternalServerError, codes.Internal, "Internal server error"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			m := Map(tc.err)
			if m.StatusCode != tc.statusCode {
				t.Errorf("StatusCode = %d, want %d", m.StatusCode, tc.statusCode)
			}
			if m.GRPCCode() != tc.grpcCode {
				t.Errorf("GRPCCode = %v, want %v", m.GRPCCode(), tc.grpcCode)
			}
			if m.Message != tc.message {
				t.Errorf("Message = %q, want %q", m.Message, tc.message)
			}
		})
	}
}

func TestMapWrappedError(t *testing.T) {
	wrapped := fmt.Errorf("refresh: %w", authservice.ErrInvalidRefreshToken)
	if m := Map(wrapped); m.StatusCode != http.StatusUnauthorized {
		t.Errorf("wrapped sentinel: StatusCode = %d, want 401", m.StatusCode)
	}
}

func TestMapUnknownErrorLeaksNothing(t *testing.T) {
	cause := errors.New("pq: connection refused to 10.0.3.7:5432")
	m := Map(cause)
	if m.StatusCode != http.StatusInternalServerError {
		t.Fatalf("StatusCode = %d, want 500", m.StatusCode)
	}
	if strings.Contains(m.Message, "10.0.3.7") || strings.Contains(m.Message, "pq:") {
		t.Errorf("internal detail leaked: %q", m.Message)
	}
}

func TestToStatus(t *testing.T) {
	err := ToStatus(authservice.ErrInvalidCredentials)
	st, ok := status.FromError(err)
	if !ok {
		t.Fatalf("ToStatus did not produce a status error: %v", err)
	}
	if st.Code() != codes.Unauthenticated {
		t.Errorf("code = %v, want %v", st.Code(), codes.Unauthenticated)
	}
	if st.Message() != "Invalid credentials" {
		t.Errorf("message = %q", st.Message())
	}
}
