// Package apperrors maps service sentinel errors onto transport status codes.
// The mapping is the single place that decides what a caller may learn from a
// failure: anything unmapped collapses to an internal error with a generic
// message so storage or crypto details never leak outward.
package apperrors

import (
	"errors"
	"net/http"

	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	authservice "blog-platform/backend/internal/auth/service"
	"blog-platform/backend/internal/profile"
)

// Mapped is the outward shape of a failure: an HTTP status code, a short
// reason phrase, and a safe human-readable message.
type Mapped struct {
	StatusCode int    `json:"statusCode"`
	Error      string `json:"error"`
	Message    string `json:"message"`
}

// GRPCCode returns the gRPC code equivalent to the HTTP status.
func (m Mapped) GRPCCode() codes.Code {
	switch m.StatusCode {
	case http.StatusBadRequest:
		return codes.InvalidArgument
	case http.StatusUnauthorized:
		return codes.Unauthenticated
	case http.StatusForbidden:
		return codes.PermissionDenied
	case http.StatusNotFound:
		return codes.NotFound
	case http.StatusConflict:
		return codes.AlreadyExists
	default:
		return codes.Internal
	}
}

// Map classifies err into its outward shape. Unknown errors become 500 with a
// generic message; err itself is never echoed to the caller in that case.
func Map(err error) Mapped {
	switch {
	case errors.Is(err, authservice.ErrInvalidInput):
		return Mapped{http.StatusBadRequest, "Bad Request", "invalid input"}
	case errors.Is(err, authservice.ErrInvalidCredentials):
		return Mapped{http.StatusUnauthorized, "Unauthorized", "Invalid credentials"}
	case errors.Is(err, authservice.ErrInvalidRefreshToken):
		return Mapped{http.StatusUnauthorized, "Unauthorized", "Invalid refresh token"}
	case errors.Is(err, authservice.ErrUserDisabled):
		return Mapped{http.StatusForbidden, "Forbidden", "User is disabled"}
	case errors.Is(err, authservice.ErrEmailAlreadyRegistered):
		return Mapped{http.StatusConflict, "Conflict", "Email already registered"}
	case errors.Is(err, profile.ErrNotFound):
		return Mapped{http.StatusNotFound, "Not Found", "User not found"}
	case errors.Is(err, authservice.ErrDefaultRoleMissing),
		errors.Is(err, authservice.ErrConfigurationMissing):
		return Mapped{http.StatusInternalServerError, "Internal Server Error", "Internal server error"}
	default:
		return Mapped{http.StatusInternalServerError, "Internal Server Error", "Internal server error"}
	}
}

// ToStatus converts err into a gRPC status error using the Map classification.
func ToStatus(err error) error {
	m := Map(err)
	return status.Error(m.GRPCCode(), m.Message)
}
