// Package server assembles the gRPC server: the interceptor chain, service
// registration, and database-backed health reporting.
package server

import (
	"context"
	"errors"
	"time"

	"google.golang.org/grpc"
	"google.golang.org/grpc/health"
	healthpb "google.golang.org/grpc/health/grpc_health_v1"

	"blog-platform/backend/internal/audit"
	authservice "blog-platform/backend/internal/auth/service"
	"blog-platform/backend/internal/security"
	"blog-platform/backend/internal/server/interceptors"
)

// Pinger reports storage liveness (satisfied by *sql.DB).
type Pinger interface {
	PingContext(ctx context.Context) error
}

// Deps holds the server dependencies.
type Deps struct {
	// Tokens validates Bearer tokens in the auth interceptor. Required.
	Tokens *security.TokenProvider
	// Auth is the session-lifecycle core serving login, register, refresh,
	// logout, and me. Required: a server without it has nothing to protect.
	Auth *authservice.AuthService
	// Auditor records authenticated RPCs, best-effort. Optional; nil disables
	// the audit interceptor.
	Auditor interceptors.AuditLogger
	// AuditLogs serves the admin-only audit trail queries. Optional.
	AuditLogs *audit.Service
	// PublicMethods are full method names served without a Bearer token.
	// Defaults to DefaultPublicMethods when nil.
	PublicMethods map[string]bool
	// AuditSkipMethods are full method names excluded from the audit trail.
	// Defaults to DefaultPublicMethods when nil (health checks are noise).
	AuditSkipMethods map[string]bool
}

// DefaultPublicMethods returns the method names served without a Bearer token.
func DefaultPublicMethods() map[string]bool {
	return map[string]bool{
		"/grpc.health.v1.Health/Check": true,
		"/grpc.health.v1.Health/Watch": true,
	}
}

// New returns a gRPC server with the interceptor chain installed (bearer
// auth, sentinel-error mapping, RPC audit trail) and all services registered,
// plus the health reporter for readiness updates. Missing required
// dependencies fail here, at startup, not per request.
func New(deps Deps) (*grpc.Server, *health.Server, error) {
	if deps.Tokens == nil {
		return nil, nil, errors.New("server: token provider is required")
	}
	if deps.Auth == nil {
		return nil, nil, errors.New("server: auth service is required")
	}
	publicMethods := deps.PublicMethods
	if publicMethods == nil {
		publicMethods = DefaultPublicMethods()
	}
	auditSkip := deps.AuditSkipMethods
	if auditSkip == nil {
		auditSkip = DefaultPublicMethods()
	}
	s := grpc.NewServer(
		grpc.ChainUnaryInterceptor(
			interceptors.AuthUnary(deps.Tokens, publicMethods),
			interceptors.ErrorMappingUnary(),
			interceptors.AuditUnary(deps.Auditor, auditSkip),
		),
	)
	hs := health.NewServer()
	RegisterServices(s, hs)
	return s, hs, nil
}

// RegisterServices registers all gRPC services with the given server.
func RegisterServices(s grpc.ServiceRegistrar, hs *health.Server) {
	healthpb.RegisterHealthServer(s, hs)
}

// WatchReadiness pings the database on an interval and flips the health
// service between SERVING and NOT_SERVING. Blocks until ctx is done; run in
// a goroutine.
func WatchReadiness(ctx context.Context, hs *health.Server, db Pinger, interval time.Duration) {
	if interval <= 0 {
		interval = 10 * time.Second
	}
	check := func() {
		pingCtx, cancel := context.WithTimeout(ctx, interval)
		defer cancel()
		status := healthpb.HealthCheckResponse_SERVING
		if err := db.PingContext(pingCtx); err != nil {
			status = healthpb.HealthCheckResponse_NOT_SERVING
		}
		hs.SetServingStatus("", status)
	}
	check()
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			hs.Shutdown()
			return
		case <-ticker.C:
			check()
		}
	}
}
