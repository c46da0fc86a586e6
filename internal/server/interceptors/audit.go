package interceptors

import (
	"context"
	"net"
	"strings"

	"google.golang.org/grpc"
	"google.golang.org/grpc/metadata"
	"google.golang.org/grpc/peer"
)

// AuditLogger records one audit event, best-effort (satisfied by *audit.Logger).
type AuditLogger interface {
	LogEvent(ctx context.Context, userID, action, metadata string)
}

// AuditUnary returns a unary server interceptor that records an audit event
// after each authenticated RPC. skipMethods is the set of full method names to
// not audit (e.g. health checks). Only writes when a user identity is set in
// context; the write is best-effort and never fails the RPC.
func AuditUnary(logger AuditLogger, skipMethods map[string]bool) grpc.UnaryServerInterceptor {
	return func(ctx context.Context, req interface{}, info *grpc.UnaryServerInfo, handler grpc.UnaryHandler) (interface{}, error) {
		resp, err := handler(ctx, req)
		if logger == nil || skipMethods[info.FullMethod] {
			return resp, err
		}
		userID, _ := GetUserID(ctx)
		if userID == "" {
			return resp, err
		}
		logger.LogEvent(ctx, userID, rpcAction(info.FullMethod), "")
		return resp, err
	}
}

// rpcAction converts a full method name like "/blog.v1.AdminService/ListAuditLogs"
// to the audit action "rpc:blog.v1.adminservice/listauditlogs".
func rpcAction(fullMethod string) string {
	return "rpc:" + strings.ToLower(strings.TrimPrefix(fullMethod, "/"))
}

// ClientIP returns the client IP from gRPC metadata (x-forwarded-for,
// x-real-ip) or the peer address, or "unknown".
func ClientIP(ctx context.Context) string {
	if md, ok := metadata.FromIncomingContext(ctx); ok {
		if vals := md.Get("x-forwarded-for"); len(vals) > 0 {
			if s := strings.TrimSpace(vals[0]); s != "" {
				if i := strings.Index(s, ","); i > 0 {
					s = strings.TrimSpace(s[:i])
				}
				return s
			}
		}
		if vals := md.Get("x-real-ip"); len(vals) > 0 {
			if s := strings.TrimSpace(vals[0]); s != "" {
				return s
			}
		}
	}
	if p, ok := peer.FromContext(ctx); ok && p.Addr != nil {
		if host, _, err := net.SplitHostPort(p.Addr.String()); err == nil {
			return host
		}
		return p.Addr.String()
	}
	return "unknown"
}
