// Package audit records and serves auth lifecycle events. Writes are
// best-effort: a failed audit write never fails the operation being audited.
package audit

import (
	"context"
	"log"
	"time"

	"github.com/google/uuid"

	"blog-platform/backend/internal/audit/domain"
	auditrepo "blog-platform/backend/internal/audit/repository"
)

// IPExtractor returns the client IP from the request context (e.g. gRPC metadata or peer).
type IPExtractor func(context.Context) string

// Logger persists audit events through the audit repository, stamping each
// entry with an id, timestamp, and the client IP from the optional extractor.
type Logger struct {
	repo        auditrepo.Repository
	ipExtractor IPExtractor
}

// NewLogger returns a Logger that persists to repo and uses ipExtractor
// for client IP. ipExtractor may be nil; then IP is recorded as "unknown".
func NewLogger(repo auditrepo.Repository, ipExtractor IPExtractor) *Logger {
	return &Logger{repo: repo, ipExtractor: ipExtractor}
}

// LogEvent writes one audit log entry. Best-effort: errors are logged and not returned.
func (l *Logger) LogEvent(ctx context.Context, userID, action, metadata string) {
	if l.repo == nil {
		return
	}
	ip := "unknown"
	if l.ipExtractor != nil {
		ip = l.ipExtractor(ctx)
	}
	if userID == "" {
		userID = domain.SentinelUserID
	}
	entry := &domain.AuditLog{
		ID:        uuid.New().String(),
		UserID:    userID,
		Action:    action,
		IP:        ip,
		Metadata:  metadata,
		CreatedAt: time.Now().UTC(),
	}
	if err := l.repo.Create(ctx, entry); err != nil {
		log.Printf("audit: failed to write %s event: %v", action, err)
	}
}
