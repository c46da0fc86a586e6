package domain

import "time"

// Actions recorded by the auth service.
const (
	ActionLoginSuccess = "login_success"
	ActionLoginFailure = "login_failure"
	ActionRegister     = "register"
	ActionRefresh      = "refresh"
	ActionLogout       = "logout"
)

// SentinelUserID is the user_id recorded for events with no resolved user
// (e.g. login_failure for an unknown email).
const SentinelUserID = "_anonymous"

// AuditLog is one recorded auth event (login, register, refresh, logout).
type AuditLog struct {
	ID        string
	UserID    string
	Action    string
	IP        string
	Metadata  string
	CreatedAt time.Time
}
