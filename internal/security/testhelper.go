package security

import "time"

// Test signing secrets for unit tests only. Do not use in production.
const (
	testAccessSecret  = "test-access-secret"
	testRefreshSecret = "test-refresh-secret"
)

// NewTestTokenProvider returns a TokenProvider using fixed test secrets.
// For unit tests only. Callers must not use in production.
func NewTestTokenProvider() (*TokenProvider, error) {
	return NewTokenProvider(testAccessSecret, testRefreshSecret, 15*time.Minute, 168*time.Hour)
}
