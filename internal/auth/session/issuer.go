// Package session mints access/refresh token pairs and persists the
// refresh-token fingerprint against the user record.
package session

import (
	"context"
	"time"

	"blog-platform/backend/internal/security"
	userdomain "blog-platform/backend/internal/user/domain"
)

// TokenPair is the ephemeral result of an issuance. Neither token is stored
// server-side; only the refresh token's digest is persisted.
type TokenPair struct {
	AccessToken  string
	RefreshToken string
}

// UserStore is the minimal user store needed by the issuer.
type UserStore interface {
	UpdateRefreshState(ctx context.Context, id string, refreshTokenHash *string, expiresAt *time.Time) (int64, error)
}

// Issuer mints a token pair for a user and records the refresh digest plus a
// server-side expiry stamp. Every issuance overwrites the previous slot, so a
// user has at most one live refresh token.
type Issuer struct {
	tokens             *security.TokenProvider
	hasher             *security.Hasher
	users              UserStore
	refreshExpiresDays int
}

// NewIssuer returns an Issuer with the given dependencies.
// refreshExpiresDays governs the stored expiry stamp, independent of the
// refresh token's own embedded TTL.
func NewIssuer(tokens *security.TokenProvider, hasher *security.Hasher, users UserStore, refreshExpiresDays int) *Issuer {
	if refreshExpiresDays <= 0 {
		refreshExpiresDays = 7
	}
	return &Issuer{
		tokens:             tokens,
		hasher:             hasher,
		users:              users,
		refreshExpiresDays: refreshExpiresDays,
	}
}

// Issue signs an access and a refresh token for the user, stores the refresh
// token's digest (the raw token string is hashed, not its claims) and expiry,
// and returns both raw tokens. The digest is never returned.
func (i *Issuer) Issue(ctx context.Context, user *userdomain.User) (*TokenPair, error) {
	roleCode := string(user.Role.Code)

	accessToken, _, err := i.tokens.IssueAccess(user.ID, roleCode)
	if err != nil {
		return nil, err
	}
	// Signed independently: the refresh token is a first-class credential.
	refreshToken, _, err := i.tokens.IssueRefresh(user.ID, roleCode)
	if err != nil {
		return nil, err
	}

	digest, err := i.hasher.HashToken(refreshToken)
	if err != nil {
		return nil, err
	}
	expiresAt := time.Now().UTC().AddDate(0, 0, i.refreshExpiresDays)
	if _, err := i.users.UpdateRefreshState(ctx, user.ID, &digest, &expiresAt); err != nil {
		return nil, err
	}

	return &TokenPair{AccessToken: accessToken, RefreshToken: refreshToken}, nil
}
