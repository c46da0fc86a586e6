package security

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// ErrInvalidToken is returned when a token is malformed, has a bad signature,
// or is expired. Callers must not distinguish these cases to the outside.
var ErrInvalidToken = errors.New("invalid token")

// Claims is the fixed, versioned claim set carried by both token classes:
// subject (user id) and role code. Tokens with an unexpected shape are
// rejected on decode rather than coerced.
type Claims struct {
	jwt.RegisteredClaims
	Role string `json:"role"`
}

// TokenProvider issues and validates HS256 access and refresh JWTs.
// Access and refresh tokens are signed with different secrets: a leaked
// access-signing secret must not be able to forge refresh tokens.
type TokenProvider struct {
	accessSecret  []byte
	refreshSecret []byte
	accessTTL     time.Duration
	refreshTTL    time.Duration
}

// NewTokenProvider returns a TokenProvider with the given secrets and TTLs.
// Both secrets are required and must differ; a missing secret is a
// configuration defect, not a per-request condition.
func NewTokenProvider(accessSecret, refreshSecret string, accessTTL, refreshTTL time.Duration) (*TokenProvider, error) {
	if accessSecret == "" || refreshSecret == "" {
		return nil, errors.New("security: access and refresh secrets are required")
	}
	if accessSecret == refreshSecret {
		return nil, errors.New("security: access and refresh secrets must differ")
	}
	return &TokenProvider{
		accessSecret:  []byte(accessSecret),
		refreshSecret: []byte(refreshSecret),
		accessTTL:     accessTTL,
		refreshTTL:    refreshTTL,
	}, nil
}

// IssueAccess issues a short-lived access JWT for the given user and role code.
// Returns the token string and its expiration time.
func (p *TokenProvider) IssueAccess(userID, roleCode string) (string, time.Time, error) {
	return p.issue(userID, roleCode, p.accessSecret, p.accessTTL)
}

// IssueRefresh issues a long-lived refresh JWT, signed independently of the
// access token: a refresh token is a first-class credential, not a derivative.
func (p *TokenProvider) IssueRefresh(userID, roleCode string) (string, time.Time, error) {
	return p.issue(userID, roleCode, p.refreshSecret, p.refreshTTL)
}

func (p *TokenProvider) issue(userID, roleCode string, secret []byte, ttl time.Duration) (string, time.Time, error) {
	now := time.Now().UTC()
	expiresAt := now.Add(ttl)
	claims := Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   userID,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(expiresAt),
		},
		Role: roleCode,
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(secret)
	if err != nil {
		return "", time.Time{}, err
	}
	return token, expiresAt, nil
}

// ValidateAccess parses and validates an access token (signature, exp, shape).
// Returns userID and roleCode, or ErrInvalidToken.
func (p *TokenProvider) ValidateAccess(tokenString string) (userID, roleCode string, err error) {
	return p.validate(tokenString, p.accessSecret)
}

// ValidateRefresh parses and validates a refresh token (signature, exp, shape).
// Returns userID and roleCode, or ErrInvalidToken.
func (p *TokenProvider) ValidateRefresh(tokenString string) (userID, roleCode string, err error) {
	return p.validate(tokenString, p.refreshSecret)
}

func (p *TokenProvider) validate(tokenString string, secret []byte) (string, string, error) {
	token, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, ErrInvalidToken
		}
		return secret, nil
	})
	if err != nil {
		return "", "", ErrInvalidToken
	}
	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid {
		return "", "", ErrInvalidToken
	}
	if claims.Subject == "" || claims.Role == "" {
		return "", "", ErrInvalidToken
	}
	return claims.Subject, claims.Role, nil
}
