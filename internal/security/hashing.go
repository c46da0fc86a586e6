package security

import (
	"crypto/sha256"
	"encoding/hex"

	"golang.org/x/crypto/bcrypt"
)

// Hasher hashes and verifies passwords and refresh-token digests using bcrypt.
// Callers must not log or persist plaintext passwords or raw refresh tokens.
type Hasher struct {
	Cost int
}

// NewHasher returns a Hasher with the given bcrypt cost (4–31). Cost 12 is a
// reasonable default for interactive login.
func NewHasher(cost int) *Hasher {
	if cost <= 0 {
		cost = bcrypt.DefaultCost
	}
	if cost < bcrypt.MinCost {
		cost = bcrypt.MinCost
	}
	if cost > bcrypt.MaxCost {
		cost = bcrypt.MaxCost
	}
	return &Hasher{Cost: cost}
}

// Hash produces a bcrypt hash of password. The digest embeds salt and cost,
// so Compare needs no side channel. Returns the hash as a string suitable for storage.
func (h *Hasher) Hash(password []byte) (string, error) {
	b, err := bcrypt.GenerateFromPassword(password, h.Cost)
	if err != nil {
		return "", err
	}
	return string(b), nil
}

// Compare verifies password against the stored hash using constant-time
// comparison. Returns nil if they match; returns an error (including
// bcrypt.ErrMismatchedHashAndPassword) if they do not or on invalid hash.
func (h *Hasher) Compare(hash string, password []byte) error {
	return bcrypt.CompareHashAndPassword([]byte(hash), password)
}

// HashToken produces a bcrypt digest of the refresh token for at-rest storage.
// bcrypt rejects inputs over 72 bytes and a signed token always exceeds that,
// so the token is SHA-256 prehashed and the hex digest is what gets bcrypted.
func (h *Hasher) HashToken(token string) (string, error) {
	return h.Hash(prehashToken(token))
}

// CompareToken reports whether token matches the stored digest.
// Never returns an error: any mismatch or malformed digest is false.
func (h *Hasher) CompareToken(digest, token string) bool {
	return bcrypt.CompareHashAndPassword([]byte(digest), prehashToken(token)) == nil
}

func prehashToken(token string) []byte {
	sum := sha256.Sum256([]byte(token))
	return []byte(hex.EncodeToString(sum[:]))
}
