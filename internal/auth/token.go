package auth

import (
	"crypto/rand"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"regexp"
)

// Session token format: st_<48 hex chars>.
// The token is opaque; only a SHA-256 derived key is stored server-side.
const tokenSecretBytes = 24

var (
	// ErrInvalidTokenFormat indicates the token does not look like a
	// session token. Used to reject garbage before hitting Redis.
	ErrInvalidTokenFormat = errors.New("invalid session token format")

	tokenFormatRegex = regexp.MustCompile(`^st_[a-f0-9]{48}$`)
)

// NewSessionToken generates a fresh opaque session token.
func NewSessionToken() (string, error) {
	secret := make([]byte, tokenSecretBytes)
	if _, err := rand.Read(secret); err != nil {
		return "", fmt.Errorf("generate token: %w", err)
	}
	return "st_" + hex.EncodeToString(secret), nil
}

// ValidateTokenFormat checks a token against the expected shape.
func ValidateTokenFormat(token string) error {
	if !tokenFormatRegex.MatchString(token) {
		return ErrInvalidTokenFormat
	}
	return nil
}

// SessionCacheKey derives the Redis key material for a token.
// The raw token never touches storage.
func SessionCacheKey(token string) string {
	sum := sha256.Sum256([]byte(token))
	return hex.EncodeToString(sum[:16])
}
