// Package service provides the technical building blocks of authentication:
// password hashing, token signing and verification, and revocation keys.
package service

import (
	"time"

	authDomain "github.com/hajjcare/accounts/internal/auth/domain"
)

// SecretService defines operations for password generation, hashing and verification.
type SecretService interface {
	// GeneratePassword creates a cryptographically secure random password. It is not
	// hashed; the account use case hashes it on storage. Display it only once.
	GeneratePassword() (string, error)

	// HashSecret hashes a plain text secret with Argon2id.
	HashSecret(plainSecret string) (hashedSecret string, err error)

	// CompareSecret reports whether plainSecret matches hashedSecret. Argon2id and
	// legacy bcrypt hashes are both accepted.
	CompareSecret(plainSecret string, hashedSecret string) bool
}

// TokenCodec signs and verifies tokens.
type TokenCodec interface {
	// Issue signs claims with an expiry of now + ttl and returns the token and that expiry.
	// The claims' ID, IssuedAt and ExpiresAt are assigned by the codec.
	Issue(claims authDomain.Claims, ttl time.Duration) (token string, expiresAt time.Time, err error)

	// Verify checks signature and expiry. It returns ErrTokenExpired for an expired but
	// otherwise valid token and ErrTokenInvalid for every other failure.
	Verify(token string) (*authDomain.Claims, error)
}
