package domain

import (
	"github.com/hajjcare/accounts/internal/errors"
)

// Token verification errors. Both are unauthorized.
var (
	// ErrTokenExpired indicates a well-formed token whose exp has passed.
	ErrTokenExpired = errors.Wrap(errors.ErrUnauthorized, "token has expired")

	// ErrTokenInvalid indicates a token that failed verification for any other reason.
	ErrTokenInvalid = errors.Wrap(errors.ErrUnauthorized, "token is invalid")

	// ErrInvalidTTL indicates a revocation entry without a positive lifetime.
	ErrInvalidTTL = errors.New("revocation ttl must be positive")
)

// Authenticator failures. Messages are safe to return to clients and never say which
// credential component was wrong.
var (
	ErrInvalidCredentials    = errors.Public(errors.ErrUnauthorized, "invalid username or password")
	ErrInvalidNationalID     = errors.Public(errors.ErrUnauthorized, "invalid national ID")
	ErrInvalidPassportNumber = errors.Public(errors.ErrUnauthorized, "invalid passport number")
	ErrInvalidRefreshToken   = errors.Public(errors.ErrUnauthorized, "invalid refresh token")
	ErrRefreshTokenExpired   = errors.Public(errors.ErrUnauthorized, "refresh token has expired")
	ErrRefreshTokenRevoked   = errors.Public(errors.ErrUnauthorized, "refresh token is already revoked")
	ErrRefreshTokenRequired  = errors.Public(errors.ErrInvalidInput, "refresh token is required")
)

// Access-control gate failures.
var (
	ErrBearerMissing = errors.Public(errors.ErrUnauthorized, "token missing")
	ErrBearerExpired = errors.Public(errors.ErrUnauthorized, "token has expired")
	ErrBearerInvalid = errors.Public(errors.ErrUnauthorized, "token is invalid")
)
