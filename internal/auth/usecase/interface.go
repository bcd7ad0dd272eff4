// Package usecase implements the authenticator: credential grants and refresh token revocation.
package usecase

import (
	"context"
	"time"

	accountDomain "github.com/hajjcare/accounts/internal/account/domain"
	authDomain "github.com/hajjcare/accounts/internal/auth/domain"
)

// AccountReader looks accounts up by each login identifier.
// Every method returns ErrAccountNotFound when no account matches.
type AccountReader interface {
	GetByID(ctx context.Context, id int64) (*accountDomain.Account, error)
	GetByUsername(ctx context.Context, username string) (*accountDomain.Account, error)
	GetByNationalID(ctx context.Context, nationalID string) (*accountDomain.Account, error)
	GetByPassportNumber(ctx context.Context, passportNumber string) (*accountDomain.Account, error)
}

// RevocationLedger records revoked refresh tokens until they would have expired.
type RevocationLedger interface {
	// IsRevoked reports whether key holds a live revocation entry.
	IsRevoked(ctx context.Context, key string) (bool, error)

	// Revoke records key for ttl. A ttl that is not positive fails with ErrInvalidTTL.
	Revoke(ctx context.Context, key string, ttl time.Duration) error
}

// TokenUseCase defines the token lifecycle operations.
type TokenUseCase interface {
	// Grant authenticates the credential carried by request and issues an access and
	// refresh token pair. It never mutates the account store or the ledger.
	Grant(ctx context.Context, request *authDomain.GrantRequest) (*authDomain.TokenPair, error)

	// Revoke records refreshToken in the revocation ledger for the rest of its lifetime.
	// Revoking a token twice fails with ErrRefreshTokenRevoked.
	Revoke(ctx context.Context, refreshToken string) error
}
