package domain

import (
	"time"

	accountDomain "github.com/hajjcare/accounts/internal/account/domain"
)

// Claims is the verified content of an access or refresh token.
type Claims struct {
	Subject   int64 // account ID
	Role      accountDomain.Role
	HajjID    *int64
	Type      TokenType
	ID        string
	IssuedAt  time.Time
	ExpiresAt time.Time
}

// AccessClaims builds the claims of an access token for account.
func AccessClaims(account *accountDomain.Account) Claims {
	return Claims{
		Subject: account.ID,
		Role:    account.Role,
		HajjID:  account.HajjID,
		Type:    TokenTypeAccess,
	}
}

// RefreshClaims builds the claims of a refresh token for account. Refresh tokens carry no role.
func RefreshClaims(account *accountDomain.Account) Claims {
	return Claims{
		Subject: account.ID,
		Type:    TokenTypeRefresh,
	}
}

// RemainingLifetime returns the time left until expiry at now, never negative.
func (c *Claims) RemainingLifetime(now time.Time) time.Duration {
	remaining := c.ExpiresAt.Sub(now)
	if remaining < 0 {
		return 0
	}
	return remaining
}

// TokenPair is the result of a successful grant.
type TokenPair struct {
	AccessToken      string
	RefreshToken     string
	AccessExpiresAt  time.Time
	RefreshExpiresAt time.Time
}
