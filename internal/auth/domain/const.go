// Package domain defines the credential grant, token claims and authentication errors.
package domain

// GrantType selects how a caller proves its identity at the token endpoint.
type GrantType string

const (
	// GrantTypePassword authenticates with a username and password.
	GrantTypePassword GrantType = "username:password"

	// GrantTypeNationalID authenticates with a 14 digit national ID.
	GrantTypeNationalID GrantType = "national_id"

	// GrantTypePassportNumber authenticates with a passport number.
	GrantTypePassportNumber GrantType = "passport_number"

	// GrantTypeRefreshToken exchanges a refresh token for a new token pair.
	GrantTypeRefreshToken GrantType = "refresh_token"
)

// IsValid reports whether g is a supported grant type.
func (g GrantType) IsValid() bool {
	switch g {
	case GrantTypePassword, GrantTypeNationalID, GrantTypePassportNumber, GrantTypeRefreshToken:
		return true
	}
	return false
}

// TokenType distinguishes access tokens from refresh tokens.
type TokenType string

const (
	// TokenTypeAccess marks a bearer token accepted by protected endpoints.
	TokenTypeAccess TokenType = "access"

	// TokenTypeRefresh marks a token that can only be exchanged or revoked.
	TokenTypeRefresh TokenType = "refresh_token"
)
