package service

import (
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	accountDomain "github.com/hajjcare/accounts/internal/account/domain"
	authDomain "github.com/hajjcare/accounts/internal/auth/domain"
)

// jwtClaims is the wire shape of access and refresh tokens.
// Access tokens carry role and hajjId; refresh tokens carry typ instead.
type jwtClaims struct {
	jwt.RegisteredClaims
	Role   string `json:"role,omitempty"`
	HajjID *int64 `json:"hajjId,omitempty"`
	Type   string `json:"typ,omitempty"`
}

// TokenCodecOption configures a token codec.
type TokenCodecOption func(*tokenCodec)

// WithCodecClock overrides the clock used for issuing and verifying tokens.
func WithCodecClock(now func() time.Time) TokenCodecOption {
	return func(c *tokenCodec) {
		c.now = now
	}
}

// tokenCodec implements TokenCodec with HS256 signed JWTs.
type tokenCodec struct {
	secret []byte
	now    func() time.Time
}

// NewTokenCodec creates a TokenCodec signing with secret.
func NewTokenCodec(secret []byte, opts ...TokenCodecOption) (TokenCodec, error) {
	if len(secret) == 0 {
		return nil, errors.New("token signing secret must not be empty")
	}

	codec := &tokenCodec{
		secret: secret,
		now:    time.Now,
	}
	for _, opt := range opts {
		opt(codec)
	}
	return codec, nil
}

// Issue signs claims. Expiry is computed once from the codec clock at second precision.
func (c *tokenCodec) Issue(claims authDomain.Claims, ttl time.Duration) (string, time.Time, error) {
	if ttl <= 0 {
		return "", time.Time{}, fmt.Errorf("token ttl must be positive, got %s", ttl)
	}

	id, err := uuid.NewV7()
	if err != nil {
		return "", time.Time{}, fmt.Errorf("failed to generate token id: %w", err)
	}

	now := c.now().UTC()
	issuedAt := jwt.NewNumericDate(now)
	expiresAt := jwt.NewNumericDate(now.Add(ttl))

	wire := jwtClaims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   strconv.FormatInt(claims.Subject, 10),
			ID:        id.String(),
			IssuedAt:  issuedAt,
			ExpiresAt: expiresAt,
		},
	}
	switch claims.Type {
	case authDomain.TokenTypeAccess:
		wire.Role = string(claims.Role)
		wire.HajjID = claims.HajjID
	case authDomain.TokenTypeRefresh:
		wire.Type = string(authDomain.TokenTypeRefresh)
	default:
		return "", time.Time{}, fmt.Errorf("unknown token type %q", claims.Type)
	}

	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, wire).SignedString(c.secret)
	if err != nil {
		return "", time.Time{}, fmt.Errorf("failed to sign token: %w", err)
	}
	return signed, expiresAt.Time, nil
}

// Verify parses token and maps every failure to ErrTokenExpired or ErrTokenInvalid.
func (c *tokenCodec) Verify(token string) (*authDomain.Claims, error) {
	var wire jwtClaims
	_, err := jwt.ParseWithClaims(token, &wire, func(*jwt.Token) (any, error) {
		return c.secret, nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithTimeFunc(c.now),
		jwt.WithExpirationRequired(),
	)
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, authDomain.ErrTokenExpired
		}
		return nil, fmt.Errorf("%w: %v", authDomain.ErrTokenInvalid, err)
	}

	subject, err := strconv.ParseInt(wire.Subject, 10, 64)
	if err != nil {
		return nil, fmt.Errorf("%w: non-numeric subject", authDomain.ErrTokenInvalid)
	}

	claims := &authDomain.Claims{
		Subject:   subject,
		ID:        wire.ID,
		ExpiresAt: wire.ExpiresAt.Time,
	}
	if wire.IssuedAt != nil {
		claims.IssuedAt = wire.IssuedAt.Time
	}

	switch authDomain.TokenType(wire.Type) {
	case "":
		role, err := accountDomain.ParseRole(wire.Role)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", authDomain.ErrTokenInvalid, err)
		}
		claims.Type = authDomain.TokenTypeAccess
		claims.Role = role
		claims.HajjID = wire.HajjID
	case authDomain.TokenTypeRefresh:
		claims.Type = authDomain.TokenTypeRefresh
	default:
		return nil, fmt.Errorf("%w: unknown token type %q", authDomain.ErrTokenInvalid, wire.Type)
	}

	return claims, nil
}
