package service

import (
	"strings"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	accountDomain "github.com/hajjcare/accounts/internal/account/domain"
	authDomain "github.com/hajjcare/accounts/internal/auth/domain"
	apperrors "github.com/hajjcare/accounts/internal/errors"
)

var testSecret = []byte("test-signing-secret")

type fakeClock struct {
	now time.Time
}

func (f *fakeClock) Now() time.Time { return f.now }

func newTestCodec(t *testing.T, clock *fakeClock) TokenCodec {
	t.Helper()
	codec, err := NewTokenCodec(testSecret, WithCodecClock(clock.Now))
	require.NoError(t, err)
	return codec
}

func TestNewTokenCodec_EmptySecret(t *testing.T) {
	codec, err := NewTokenCodec(nil)
	assert.Nil(t, codec)
	assert.Error(t, err)
}

func TestTokenCodec_RoundTrip(t *testing.T) {
	clock := &fakeClock{now: time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)}
	codec := newTestCodec(t, clock)
	hajjID := int64(9001)

	t.Run("access", func(t *testing.T) {
		token, expiresAt, err := codec.Issue(authDomain.Claims{
			Subject: 42,
			Role:    accountDomain.RolePilgrim,
			HajjID:  &hajjID,
			Type:    authDomain.TokenTypeAccess,
		}, 8*time.Hour)
		require.NoError(t, err)
		assert.Equal(t, clock.now.Add(8*time.Hour), expiresAt)

		claims, err := codec.Verify(token)
		require.NoError(t, err)
		assert.Equal(t, int64(42), claims.Subject)
		assert.Equal(t, accountDomain.RolePilgrim, claims.Role)
		require.NotNil(t, claims.HajjID)
		assert.Equal(t, hajjID, *claims.HajjID)
		assert.Equal(t, authDomain.TokenTypeAccess, claims.Type)
		assert.NotEmpty(t, claims.ID)
		assert.True(t, claims.ExpiresAt.Equal(expiresAt))
		assert.True(t, claims.IssuedAt.Equal(clock.now))
	})

	t.Run("refresh", func(t *testing.T) {
		token, _, err := codec.Issue(authDomain.Claims{
			Subject: 42,
			Role:    accountDomain.RoleAdmin,
			Type:    authDomain.TokenTypeRefresh,
		}, 30*24*time.Hour)
		require.NoError(t, err)

		claims, err := codec.Verify(token)
		require.NoError(t, err)
		assert.Equal(t, authDomain.TokenTypeRefresh, claims.Type)
		assert.Empty(t, claims.Role, "refresh tokens carry no role")
		assert.Nil(t, claims.HajjID)
	})

	t.Run("every token is unique", func(t *testing.T) {
		claims := authDomain.Claims{Subject: 1, Role: accountDomain.RoleAdmin, Type: authDomain.TokenTypeAccess}
		first, _, err := codec.Issue(claims, time.Hour)
		require.NoError(t, err)
		second, _, err := codec.Issue(claims, time.Hour)
		require.NoError(t, err)
		assert.NotEqual(t, first, second)
	})
}

func TestTokenCodec_Issue_Errors(t *testing.T) {
	codec := newTestCodec(t, &fakeClock{now: time.Now()})

	_, _, err := codec.Issue(authDomain.Claims{Subject: 1, Type: authDomain.TokenTypeRefresh}, 0)
	assert.Error(t, err)

	_, _, err = codec.Issue(authDomain.Claims{Subject: 1, Type: "session"}, time.Hour)
	assert.Error(t, err)
}

func TestTokenCodec_Verify_Expiry(t *testing.T) {
	clock := &fakeClock{now: time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)}
	codec := newTestCodec(t, clock)

	token, _, err := codec.Issue(authDomain.Claims{Subject: 7, Type: authDomain.TokenTypeRefresh}, time.Minute)
	require.NoError(t, err)

	clock.now = clock.now.Add(59 * time.Second)
	_, err = codec.Verify(token)
	require.NoError(t, err)

	clock.now = clock.now.Add(time.Second)
	_, err = codec.Verify(token)
	assert.ErrorIs(t, err, authDomain.ErrTokenExpired)
	assert.NotErrorIs(t, err, authDomain.ErrTokenInvalid)
	assert.True(t, apperrors.Is(err, apperrors.ErrUnauthorized))
}

func TestTokenCodec_Verify_Invalid(t *testing.T) {
	clock := &fakeClock{now: time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)}
	codec := newTestCodec(t, clock)

	valid, _, err := codec.Issue(authDomain.Claims{
		Subject: 7,
		Role:    accountDomain.RoleDoctor,
		Type:    authDomain.TokenTypeAccess,
	}, time.Hour)
	require.NoError(t, err)

	sign := func(method jwt.SigningMethod, key any, claims jwt.MapClaims) string {
		token, err := jwt.NewWithClaims(method, claims).SignedString(key)
		require.NoError(t, err)
		return token
	}
	exp := clock.now.Add(time.Hour).Unix()

	parts := strings.Split(valid, ".")
	tampered := parts[0] + "." + parts[1] + "." + strings.Repeat("A", len(parts[2]))

	tests := []struct {
		name  string
		token string
	}{
		{name: "empty", token: ""},
		{name: "malformed", token: "not-a-jwt"},
		{name: "bad signature", token: tampered},
		{name: "other secret", token: sign(jwt.SigningMethodHS256, []byte("other"), jwt.MapClaims{
			"sub": "7", "role": "doctor", "exp": exp,
		})},
		{name: "wrong algorithm", token: sign(jwt.SigningMethodHS512, testSecret, jwt.MapClaims{
			"sub": "7", "role": "doctor", "exp": exp,
		})},
		{name: "unsigned", token: sign(jwt.SigningMethodNone, jwt.UnsafeAllowNoneSignatureType, jwt.MapClaims{
			"sub": "7", "role": "doctor", "exp": exp,
		})},
		{name: "missing expiry", token: sign(jwt.SigningMethodHS256, testSecret, jwt.MapClaims{
			"sub": "7", "role": "doctor",
		})},
		{name: "non-numeric subject", token: sign(jwt.SigningMethodHS256, testSecret, jwt.MapClaims{
			"sub": "alice", "role": "doctor", "exp": exp,
		})},
		{name: "unknown role", token: sign(jwt.SigningMethodHS256, testSecret, jwt.MapClaims{
			"sub": "7", "role": "superuser", "exp": exp,
		})},
		{name: "unknown type", token: sign(jwt.SigningMethodHS256, testSecret, jwt.MapClaims{
			"sub": "7", "typ": "id_token", "exp": exp,
		})},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			claims, err := codec.Verify(tt.token)
			assert.Nil(t, claims)
			assert.ErrorIs(t, err, authDomain.ErrTokenInvalid)
			assert.True(t, apperrors.Is(err, apperrors.ErrUnauthorized))
		})
	}

	t.Run("tampered expired token is invalid, not expired", func(t *testing.T) {
		clock.now = clock.now.Add(2 * time.Hour)
		_, err := codec.Verify(tampered)
		assert.ErrorIs(t, err, authDomain.ErrTokenInvalid)
	})
}
