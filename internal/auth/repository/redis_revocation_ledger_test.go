package repository

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	authDomain "github.com/hajjcare/accounts/internal/auth/domain"
)

func newRedisLedger(t *testing.T) (*RedisRevocationLedger, *miniredis.Miniredis) {
	t.Helper()
	server := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: server.Addr()})
	t.Cleanup(func() { _ = client.Close() })
	return NewRedisRevocationLedger(client), server
}

func TestRedisRevocationLedger_RevokeAndLookup(t *testing.T) {
	ledger, server := newRedisLedger(t)
	ctx := context.Background()

	revoked, err := ledger.IsRevoked(ctx, "revoked:abc")
	require.NoError(t, err)
	assert.False(t, revoked)

	require.NoError(t, ledger.Revoke(ctx, "revoked:abc", time.Hour))

	revoked, err = ledger.IsRevoked(ctx, "revoked:abc")
	require.NoError(t, err)
	assert.True(t, revoked)

	value, err := server.Get("revoked:abc")
	require.NoError(t, err)
	assert.Equal(t, "revoked", value)
	assert.Equal(t, time.Hour, server.TTL("revoked:abc"))
}

func TestRedisRevocationLedger_EntryExpires(t *testing.T) {
	ledger, server := newRedisLedger(t)
	ctx := context.Background()

	require.NoError(t, ledger.Revoke(ctx, "revoked:short", 30*time.Second))

	server.FastForward(29 * time.Second)
	revoked, err := ledger.IsRevoked(ctx, "revoked:short")
	require.NoError(t, err)
	assert.True(t, revoked)

	server.FastForward(time.Second)
	revoked, err = ledger.IsRevoked(ctx, "revoked:short")
	require.NoError(t, err)
	assert.False(t, revoked)
}

func TestRedisRevocationLedger_RejectsNonPositiveTTL(t *testing.T) {
	ledger, server := newRedisLedger(t)
	ctx := context.Background()

	assert.ErrorIs(t, ledger.Revoke(ctx, "revoked:zero", 0), authDomain.ErrInvalidTTL)
	assert.ErrorIs(t, ledger.Revoke(ctx, "revoked:neg", -time.Second), authDomain.ErrInvalidTTL)
	assert.False(t, server.Exists("revoked:zero"))
	assert.False(t, server.Exists("revoked:neg"))
}

func TestRedisRevocationLedger_Unavailable(t *testing.T) {
	ledger, server := newRedisLedger(t)
	server.Close()

	_, err := ledger.IsRevoked(context.Background(), "revoked:abc")
	assert.Error(t, err)

	err = ledger.Revoke(context.Background(), "revoked:abc", time.Minute)
	assert.Error(t, err)
}
