package repository

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	authDomain "github.com/hajjcare/accounts/internal/auth/domain"
)

type steppingClock struct {
	mu  sync.Mutex
	now time.Time
}

func (c *steppingClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *steppingClock) Advance(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = c.now.Add(d)
}

func TestMemoryRevocationLedger(t *testing.T) {
	clock := &steppingClock{now: fixedNow}
	ledger := NewMemoryRevocationLedger(clock.Now)
	ctx := context.Background()

	require.NoError(t, ledger.Revoke(ctx, "revoked:a", time.Minute))
	require.NoError(t, ledger.Revoke(ctx, "revoked:b", time.Hour))

	revoked, err := ledger.IsRevoked(ctx, "revoked:a")
	require.NoError(t, err)
	assert.True(t, revoked)

	clock.Advance(time.Minute)

	revoked, err = ledger.IsRevoked(ctx, "revoked:a")
	require.NoError(t, err)
	assert.False(t, revoked, "entry must expire with its ttl")

	revoked, err = ledger.IsRevoked(ctx, "revoked:b")
	require.NoError(t, err)
	assert.True(t, revoked)

	assert.ErrorIs(t, ledger.Revoke(ctx, "revoked:c", 0), authDomain.ErrInvalidTTL)
}

func TestMemoryRevocationLedger_PurgeExpired(t *testing.T) {
	clock := &steppingClock{now: fixedNow}
	ledger := NewMemoryRevocationLedger(clock.Now)
	ctx := context.Background()

	require.NoError(t, ledger.Revoke(ctx, "revoked:a", time.Minute))
	require.NoError(t, ledger.Revoke(ctx, "revoked:b", time.Minute))
	require.NoError(t, ledger.Revoke(ctx, "revoked:c", time.Hour))

	clock.Advance(2 * time.Minute)

	purged, err := ledger.PurgeExpired(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(2), purged)
	assert.Len(t, ledger.entries, 1)
}

func TestMemoryRevocationLedger_Concurrent(t *testing.T) {
	ledger := NewMemoryRevocationLedger(nil)
	ctx := context.Background()

	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_ = ledger.Revoke(ctx, "revoked:shared", time.Minute)
			_, _ = ledger.IsRevoked(ctx, "revoked:shared")
		}()
	}
	wg.Wait()

	revoked, err := ledger.IsRevoked(ctx, "revoked:shared")
	require.NoError(t, err)
	assert.True(t, revoked)
}
