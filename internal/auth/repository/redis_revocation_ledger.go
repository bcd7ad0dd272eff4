package repository

import (
	"context"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"

	authDomain "github.com/hajjcare/accounts/internal/auth/domain"
	apperrors "github.com/hajjcare/accounts/internal/errors"
)

const revokedMarker = "revoked"

// RedisRevocationLedger stores revocation entries as expiring redis strings.
type RedisRevocationLedger struct {
	client redis.UniversalClient
}

// NewRedisRevocationLedger creates a new RedisRevocationLedger.
func NewRedisRevocationLedger(client redis.UniversalClient) *RedisRevocationLedger {
	return &RedisRevocationLedger{client: client}
}

// IsRevoked reports whether key holds a live revocation marker.
func (r *RedisRevocationLedger) IsRevoked(ctx context.Context, key string) (bool, error) {
	value, err := r.client.Get(ctx, key).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return false, nil
		}
		return false, apperrors.Wrap(err, "failed to read revocation entry")
	}
	return value == revokedMarker, nil
}

// Revoke writes a revocation marker that redis expires after ttl.
func (r *RedisRevocationLedger) Revoke(ctx context.Context, key string, ttl time.Duration) error {
	if ttl <= 0 {
		return authDomain.ErrInvalidTTL
	}
	if err := r.client.Set(ctx, key, revokedMarker, ttl).Err(); err != nil {
		return apperrors.Wrap(err, "failed to write revocation entry")
	}
	return nil
}
