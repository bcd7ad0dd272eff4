package usecase

import (
	"context"
	"time"

	authDomain "github.com/hajjcare/accounts/internal/auth/domain"
	"github.com/hajjcare/accounts/internal/metrics"
)

// tokenUseCaseWithMetrics decorates TokenUseCase with metrics instrumentation.
type tokenUseCaseWithMetrics struct {
	next    TokenUseCase
	metrics metrics.BusinessMetrics
}

// NewTokenUseCaseWithMetrics wraps a TokenUseCase with metrics recording.
func NewTokenUseCaseWithMetrics(useCase TokenUseCase, m metrics.BusinessMetrics) TokenUseCase {
	return &tokenUseCaseWithMetrics{
		next:    useCase,
		metrics: m,
	}
}

// Grant records metrics for token grants.
func (t *tokenUseCaseWithMetrics) Grant(
	ctx context.Context,
	request *authDomain.GrantRequest,
) (*authDomain.TokenPair, error) {
	start := time.Now()
	pair, err := t.next.Grant(ctx, request)

	status := metrics.Status(err)

	t.metrics.RecordOperation(ctx, "auth", "token_grant", status)
	t.metrics.RecordDuration(ctx, "auth", "token_grant", time.Since(start), status)

	return pair, err
}

// Revoke records metrics for refresh token revocation.
func (t *tokenUseCaseWithMetrics) Revoke(ctx context.Context, refreshToken string) error {
	start := time.Now()
	err := t.next.Revoke(ctx, refreshToken)

	status := metrics.Status(err)

	t.metrics.RecordOperation(ctx, "auth", "token_revoke", status)
	t.metrics.RecordDuration(ctx, "auth", "token_revoke", time.Since(start), status)

	return err
}
