package usecase

import (
	"context"
	"time"

	accountDomain "github.com/hajjcare/accounts/internal/account/domain"
	"github.com/hajjcare/accounts/internal/metrics"
)

// accountUseCaseWithMetrics decorates AccountUseCase with metrics instrumentation.
type accountUseCaseWithMetrics struct {
	next    AccountUseCase
	metrics metrics.BusinessMetrics
}

// NewAccountUseCaseWithMetrics wraps an AccountUseCase with metrics recording.
func NewAccountUseCaseWithMetrics(useCase AccountUseCase, m metrics.BusinessMetrics) AccountUseCase {
	return &accountUseCaseWithMetrics{
		next:    useCase,
		metrics: m,
	}
}

func (a *accountUseCaseWithMetrics) record(ctx context.Context, operation string, start time.Time, err error) {
	status := metrics.Status(err)

	a.metrics.RecordOperation(ctx, "account", operation, status)
	a.metrics.RecordDuration(ctx, "account", operation, time.Since(start), status)
}

// Create records metrics for account creation.
func (a *accountUseCaseWithMetrics) Create(
	ctx context.Context,
	input *accountDomain.CreateAccountInput,
) (*accountDomain.Account, error) {
	start := time.Now()
	account, err := a.next.Create(ctx, input)
	a.record(ctx, "account_create", start, err)
	return account, err
}

// Get records metrics for account retrieval.
func (a *accountUseCaseWithMetrics) Get(ctx context.Context, id int64) (*accountDomain.Account, error) {
	start := time.Now()
	account, err := a.next.Get(ctx, id)
	a.record(ctx, "account_get", start, err)
	return account, err
}

// SetPassword records metrics for password changes.
func (a *accountUseCaseWithMetrics) SetPassword(ctx context.Context, id int64, password string) error {
	start := time.Now()
	err := a.next.SetPassword(ctx, id, password)
	a.record(ctx, "account_set_password", start, err)
	return err
}
