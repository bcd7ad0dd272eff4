package usecase

import (
	"context"
	"errors"
	"time"

	accountDomain "github.com/hajjcare/accounts/internal/account/domain"
	authDomain "github.com/hajjcare/accounts/internal/auth/domain"
	authService "github.com/hajjcare/accounts/internal/auth/service"
	"github.com/hajjcare/accounts/internal/config"
)

// Option configures a TokenUseCase.
type Option func(*tokenUseCase)

// WithClock overrides the clock used for revocation lifetimes.
func WithClock(now func() time.Time) Option {
	return func(t *tokenUseCase) {
		t.now = now
	}
}

// tokenUseCase implements TokenUseCase.
type tokenUseCase struct {
	accessTTL     time.Duration
	refreshTTL    time.Duration
	storeTimeout  time.Duration
	accounts      AccountReader
	ledger        RevocationLedger
	secretService authService.SecretService
	codec         authService.TokenCodec
	now           func() time.Time
}

// NewTokenUseCase creates a new TokenUseCase. Token lifetimes and the collaborator
// timeout come from cfg, which must have passed Validate.
func NewTokenUseCase(
	cfg *config.Config,
	accounts AccountReader,
	ledger RevocationLedger,
	secretService authService.SecretService,
	codec authService.TokenCodec,
	opts ...Option,
) TokenUseCase {
	t := &tokenUseCase{
		accessTTL:     cfg.AccessTokenTTL,
		refreshTTL:    cfg.RefreshTokenTTL,
		storeTimeout:  cfg.StoreTimeout,
		accounts:      accounts,
		ledger:        ledger,
		secretService: secretService,
		codec:         codec,
		now:           time.Now,
	}
	for _, opt := range opts {
		opt(t)
	}
	return t
}

// bounded runs fn under the collaborator timeout.
func (t *tokenUseCase) bounded(ctx context.Context, fn func(ctx context.Context) error) error {
	if t.storeTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, t.storeTimeout)
		defer cancel()
	}
	return fn(ctx)
}

// lookup fetches an account and replaces not found with notFoundErr.
func (t *tokenUseCase) lookup(
	ctx context.Context,
	notFoundErr error,
	find func(ctx context.Context) (*accountDomain.Account, error),
) (*accountDomain.Account, error) {
	var account *accountDomain.Account
	err := t.bounded(ctx, func(ctx context.Context) error {
		var err error
		account, err = find(ctx)
		return err
	})
	if err != nil {
		if errors.Is(err, accountDomain.ErrAccountNotFound) {
			return nil, notFoundErr
		}
		return nil, err
	}
	return account, nil
}

// Grant validates request, authenticates it and issues a token pair.
func (t *tokenUseCase) Grant(
	ctx context.Context,
	request *authDomain.GrantRequest,
) (*authDomain.TokenPair, error) {
	if request == nil {
		request = &authDomain.GrantRequest{}
	}
	if err := request.Validate(); err != nil {
		return nil, err
	}

	var (
		account *accountDomain.Account
		err     error
	)
	switch request.GrantType {
	case authDomain.GrantTypePassword:
		account, err = t.authenticatePassword(ctx, request.Username, request.Password)
	case authDomain.GrantTypeNationalID:
		account, err = t.lookup(ctx, authDomain.ErrInvalidNationalID, func(ctx context.Context) (*accountDomain.Account, error) {
			return t.accounts.GetByNationalID(ctx, request.NationalID)
		})
	case authDomain.GrantTypePassportNumber:
		account, err = t.lookup(ctx, authDomain.ErrInvalidPassportNumber, func(ctx context.Context) (*accountDomain.Account, error) {
			return t.accounts.GetByPassportNumber(ctx, request.PassportNumber)
		})
	case authDomain.GrantTypeRefreshToken:
		account, err = t.authenticateRefreshToken(ctx, request.RefreshToken)
	}
	if err != nil {
		return nil, err
	}

	return t.issuePair(account)
}

// authenticatePassword returns the same error for an unknown username, an account
// without a password and a wrong password.
func (t *tokenUseCase) authenticatePassword(
	ctx context.Context,
	username, password string,
) (*accountDomain.Account, error) {
	account, err := t.lookup(ctx, authDomain.ErrInvalidCredentials, func(ctx context.Context) (*accountDomain.Account, error) {
		return t.accounts.GetByUsername(ctx, username)
	})
	if err != nil {
		return nil, err
	}
	if !account.HasPassword() || !t.secretService.CompareSecret(password, *account.HashedPassword) {
		return nil, authDomain.ErrInvalidCredentials
	}
	return account, nil
}

func (t *tokenUseCase) authenticateRefreshToken(ctx context.Context, token string) (*accountDomain.Account, error) {
	claims, err := t.codec.Verify(token)
	if err != nil || claims.Type != authDomain.TokenTypeRefresh {
		return nil, authDomain.ErrInvalidRefreshToken
	}

	revoked, err := t.isRevoked(ctx, token)
	if err != nil {
		return nil, err
	}
	if revoked {
		return nil, authDomain.ErrInvalidRefreshToken
	}

	return t.lookup(ctx, authDomain.ErrInvalidRefreshToken, func(ctx context.Context) (*accountDomain.Account, error) {
		return t.accounts.GetByID(ctx, claims.Subject)
	})
}

func (t *tokenUseCase) isRevoked(ctx context.Context, token string) (bool, error) {
	var revoked bool
	err := t.bounded(ctx, func(ctx context.Context) error {
		var err error
		revoked, err = t.ledger.IsRevoked(ctx, authService.RevocationKey(token))
		return err
	})
	return revoked, err
}

func (t *tokenUseCase) issuePair(account *accountDomain.Account) (*authDomain.TokenPair, error) {
	accessToken, accessExpiresAt, err := t.codec.Issue(authDomain.AccessClaims(account), t.accessTTL)
	if err != nil {
		return nil, err
	}
	refreshToken, refreshExpiresAt, err := t.codec.Issue(authDomain.RefreshClaims(account), t.refreshTTL)
	if err != nil {
		return nil, err
	}

	return &authDomain.TokenPair{
		AccessToken:      accessToken,
		RefreshToken:     refreshToken,
		AccessExpiresAt:  accessExpiresAt,
		RefreshExpiresAt: refreshExpiresAt,
	}, nil
}

// Revoke verifies refreshToken and writes a ledger entry that lives exactly as long
// as the token would have.
func (t *tokenUseCase) Revoke(ctx context.Context, refreshToken string) error {
	if refreshToken == "" {
		return authDomain.ErrRefreshTokenRequired
	}

	claims, err := t.codec.Verify(refreshToken)
	if err != nil {
		if errors.Is(err, authDomain.ErrTokenExpired) {
			return authDomain.ErrRefreshTokenExpired
		}
		return authDomain.ErrInvalidRefreshToken
	}
	if claims.Type != authDomain.TokenTypeRefresh {
		return authDomain.ErrInvalidRefreshToken
	}

	revoked, err := t.isRevoked(ctx, refreshToken)
	if err != nil {
		return err
	}
	if revoked {
		return authDomain.ErrRefreshTokenRevoked
	}

	// Clock skew between issuer and revoker can make the remaining lifetime zero.
	ttl := claims.RemainingLifetime(t.now())
	if ttl == 0 {
		return authDomain.ErrRefreshTokenExpired
	}

	return t.bounded(ctx, func(ctx context.Context) error {
		return t.ledger.Revoke(ctx, authService.RevocationKey(refreshToken), ttl)
	})
}
