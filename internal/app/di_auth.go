package app

import (
	"context"
	"fmt"

	"github.com/redis/go-redis/v9"

	"github.com/hajjcare/accounts/internal/config"
	authHTTP "github.com/hajjcare/accounts/internal/auth/http"
	authRepository "github.com/hajjcare/accounts/internal/auth/repository"
	authService "github.com/hajjcare/accounts/internal/auth/service"
	authUseCase "github.com/hajjcare/accounts/internal/auth/usecase"
)

// ExpiredRevocationPurger deletes ledger entries whose token has expired.
// Ledgers that expire entries on their own (redis) do not implement it.
type ExpiredRevocationPurger interface {
	PurgeExpired(ctx context.Context) (int64, error)
}

// SecretService returns the password hashing service.
func (c *Container) SecretService() authService.SecretService {
	c.secretServiceInit.Do(func() {
		c.secretService = authService.NewSecretService()
	})
	return c.secretService
}

// TokenCodec returns the JWT codec signed with JWT_SECRET.
func (c *Container) TokenCodec() (authService.TokenCodec, error) {
	err := c.initOnce(&c.tokenCodecInit, "tokenCodec", func() error {
		var err error
		c.tokenCodec, err = authService.NewTokenCodec([]byte(c.config.JWTSecret))
		if err != nil {
			return fmt.Errorf("failed to create token codec: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return c.tokenCodec, nil
}

// RedisClient returns the redis client used by the redis revocation ledger.
func (c *Container) RedisClient() (*redis.Client, error) {
	err := c.initOnce(&c.redisClientInit, "redisClient", func() error {
		var err error
		c.redisClient, err = c.initRedisClient()
		return err
	})
	if err != nil {
		return nil, err
	}
	return c.redisClient, nil
}

// RevocationLedger returns the ledger selected by REVOCATION_BACKEND.
func (c *Container) RevocationLedger() (authUseCase.RevocationLedger, error) {
	err := c.initOnce(&c.revocationLedgerInit, "revocationLedger", func() error {
		var err error
		c.revocationLedger, err = c.initRevocationLedger()
		return err
	})
	if err != nil {
		return nil, err
	}
	return c.revocationLedger, nil
}

// RevocationPurger returns the ledger as a purger. ok is false for ledgers that
// expire entries on their own.
func (c *Container) RevocationPurger() (purger ExpiredRevocationPurger, ok bool, err error) {
	ledger, err := c.RevocationLedger()
	if err != nil {
		return nil, false, err
	}
	purger, ok = ledger.(ExpiredRevocationPurger)
	return purger, ok, nil
}

// TokenUseCase returns the token use case.
func (c *Container) TokenUseCase() (authUseCase.TokenUseCase, error) {
	err := c.initOnce(&c.tokenUseCaseInit, "tokenUseCase", func() error {
		var err error
		c.tokenUseCase, err = c.initTokenUseCase()
		return err
	})
	if err != nil {
		return nil, err
	}
	return c.tokenUseCase, nil
}

// TokenHandler returns the HTTP handler for the token endpoints.
func (c *Container) TokenHandler() (*authHTTP.TokenHandler, error) {
	err := c.initOnce(&c.tokenHandlerInit, "tokenHandler", func() error {
		tokenUseCase, err := c.TokenUseCase()
		if err != nil {
			return fmt.Errorf("failed to get token use case for token handler: %w", err)
		}
		c.tokenHandler = authHTTP.NewTokenHandler(tokenUseCase, c.Logger())
		return nil
	})
	if err != nil {
		return nil, err
	}
	return c.tokenHandler, nil
}

// initRedisClient parses REDIS_URL and bounds dial, read and write by REDIS_TIMEOUT_SECONDS.
func (c *Container) initRedisClient() (*redis.Client, error) {
	opts, err := redis.ParseURL(c.config.RedisURL)
	if err != nil {
		return nil, fmt.Errorf("failed to parse redis url: %w", err)
	}
	opts.DialTimeout = c.config.RedisTimeout
	opts.ReadTimeout = c.config.RedisTimeout
	opts.WriteTimeout = c.config.RedisTimeout
	return redis.NewClient(opts), nil
}

// initRevocationLedger creates the revocation ledger for the configured backend.
func (c *Container) initRevocationLedger() (authUseCase.RevocationLedger, error) {
	switch c.config.RevocationBackend {
	case config.RevocationBackendRedis:
		client, err := c.RedisClient()
		if err != nil {
			return nil, fmt.Errorf("failed to get redis client for revocation ledger: %w", err)
		}
		return authRepository.NewRedisRevocationLedger(client), nil
	case config.RevocationBackendDatabase:
		db, err := c.DB()
		if err != nil {
			return nil, fmt.Errorf("failed to get database for revocation ledger: %w", err)
		}
		switch c.config.DBDriver {
		case "postgres":
			return authRepository.NewPostgreSQLRevocationLedger(db), nil
		case "mysql":
			return authRepository.NewMySQLRevocationLedger(db), nil
		default:
			return nil, fmt.Errorf("unsupported database driver: %s", c.config.DBDriver)
		}
	case config.RevocationBackendMemory:
		c.Logger().Warn("using in-memory revocation ledger, revocations are lost on restart")
		return authRepository.NewMemoryRevocationLedger(nil), nil
	default:
		return nil, fmt.Errorf("unsupported revocation backend: %s", c.config.RevocationBackend)
	}
}

// initTokenUseCase creates the token use case with all its dependencies.
func (c *Container) initTokenUseCase() (authUseCase.TokenUseCase, error) {
	accountRepository, err := c.AccountRepository()
	if err != nil {
		return nil, fmt.Errorf("failed to get account repository for token use case: %w", err)
	}

	ledger, err := c.RevocationLedger()
	if err != nil {
		return nil, fmt.Errorf("failed to get revocation ledger for token use case: %w", err)
	}

	codec, err := c.TokenCodec()
	if err != nil {
		return nil, fmt.Errorf("failed to get token codec for token use case: %w", err)
	}

	baseUseCase := authUseCase.NewTokenUseCase(
		c.config,
		accountRepository,
		ledger,
		c.SecretService(),
		codec,
	)

	// Wrap with metrics if enabled
	if c.config.MetricsEnabled {
		businessMetrics, err := c.BusinessMetrics()
		if err != nil {
			return nil, fmt.Errorf("failed to get business metrics for token use case: %w", err)
		}
		return authUseCase.NewTokenUseCaseWithMetrics(baseUseCase, businessMetrics), nil
	}

	return baseUseCase, nil
}
