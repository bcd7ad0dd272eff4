package app

import (
	"fmt"

	accountHTTP "github.com/hajjcare/accounts/internal/account/http"
	accountRepository "github.com/hajjcare/accounts/internal/account/repository"
	accountUseCase "github.com/hajjcare/accounts/internal/account/usecase"
)

// AccountRepository returns the account repository based on database driver.
func (c *Container) AccountRepository() (accountUseCase.AccountRepository, error) {
	err := c.initOnce(&c.accountRepositoryInit, "accountRepository", func() error {
		var err error
		c.accountRepository, err = c.initAccountRepository()
		return err
	})
	if err != nil {
		return nil, err
	}
	return c.accountRepository, nil
}

// AccountUseCase returns the account use case.
func (c *Container) AccountUseCase() (accountUseCase.AccountUseCase, error) {
	err := c.initOnce(&c.accountUseCaseInit, "accountUseCase", func() error {
		var err error
		c.accountUseCase, err = c.initAccountUseCase()
		return err
	})
	if err != nil {
		return nil, err
	}
	return c.accountUseCase, nil
}

// AccountHandler returns the HTTP handler for profile reads.
func (c *Container) AccountHandler() (*accountHTTP.AccountHandler, error) {
	err := c.initOnce(&c.accountHandlerInit, "accountHandler", func() error {
		useCase, err := c.AccountUseCase()
		if err != nil {
			return fmt.Errorf("failed to get account use case for account handler: %w", err)
		}
		c.accountHandler = accountHTTP.NewAccountHandler(useCase, c.Logger())
		return nil
	})
	if err != nil {
		return nil, err
	}
	return c.accountHandler, nil
}

// initAccountRepository creates the account repository based on the database driver.
func (c *Container) initAccountRepository() (accountUseCase.AccountRepository, error) {
	db, err := c.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get database for account repository: %w", err)
	}

	switch c.config.DBDriver {
	case "postgres":
		return accountRepository.NewPostgreSQLAccountRepository(db), nil
	case "mysql":
		return accountRepository.NewMySQLAccountRepository(db), nil
	default:
		return nil, fmt.Errorf("unsupported database driver: %s", c.config.DBDriver)
	}
}

// initAccountUseCase creates the account use case with all its dependencies.
func (c *Container) initAccountUseCase() (accountUseCase.AccountUseCase, error) {
	txManager, err := c.TxManager()
	if err != nil {
		return nil, fmt.Errorf("failed to get tx manager for account use case: %w", err)
	}

	repository, err := c.AccountRepository()
	if err != nil {
		return nil, fmt.Errorf("failed to get account repository for account use case: %w", err)
	}

	baseUseCase := accountUseCase.NewAccountUseCase(txManager, repository, c.SecretService(), c.config.StoreTimeout)

	// Wrap with metrics if enabled
	if c.config.MetricsEnabled {
		businessMetrics, err := c.BusinessMetrics()
		if err != nil {
			return nil, fmt.Errorf("failed to get business metrics for account use case: %w", err)
		}
		return accountUseCase.NewAccountUseCaseWithMetrics(baseUseCase, businessMetrics), nil
	}

	return baseUseCase, nil
}
