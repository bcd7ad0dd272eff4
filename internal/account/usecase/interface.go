// Package usecase implements account onboarding and lookup.
package usecase

import (
	"context"

	accountDomain "github.com/hajjcare/accounts/internal/account/domain"
)

// AccountRepository defines persistence operations for accounts.
// Implementations must support transaction-aware operations via context propagation.
type AccountRepository interface {
	// Create stores a new account and fills its generated ID and timestamps.
	Create(ctx context.Context, account *accountDomain.Account) error

	// UpdatePassword replaces the stored hash. Returns ErrAccountNotFound if no row matched.
	UpdatePassword(ctx context.Context, accountID int64, hashedPassword string) error

	// GetByID retrieves an account by ID. Returns ErrAccountNotFound if not found.
	GetByID(ctx context.Context, id int64) (*accountDomain.Account, error)

	GetByUsername(ctx context.Context, username string) (*accountDomain.Account, error)
	GetByNationalID(ctx context.Context, nationalID string) (*accountDomain.Account, error)
	GetByPassportNumber(ctx context.Context, passportNumber string) (*accountDomain.Account, error)
}

// PasswordHasher hashes plain text passwords for storage.
type PasswordHasher interface {
	HashSecret(plainSecret string) (hashedSecret string, err error)
}

// AccountUseCase defines operator and profile operations on accounts.
type AccountUseCase interface {
	// Create validates the input, hashes the password when one is given and stores the account.
	Create(ctx context.Context, input *accountDomain.CreateAccountInput) (*accountDomain.Account, error)

	// Get retrieves an account by ID. Returns ErrAccountNotFound if not found.
	Get(ctx context.Context, id int64) (*accountDomain.Account, error)

	// SetPassword replaces the password of an existing account inside a transaction.
	SetPassword(ctx context.Context, id int64, password string) error
}
