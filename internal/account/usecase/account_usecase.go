package usecase

import (
	"context"
	"time"

	validation "github.com/jellydator/validation"

	accountDomain "github.com/hajjcare/accounts/internal/account/domain"
	"github.com/hajjcare/accounts/internal/database"
	customValidation "github.com/hajjcare/accounts/internal/validation"
)

// accountUseCase implements AccountUseCase.
type accountUseCase struct {
	txManager    database.TxManager
	accountRepo  AccountRepository
	hasher       PasswordHasher
	storeTimeout time.Duration
}

// NewAccountUseCase creates a new AccountUseCase. storeTimeout bounds each repository call;
// zero disables the bound.
func NewAccountUseCase(
	txManager database.TxManager,
	accountRepo AccountRepository,
	hasher PasswordHasher,
	storeTimeout time.Duration,
) AccountUseCase {
	return &accountUseCase{
		txManager:    txManager,
		accountRepo:  accountRepo,
		hasher:       hasher,
		storeTimeout: storeTimeout,
	}
}

func (a *accountUseCase) withTimeout(ctx context.Context) (context.Context, context.CancelFunc) {
	if a.storeTimeout <= 0 {
		return context.WithCancel(ctx)
	}
	return context.WithTimeout(ctx, a.storeTimeout)
}

var roleRule = func() validation.Rule {
	roles := accountDomain.AllRoles()
	elements := make([]any, 0, len(roles))
	for _, role := range roles {
		elements = append(elements, role)
	}
	return validation.In(elements...).Error("must be one of admin, moderator, pilgrim, doctor")
}()

func validateCreateInput(input *accountDomain.CreateAccountInput) error {
	err := validation.Errors{
		"username":       validation.Validate(input.Username, validation.NilOrNotEmpty, customValidation.Username),
		"nationalId":     validation.Validate(input.NationalID, validation.NilOrNotEmpty, customValidation.NationalID),
		"passportNumber": validation.Validate(input.PassportNumber, validation.NilOrNotEmpty, customValidation.PassportNumber),
		"mobileNumber":   validation.Validate(input.MobileNumber, validation.NilOrNotEmpty, customValidation.MobileNumber),
		"role":           validation.Validate(input.Role, validation.Required, roleRule),
		"password": validation.Validate(input.Password, customValidation.PasswordLength),
	}.Filter()
	return customValidation.WrapValidationError(err)
}

// Create validates the input, hashes the password when present and persists the account.
func (a *accountUseCase) Create(
	ctx context.Context,
	input *accountDomain.CreateAccountInput,
) (*accountDomain.Account, error) {
	if err := validateCreateInput(input); err != nil {
		return nil, err
	}
	if input.Username == nil && input.NationalID == nil && input.PassportNumber == nil {
		return nil, accountDomain.ErrMissingIdentifier
	}

	account := &accountDomain.Account{
		HajjID:         input.HajjID,
		FirstName:      input.FirstName,
		MiddleName:     input.MiddleName,
		LastName:       input.LastName,
		Username:       input.Username,
		NationalID:     input.NationalID,
		PassportNumber: input.PassportNumber,
		MobileNumber:   input.MobileNumber,
		Role:           input.Role,
	}

	if input.Password != "" {
		hashed, err := a.hasher.HashSecret(input.Password)
		if err != nil {
			return nil, err
		}
		account.HashedPassword = &hashed
	}

	ctx, cancel := a.withTimeout(ctx)
	defer cancel()

	if err := a.accountRepo.Create(ctx, account); err != nil {
		return nil, err
	}
	return account, nil
}

// Get retrieves an account by ID.
func (a *accountUseCase) Get(ctx context.Context, id int64) (*accountDomain.Account, error) {
	ctx, cancel := a.withTimeout(ctx)
	defer cancel()

	return a.accountRepo.GetByID(ctx, id)
}

// SetPassword hashes password and stores it for the account identified by id.
func (a *accountUseCase) SetPassword(ctx context.Context, id int64, password string) error {
	err := validation.Validate(password, validation.Required, customValidation.PasswordLength)
	if err != nil {
		return customValidation.WrapValidationError(validation.Errors{"password": err})
	}

	hashed, err := a.hasher.HashSecret(password)
	if err != nil {
		return err
	}

	ctx, cancel := a.withTimeout(ctx)
	defer cancel()

	return a.txManager.WithTx(ctx, func(ctx context.Context) error {
		if _, err := a.accountRepo.GetByID(ctx, id); err != nil {
			return err
		}
		return a.accountRepo.UpdatePassword(ctx, id, hashed)
	})
}
