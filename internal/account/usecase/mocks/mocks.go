// Package mocks provides testify mocks for the account use case interfaces.
package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	accountDomain "github.com/hajjcare/accounts/internal/account/domain"
)

// MockAccountRepository is a mock implementation of AccountRepository.
type MockAccountRepository struct {
	mock.Mock
}

func (m *MockAccountRepository) account(args mock.Arguments) (*accountDomain.Account, error) {
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*accountDomain.Account), args.Error(1)
}

// Create mocks the Create method.
func (m *MockAccountRepository) Create(ctx context.Context, account *accountDomain.Account) error {
	args := m.Called(ctx, account)
	return args.Error(0)
}

// UpdatePassword mocks the UpdatePassword method.
func (m *MockAccountRepository) UpdatePassword(ctx context.Context, accountID int64, hashedPassword string) error {
	args := m.Called(ctx, accountID, hashedPassword)
	return args.Error(0)
}

// GetByID mocks the GetByID method.
func (m *MockAccountRepository) GetByID(ctx context.Context, id int64) (*accountDomain.Account, error) {
	return m.account(m.Called(ctx, id))
}

// GetByUsername mocks the GetByUsername method.
func (m *MockAccountRepository) GetByUsername(ctx context.Context, username string) (*accountDomain.Account, error) {
	return m.account(m.Called(ctx, username))
}

// GetByNationalID mocks the GetByNationalID method.
func (m *MockAccountRepository) GetByNationalID(
	ctx context.Context,
	nationalID string,
) (*accountDomain.Account, error) {
	return m.account(m.Called(ctx, nationalID))
}

// GetByPassportNumber mocks the GetByPassportNumber method.
func (m *MockAccountRepository) GetByPassportNumber(
	ctx context.Context,
	passportNumber string,
) (*accountDomain.Account, error) {
	return m.account(m.Called(ctx, passportNumber))
}

// MockAccountUseCase is a mock implementation of AccountUseCase.
type MockAccountUseCase struct {
	mock.Mock
}

// Create mocks the Create method.
func (m *MockAccountUseCase) Create(
	ctx context.Context,
	input *accountDomain.CreateAccountInput,
) (*accountDomain.Account, error) {
	args := m.Called(ctx, input)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*accountDomain.Account), args.Error(1)
}

// Get mocks the Get method.
func (m *MockAccountUseCase) Get(ctx context.Context, id int64) (*accountDomain.Account, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*accountDomain.Account), args.Error(1)
}

// SetPassword mocks the SetPassword method.
func (m *MockAccountUseCase) SetPassword(ctx context.Context, id int64, password string) error {
	args := m.Called(ctx, id, password)
	return args.Error(0)
}
