// Package domain defines the account entity read by the authenticator.
//
// Accounts are created by onboarding and carry one or more unique identifiers
// (username, national ID, passport number, mobile number) plus a role from a
// closed set. The password hash is optional: pilgrims identified by national ID
// or passport number usually have none.
package domain

import (
	"time"

	"github.com/hajjcare/accounts/internal/errors"
)

// Account is an identity record.
type Account struct {
	ID             int64
	HajjID         *int64 // links to the pilgrim demographic record
	FirstName      *string
	MiddleName     *string
	LastName       *string
	Username       *string
	NationalID     *string
	PassportNumber *string
	MobileNumber   *string
	Role           Role
	HashedPassword *string //nolint:gosec // argon2id or legacy bcrypt hash, never plaintext
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

// HasPassword reports whether the account can log in with a password.
func (a *Account) HasPassword() bool {
	return a.HashedPassword != nil && *a.HashedPassword != ""
}

// CreateAccountInput contains the parameters for creating an account.
type CreateAccountInput struct {
	HajjID         *int64
	FirstName      *string
	MiddleName     *string
	LastName       *string
	Username       *string
	NationalID     *string
	PassportNumber *string
	MobileNumber   *string
	Role           Role
	Password       string // plain text, hashed before storage; empty means no password login
}

// Account errors.
var (
	// ErrAccountNotFound indicates no account matches the lookup key.
	ErrAccountNotFound = errors.Wrap(errors.ErrNotFound, "account not found")

	// ErrAccountAlreadyExists indicates a unique identifier is already taken.
	ErrAccountAlreadyExists = errors.Wrap(errors.ErrConflict, "account already exists")

	// ErrInvalidRole indicates a role outside the known set.
	ErrInvalidRole = errors.Wrap(errors.ErrInvalidInput, "invalid role")

	// ErrMissingIdentifier indicates an account without any login identifier.
	ErrMissingIdentifier = errors.Wrap(
		errors.ErrInvalidInput,
		"at least one of username, national ID or passport number is required",
	)
)
