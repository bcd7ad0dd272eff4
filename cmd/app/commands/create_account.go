package commands

import (
	"context"
	"fmt"
	"log/slog"

	accountDomain "github.com/hajjcare/accounts/internal/account/domain"
	accountUseCase "github.com/hajjcare/accounts/internal/account/usecase"
)

// CreateAccountOptions carries the create-account flags. Empty strings mean "not set".
type CreateAccountOptions struct {
	HajjID           *int64
	Username         string
	NationalID       string
	PassportNumber   string
	MobileNumber     string
	FirstName        string
	MiddleName       string
	LastName         string
	Role             string
	GeneratePassword bool
	Format           string
}

// RunCreateAccount creates an account. Without GeneratePassword the account has no
// password and can only log in with its national ID or passport number until
// set-password is run. A generated password is printed once.
//
// Requirements: Database must be migrated and accessible.
func RunCreateAccount(
	ctx context.Context,
	accountUseCase accountUseCase.AccountUseCase,
	generator PasswordGenerator,
	logger *slog.Logger,
	opts CreateAccountOptions,
	io IOTuple,
) error {
	input := &accountDomain.CreateAccountInput{
		HajjID:         opts.HajjID,
		FirstName:      optional(opts.FirstName),
		MiddleName:     optional(opts.MiddleName),
		LastName:       optional(opts.LastName),
		Username:       optional(opts.Username),
		NationalID:     optional(opts.NationalID),
		PassportNumber: optional(opts.PassportNumber),
		MobileNumber:   optional(opts.MobileNumber),
		Role:           accountDomain.Role(opts.Role),
	}

	if opts.GeneratePassword {
		password, err := generator.GeneratePassword()
		if err != nil {
			return fmt.Errorf("failed to generate password: %w", err)
		}
		input.Password = password
	}

	account, err := accountUseCase.Create(ctx, input)
	if err != nil {
		return fmt.Errorf("failed to create account: %w", err)
	}

	if opts.Format == "json" {
		result := map[string]any{
			"id":   account.ID,
			"role": account.Role,
		}
		if input.Password != "" {
			result["password"] = input.Password
		}
		writeJSON(io.Writer, result)
	} else {
		_, _ = fmt.Fprintln(io.Writer, "\nAccount created successfully!")
		_, _ = fmt.Fprintf(io.Writer, "Account ID: %d\n", account.ID)
		_, _ = fmt.Fprintf(io.Writer, "Role: %s\n", account.Role)
		if input.Password != "" {
			_, _ = fmt.Fprintf(io.Writer, "Password: %s\n", input.Password)
			_, _ = fmt.Fprintln(io.Writer, "\nIMPORTANT: The password is shown only once. Hand it over securely.")
		}
	}

	logger.Info("account created",
		slog.Int64("account_id", account.ID),
		slog.String("role", account.Role.String()),
		slog.Bool("has_password", account.HasPassword()),
	)
	return nil
}
