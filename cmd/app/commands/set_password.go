package commands

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	accountUseCase "github.com/hajjcare/accounts/internal/account/usecase"
)

// RunSetPassword replaces the password of account id. With generate the password is
// random and printed once; otherwise it is read from io.Reader.
//
// Requirements: Database must be migrated and accessible.
func RunSetPassword(
	ctx context.Context,
	accountUseCase accountUseCase.AccountUseCase,
	generator PasswordGenerator,
	logger *slog.Logger,
	id int64,
	generate bool,
	format string,
	io IOTuple,
) error {
	var password string
	if generate {
		generated, err := generator.GeneratePassword()
		if err != nil {
			return fmt.Errorf("failed to generate password: %w", err)
		}
		password = generated
	} else {
		prompted, err := promptForPassword(io)
		if err != nil {
			return err
		}
		password = prompted
	}

	if err := accountUseCase.SetPassword(ctx, id, password); err != nil {
		return fmt.Errorf("failed to set password: %w", err)
	}

	if format == "json" {
		result := map[string]any{"id": id}
		if generate {
			result["password"] = password
		}
		writeJSON(io.Writer, result)
	} else {
		_, _ = fmt.Fprintf(io.Writer, "Password updated for account %d\n", id)
		if generate {
			_, _ = fmt.Fprintf(io.Writer, "Password: %s\n", password)
		}
	}

	logger.Info("account password updated", slog.Int64("account_id", id))
	return nil
}

// promptForPassword reads the new password and its confirmation, one per line.
func promptForPassword(io IOTuple) (string, error) {
	if io.Reader == nil {
		return "", errors.New("no input available, use --generate")
	}
	reader := bufio.NewReader(io.Reader)

	_, _ = fmt.Fprint(io.Writer, "New password: ")
	password, err := reader.ReadString('\n')
	if err != nil {
		return "", fmt.Errorf("failed to read password: %w", err)
	}

	_, _ = fmt.Fprint(io.Writer, "Confirm password: ")
	confirmation, err := reader.ReadString('\n')
	if err != nil {
		return "", fmt.Errorf("failed to read password confirmation: %w", err)
	}
	_, _ = fmt.Fprintln(io.Writer)

	password = strings.TrimRight(password, "\r\n")
	if password != strings.TrimRight(confirmation, "\r\n") {
		return "", errors.New("passwords do not match")
	}
	return password, nil
}
