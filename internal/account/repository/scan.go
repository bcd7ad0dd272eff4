// Package repository implements account persistence for PostgreSQL and MySQL.
//
// Both implementations read the user_accounts table and honour transactions carried
// in the context through database.GetTx.
package repository

import (
	"database/sql"
	"errors"
	"strings"

	accountDomain "github.com/hajjcare/accounts/internal/account/domain"
	apperrors "github.com/hajjcare/accounts/internal/errors"
)

const accountColumns = `id, hajj_id, first_name, middle_name, last_name, username, national_id,
	passport_number, mobile_number, role, hashed_password, created_at, updated_at`

type rowScanner interface {
	Scan(dest ...any) error
}

// scanAccount reads one user_accounts row in accountColumns order.
func scanAccount(row rowScanner) (*accountDomain.Account, error) {
	var (
		account accountDomain.Account
		hajjID  sql.NullInt64
		role    string
	)

	err := row.Scan(
		&account.ID,
		&hajjID,
		&account.FirstName,
		&account.MiddleName,
		&account.LastName,
		&account.Username,
		&account.NationalID,
		&account.PassportNumber,
		&account.MobileNumber,
		&role,
		&account.HashedPassword,
		&account.CreatedAt,
		&account.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, accountDomain.ErrAccountNotFound
		}
		return nil, apperrors.Wrap(err, "failed to scan account")
	}

	if hajjID.Valid {
		account.HajjID = &hajjID.Int64
	}

	parsed, err := accountDomain.ParseRole(role)
	if err != nil {
		return nil, apperrors.Wrap(err, "stored account has an unknown role")
	}
	account.Role = parsed

	return &account, nil
}

func nullableInt64(v *int64) sql.NullInt64 {
	if v == nil {
		return sql.NullInt64{}
	}
	return sql.NullInt64{Int64: *v, Valid: true}
}

func nullableString(v *string) sql.NullString {
	if v == nil {
		return sql.NullString{}
	}
	return sql.NullString{String: *v, Valid: true}
}

// isPostgreSQLUniqueViolation checks if the error is a PostgreSQL unique constraint violation.
func isPostgreSQLUniqueViolation(err error) bool {
	if err == nil {
		return false
	}
	errMsg := strings.ToLower(err.Error())
	return strings.Contains(errMsg, "duplicate key") || strings.Contains(errMsg, "unique constraint")
}

// isMySQLUniqueViolation checks if the error is a MySQL unique constraint violation.
func isMySQLUniqueViolation(err error) bool {
	if err == nil {
		return false
	}
	errMsg := strings.ToLower(err.Error())
	return strings.Contains(errMsg, "error 1062") || strings.Contains(errMsg, "duplicate entry")
}
