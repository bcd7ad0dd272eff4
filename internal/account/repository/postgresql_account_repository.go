package repository

import (
	"context"
	"database/sql"

	accountDomain "github.com/hajjcare/accounts/internal/account/domain"
	"github.com/hajjcare/accounts/internal/database"
	apperrors "github.com/hajjcare/accounts/internal/errors"
)

// PostgreSQLAccountRepository handles account persistence for PostgreSQL.
type PostgreSQLAccountRepository struct {
	db *sql.DB
}

// NewPostgreSQLAccountRepository creates a new PostgreSQLAccountRepository.
func NewPostgreSQLAccountRepository(db *sql.DB) *PostgreSQLAccountRepository {
	return &PostgreSQLAccountRepository{db: db}
}

// Create inserts a new account and sets its generated ID and timestamps.
func (r *PostgreSQLAccountRepository) Create(ctx context.Context, account *accountDomain.Account) error {
	querier := database.GetTx(ctx, r.db)

	query := `INSERT INTO user_accounts (hajj_id, first_name, middle_name, last_name, username,
				national_id, passport_number, mobile_number, role, hashed_password, created_at, updated_at)
			  VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, NOW(), NOW())
			  RETURNING id, created_at, updated_at`

	err := querier.QueryRowContext(
		ctx,
		query,
		nullableInt64(account.HajjID),
		nullableString(account.FirstName),
		nullableString(account.MiddleName),
		nullableString(account.LastName),
		nullableString(account.Username),
		nullableString(account.NationalID),
		nullableString(account.PassportNumber),
		nullableString(account.MobileNumber),
		string(account.Role),
		nullableString(account.HashedPassword),
	).Scan(&account.ID, &account.CreatedAt, &account.UpdatedAt)
	if err != nil {
		if isPostgreSQLUniqueViolation(err) {
			return accountDomain.ErrAccountAlreadyExists
		}
		return apperrors.Wrap(err, "failed to create account")
	}
	return nil
}

// UpdatePassword replaces the password hash of an account.
func (r *PostgreSQLAccountRepository) UpdatePassword(
	ctx context.Context,
	accountID int64,
	hashedPassword string,
) error {
	querier := database.GetTx(ctx, r.db)

	query := `UPDATE user_accounts SET hashed_password = $1, updated_at = NOW() WHERE id = $2`

	result, err := querier.ExecContext(ctx, query, hashedPassword, accountID)
	if err != nil {
		return apperrors.Wrap(err, "failed to update account password")
	}
	rows, err := result.RowsAffected()
	if err != nil {
		return apperrors.Wrap(err, "failed to read affected rows")
	}
	if rows == 0 {
		return accountDomain.ErrAccountNotFound
	}
	return nil
}

// GetByID retrieves an account by its internal ID.
func (r *PostgreSQLAccountRepository) GetByID(ctx context.Context, id int64) (*accountDomain.Account, error) {
	return r.getBy(ctx, "id", id)
}

// GetByUsername retrieves an account by username.
func (r *PostgreSQLAccountRepository) GetByUsername(
	ctx context.Context,
	username string,
) (*accountDomain.Account, error) {
	return r.getBy(ctx, "username", username)
}

// GetByNationalID retrieves an account by national ID.
func (r *PostgreSQLAccountRepository) GetByNationalID(
	ctx context.Context,
	nationalID string,
) (*accountDomain.Account, error) {
	return r.getBy(ctx, "national_id", nationalID)
}

// GetByPassportNumber retrieves an account by passport number.
func (r *PostgreSQLAccountRepository) GetByPassportNumber(
	ctx context.Context,
	passportNumber string,
) (*accountDomain.Account, error) {
	return r.getBy(ctx, "passport_number", passportNumber)
}

// getBy runs a single-row lookup on a unique column. column is never user input.
func (r *PostgreSQLAccountRepository) getBy(
	ctx context.Context,
	column string,
	value any,
) (*accountDomain.Account, error) {
	querier := database.GetTx(ctx, r.db)

	query := `SELECT ` + accountColumns + ` FROM user_accounts WHERE ` + column + ` = $1` //nolint:gosec

	return scanAccount(querier.QueryRowContext(ctx, query, value))
}
