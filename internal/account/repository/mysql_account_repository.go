package repository

import (
	"context"
	"database/sql"

	accountDomain "github.com/hajjcare/accounts/internal/account/domain"
	"github.com/hajjcare/accounts/internal/database"
	apperrors "github.com/hajjcare/accounts/internal/errors"
)

// MySQLAccountRepository handles account persistence for MySQL.
// The connection string must enable parseTime so DATETIME columns scan into time.Time.
type MySQLAccountRepository struct {
	db *sql.DB
}

// NewMySQLAccountRepository creates a new MySQLAccountRepository.
func NewMySQLAccountRepository(db *sql.DB) *MySQLAccountRepository {
	return &MySQLAccountRepository{db: db}
}

// Create inserts a new account and sets its generated ID and timestamps.
func (r *MySQLAccountRepository) Create(ctx context.Context, account *accountDomain.Account) error {
	querier := database.GetTx(ctx, r.db)

	query := `INSERT INTO user_accounts (hajj_id, first_name, middle_name, last_name, username,
				national_id, passport_number, mobile_number, role, hashed_password, created_at, updated_at)
			  VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, NOW(), NOW())`

	result, err := querier.ExecContext(
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
	)
	if err != nil {
		if isMySQLUniqueViolation(err) {
			return accountDomain.ErrAccountAlreadyExists
		}
		return apperrors.Wrap(err, "failed to create account")
	}

	id, err := result.LastInsertId()
	if err != nil {
		return apperrors.Wrap(err, "failed to read account id")
	}
	account.ID = id

	err = querier.QueryRowContext(ctx, `SELECT created_at, updated_at FROM user_accounts WHERE id = ?`, id).
		Scan(&account.CreatedAt, &account.UpdatedAt)
	if err != nil {
		return apperrors.Wrap(err, "failed to read account timestamps")
	}
	return nil
}

// UpdatePassword replaces the password hash of an account.
func (r *MySQLAccountRepository) UpdatePassword(ctx context.Context, accountID int64, hashedPassword string) error {
	querier := database.GetTx(ctx, r.db)

	query := `UPDATE user_accounts SET hashed_password = ?, updated_at = NOW() WHERE id = ?`

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
func (r *MySQLAccountRepository) GetByID(ctx context.Context, id int64) (*accountDomain.Account, error) {
	return r.getBy(ctx, "id", id)
}

// GetByUsername retrieves an account by username.
func (r *MySQLAccountRepository) GetByUsername(ctx context.Context, username string) (*accountDomain.Account, error) {
	return r.getBy(ctx, "username", username)
}

// GetByNationalID retrieves an account by national ID.
func (r *MySQLAccountRepository) GetByNationalID(
	ctx context.Context,
	nationalID string,
) (*accountDomain.Account, error) {
	return r.getBy(ctx, "national_id", nationalID)
}

// GetByPassportNumber retrieves an account by passport number.
func (r *MySQLAccountRepository) GetByPassportNumber(
	ctx context.Context,
	passportNumber string,
) (*accountDomain.Account, error) {
	return r.getBy(ctx, "passport_number", passportNumber)
}

func (r *MySQLAccountRepository) getBy(ctx context.Context, column string, value any) (*accountDomain.Account, error) {
	querier := database.GetTx(ctx, r.db)

	query := `SELECT ` + accountColumns + ` FROM user_accounts WHERE ` + column + ` = ?` //nolint:gosec

	return scanAccount(querier.QueryRowContext(ctx, query, value))
}
