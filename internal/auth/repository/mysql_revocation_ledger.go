package repository

import (
	"context"
	"database/sql"
	"errors"
	"time"

	authDomain "github.com/hajjcare/accounts/internal/auth/domain"
	"github.com/hajjcare/accounts/internal/database"
	apperrors "github.com/hajjcare/accounts/internal/errors"
)

// MySQLRevocationLedger stores revocation entries in the revoked_tokens table.
type MySQLRevocationLedger struct {
	db  *sql.DB
	now func() time.Time
}

// NewMySQLRevocationLedger creates a new MySQLRevocationLedger.
func NewMySQLRevocationLedger(db *sql.DB) *MySQLRevocationLedger {
	return &MySQLRevocationLedger{db: db, now: time.Now}
}

// IsRevoked reports whether key has an unexpired row.
func (m *MySQLRevocationLedger) IsRevoked(ctx context.Context, key string) (bool, error) {
	querier := database.GetTx(ctx, m.db)

	query := `SELECT 1 FROM revoked_tokens WHERE token_key = ? AND expires_at > ?`

	var found int
	err := querier.QueryRowContext(ctx, query, key, m.now().UTC()).Scan(&found)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return false, nil
		}
		return false, apperrors.Wrap(err, "failed to read revocation entry")
	}
	return true, nil
}

// Revoke upserts the entry for key with expires_at = now + ttl.
func (m *MySQLRevocationLedger) Revoke(ctx context.Context, key string, ttl time.Duration) error {
	if ttl <= 0 {
		return authDomain.ErrInvalidTTL
	}

	querier := database.GetTx(ctx, m.db)

	query := `INSERT INTO revoked_tokens (token_key, expires_at) VALUES (?, ?)
			  ON DUPLICATE KEY UPDATE expires_at = VALUES(expires_at)`

	if _, err := querier.ExecContext(ctx, query, key, m.now().UTC().Add(ttl)); err != nil {
		return apperrors.Wrap(err, "failed to write revocation entry")
	}
	return nil
}

// PurgeExpired deletes every expired entry and returns how many rows were removed.
func (m *MySQLRevocationLedger) PurgeExpired(ctx context.Context) (int64, error) {
	querier := database.GetTx(ctx, m.db)

	result, err := querier.ExecContext(ctx, `DELETE FROM revoked_tokens WHERE expires_at <= ?`, m.now().UTC())
	if err != nil {
		return 0, apperrors.Wrap(err, "failed to purge revocation entries")
	}
	return result.RowsAffected()
}
