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

// PostgreSQLRevocationLedger stores revocation entries in the revoked_tokens table.
// Rows past expires_at are ignored by lookups and removed by PurgeExpired.
type PostgreSQLRevocationLedger struct {
	db  *sql.DB
	now func() time.Time
}

// NewPostgreSQLRevocationLedger creates a new PostgreSQLRevocationLedger.
func NewPostgreSQLRevocationLedger(db *sql.DB) *PostgreSQLRevocationLedger {
	return &PostgreSQLRevocationLedger{db: db, now: time.Now}
}

// IsRevoked reports whether key has an unexpired row.
func (p *PostgreSQLRevocationLedger) IsRevoked(ctx context.Context, key string) (bool, error) {
	querier := database.GetTx(ctx, p.db)

	query := `SELECT 1 FROM revoked_tokens WHERE token_key = $1 AND expires_at > $2`

	var found int
	err := querier.QueryRowContext(ctx, query, key, p.now().UTC()).Scan(&found)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return false, nil
		}
		return false, apperrors.Wrap(err, "failed to read revocation entry")
	}
	return true, nil
}

// Revoke upserts the entry for key with expires_at = now + ttl.
func (p *PostgreSQLRevocationLedger) Revoke(ctx context.Context, key string, ttl time.Duration) error {
	if ttl <= 0 {
		return authDomain.ErrInvalidTTL
	}

	querier := database.GetTx(ctx, p.db)

	query := `INSERT INTO revoked_tokens (token_key, expires_at) VALUES ($1, $2)
			  ON CONFLICT (token_key) DO UPDATE SET expires_at = EXCLUDED.expires_at`

	if _, err := querier.ExecContext(ctx, query, key, p.now().UTC().Add(ttl)); err != nil {
		return apperrors.Wrap(err, "failed to write revocation entry")
	}
	return nil
}

// PurgeExpired deletes every expired entry and returns how many rows were removed.
func (p *PostgreSQLRevocationLedger) PurgeExpired(ctx context.Context) (int64, error) {
	querier := database.GetTx(ctx, p.db)

	result, err := querier.ExecContext(ctx, `DELETE FROM revoked_tokens WHERE expires_at <= $1`, p.now().UTC())
	if err != nil {
		return 0, apperrors.Wrap(err, "failed to purge revocation entries")
	}
	return result.RowsAffected()
}
