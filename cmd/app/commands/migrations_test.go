package commands

import (
	"io"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMigrationSource(t *testing.T) {
	source, err := migrationSource("postgres", "migrations")
	require.NoError(t, err)
	assert.Equal(t, "file://migrations/postgresql", source)

	source, err = migrationSource("mysql", "/srv/accounts/migrations")
	require.NoError(t, err)
	assert.Equal(t, "file:///srv/accounts/migrations/mysql", source)

	_, err = migrationSource("sqlite", "migrations")
	assert.Error(t, err)
}

func TestRunMigrations(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	t.Run("invalid-driver", func(t *testing.T) {
		err := RunMigrations(logger, "invalid", "postgres://localhost", "migrations")
		require.Error(t, err)
		assert.Contains(t, err.Error(), "failed to create migrate instance")
	})

	t.Run("missing-directory", func(t *testing.T) {
		err := RunMigrations(logger, "postgres", "postgres://localhost/accounts", t.TempDir())
		require.Error(t, err)
		assert.Contains(t, err.Error(), "failed to create migrate instance")
	})
}
