package config

import (
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad(t *testing.T) {
	tests := []struct {
		name     string
		envVars  map[string]string
		validate func(t *testing.T, cfg *Config)
	}{
		{
			name:    "load default configuration",
			envVars: map[string]string{},
			validate: func(t *testing.T, cfg *Config) {
				assert.Equal(t, "0.0.0.0", cfg.ServerHost)
				assert.Equal(t, 3000, cfg.ServerPort)
				assert.Equal(t, "postgres", cfg.DBDriver)
				assert.Equal(t, 25, cfg.DBMaxOpenConnections)
				assert.Equal(t, 5, cfg.DBMaxIdleConnections)
				assert.Equal(t, 5*time.Minute, cfg.DBConnMaxLifetime)
				assert.Equal(t, "info", cfg.LogLevel)
				assert.Equal(t, 8*time.Hour, cfg.AccessTokenTTL)
				assert.Equal(t, 30*24*time.Hour, cfg.RefreshTokenTTL)
				assert.Equal(t, RevocationBackendRedis, cfg.RevocationBackend)
				assert.Equal(t, 2*time.Second, cfg.RedisTimeout)
				assert.Equal(t, 5*time.Second, cfg.StoreTimeout)
				assert.Empty(t, cfg.JWTSecret)
			},
		},
		{
			name: "load custom token configuration",
			envVars: map[string]string{
				"JWT_SECRET":                "s3cret",
				"ACCESS_TOKEN_TTL_SECONDS":  "60",
				"REFRESH_TOKEN_TTL_SECONDS": "3600",
				"REVOCATION_BACKEND":        "database",
			},
			validate: func(t *testing.T, cfg *Config) {
				assert.Equal(t, "s3cret", cfg.JWTSecret)
				assert.Equal(t, time.Minute, cfg.AccessTokenTTL)
				assert.Equal(t, time.Hour, cfg.RefreshTokenTTL)
				assert.Equal(t, RevocationBackendDatabase, cfg.RevocationBackend)
			},
		},
		{
			name: "load custom database configuration",
			envVars: map[string]string{
				"DB_DRIVER":                    "mysql",
				"DB_CONNECTION_STRING":         "user:password@tcp(localhost:3306)/hajjcare",
				"DB_MAX_OPEN_CONNECTIONS":      "50",
				"DB_CONN_MAX_LIFETIME_MINUTES": "10",
			},
			validate: func(t *testing.T, cfg *Config) {
				assert.Equal(t, "mysql", cfg.DBDriver)
				assert.Equal(t, "user:password@tcp(localhost:3306)/hajjcare", cfg.DBConnectionString)
				assert.Equal(t, 50, cfg.DBMaxOpenConnections)
				assert.Equal(t, 10*time.Minute, cfg.DBConnMaxLifetime)
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			os.Clearenv()

			for key, value := range tt.envVars {
				require.NoError(t, os.Setenv(key, value))
			}

			tt.validate(t, Load())
		})
	}
}

func validConfig() *Config {
	return &Config{
		JWTSecret:         "s3cret",
		AccessTokenTTL:    8 * time.Hour,
		RefreshTokenTTL:   30 * 24 * time.Hour,
		RevocationBackend: RevocationBackendMemory,
		StoreTimeout:      5 * time.Second,
	}
}

func TestConfig_Validate(t *testing.T) {
	t.Run("Success", func(t *testing.T) {
		assert.NoError(t, validConfig().Validate())
	})

	tests := []struct {
		name   string
		mutate func(cfg *Config)
		errMsg string
	}{
		{
			name:   "missing secret",
			mutate: func(cfg *Config) { cfg.JWTSecret = "" },
			errMsg: "JWT_SECRET is required",
		},
		{
			name:   "non-positive access ttl",
			mutate: func(cfg *Config) { cfg.AccessTokenTTL = 0 },
			errMsg: "access token ttl must be positive",
		},
		{
			name:   "non-positive refresh ttl",
			mutate: func(cfg *Config) { cfg.RefreshTokenTTL = -time.Second },
			errMsg: "refresh token ttl must be positive",
		},
		{
			name: "access ttl not shorter than refresh ttl",
			mutate: func(cfg *Config) {
				cfg.AccessTokenTTL = time.Hour
				cfg.RefreshTokenTTL = time.Hour
			},
			errMsg: "must be shorter than refresh token ttl",
		},
		{
			name:   "unknown revocation backend",
			mutate: func(cfg *Config) { cfg.RevocationBackend = "memcached" },
			errMsg: "unsupported revocation backend",
		},
		{
			name:   "non-positive store timeout",
			mutate: func(cfg *Config) { cfg.StoreTimeout = 0 },
			errMsg: "store timeout must be positive",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := validConfig()
			tt.mutate(cfg)

			err := cfg.Validate()
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.errMsg)
		})
	}
}

func TestConfig_GetGinMode(t *testing.T) {
	assert.Equal(t, "debug", (&Config{LogLevel: "debug"}).GetGinMode())
	assert.Equal(t, "release", (&Config{LogLevel: "info"}).GetGinMode())
	assert.Equal(t, "release", (&Config{LogLevel: "bogus"}).GetGinMode())
}
