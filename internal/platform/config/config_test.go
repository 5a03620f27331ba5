package config_test

import (
	"log/slog"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/ThurpatiNainesh/tinylink/internal/platform/config"
)

func setRequired(t *testing.T) {
	t.Helper()

	t.Setenv("HTTP_ADDR", "8080")
	t.Setenv("BASE_URL", "http://localhost:8080")
	t.Setenv("DATABASE_URL", "postgres://x:y@localhost:5432/db?sslmode=disable")
	t.Setenv("SENTRY_DSN", "")
	t.Setenv("LOG_LEVEL", "")
	t.Setenv("AUTO_MIGRATE", "")
}

func TestLoad_MissingRequired(t *testing.T) {
	t.Setenv("BASE_URL", "")
	t.Setenv("DATABASE_URL", "")

	_, err := config.Load()
	require.ErrorIs(t, err, config.ErrBaseURLEmpty)

	t.Setenv("BASE_URL", "http://localhost:8080")

	_, err = config.Load()
	require.ErrorIs(t, err, config.ErrDatabaseURLEmpty)
}

func TestLoad_DefaultsOk(t *testing.T) {
	setRequired(t)

	cfg, err := config.Load()
	require.NoError(t, err)

	require.Equal(t, ":8080", cfg.HTTPAddr)
	require.Equal(t, config.EnginePostgres, cfg.DatabaseEngine)
	require.Empty(t, cfg.SentryDSN)
	require.Equal(t, slog.LevelInfo, cfg.LogLevel)
	require.True(t, cfg.AutoMigrate)
}

func TestLoad_TrimsBaseURL(t *testing.T) {
	setRequired(t)
	t.Setenv("BASE_URL", " https://sho.rt/ ")

	cfg, err := config.Load()
	require.NoError(t, err)
	require.Equal(t, "https://sho.rt", cfg.BaseURL)
}

func TestLoad_InvalidBaseURL(t *testing.T) {
	setRequired(t)
	t.Setenv("BASE_URL", "https://sho.rt/app")

	_, err := config.Load()
	require.ErrorIs(t, err, config.ErrInvalidBaseURL)
}

func TestLoad_InvalidDuration(t *testing.T) {
	setRequired(t)
	t.Setenv("HTTP_READ_TIMEOUT", "not-a-duration")

	_, err := config.Load()
	require.ErrorIs(t, err, config.ErrInvalidDuration)
}

func TestLoad_RequestBudgetInvalid(t *testing.T) {
	setRequired(t)
	t.Setenv("REQUEST_BUDGET", "0s")

	_, err := config.Load()
	require.Error(t, err)
}

func TestLoad_LogLevelAndMigrate(t *testing.T) {
	setRequired(t)
	t.Setenv("LOG_LEVEL", "debug")
	t.Setenv("AUTO_MIGRATE", "false")

	cfg, err := config.Load()
	require.NoError(t, err)
	require.Equal(t, slog.LevelDebug, cfg.LogLevel)
	require.False(t, cfg.AutoMigrate)

	t.Setenv("LOG_LEVEL", "loud")

	_, err = config.Load()
	require.ErrorIs(t, err, config.ErrInvalidLogLevel)

	t.Setenv("LOG_LEVEL", "")
	t.Setenv("AUTO_MIGRATE", "maybe")

	_, err = config.Load()
	require.ErrorIs(t, err, config.ErrInvalidBool)
}

func TestEngineFor(t *testing.T) {
	tests := []struct {
		url  string
		want config.Engine
	}{
		{"postgres://u:p@db:5432/app", config.EnginePostgres},
		{"postgresql://u:p@db/app", config.EnginePostgres},
		{"sqlite://./tinylink.db", config.EngineSQLite},
		{"file:tinylink.db?cache=shared", config.EngineSQLite},
		{"libsql://links-acme.turso.io?authToken=x", config.EngineSQLite},
	}

	for _, tt := range tests {
		t.Run(tt.url, func(t *testing.T) {
			got, err := config.EngineFor(tt.url)
			require.NoError(t, err)
			require.Equal(t, tt.want, got)
		})
	}

	_, err := config.EngineFor("mysql://u:secret@db/app")
	require.ErrorIs(t, err, config.ErrUnsupportedDatabase)
	require.NotContains(t, err.Error(), "secret")
}
