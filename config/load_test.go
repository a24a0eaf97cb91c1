package config

import (
	"log/slog"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	t.Setenv("DATABASE_URL", "postgres://localhost/library")
	t.Setenv("APP_PORT", "")
	t.Setenv("PORT", "")
	t.Setenv("APP_TZ", "")
	t.Setenv("LOG_LEVEL", "")
	t.Setenv("DB_AUTO_MIGRATE", "")
	t.Setenv("DB_MAX_CONNS", "")
	t.Setenv("APP_ENV", "")

	cfg := Load()
	require.Equal(t, "8080", cfg.Port)
	require.Equal(t, "postgres://localhost/library", cfg.DatabaseURL)
	require.Equal(t, slog.LevelInfo, cfg.LogLevel)
	require.True(t, cfg.AutoMigrate)
	require.Equal(t, int32(10), cfg.MaxConns)
	require.NotNil(t, cfg.Location)
}

func TestLoad_Overrides(t *testing.T) {
	t.Setenv("DATABASE_URL", "postgres://db/library")
	t.Setenv("APP_PORT", "9000")
	t.Setenv("PORT", "7000")
	t.Setenv("APP_TZ", "UTC")
	t.Setenv("LOG_LEVEL", "debug")
	t.Setenv("DB_AUTO_MIGRATE", "false")
	t.Setenv("DB_MAX_CONNS", "25")
	t.Setenv("APP_ENV", "dev")

	cfg := Load()
	require.Equal(t, "7000", cfg.Port)
	require.Equal(t, "UTC", cfg.Location.String())
	require.Equal(t, slog.LevelDebug, cfg.LogLevel)
	require.False(t, cfg.AutoMigrate)
	require.Equal(t, int32(25), cfg.MaxConns)
}

func TestLoad_MissingDatabaseURL(t *testing.T) {
	t.Setenv("DATABASE_URL", "")
	require.Panics(t, func() { Load() })
}

func TestLoad_ProdNeedsSecret(t *testing.T) {
	t.Setenv("DATABASE_URL", "postgres://db/library")
	t.Setenv("APP_ENV", "prod")
	t.Setenv("JWT_SECRET", "")
	require.Panics(t, func() { Load() })
}
