package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFromEnv_Defaults(t *testing.T) {
	cfg, err := FromEnv()
	require.NoError(t, err)

	assert.Equal(t, "info", cfg.Logging.Level)
	assert.Equal(t, "console", cfg.Logging.Format)
	assert.Equal(t, "character-sheet.db", cfg.Storage.Path)
	assert.Equal(t, 10*time.Second, cfg.DND5E.Timeout)
	assert.Equal(t, 100*time.Millisecond, cfg.Import.Delay)
	assert.Empty(t, cfg.Redis.URL)
}

func TestFromEnv_Overrides(t *testing.T) {
	t.Setenv("LOG_LEVEL", "debug")
	t.Setenv("LOG_FORMAT", "json")
	t.Setenv("REDIS_URL", "redis://localhost:6379/0")
	t.Setenv("SUPABASE_URL", "postgres://db.example.supabase.co:5432/postgres")
	t.Setenv("SUPABASE_SERVICE_KEY", "secret")
	t.Setenv("IMPORT_DELAY", "250ms")
	t.Setenv("RULES_PATH", "configs/rules.yaml")

	cfg, err := FromEnv()
	require.NoError(t, err)

	assert.Equal(t, "debug", cfg.Logging.Level)
	assert.Equal(t, "redis://localhost:6379/0", cfg.Redis.URL)
	assert.Equal(t, "secret", cfg.Backend.ServiceKey)
	assert.Equal(t, 250*time.Millisecond, cfg.Import.Delay)
	assert.Equal(t, "configs/rules.yaml", cfg.Rules.Path)
}

func TestFromEnv_Invalid(t *testing.T) {
	t.Setenv("LOG_LEVEL", "trace")
	t.Setenv("LOG_FORMAT", "xml")

	_, err := FromEnv()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "LOG_LEVEL")
	assert.Contains(t, err.Error(), "LOG_FORMAT")
}

func TestFromEnv_ZeroImportDelay(t *testing.T) {
	t.Setenv("IMPORT_DELAY", "0")

	cfg, err := FromEnv()
	require.NoError(t, err)
	assert.Zero(t, cfg.Import.Delay)

	t.Setenv("IMPORT_DELAY", "-1s")
	_, err = FromEnv()
	assert.ErrorContains(t, err, "IMPORT_DELAY")
}

func TestFromEnv_BadDuration(t *testing.T) {
	t.Setenv("IMPORT_DELAY", "soon")

	_, err := FromEnv()
	assert.Error(t, err)
}
