package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	t.Setenv("COACH_DATABASE_URL", "postgres://localhost:5432/coach")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, 8080, cfg.Server.Port)
	assert.Equal(t, "info", cfg.Server.LogLevel)
	assert.Equal(t, 10, cfg.Server.ShutdownTimeoutSeconds)
	assert.Equal(t, "postgres://localhost:5432/coach", cfg.Database.URL)
	assert.Equal(t, "data/vocabulary.json", cfg.Content.VocabularyPath)
	assert.Equal(t, "data/sentences.json", cfg.Content.SentencesPath)
	assert.Equal(t, "hybrid", cfg.Translate.Policy)
	assert.Equal(t, 8, cfg.Translate.TimeoutSeconds)
	assert.Equal(t, 4096, cfg.Translate.CacheSize)
}

func TestLoadEnvironmentOverrides(t *testing.T) {
	t.Setenv("COACH_DATABASE_URL", "postgres://localhost:5432/coach")
	t.Setenv("COACH_SERVER_PORT", "9090")
	t.Setenv("COACH_SERVER_LOG_LEVEL", "debug")
	t.Setenv("COACH_TRANSLATE_POLICY", "local")
	t.Setenv("COACH_TRANSLATE_TIMEOUT_SECONDS", "20")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, 9090, cfg.Server.Port)
	assert.Equal(t, "debug", cfg.Server.LogLevel)
	assert.Equal(t, "local", cfg.Translate.Policy)
	assert.Equal(t, 20, cfg.Translate.TimeoutSeconds)
}

func TestLoadMissingDatabaseURL(t *testing.T) {
	t.Setenv("COACH_DATABASE_URL", "")

	_, err := Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "config validation failed")
}

func TestLoadInvalidLogLevel(t *testing.T) {
	t.Setenv("COACH_DATABASE_URL", "postgres://localhost:5432/coach")
	t.Setenv("COACH_SERVER_LOG_LEVEL", "verbose")

	_, err := Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "config validation failed")
}

func TestLoadInvalidTranslatePolicy(t *testing.T) {
	t.Setenv("COACH_DATABASE_URL", "postgres://localhost:5432/coach")
	t.Setenv("COACH_TRANSLATE_POLICY", "carrier-pigeon")

	_, err := Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "config validation failed")
}
