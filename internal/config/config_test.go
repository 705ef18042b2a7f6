package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func clearEnv(t *testing.T) {
	t.Helper()
	for _, k := range []string{
		"CAREERFIT_DB", "CAREERFIT_CATALOG_DIR", "CAREERFIT_LOG_LEVEL", "CAREERFIT_LOG_FORMAT",
		"CAREERFIT_HTTP_ADDR", "CAREERFIT_REDIS_ADDR", "CAREERFIT_SESSION_TTL",
		"CAREERFIT_SHUTDOWN_TIMEOUT", "CAREERFIT_LLM_PROVIDER",
		"GEMINI_API_KEY", "OPENAI_API_KEY", "ANTHROPIC_API_KEY", "OPENROUTER_API_KEY",
	} {
		t.Setenv(k, "")
	}
}

func TestLoadDefaults(t *testing.T) {
	clearEnv(t)
	t.Chdir(t.TempDir())

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, ":8080", cfg.HTTPAddr)
	assert.Equal(t, "info", cfg.LogLevel)
	assert.Equal(t, "text", cfg.LogFormat)
	assert.Equal(t, 30*time.Minute, cfg.SessionTTL)
	assert.Equal(t, 10*time.Second, cfg.ShutdownTimeout)
	assert.Empty(t, cfg.RedisAddr)
	assert.Equal(t, "anthropic", cfg.LLM.Provider)
}

func TestLoadEnvFile(t *testing.T) {
	clearEnv(t)
	// godotenv.Load never overrides variables that are already set, and
	// t.Setenv("") counts as set, so unset the ones the file provides.
	os.Unsetenv("CAREERFIT_HTTP_ADDR")
	os.Unsetenv("CAREERFIT_SESSION_TTL")
	t.Cleanup(func() {
		os.Unsetenv("CAREERFIT_HTTP_ADDR")
		os.Unsetenv("CAREERFIT_SESSION_TTL")
	})

	path := filepath.Join(t.TempDir(), "test.env")
	require.NoError(t, os.WriteFile(path, []byte("CAREERFIT_HTTP_ADDR=:9999\nCAREERFIT_SESSION_TTL=5m\n"), 0o644))

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, ":9999", cfg.HTTPAddr)
	assert.Equal(t, 5*time.Minute, cfg.SessionTTL)
}

func TestLoadRejectsBadDuration(t *testing.T) {
	clearEnv(t)
	t.Chdir(t.TempDir())

	t.Setenv("CAREERFIT_SHUTDOWN_TIMEOUT", "soon")
	_, err := Load()
	assert.ErrorContains(t, err, "not a valid duration")

	t.Setenv("CAREERFIT_SHUTDOWN_TIMEOUT", "-1s")
	_, err = Load()
	assert.ErrorContains(t, err, "must be positive")
}

func TestLoadMissingEnvFile(t *testing.T) {
	clearEnv(t)
	_, err := Load(filepath.Join(t.TempDir(), "missing.env"))
	assert.Error(t, err)
}

func TestLoadDiscoversProvider(t *testing.T) {
	clearEnv(t)
	t.Chdir(t.TempDir())
	t.Setenv("GEMINI_API_KEY", "g-key")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "gemini", cfg.LLM.Provider)
	assert.Equal(t, "g-key", cfg.LLM.Gemini.APIKey)
}
