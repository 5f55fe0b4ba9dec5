package config_test

import (
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/juniorlingo/english-agent/internal/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// unsetenv clears keys for the test and restores them afterwards, so values
// that godotenv writes into the process environment do not leak.
func unsetenv(t *testing.T, keys ...string) {
	for _, key := range keys {
		t.Setenv(key, "")
		os.Unsetenv(key)
	}
}

func TestLoadRequiresDatabaseURL(t *testing.T) {
	t.Setenv("DATABASE_URL", "")

	_, err := config.Load(filepath.Join(t.TempDir(), "missing.env"))
	assert.Error(t, err)
}

func TestLoadDefaults(t *testing.T) {
	t.Setenv("DATABASE_URL", "sqlite:///agent.db")
	t.Setenv("GOOGLE_API_KEY", "")

	cfg, err := config.Load(filepath.Join(t.TempDir(), "missing.env"))
	require.NoError(t, err)

	assert.Equal(t, "8000", cfg.HTTPPort)
	assert.Equal(t, config.ProviderGemini, cfg.Reply.Provider)
	assert.Equal(t, "", cfg.Reply.APIKey())
	assert.InDelta(t, 0.7, cfg.Reply.Temperature, 0.0001)
	assert.True(t, cfg.Reminder.Enabled)
	assert.Equal(t, 20, cfg.Reminder.Hour)
	assert.Equal(t, 0, cfg.Reminder.Minute)
	assert.Equal(t, "junior", cfg.Reminder.DefaultUser)
	assert.Equal(t, config.TransportInProcess, cfg.Reminder.Transport)
	assert.Equal(t, []string{"http://localhost", "http://127.0.0.1:5500", "http://localhost:5500"}, cfg.CORSOrigins)
	assert.False(t, cfg.Audio.UseS3())
	assert.Equal(t, slog.LevelInfo, cfg.SlogLevel())
}

func TestLoadFromEnvFile(t *testing.T) {
	unsetenv(t, "DATABASE_URL", "REPLY_PROVIDER", "OPENAI_API_KEY", "LOG_LEVEL", "CORS_ORIGINS")

	path := filepath.Join(t.TempDir(), "test.env")
	contents := "DATABASE_URL=postgres://agent@localhost/agent\nREPLY_PROVIDER=OpenAI\nOPENAI_API_KEY=sk-test\nLOG_LEVEL=debug\nCORS_ORIGINS=http://a.test, http://b.test\n"
	require.NoError(t, os.WriteFile(path, []byte(contents), 0o600))

	cfg, err := config.Load(path)
	require.NoError(t, err)

	assert.Equal(t, "postgres://agent@localhost/agent", cfg.DatabaseURL)
	assert.Equal(t, config.ProviderOpenAI, cfg.Reply.Provider)
	assert.Equal(t, "sk-test", cfg.Reply.APIKey())
	assert.Equal(t, slog.LevelDebug, cfg.SlogLevel())
	assert.Equal(t, []string{"http://a.test", "http://b.test"}, cfg.CORSOrigins)
}

func TestLoadRejectsInvalidValues(t *testing.T) {
	t.Setenv("DATABASE_URL", "agent.db")
	missing := filepath.Join(t.TempDir(), "missing.env")

	t.Run("provider", func(t *testing.T) {
		t.Setenv("REPLY_PROVIDER", "llama")
		_, err := config.Load(missing)
		assert.Error(t, err)
	})

	t.Run("transport", func(t *testing.T) {
		t.Setenv("REMINDER_TRANSPORT", "carrier-pigeon")
		_, err := config.Load(missing)
		assert.Error(t, err)
	})

	t.Run("s3 without public url", func(t *testing.T) {
		t.Setenv("AUDIO_S3_BUCKET", "lesson-audio")
		t.Setenv("AUDIO_PUBLIC_BASE_URL", "")
		_, err := config.Load(missing)
		assert.Error(t, err)
	})
}
