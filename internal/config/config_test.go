package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewConfigDefaults(t *testing.T) {
	t.Setenv("DATABASE_URL", "sqlite://finance.db")
	t.Setenv("JWT_SECRET", "jwt")
	t.Setenv("FRONTEND_URL", "https://app.example.com/")

	cfg, err := NewConfig()
	require.NoError(t, err)
	assert.Equal(t, "8080", cfg.Port)
	assert.Equal(t, "sqlite://finance.db", cfg.DatabaseURL)
	assert.Equal(t, "jwt", cfg.StateSecret)
	assert.Equal(t, "https://app.example.com", cfg.FrontendURL)
	assert.Equal(t, "gpt-3.5-turbo", cfg.LLMModel)
	assert.Equal(t, 7, cfg.GoalReminderDays)
	assert.False(t, cfg.MailEnabled())
	assert.False(t, cfg.GoogleEnabled())
}

func TestNewConfigManagedRuntime(t *testing.T) {
	t.Setenv("JWT_SECRET", "jwt")
	t.Setenv("VERCEL", "1")
	t.Setenv("GOOGLE_CLIENT_ID", "id")
	t.Setenv("GOOGLE_CLIENT_SECRET", "secret")
	t.Setenv("STATE_SECRET", "state")

	cfg, err := NewConfig()
	require.NoError(t, err)
	assert.True(t, cfg.ManagedRuntime)
	assert.True(t, cfg.GoogleEnabled())
	assert.Equal(t, "state", cfg.StateSecret)
}

func TestNewConfigRequiresSecret(t *testing.T) {
	t.Setenv("JWT_SECRET", "")

	_, err := NewConfig()
	assert.ErrorContains(t, err, "JWT_SECRET is required")

	t.Setenv("JWT_SECRET", "jwt")
	t.Setenv("DATABASE_URL", "")
	_, err = NewConfig()
	assert.ErrorContains(t, err, "DATABASE_URL is required")
}

func TestNewConfigFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("JWT_SECRET: jwt\nPORT: \"9090\"\nSMTP_HOST: smtp.example.com\nSENDER_EMAIL: noreply@example.com\n"), 0o600))
	t.Setenv("CONFIG_FILE", path)

	cfg, err := NewConfig()
	require.NoError(t, err)
	assert.Equal(t, "9090", cfg.Port)
	assert.True(t, cfg.MailEnabled())
}
