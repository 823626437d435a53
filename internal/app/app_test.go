package app

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"

	"github.com/Dan9191/finance-tracker/internal/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewServesHealth(t *testing.T) {
	cfg := &config.Config{
		DatabaseURL: "sqlite://" + filepath.Join(t.TempDir(), "app.db"),
		JWTSecret:   "secret",
		StateSecret: "secret",
		FrontendURL: "http://localhost:3000",
		CBRURL:      "http://127.0.0.1:0",
	}
	logger := NewLogger("error")
	logger.SetOutput(io.Discard)

	a, err := New(context.Background(), cfg, logger)
	require.NoError(t, err)
	assert.Nil(t, a.Scheduler)

	w := httptest.NewRecorder()
	a.Handler.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/health", http.NoBody))
	assert.Equal(t, http.StatusOK, w.Code)

	require.NoError(t, a.Close(context.Background()))
}

func TestNewRejectsBadSchedule(t *testing.T) {
	cfg := &config.Config{
		DatabaseURL:          "sqlite://" + filepath.Join(t.TempDir(), "app.db"),
		JWTSecret:            "secret",
		SMTPHost:             "smtp.example.com",
		SenderEmail:          "noreply@example.com",
		GoalReminderSchedule: "whenever",
	}
	logger := NewLogger("error")
	logger.SetOutput(io.Discard)

	_, err := New(context.Background(), cfg, logger)
	assert.ErrorContains(t, err, "invalid goal reminder schedule")
}

func TestNewLoggerFallsBackToInfo(t *testing.T) {
	assert.Equal(t, "info", NewLogger("loud").GetLevel().String())
	assert.Equal(t, "debug", NewLogger("debug").GetLevel().String())
}
