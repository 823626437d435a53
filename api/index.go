// Package api exposes the application as a single http.HandlerFunc for
// serverless platforms that own the listener.
package api

import (
	"context"
	"net/http"
	"sync"

	"github.com/Dan9191/finance-tracker/internal/app"
	"github.com/Dan9191/finance-tracker/internal/config"
	"github.com/Dan9191/finance-tracker/internal/utils"
	"github.com/sirupsen/logrus"
)

var (
	once    sync.Once
	handler http.Handler
	initErr error
)

func build() {
	cfg, err := config.NewConfig()
	if err != nil {
		initErr = err
		return
	}
	logger := app.NewLogger(cfg.LogLevel)
	cfg.ManagedRuntime = true
	a, err := app.New(context.Background(), cfg, logger)
	if err != nil {
		initErr = err
		return
	}
	handler = a.Handler
}

// Handler serves one request, building the application on first use.
func Handler(w http.ResponseWriter, r *http.Request) {
	once.Do(build)
	if initErr != nil {
		logrus.WithError(initErr).Error("Application failed to start")
		utils.WriteError(w, http.StatusInternalServerError, "Internal server error")
		return
	}
	handler.ServeHTTP(w, r)
}
