// Package app wires configuration into a ready-to-serve HTTP handler.
package app

import (
	"context"
	"database/sql"
	"errors"
	"net/http"
	"os"

	"github.com/Dan9191/finance-tracker/internal/config"
	"github.com/Dan9191/finance-tracker/internal/handler"
	"github.com/Dan9191/finance-tracker/internal/integrations/cbr"
	"github.com/Dan9191/finance-tracker/internal/integrations/google"
	"github.com/Dan9191/finance-tracker/internal/integrations/llm"
	"github.com/Dan9191/finance-tracker/internal/repository"
	"github.com/Dan9191/finance-tracker/internal/router"
	"github.com/Dan9191/finance-tracker/internal/scheduler"
	"github.com/Dan9191/finance-tracker/internal/service"
	"github.com/Dan9191/finance-tracker/internal/utils/email"
	"github.com/sirupsen/logrus"
)

// App is the assembled application.
type App struct {
	Handler   http.Handler
	Service   *service.Service
	Scheduler *scheduler.Scheduler
	DB        *sql.DB
	log       *logrus.Logger
}

// NewLogger returns the JSON logger used by every component.
func NewLogger(level string) *logrus.Logger {
	logger := logrus.New()
	logger.SetOutput(os.Stdout)
	logger.SetFormatter(&logrus.JSONFormatter{})
	logLevel, err := logrus.ParseLevel(level)
	if err != nil {
		logLevel = logrus.InfoLevel
	}
	logger.SetLevel(logLevel)
	return logger
}

// New opens and migrates the database and builds the handler tree.
func New(ctx context.Context, cfg *config.Config, logger *logrus.Logger) (*App, error) {
	db, dialect, err := repository.Open(cfg.DatabaseURL)
	if err != nil {
		return nil, err
	}
	repo := repository.NewRepository(db, dialect)
	if err := repo.Migrate(ctx); err != nil {
		db.Close()
		return nil, err
	}
	logger.Infof("Connected to %s database", dialect)

	opts := []service.Option{}
	if cfg.GoogleEnabled() {
		opts = append(opts, service.WithGoogle(google.NewProvider(cfg.GoogleClientID, cfg.GoogleClientSecret, cfg.GoogleRedirectURI)))
	} else {
		logger.Warn("Google sign-in disabled: GOOGLE_CLIENT_ID or GOOGLE_CLIENT_SECRET not set")
	}
	if cfg.LLMAPIKey != "" {
		opts = append(opts, service.WithChat(llm.NewClient(cfg.LLMAPIURL, cfg.LLMAPIKey, cfg.LLMModel, logger)))
	} else {
		logger.Warn("AI chat disabled: OPENAI_API_KEY not set")
	}
	if cfg.MailEnabled() {
		opts = append(opts, service.WithMailer(email.NewSender(cfg, logger)))
	}
	svc := service.NewService(repo, logger, cfg, opts...)

	a := &App{Service: svc, DB: db, log: logger}
	if cfg.MailEnabled() && !cfg.ManagedRuntime {
		a.Scheduler, err = scheduler.New(cfg.GoalReminderSchedule, cfg.GoalReminderDays, svc, logger)
		if err != nil {
			db.Close()
			return nil, err
		}
	}

	h := handler.NewHandler(svc, repo, cbr.NewClient(cfg.CBRURL, logger), logger, cfg.FrontendURL)
	a.Handler = router.New(h, svc, logger, cfg.FrontendURL)
	return a, nil
}

// Close stops background jobs, then closes the connection pool.
func (a *App) Close(ctx context.Context) error {
	var errs []error
	if a.Scheduler != nil {
		errs = append(errs, a.Scheduler.Stop(ctx))
	}
	errs = append(errs, a.DB.Close())
	a.log.Info("Database connection closed")
	return errors.Join(errs...)
}
