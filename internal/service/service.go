package service

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/Dan9191/finance-tracker/internal/config"
	"github.com/Dan9191/finance-tracker/internal/models"
	"github.com/Dan9191/finance-tracker/internal/repository"
	"github.com/sirupsen/logrus"
	"golang.org/x/crypto/bcrypt"
	"golang.org/x/sync/errgroup"
)

var (
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrUserExists         = errors.New("username or email already exists")
	ErrInvalidToken       = errors.New("invalid token")
	ErrTokenExpired       = errors.New("token expired")
	ErrInvalidState       = errors.New("invalid oauth state")
	ErrNotConfigured      = errors.New("integration not configured")
)

// GoogleIdentity exchanges an OAuth authorization code for a verified profile.
type GoogleIdentity interface {
	AuthCodeURL(state string) string
	Exchange(ctx context.Context, code string) (*models.GoogleProfile, error)
}

// ChatCompleter sends a system prompt and a user message to a language model.
type ChatCompleter interface {
	Complete(ctx context.Context, system, message string) (string, error)
}

// GoalReminderSender notifies a user about a goal nearing its deadline.
type GoalReminderSender interface {
	SendGoalReminder(to, username string, goal models.Goal, daysLeft int) error
}

// Service handles business logic
type Service struct {
	repo       *repository.Repository
	log        *logrus.Logger
	config     *config.Config
	google     GoogleIdentity
	llm        ChatCompleter
	mailer     GoalReminderSender
	bcryptCost int
	now        func() time.Time

	dummyOnce sync.Once
	dummy     []byte
}

// Option customizes a Service.
type Option func(*Service)

func WithGoogle(g GoogleIdentity) Option { return func(s *Service) { s.google = g } }
func WithChat(c ChatCompleter) Option { return func(s *Service) { s.llm = c } }
func WithMailer(m GoalReminderSender) Option { return func(s *Service) { s.mailer = m } }
func WithBcryptCost(cost int) Option { return func(s *Service) { s.bcryptCost = cost } }
func WithClock(now func() time.Time) Option { return func(s *Service) { s.now = now } }

// NewService initializes a new service
func NewService(repo *repository.Repository, log *logrus.Logger, cfg *config.Config, opts ...Option) *Service {
	s := &Service{
		repo:       repo,
		log:        log,
		config:     cfg,
		bcryptCost: bcrypt.DefaultCost,
		now:        time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// LoadRecords reads all five record kinds of userID concurrently.
func (s *Service) LoadRecords(ctx context.Context, userID string) (models.Records, error) {
	var rec models.Records
	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() (err error) {
		rec.Incomes, err = s.repo.Incomes.List(ctx, userID)
		return err
	})
	g.Go(func() (err error) {
		rec.Expenses, err = s.repo.Expenses.List(ctx, userID)
		return err
	})
	g.Go(func() (err error) {
		rec.Assets, err = s.repo.Assets.List(ctx, userID)
		return err
	})
	g.Go(func() (err error) {
		rec.Liabilities, err = s.repo.Liabilities.List(ctx, userID)
		return err
	})
	g.Go(func() (err error) {
		rec.Goals, err = s.repo.Goals.List(ctx, userID)
		return err
	})
	if err := g.Wait(); err != nil {
		return models.Records{}, fmt.Errorf("failed to load records: %w", err)
	}
	return rec, nil
}
