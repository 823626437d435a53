package scheduler

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/robfig/cron/v3"
	"github.com/sirupsen/logrus"
)

// ReminderService sends goal reminders for goals due within days.
type ReminderService interface {
	SendGoalReminders(ctx context.Context, days int) (int, error)
}

// Scheduler runs periodic background jobs.
type Scheduler struct {
	cron    *cron.Cron
	svc     ReminderService
	log     *logrus.Logger
	days    int
	timeout time.Duration
}

// New registers the goal reminder job on spec, a standard five-field cron expression.
func New(spec string, days int, svc ReminderService, log *logrus.Logger) (*Scheduler, error) {
	s := &Scheduler{
		cron:    cron.New(cron.WithLocation(time.UTC)),
		svc:     svc,
		log:     log,
		days:    days,
		timeout: 5 * time.Minute,
	}
	if _, err := s.cron.AddFunc(spec, s.runGoalReminders); err != nil {
		return nil, fmt.Errorf("invalid goal reminder schedule %q: %w", spec, err)
	}
	return s, nil
}

// Start begins running jobs in the background.
func (s *Scheduler) Start() {
	s.log.Info("Scheduler started")
	s.cron.Start()
}

// Stop waits for a running job to finish or ctx to end.
func (s *Scheduler) Stop(ctx context.Context) error {
	done := s.cron.Stop()
	select {
	case <-done.Done():
		s.log.Info("Scheduler stopped")
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

func (s *Scheduler) runGoalReminders() {
	ctx, cancel := context.WithTimeout(context.Background(), s.timeout)
	defer cancel()

	start := time.Now()
	sent, err := s.svc.SendGoalReminders(ctx, s.days)
	if err != nil && !errors.Is(err, context.Canceled) {
		s.log.WithError(err).Error("Goal reminder job failed")
		return
	}
	s.log.WithFields(logrus.Fields{
		"sent":     sent,
		"duration": time.Since(start).String(),
	}).Info("Goal reminder job finished")
}
