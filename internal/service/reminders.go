package service

import (
	"context"
	"math"
	"time"
)

// SendGoalReminders mails every owner of an unfinished goal due within the
// next days days. Failed sends are logged and skipped.
func (s *Service) SendGoalReminders(ctx context.Context, days int) (int, error) {
	if s.mailer == nil {
		return 0, ErrNotConfigured
	}
	now := s.now()
	due, err := s.repo.Goals.DueBetween(ctx, now, now.AddDate(0, 0, days))
	if err != nil {
		return 0, err
	}

	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
	sent := 0
	for _, r := range due {
		daysLeft := int(math.Round(r.Goal.TargetDate.Sub(today).Hours() / 24))
		if err := s.mailer.SendGoalReminder(r.Email, r.Username, r.Goal, daysLeft); err != nil {
			s.log.WithError(err).WithField("goal_id", r.Goal.ID).Warn("Goal reminder not sent")
			continue
		}
		sent++
	}
	s.log.Infof("Sent %d of %d goal reminders", sent, len(due))
	return sent, nil
}
