package email

import (
	"fmt"
	"net/smtp"

	"github.com/Dan9191/finance-tracker/internal/config"
	"github.com/Dan9191/finance-tracker/internal/models"
	"github.com/jordan-wright/email"
	"github.com/sirupsen/logrus"
)

// Sender handles sending emails via SMTP
type Sender struct {
	cfg    *config.Config
	logger *logrus.Logger
	send   func(e *email.Email) error
}

// NewSender creates a new email sender
func NewSender(cfg *config.Config, logger *logrus.Logger) *Sender {
	s := &Sender{
		cfg:    cfg,
		logger: logger,
	}
	s.send = s.sendSMTP
	return s
}

// SendGoalReminder tells a user that a goal's target date is approaching.
func (s *Sender) SendGoalReminder(to, username string, goal models.Goal, daysLeft int) error {
	e := s.goalReminder(to, username, goal, daysLeft)
	if err := s.send(e); err != nil {
		s.logger.Errorf("Failed to send email to %s: %v", to, err)
		return fmt.Errorf("failed to send email: %w", err)
	}

	s.logger.Infof("Email sent to %s: %s", to, e.Subject)
	return nil
}

func (s *Sender) goalReminder(to, username string, goal models.Goal, daysLeft int) *email.Email {
	e := email.NewEmail()
	e.From = s.cfg.SenderEmail
	e.To = []string{to}
	e.Subject = fmt.Sprintf("Goal reminder: %s", goal.Description)

	body := fmt.Sprintf("Dear %s,\n\n", username)
	switch {
	case daysLeft <= 0:
		body += fmt.Sprintf("Your goal \"%s\" is due today.\n", goal.Description)
	case daysLeft == 1:
		body += fmt.Sprintf("Your goal \"%s\" is due tomorrow (%s).\n", goal.Description, goal.TargetDate)
	default:
		body += fmt.Sprintf("Your goal \"%s\" is due in %d days (%s).\n", goal.Description, daysLeft, goal.TargetDate)
	}
	body += fmt.Sprintf(
		"You have saved $%.2f of $%.2f; $%.2f is still to go.\n",
		goal.CurrentAmount, goal.TargetAmount, goal.Remaining(),
	)
	body += "\nBest regards,\nFinance Tracker"
	e.Text = []byte(body)
	return e
}

func (s *Sender) sendSMTP(e *email.Email) error {
	addr := fmt.Sprintf("%s:%s", s.cfg.SMTPHost, s.cfg.SMTPPort)
	var auth smtp.Auth
	if s.cfg.SMTPUsername != "" {
		auth = smtp.PlainAuth("", s.cfg.SMTPUsername, s.cfg.SMTPPassword, s.cfg.SMTPHost)
	}
	return e.Send(addr, auth)
}
