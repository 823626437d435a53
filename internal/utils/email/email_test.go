package email

import (
	"errors"
	"io"
	"testing"

	"github.com/Dan9191/finance-tracker/internal/config"
	"github.com/Dan9191/finance-tracker/internal/models"
	"github.com/jordan-wright/email"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestSender() (*Sender, *[]*email.Email) {
	log := logrus.New()
	log.SetOutput(io.Discard)
	s := NewSender(&config.Config{SenderEmail: "noreply@finance.test"}, log)
	var sent []*email.Email
	s.send = func(e *email.Email) error {
		sent = append(sent, e)
		return nil
	}
	return s, &sent
}

func TestSendGoalReminder(t *testing.T) {
	s, sent := newTestSender()
	goal := models.Goal{
		Description:   "Emergency fund",
		TargetAmount:  1000,
		CurrentAmount: 250,
		TargetDate:    models.NewDate(2024, 6, 4),
	}

	require.NoError(t, s.SendGoalReminder("alice@x.com", "alice", goal, 3))
	require.Len(t, *sent, 1)

	e := (*sent)[0]
	assert.Equal(t, "noreply@finance.test", e.From)
	assert.Equal(t, []string{"alice@x.com"}, e.To)
	assert.Equal(t, "Goal reminder: Emergency fund", e.Subject)
	body := string(e.Text)
	assert.Contains(t, body, "Dear alice,")
	assert.Contains(t, body, "due in 3 days (2024-06-04)")
	assert.Contains(t, body, "$750.00 is still to go")
}

func TestGoalReminderDueTodayAndTomorrow(t *testing.T) {
	s, _ := newTestSender()
	goal := models.Goal{Description: "Trip", TargetAmount: 10, TargetDate: models.NewDate(2024, 6, 4)}

	assert.Contains(t, string(s.goalReminder("a@x.com", "a", goal, 0).Text), "is due today")
	assert.Contains(t, string(s.goalReminder("a@x.com", "a", goal, 1).Text), "is due tomorrow (2024-06-04)")
}

func TestSendGoalReminderFailure(t *testing.T) {
	s, _ := newTestSender()
	s.send = func(*email.Email) error { return errors.New("connection refused") }

	err := s.SendGoalReminder("a@x.com", "a", models.Goal{Description: "Trip"}, 2)
	assert.ErrorContains(t, err, "connection refused")
}
