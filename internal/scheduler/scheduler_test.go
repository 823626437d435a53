package scheduler

import (
	"context"
	"errors"
	"io"
	"sync"
	"testing"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeReminders struct {
	mu    sync.Mutex
	calls []int
	err   error
}

func (f *fakeReminders) SendGoalReminders(_ context.Context, days int) (int, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls = append(f.calls, days)
	return 2, f.err
}

func quietLogger() *logrus.Logger {
	log := logrus.New()
	log.SetOutput(io.Discard)
	return log
}

func TestNewRejectsBadSchedule(t *testing.T) {
	_, err := New("every day", 7, &fakeReminders{}, quietLogger())
	assert.ErrorContains(t, err, "invalid goal reminder schedule")
}

func TestRunGoalReminders(t *testing.T) {
	svc := &fakeReminders{}
	s, err := New("0 8 * * *", 7, svc, quietLogger())
	require.NoError(t, err)

	s.runGoalReminders()
	svc.err = errors.New("db down")
	s.runGoalReminders()

	assert.Equal(t, []int{7, 7}, svc.calls)
}

func TestStartStop(t *testing.T) {
	s, err := New("@every 1h", 3, &fakeReminders{}, quietLogger())
	require.NoError(t, err)

	s.Start()
	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()
	assert.NoError(t, s.Stop(ctx))
}
