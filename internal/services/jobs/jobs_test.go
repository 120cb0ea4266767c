package jobs

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/admin/kundali-service/internal/pkg/logger"
	"github.com/stretchr/testify/require"
)

type flakyJob struct {
	failures int
	calls    atomic.Int32
}

func (j *flakyJob) Name() string                    { return "flaky" }
func (j *flakyJob) NextRun(now time.Time) time.Time { return now.Add(time.Hour) }
func (j *flakyJob) Run(context.Context) error {
	if int(j.calls.Add(1)) <= j.failures {
		return errors.New("upstream down")
	}
	return nil
}

type alerterStub struct {
	messages []string
}

func (a *alerterStub) SendAlert(_ context.Context, message string) error {
	a.messages = append(a.messages, message)
	return nil
}

func newTestScheduler(alerter *alerterStub) *Scheduler {
	s := NewScheduler(logger.Discard(), alerter)
	s.retryDelays = []time.Duration{time.Millisecond, time.Millisecond, time.Millisecond}
	return s
}

func TestExecuteJobWithRetryRecovers(t *testing.T) {
	s := newTestScheduler(&alerterStub{})
	job := &flakyJob{failures: 2}

	attempts, err := s.executeJobWithRetry(context.Background(), job)
	require.NoError(t, err)
	require.Nil(t, attempts)
	require.Equal(t, int32(3), job.calls.Load())
}

func TestExecuteJobWithRetryExhausted(t *testing.T) {
	alerter := &alerterStub{}
	s := newTestScheduler(alerter)
	job := &flakyJob{failures: 10}

	attempts, err := s.executeJobWithRetry(context.Background(), job)
	require.Error(t, err)
	require.Len(t, attempts, 4)
	require.Equal(t, int32(4), job.calls.Load())

	s.sendAlert(context.Background(), job.Name(), attempts)
	require.Len(t, alerter.messages, 1)
	require.Contains(t, alerter.messages[0], "Джоба: flaky")
	require.Contains(t, alerter.messages[0], "Попытка 4: upstream down")
}

func TestExecuteJobWithRetryStopsOnCancel(t *testing.T) {
	s := NewScheduler(logger.Discard(), nil)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	attempts, err := s.executeJobWithRetry(ctx, &flakyJob{failures: 10})
	require.ErrorIs(t, err, context.Canceled)
	require.Len(t, attempts, 1)
}

type refresherStub struct {
	at time.Time
}

func (r *refresherStub) UpdateTransits(_ context.Context, at time.Time) error {
	r.at = at
	return nil
}

func TestTransitUpdaterNextRun(t *testing.T) {
	job := NewTransitUpdater(&refresherStub{})
	ist := job.location

	now := time.Date(2024, 6, 10, 4, 0, 0, 0, ist)
	require.Equal(t, now, job.NextRun(now), "first run is immediate")

	require.Equal(t, time.Date(2024, 6, 10, 5, 0, 0, 0, ist), job.NextRun(now))

	at5 := time.Date(2024, 6, 10, 5, 0, 0, 0, ist)
	require.Equal(t, time.Date(2024, 6, 11, 5, 0, 0, 0, ist), job.NextRun(at5))

	utcEvening := time.Date(2024, 6, 10, 22, 0, 0, 0, time.UTC) // 03:30 IST 11 июня
	require.True(t, time.Date(2024, 6, 11, 5, 0, 0, 0, ist).Equal(job.NextRun(utcEvening)))
}

func TestTransitUpdaterRun(t *testing.T) {
	refresher := &refresherStub{}
	job := NewTransitUpdater(refresher)

	require.NoError(t, job.Run(context.Background()))
	require.False(t, refresher.at.IsZero())
	require.Equal(t, "Asia/Kolkata", refresher.at.Location().String())
}
