package scheduler

import (
	"context"
	"errors"
	"io"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wonny/grq-validation/pkg/config"
	"github.com/wonny/grq-validation/pkg/logger"
)

type fakeJob struct {
	name     string
	schedule string
	failures int32 // 처음 n 번 실패
	calls    atomic.Int32
}

func (j *fakeJob) Name() string     { return j.name }
func (j *fakeJob) Schedule() string { return j.schedule }

func (j *fakeJob) Run(ctx context.Context) error {
	n := j.calls.Add(1)
	if n <= j.failures {
		return errors.New("transient")
	}
	return nil
}

func newTestScheduler(opts ...Option) *Scheduler {
	log := logger.NewWithWriter(&config.Config{LogLevel: "error"}, io.Discard)
	return New(log, opts...)
}

func TestScheduler_AddJob(t *testing.T) {
	s := newTestScheduler()

	require.NoError(t, s.AddJob(&fakeJob{name: "b", schedule: "0 30 7 * * *"}))
	require.NoError(t, s.AddJob(&fakeJob{name: "a", schedule: "@daily"}))

	assert.Error(t, s.AddJob(&fakeJob{name: "a", schedule: "@daily"}), "duplicate name")
	assert.Error(t, s.AddJob(&fakeJob{name: "bad", schedule: "not a schedule"}))

	assert.Equal(t, []string{"a", "b"}, s.GetAllJobs())
}

func TestScheduler_RemoveJob(t *testing.T) {
	s := newTestScheduler()
	require.NoError(t, s.AddJob(&fakeJob{name: "a", schedule: "@daily"}))

	require.NoError(t, s.RemoveJob("a"))
	assert.Empty(t, s.GetAllJobs())
	assert.Error(t, s.RemoveJob("a"))
}

func TestScheduler_RunJobRetries(t *testing.T) {
	s := newTestScheduler(WithRetry(2, time.Millisecond))
	job := &fakeJob{name: "flaky", schedule: "@daily", failures: 2}
	require.NoError(t, s.AddJob(job))

	result, err := s.RunJob(context.Background(), "flaky")
	require.NoError(t, err)

	assert.True(t, result.Success)
	assert.Equal(t, 3, result.Attempts)
	assert.Empty(t, result.Error)

	history, err := s.GetJobHistory("flaky")
	require.NoError(t, err)
	assert.Len(t, history, 1)
}

func TestScheduler_RunJobGivesUp(t *testing.T) {
	s := newTestScheduler(WithRetry(1, time.Millisecond))
	require.NoError(t, s.AddJob(&fakeJob{name: "broken", schedule: "@daily", failures: 100}))

	result, err := s.RunJob(context.Background(), "broken")
	require.NoError(t, err)

	assert.False(t, result.Success)
	assert.Equal(t, 2, result.Attempts)
	assert.Equal(t, "transient", result.Error)

	stats := s.GetJobStats()["broken"]
	assert.Equal(t, 1, stats.TotalRuns)
	assert.Equal(t, 1, stats.FailureCount)
	assert.Equal(t, 0.0, stats.SuccessRate)
	assert.False(t, stats.LastSuccess)
}

func TestScheduler_RunJobStopsOnCancel(t *testing.T) {
	s := newTestScheduler(WithRetry(5, time.Hour))
	require.NoError(t, s.AddJob(&fakeJob{name: "broken", schedule: "@daily", failures: 100}))

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	result, err := s.RunJob(ctx, "broken")
	require.NoError(t, err)
	assert.False(t, result.Success)
	assert.Equal(t, 1, result.Attempts)
}

func TestScheduler_RunUnknownJob(t *testing.T) {
	_, err := newTestScheduler().RunJob(context.Background(), "missing")
	assert.Error(t, err)
}

func TestJobHistory(t *testing.T) {
	h := &JobHistory{}
	assert.Equal(t, 0.0, h.SuccessRate())

	for i := 0; i < maxHistory+10; i++ {
		h.AddResult(JobResult{Success: i%2 == 0})
	}

	assert.Len(t, h.Results, maxHistory)
	assert.Equal(t, maxHistory/2, h.FailureCount())
	assert.InDelta(t, 0.5, h.SuccessRate(), 1e-9)

	last, ok := h.Latest()
	require.True(t, ok)
	assert.False(t, last.Success)
}
