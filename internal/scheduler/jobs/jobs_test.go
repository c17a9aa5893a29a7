package jobs

import (
	"context"
	"errors"
	"io"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wonny/grq-validation/internal/contracts"
	"github.com/wonny/grq-validation/internal/evaluation"
	"github.com/wonny/grq-validation/internal/performance"
	"github.com/wonny/grq-validation/pkg/config"
	"github.com/wonny/grq-validation/pkg/logger"
)

func testLogger() *logger.Logger {
	return logger.NewWithWriter(&config.Config{LogLevel: "error"}, io.Discard)
}

type memoryStore struct {
	runs []contracts.EvaluationRun
}

func (s *memoryStore) SaveRun(_ context.Context, run contracts.EvaluationRun) error {
	s.runs = append(s.runs, run)
	return nil
}

func TestEvaluationJob_Run(t *testing.T) {
	recent := contracts.DateOnly(time.Now().AddDate(0, 0, -2))
	old := contracts.DateOnly(time.Now().AddDate(0, 0, -contracts.DefaultRecentWindowDays-5))

	batch := func(d time.Time) contracts.Batch {
		return contracts.Batch{
			ScoreDate: d,
			Entries:   []contracts.ScoreEntry{{Symbol: "AAPL", Score: 0.7, TargetPrice: 10}},
		}
	}

	store := &memoryStore{}
	svc := evaluation.NewService(evaluation.NewMemorySource(batch(recent), batch(old)), evaluation.Options{
		Store:      store,
		Policy:     performance.DefaultProjectionPolicy(),
		PolicyHash: "hash",
		WindowDays: contracts.DefaultRecentWindowDays,
	}, zerolog.Nop())

	job := NewEvaluationJob(svc, "0 30 7 * * *", testLogger())
	assert.Equal(t, "evaluation", job.Name())
	assert.Equal(t, "0 30 7 * * *", job.Schedule())

	require.NoError(t, job.Run(context.Background()))

	require.Len(t, store.runs, 1, "only score files inside the recent window")
	assert.True(t, store.runs[0].ScoreDate.Equal(recent))
	assert.Equal(t, "hash", store.runs[0].PolicyHash)
}

type fakePruner struct {
	keep    int
	removed int64
	err     error
}

func (p *fakePruner) PruneRuns(_ context.Context, keep int) (int64, error) {
	p.keep = keep
	return p.removed, p.err
}

func TestRunCleanupJob(t *testing.T) {
	p := &fakePruner{removed: 4}
	job := NewRunCleanupJob(p, 3, testLogger())

	require.NoError(t, job.Run(context.Background()))
	assert.Equal(t, 3, p.keep)

	p.err = errors.New("db down")
	assert.Error(t, job.Run(context.Background()))
}

type fakeLimiter struct {
	idle time.Duration
}

func (l *fakeLimiter) Prune(idle time.Duration) int {
	l.idle = idle
	return 2
}

func TestLimiterCleanupJob(t *testing.T) {
	l := &fakeLimiter{}
	job := NewLimiterCleanupJob(l, 15*time.Minute, testLogger())

	assert.Equal(t, "limiter_cleanup", job.Name())
	assert.Equal(t, "0 */10 * * * *", job.Schedule())
	require.NoError(t, job.Run(context.Background()))
	assert.Equal(t, 15*time.Minute, l.idle)
}
