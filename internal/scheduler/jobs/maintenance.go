package jobs

import (
	"context"
	"fmt"
	"time"

	"github.com/wonny/grq-validation/pkg/logger"
)

// RunPruner deletes superseded evaluation runs
type RunPruner interface {
	PruneRuns(ctx context.Context, keep int) (int64, error)
}

// RunCleanupJob keeps only the latest runs per score date
type RunCleanupJob struct {
	pruner RunPruner
	keep   int
	logger *logger.Logger
}

// NewRunCleanupJob creates a new run cleanup job
func NewRunCleanupJob(pruner RunPruner, keep int, log *logger.Logger) *RunCleanupJob {
	return &RunCleanupJob{pruner: pruner, keep: keep, logger: log}
}

// Name returns the job name
func (j *RunCleanupJob) Name() string {
	return "run_cleanup"
}

// Schedule returns the cron schedule (Sunday 03:00)
func (j *RunCleanupJob) Schedule() string {
	return "0 0 3 * * 0"
}

// Run executes the cleanup
func (j *RunCleanupJob) Run(ctx context.Context) error {
	j.logger.Debug("Starting scheduled run cleanup")

	removed, err := j.pruner.PruneRuns(ctx, j.keep)
	if err != nil {
		return fmt.Errorf("prune runs: %w", err)
	}

	if removed > 0 {
		j.logger.Infof("Run cleanup removed %d evaluation runs", removed)
	}
	return nil
}

// LimiterPruner drops idle rate limit buckets
type LimiterPruner interface {
	Prune(idle time.Duration) int
}

// LimiterCleanupJob evicts idle clients from the in-process rate limiter
type LimiterCleanupJob struct {
	pruner LimiterPruner
	idle   time.Duration
	logger *logger.Logger
}

// NewLimiterCleanupJob creates a new limiter cleanup job
func NewLimiterCleanupJob(pruner LimiterPruner, idle time.Duration, log *logger.Logger) *LimiterCleanupJob {
	return &LimiterCleanupJob{pruner: pruner, idle: idle, logger: log}
}

// Name returns the job name
func (j *LimiterCleanupJob) Name() string {
	return "limiter_cleanup"
}

// Schedule returns the cron schedule (every 10 minutes)
func (j *LimiterCleanupJob) Schedule() string {
	return "0 */10 * * * *"
}

// Run executes the cleanup
func (j *LimiterCleanupJob) Run(_ context.Context) error {
	if removed := j.pruner.Prune(j.idle); removed > 0 {
		j.logger.Infof("Limiter cleanup removed %d idle clients", removed)
	}
	return nil
}
