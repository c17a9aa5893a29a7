package jobs

import (
	"context"
	"time"

	"github.com/wonny/grq-validation/internal/evaluation"
	"github.com/wonny/grq-validation/pkg/logger"
)

// EvaluationJob re-evaluates recent score files and stores the runs
// 시세가 갱신된 뒤 (미국장 마감 후) 하루 한 번
type EvaluationJob struct {
	service  *evaluation.Service
	schedule string
	logger   *logger.Logger
}

// NewEvaluationJob creates a new evaluation job
func NewEvaluationJob(service *evaluation.Service, schedule string, log *logger.Logger) *EvaluationJob {
	return &EvaluationJob{
		service:  service,
		schedule: schedule,
		logger:   log,
	}
}

// Name returns the job name
func (j *EvaluationJob) Name() string {
	return "evaluation"
}

// Schedule returns the cron schedule (default 07:30 daily)
func (j *EvaluationJob) Schedule() string {
	return j.schedule
}

// Run evaluates every score file inside the recent window.
// A failing batch is logged and skipped; only a total failure fails the job.
func (j *EvaluationJob) Run(ctx context.Context) error {
	start := time.Now()
	j.logger.Info("Starting scheduled evaluation")

	summary, err := j.service.EvaluateRecent(ctx, false)
	if err != nil {
		return err
	}

	j.logger.WithFields(map[string]interface{}{
		"evaluated": summary.Evaluated,
		"failed":    summary.Failed,
		"duration":  time.Since(start).String(),
	}).Info("Scheduled evaluation completed")

	return nil
}
