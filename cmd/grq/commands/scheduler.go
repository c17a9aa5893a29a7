package commands

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/wonny/grq-validation/internal/scheduler"
	"github.com/wonny/grq-validation/internal/scheduler/jobs"
	"github.com/wonny/grq-validation/internal/store"
)

// runsToKeep 스코어 날짜별 보관할 평가 실행 수
const runsToKeep = 5

// schedulerCmd represents the scheduler command
var schedulerCmd = &cobra.Command{
	Use:   "scheduler",
	Short: "스케줄러 관리",
	Long: `스케줄러를 시작하거나 작업을 관리합니다.

Subcommands:
  start   - 스케줄러 시작
  list    - 등록된 작업 목록
  run     - 특정 작업 즉시 실행

Example:
  go run ./cmd/grq scheduler start
  go run ./cmd/grq scheduler list
  go run ./cmd/grq scheduler run evaluation`,
}

var (
	schedulerStartCmd = &cobra.Command{
		Use:   "start",
		Short: "스케줄러 시작",
		Long: `스케줄러를 시작하고 등록된 모든 작업을 스케줄합니다.

등록되는 작업:
- evaluation: 매일 07:30 (GRQ_EVALUATION_SCHEDULE, 최근 스코어 파일 평가 + 저장)
- run_cleanup: 일요일 03:00 (스코어 날짜별 최근 5개 실행만 보관)

스케줄러는 Ctrl+C로 종료할 수 있습니다.`,
		RunE: runScheduler,
	}

	schedulerListCmd = &cobra.Command{
		Use:   "list",
		Short: "등록된 작업 목록",
		RunE:  listJobs,
	}

	schedulerRunCmd = &cobra.Command{
		Use:   "run [job_name]",
		Short: "특정 작업 즉시 실행",
		Args:  cobra.ExactArgs(1),
		RunE:  runJob,
	}
)

func init() {
	rootCmd.AddCommand(schedulerCmd)
	schedulerCmd.AddCommand(schedulerStartCmd)
	schedulerCmd.AddCommand(schedulerListCmd)
	schedulerCmd.AddCommand(schedulerRunCmd)
}

func runScheduler(cmd *cobra.Command, args []string) error {
	rt, sched, err := initScheduler(cmd)
	if err != nil {
		return err
	}
	defer rt.close()

	sched.Start()

	PrintSuccess("Scheduler started")
	printJobs(sched)
	fmt.Fprintln(os.Stderr, "Press Ctrl+C to stop")

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit

	sched.Stop()
	return nil
}

func listJobs(cmd *cobra.Command, args []string) error {
	rt, sched, err := initScheduler(cmd)
	if err != nil {
		return err
	}
	defer rt.close()

	printJobs(sched)
	return nil
}

func runJob(cmd *cobra.Command, args []string) error {
	rt, sched, err := initScheduler(cmd)
	if err != nil {
		return err
	}
	defer rt.close()

	result, err := sched.RunJob(cmd.Context(), args[0])
	if err != nil {
		return fmt.Errorf("run job: %w", err)
	}

	if !result.Success {
		PrintError(fmt.Sprintf("%s failed after %d attempts: %s", result.JobName, result.Attempts, result.Error))
		return fmt.Errorf("job %s failed", result.JobName)
	}
	PrintSuccess(fmt.Sprintf("%s completed in %s", result.JobName, result.Duration.Round(time.Millisecond)))
	return nil
}

func printJobs(sched *scheduler.Scheduler) {
	stats := sched.GetJobStats()

	widths := []int{14, 16, 20}
	PrintTableHeader([]string{"JOB", "SCHEDULE", "NEXT RUN"}, widths)
	for _, name := range sched.GetAllJobs() {
		st := stats[name]
		next := "-"
		if st.NextRun != nil {
			next = st.NextRun.Format("2006-01-02 15:04:05")
		}
		PrintTableRow([]string{name, st.Schedule, next}, widths)
	}
}

func initScheduler(cmd *cobra.Command) (*app, *scheduler.Scheduler, error) {
	rt, err := newApp()
	if err != nil {
		return nil, nil, err
	}
	if err := rt.connect(cmd.Context()); err != nil {
		rt.close()
		return nil, nil, err
	}

	svc := rt.service(store.NewBatchLoader(rt.db.Pool))
	sched := scheduler.New(rt.log)

	for _, job := range []scheduler.Job{
		jobs.NewEvaluationJob(svc, rt.cfg.GRQ.EvaluationSchedule, rt.log),
		jobs.NewRunCleanupJob(rt.evals, runsToKeep, rt.log),
	} {
		if err := sched.AddJob(job); err != nil {
			rt.close()
			return nil, nil, fmt.Errorf("add job: %w", err)
		}
	}

	return rt, sched, nil
}
