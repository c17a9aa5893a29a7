package commands

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/wonny/grq-validation/internal/api"
	"github.com/wonny/grq-validation/internal/api/handlers"
	"github.com/wonny/grq-validation/internal/scheduler"
	"github.com/wonny/grq-validation/internal/scheduler/jobs"
	"github.com/wonny/grq-validation/internal/store"
)

// apiCmd represents the api command
var apiCmd = &cobra.Command{
	Use:   "api",
	Short: "API 서버 시작",
	Long: `REST API 서버를 시작합니다.

Endpoints:
  GET /health                                    - Health check
  GET /api/scores                                - 스코어 파일 목록 (?all=true)
  GET /api/scores/{date}/portfolio               - 포트폴리오 지표
  GET /api/scores/{date}/instruments             - 종목별 지표
  GET /api/scores/{date}/instruments/{symbol}    - 종목 상세

Example:
  go run ./cmd/grq api
  go run ./cmd/grq api --port 8080`,
	RunE: runAPIServer,
}

var (
	apiPort string
)

// limiterIdle 이 시간 동안 요청이 없는 클라이언트 버킷은 제거
const limiterIdle = 15 * time.Minute

func init() {
	rootCmd.AddCommand(apiCmd)

	// Flags
	apiCmd.Flags().StringVar(&apiPort, "port", "", "API 서버 포트 (default: PORT)")
}

func runAPIServer(cmd *cobra.Command, args []string) error {
	rt, err := newApp()
	if err != nil {
		return err
	}
	defer rt.close()

	if apiPort != "" {
		rt.cfg.Port = apiPort
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := rt.connect(ctx); err != nil {
		return err
	}
	rt.log.Info("Connected to database")

	svc := rt.service(store.NewBatchLoader(rt.db.Pool))
	limiter := api.NewLimiter(rt.redis, "grq", rt.cfg.API.RateLimit, rt.cfg.API.RateWindow)

	// 인메모리 리미터는 유휴 클라이언트를 주기적으로 정리
	if local, ok := limiter.(*api.LocalLimiter); ok {
		sched := scheduler.New(rt.log, scheduler.WithRetry(0, 0))
		if err := sched.AddJob(jobs.NewLimiterCleanupJob(local, limiterIdle, rt.log)); err != nil {
			return err
		}
		sched.Start()
		defer sched.Stop()
	}

	router := api.NewRouter(handlers.NewScoreHandler(svc, rt.log), limiter, rt.log)
	server := api.New(rt.cfg, rt.log, router)

	fmt.Fprintf(os.Stderr, "✅ Server running on http://localhost:%s (Ctrl+C to stop)\n", rt.cfg.Port)

	if err := server.Run(ctx); err != nil {
		return err
	}

	rt.log.Info("Server stopped")
	return nil
}
