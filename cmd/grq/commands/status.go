package commands

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/wonny/grq-validation/internal/contracts"
	"github.com/wonny/grq-validation/internal/store"
	"github.com/wonny/grq-validation/pkg/database"
	"github.com/wonny/grq-validation/pkg/redis"
)

// statusCmd represents the status command
var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "시스템 상태 조회",
	Long: `DB/Redis 연결 상태와 저장된 스코어 파일 현황을 출력합니다.

표시 정보:
- PostgreSQL 연결, 응답 시간, grq 스키마 존재 여부
- Redis 사용 여부
- 스코어 파일/엔트리 수, 최근 윈도우 내 파일 수, 저장된 평가 실행 수
- 투영 정책 해시

Example:
  go run ./cmd/grq status`,
	RunE: runStatus,
}

func init() {
	rootCmd.AddCommand(statusCmd)
}

func runStatus(cmd *cobra.Command, args []string) error {
	rt, err := newApp()
	if err != nil {
		return err
	}
	defer rt.close()

	ctx := cmd.Context()

	db, err := database.New(ctx, rt.cfg)
	if err != nil {
		PrintError(fmt.Sprintf("PostgreSQL: %v", err))
		return err
	}
	rt.db = db

	PrintHeader("GRQ Validation Status")

	health, err := db.HealthCheck(ctx, "grq")
	if err != nil {
		PrintKeyValue("PostgreSQL", "❌ "+err.Error(), 18)
		return err
	}
	PrintKeyValue("PostgreSQL", fmt.Sprintf("✅ %s (%d/%d conns)",
		health.ResponseTime.Round(time.Microsecond), health.Stats.TotalConns, health.Stats.MaxConns), 18)

	rc, err := redis.New(ctx, rt.cfg)
	switch {
	case err != nil:
		PrintKeyValue("Redis", "❌ "+err.Error(), 18)
	case !rc.Enabled():
		PrintKeyValue("Redis", "disabled", 18)
	default:
		PrintKeyValue("Redis", "✅ connected", 18)
		rt.redis = rc
	}

	PrintKeyValue("Policy", fmt.Sprintf("%s v%s (%s)", rt.policy.Meta.PolicyID, rt.policy.Meta.Version, rt.hash[:12]), 18)

	if !health.SchemaReady {
		PrintKeyValue("Schema grq", "missing (run evaluate or api once)", 18)
		PrintDoubleSeparator()
		return nil
	}

	scores := store.NewScoreRepository(db.Pool)
	files, entries, err := scores.Stats(ctx)
	if err != nil {
		return fmt.Errorf("score stats: %w", err)
	}
	since := contracts.DateOnly(time.Now()).AddDate(0, 0, -rt.cfg.GRQ.RecentWindowDays)
	recent, err := scores.ListScoreDatesSince(ctx, since)
	if err != nil {
		return fmt.Errorf("recent score dates: %w", err)
	}
	runs, err := store.NewEvaluationRepository(db.Pool).CountRuns(ctx)
	if err != nil {
		return fmt.Errorf("count runs: %w", err)
	}

	PrintKeyValue("Score files", fmt.Sprintf("%d (%d entries)", files, entries), 18)
	PrintKeyValue("Recent files", fmt.Sprintf("%d (last %d days)", len(recent), rt.cfg.GRQ.RecentWindowDays), 18)
	if len(recent) > 0 {
		PrintKeyValue("Latest file", recent[0].Format(contracts.DateLayout), 18)
	}
	PrintKeyValue("Evaluation runs", fmt.Sprintf("%d", runs), 18)
	PrintDoubleSeparator()

	return nil
}
