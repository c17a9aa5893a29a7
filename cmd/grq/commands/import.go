package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/wonny/grq-validation/internal/contracts"
	"github.com/wonny/grq-validation/internal/evaluation"
	"github.com/wonny/grq-validation/internal/store"
)

// importCmd represents the import command
var importCmd = &cobra.Command{
	Use:   "import [batch.json]",
	Short: "JSON 배치 파일을 DB에 적재",
	Long: `스코어 파일 + 시세 + 배당이 담긴 JSON 배치를 DB에 저장합니다.
같은 날짜의 스코어 파일은 교체, 시세/배당은 upsert 됩니다.

Example:
  go run ./cmd/grq import scores/2025-02-14.json`,
	Args: cobra.ExactArgs(1),
	RunE: runImport,
}

func init() {
	rootCmd.AddCommand(importCmd)
}

func runImport(cmd *cobra.Command, args []string) error {
	batch, err := evaluation.ReadBatchFile(args[0])
	if err != nil {
		return err
	}

	rt, err := newApp()
	if err != nil {
		return err
	}
	defer rt.close()

	ctx := cmd.Context()
	if err := rt.connect(ctx); err != nil {
		return err
	}

	scoreDate := contracts.DateOnly(batch.ScoreDate)
	if err := store.NewScoreRepository(rt.db.Pool).SaveEntries(ctx, scoreDate, batch.Entries); err != nil {
		return fmt.Errorf("save entries: %w", err)
	}

	market := store.NewMarketRepository(rt.db.Pool)
	var points int
	for symbol, series := range batch.Market {
		for i := range series {
			if series[i].Symbol == "" {
				series[i].Symbol = symbol
			}
		}
		if err := market.SavePoints(ctx, series); err != nil {
			return fmt.Errorf("save market points: %w", err)
		}
		points += len(series)
	}
	var dividends int
	for symbol, records := range batch.Dividends {
		for i := range records {
			if records[i].Symbol == "" {
				records[i].Symbol = symbol
			}
		}
		if err := market.SaveDividends(ctx, records); err != nil {
			return fmt.Errorf("save dividends: %w", err)
		}
		dividends += len(records)
	}

	// 같은 날짜의 캐시된 평가는 무효
	if err := rt.service(store.NewBatchLoader(rt.db.Pool)).Invalidate(ctx, scoreDate); err != nil {
		rt.log.WithError(err).Warn("Cache invalidation failed")
	}

	PrintSuccess(fmt.Sprintf("Imported %s: %d entries, %d market points, %d dividends",
		scoreDate.Format(contracts.DateLayout), len(batch.Entries), points, dividends))
	return nil
}
