package commands

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/wonny/grq-validation/internal/contracts"
	"github.com/wonny/grq-validation/internal/evaluation"
	"github.com/wonny/grq-validation/internal/store"
)

// evaluateCmd represents the evaluate command
var evaluateCmd = &cobra.Command{
	Use:   "evaluate",
	Short: "스코어 파일 성과 평가",
	Long: `스코어 파일의 종목별/포트폴리오 성과를 평가합니다.

--date 없이 실행하면 최근 스코어 파일(기본 100일) 전체의 포트폴리오 요약을 출력합니다.
--all 은 기간 제한 없이 전체 스코어 파일을 처리합니다.

Example:
  go run ./cmd/grq evaluate --date 2025-02-14
  go run ./cmd/grq evaluate --date 2025-02-14 --symbol AAPL
  go run ./cmd/grq evaluate --all --save
  go run ./cmd/grq evaluate --file batch.json`,
	RunE: runEvaluate,
}

var (
	evalDate   string
	evalSymbol string
	evalAll    bool
	evalSave   bool
	evalFile   string
)

func init() {
	rootCmd.AddCommand(evaluateCmd)

	// Flags
	evaluateCmd.Flags().StringVar(&evalDate, "date", "", "스코어 날짜 (YYYY-MM-DD)")
	evaluateCmd.Flags().StringVar(&evalSymbol, "symbol", "", "종목 상세 (예: AAPL, NYSE:AAPL)")
	evaluateCmd.Flags().BoolVar(&evalAll, "all", false, "기간 제한 없이 전체 스코어 파일 처리")
	evaluateCmd.Flags().BoolVar(&evalSave, "save", false, "평가 결과를 DB에 저장")
	evaluateCmd.Flags().StringVar(&evalFile, "file", "", "DB 대신 JSON 배치 파일로 평가")
}

func runEvaluate(cmd *cobra.Command, args []string) error {
	if evalFile != "" && evalSave {
		return fmt.Errorf("--save cannot be combined with --file")
	}
	if evalSymbol != "" && evalDate == "" && evalFile == "" {
		return fmt.Errorf("--symbol requires --date")
	}

	rt, err := newApp()
	if err != nil {
		return err
	}
	defer rt.close()

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	// 오프라인 모드: JSON 배치 파일
	if evalFile != "" {
		batch, err := evaluation.ReadBatchFile(evalFile)
		if err != nil {
			return err
		}
		svc := rt.service(evaluation.NewMemorySource(batch))
		return evaluateOne(ctx, svc, contracts.DateOnly(batch.ScoreDate))
	}

	if err := rt.connect(ctx); err != nil {
		return err
	}
	svc := rt.service(store.NewBatchLoader(rt.db.Pool))

	if evalDate != "" {
		scoreDate, err := contracts.ParseDate(evalDate)
		if err != nil {
			return fmt.Errorf("invalid --date: %w", err)
		}
		return evaluateOne(ctx, svc, scoreDate)
	}

	return evaluateMany(ctx, svc)
}

func evaluateOne(ctx context.Context, svc *evaluation.Service, scoreDate time.Time) error {
	var (
		run contracts.EvaluationRun
		err error
	)
	if evalSave {
		run, err = svc.EvaluateAndSave(ctx, scoreDate)
	} else {
		run, err = svc.Evaluate(ctx, scoreDate)
	}
	if err != nil {
		return err
	}

	if evalSymbol != "" {
		for _, m := range run.Instruments {
			if m.Symbol == evalSymbol {
				printInstrument(m)
				return nil
			}
		}
		return fmt.Errorf("%s: %w", evalSymbol, contracts.ErrUnknownSymbol)
	}

	printPortfolio(run)
	printInstrumentTable(run.Instruments)
	if evalSave {
		PrintSuccess(fmt.Sprintf("Saved run %s", run.ID))
	}
	return nil
}

func evaluateMany(ctx context.Context, svc *evaluation.Service) error {
	if evalSave {
		summary, err := svc.EvaluateRecent(ctx, evalAll)
		if err != nil {
			return err
		}
		printRunSummaries(summary.Runs)
		PrintSuccess(fmt.Sprintf("Saved %d runs (%d failed)", summary.Evaluated, summary.Failed))
		return nil
	}

	dates, err := svc.ScoreDates(ctx, evalAll)
	if err != nil {
		return err
	}
	if len(dates) == 0 {
		PrintWarning("No score files in range (use --all to include older files)")
		return nil
	}

	runs := make([]contracts.EvaluationRun, 0, len(dates))
	for _, d := range dates {
		run, err := svc.Evaluate(ctx, d)
		if err != nil {
			PrintError(fmt.Sprintf("%s: %v", d.Format(contracts.DateLayout), err))
			continue
		}
		runs = append(runs, run)
	}
	printRunSummaries(runs)
	return nil
}

func printPortfolio(run contracts.EvaluationRun) {
	p := run.Portfolio

	PrintHeader(fmt.Sprintf("Score file %s", p.ScoreDate.Format(contracts.DateLayout)))
	PrintKeyValue("Stocks", fmt.Sprintf("%d (%d with data)", p.TotalStocks, p.StocksWithData), 16)
	PrintKeyValue("Average score", fmt.Sprintf("%.3f", p.AverageScore), 16)
	PrintKeyValue("Days elapsed", fmt.Sprintf("%d / %d", p.DaysElapsed, contracts.HorizonDays), 16)
	PrintKeyValue("Performance", fmtPct(p.CurrentPerformance), 16)
	PrintKeyValue("Target", fmtPct(&p.TargetPercent), 16)
	PrintKeyValue("Projection", fmtProjection(p.Projection), 16)
	PrintKeyValue("Judgement", fmtJudgement(p.Judgement), 16)
	PrintKeyValue("Annualized", fmtPct(p.Annualized), 16)
	PrintKeyValue("vs cost of cap.", fmtPct(p.ExcessOverCostOfCapital), 16)
	PrintKeyValue("Policy", run.PolicyHash[:min(12, len(run.PolicyHash))], 16)
	PrintDoubleSeparator()
}

var instrumentColumns = []string{"SYMBOL", "SCORE", "BUY", "TARGET", "CURRENT", "PROJECTED", "JUDGEMENT"}
var instrumentWidths = []int{10, 6, 10, 9, 9, 10, 28}

func printInstrumentTable(instruments []contracts.InstrumentMetrics) {
	fmt.Fprintln(out)
	PrintTableHeader(instrumentColumns, instrumentWidths)
	for _, m := range instruments {
		projected := "N/A"
		if m.Projection != nil {
			projected = fmtPct(&m.Projection.ProjectedReturn)
		}
		judgement := fmtJudgement(m.Judgement)
		if m.Status != contracts.StatusOK {
			judgement = string(m.Status)
		}

		PrintTableRow([]string{
			m.Symbol,
			fmt.Sprintf("%.2f", m.Score),
			fmtPrice(buyPrice(m)),
			fmtPct(m.TargetPercent),
			fmtPct(m.CurrentPerformance),
			projected,
			judgement,
		}, instrumentWidths)
	}
}

func printInstrument(m contracts.InstrumentMetrics) {
	PrintHeader(m.Symbol)
	PrintKeyValue("Score", fmt.Sprintf("%.3f", m.Score), 16)
	PrintKeyValue("Target price", fmt.Sprintf("%.2f", m.TargetPrice), 16)
	PrintKeyValue("Buy price", fmtPrice(buyPrice(m)), 16)
	if m.BuyPrice != nil {
		PrintKeyValue("Buy date", fmtDate(&m.BuyPrice.DateUsed), 16)
	}
	PrintKeyValue("Latest data", fmtDate(m.LatestDate), 16)
	PrintKeyValue("Days elapsed", fmt.Sprintf("%d / %d", m.DaysElapsed, contracts.HorizonDays), 16)
	PrintKeyValue("Performance", fmtPct(m.CurrentPerformance), 16)
	PrintKeyValue("Dividends", fmtPct(m.DividendReturn), 16)
	PrintKeyValue("Target", fmtPct(m.TargetPercent), 16)
	if m.TrendLine != nil {
		PrintKeyValue("Trend", fmt.Sprintf("%+.3f%%/day (R² %.2f, 90d %+.2f%%)",
			m.TrendLine.Slope, m.TrendLine.RSquared, m.TrendLine.Predicted90Day()), 16)
	}
	PrintKeyValue("Projection", fmtProjection(m.Projection), 16)
	PrintKeyValue("Judgement", fmtJudgement(m.Judgement), 16)
	PrintKeyValue("Annualized", fmtPct(m.Annualized), 16)
	PrintKeyValue("Beats 10%", fmtBool(m.BeatsCostOfCapital), 16)
	PrintKeyValue("Status", string(m.Status), 16)
	PrintDoubleSeparator()
}

var summaryColumns = []string{"SCORE DATE", "STOCKS", "DAYS", "PERF", "TARGET", "ANNUALIZED", "JUDGEMENT"}
var summaryWidths = []int{10, 7, 4, 9, 8, 10, 28}

func printRunSummaries(runs []contracts.EvaluationRun) {
	fmt.Fprintln(out)
	PrintTableHeader(summaryColumns, summaryWidths)
	for _, run := range runs {
		p := run.Portfolio
		PrintTableRow([]string{
			p.ScoreDate.Format(contracts.DateLayout),
			fmt.Sprintf("%d/%d", p.StocksWithData, p.TotalStocks),
			fmt.Sprintf("%d", p.DaysElapsed),
			fmtPct(p.CurrentPerformance),
			fmtPct(&p.TargetPercent),
			fmtPct(p.Annualized),
			fmtJudgement(p.Judgement),
		}, summaryWidths)
	}
}
