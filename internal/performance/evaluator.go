package performance

import (
	"errors"
	"fmt"
	"runtime"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"

	"github.com/wonny/grq-validation/internal/contracts"
)

// Evaluator 배치 하나에 대한 종목/포트폴리오 평가
// ⭐ SSOT: 생성 후 불변 → 동시 호출 안전 (락 없음)
type Evaluator struct {
	returns   *ReturnCalculator
	trends    TrendLineEstimator
	portfolio PortfolioAggregator
	projector *HybridProjector
	log       zerolog.Logger
}

// NewEvaluator 배치를 정규화하고 매수가를 결정한 평가기 생성
func NewEvaluator(batch contracts.Batch, policy ProjectionPolicy, log zerolog.Logger) *Evaluator {
	returns := NewReturnCalculator(batch)

	return &Evaluator{
		returns:   returns,
		trends:    NewTrendLineEstimator(returns),
		portfolio: NewPortfolioAggregator(returns),
		projector: NewHybridProjector(policy, log),
		log: log.With().
			Str("component", "performance.evaluator").
			Str("score_date", returns.ScoreDate().Format(contracts.DateLayout)).
			Logger(),
	}
}

// ScoreDate returns the evaluated batch date
func (e *Evaluator) ScoreDate() time.Time {
	return e.returns.ScoreDate()
}

// EvaluateInstrument 종목 하나의 전체 지표
// 데이터 부족은 에러가 아니라 nil 필드 + Status 로 표현. 배치에 없는 종목만 에러
func (e *Evaluator) EvaluateInstrument(symbol string) (contracts.InstrumentMetrics, error) {
	entry, ok := e.returns.entries[symbol]
	if !ok {
		return contracts.InstrumentMetrics{}, fmt.Errorf("%s: %w", symbol, contracts.ErrUnknownSymbol)
	}

	m := contracts.InstrumentMetrics{
		Symbol:      entry.Symbol,
		Score:       entry.Score,
		TargetPrice: entry.TargetPrice,
		Status:      contracts.StatusOK,
	}

	buy, err := e.returns.validBuyPrice(symbol)
	if err != nil {
		m.Status = statusFor(err)
		e.log.Debug().Err(err).Str("symbol", symbol).Msg("no buy price")
		return m, nil
	}
	m.BuyPrice = &buy

	latest, err := e.returns.LatestDate(symbol)
	if err != nil {
		m.Status = statusFor(err)
		return m, nil
	}
	m.LatestDate = &latest
	m.DaysElapsed = elapsedDays(e.returns.ScoreDate(), latest)

	current, err := e.returns.CurrentPerformance(symbol, latest)
	if err != nil {
		m.Status = statusFor(err)
		e.log.Debug().Err(err).Str("symbol", symbol).Msg("no current performance")
		return m, nil
	}
	m.CurrentPerformance = floatPtr(current)

	if div, err := e.returns.DividendReturn(symbol, latest); err == nil {
		m.DividendReturn = floatPtr(div)
	}
	if pct, err := e.returns.TargetPercentage(symbol); err == nil {
		m.TargetPercent = floatPtr(pct)
	}
	if series, err := e.returns.Series(symbol); err == nil {
		m.Series = series
	}

	// 샘플 부족 시 추세선 없이 목표가/평균회귀 분기로
	if trend, err := e.trends.Fit(symbol); err == nil {
		m.TrendLine = &trend
	}

	projection, err := e.projector.Project(ProjectionInput{
		DaysElapsed: m.DaysElapsed,
		Current:     m.CurrentPerformance,
		Target:      m.TargetPercent,
		Trend:       m.TrendLine,
	})
	if err == nil {
		m.Projection = &projection
	}

	judgement := Classify(JudgementInput{
		DaysElapsed:   m.DaysElapsed,
		Performance:   current,
		TargetPercent: m.TargetPercent,
		Projection:    m.Projection,
	})
	m.Judgement = &judgement

	m.Annualized, m.ExcessOverCostOfCapital, m.BeatsCostOfCapital = costOfCapital(current, m.DaysElapsed)

	return m, nil
}

// EvaluateAll 배치의 모든 종목 평가 (입력 순서 유지)
func (e *Evaluator) EvaluateAll() ([]contracts.InstrumentMetrics, error) {
	entries := e.returns.Batch().Entries
	results := make([]contracts.InstrumentMetrics, len(entries))

	var g errgroup.Group
	g.SetLimit(runtime.GOMAXPROCS(0))

	for i, entry := range entries {
		g.Go(func() error {
			m, err := e.EvaluateInstrument(entry.Symbol)
			if err != nil {
				return err
			}
			results[i] = m
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}

// EvaluatePortfolio 동일 가중 포트폴리오 지표
func (e *Evaluator) EvaluatePortfolio() contracts.PortfolioMetrics {
	batch := e.returns.Batch()
	summary := batch.Summary()

	pm := contracts.PortfolioMetrics{
		ScoreDate:      batch.ScoreDate,
		TotalStocks:    summary.TotalEntries,
		StocksWithData: len(e.portfolio.Resolvable()),
		AverageScore:   summary.AverageScore,
		Snapshots:      e.portfolio.Snapshots(),
		TargetPercent:  e.portfolio.Target(),
	}

	latest, err := e.portfolio.CurrentPerformance()
	if err != nil {
		e.log.Debug().Err(err).Msg("portfolio has no performance data")
		return pm
	}

	pm.DaysElapsed = elapsedDays(batch.ScoreDate, latest.Date)
	pm.CurrentPerformance = floatPtr(latest.MeanReturn)

	if series, err := e.portfolio.Series(); err == nil {
		if trend, err := FitTrendLine(series); err == nil {
			pm.TrendLine = &trend
		}
	}

	target := pm.TargetPercent
	projection, err := e.projector.Project(ProjectionInput{
		DaysElapsed: pm.DaysElapsed,
		Current:     pm.CurrentPerformance,
		Target:      &target,
		Trend:       pm.TrendLine,
	})
	if err == nil {
		pm.Projection = &projection
	}

	judgement := Classify(JudgementInput{
		DaysElapsed:   pm.DaysElapsed,
		Performance:   latest.MeanReturn,
		TargetPercent: &target,
		Projection:    pm.Projection,
	})
	pm.Judgement = &judgement

	pm.Annualized, pm.ExcessOverCostOfCapital, pm.BeatsCostOfCapital = costOfCapital(latest.MeanReturn, pm.DaysElapsed)

	return pm
}

// Run 배치 전체 평가 결과 (저장/캐시 단위)
func (e *Evaluator) Run(policyHash string) (contracts.EvaluationRun, error) {
	instruments, err := e.EvaluateAll()
	if err != nil {
		return contracts.EvaluationRun{}, fmt.Errorf("evaluate instruments: %w", err)
	}

	run := contracts.EvaluationRun{
		ID:          uuid.NewString(),
		ScoreDate:   e.returns.ScoreDate(),
		PolicyHash:  policyHash,
		EvaluatedAt: time.Now().UTC(),
		Portfolio:   e.EvaluatePortfolio(),
		Instruments: instruments,
	}

	e.log.Info().
		Str("run_id", run.ID).
		Int("instruments", len(instruments)).
		Int("with_data", run.Portfolio.StocksWithData).
		Msg("evaluation complete")

	return run, nil
}

// elapsedDays scoreDate → 최신 시세일 (달력일), 90일 상한
func elapsedDays(scoreDate, latest time.Time) int {
	days := contracts.DaysBetween(scoreDate, latest)
	if days < 0 {
		return 0
	}
	if days > contracts.HorizonDays {
		return contracts.HorizonDays
	}
	return days
}

func costOfCapital(performance float64, daysElapsed int) (annualized, excess *float64, beats *bool) {
	rate := Annualize(performance, daysElapsed)
	diff := ExcessOverCostOfCapital(rate)
	ok := diff > 0
	return &rate, &diff, &ok
}

func statusFor(err error) contracts.MetricStatus {
	if errors.Is(err, contracts.ErrMissingMarketData) {
		return contracts.StatusNoMarketData
	}
	return contracts.StatusNoPerformanceData
}
