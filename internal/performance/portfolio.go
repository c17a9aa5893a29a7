package performance

import (
	"fmt"
	"sort"
	"time"

	"gonum.org/v1/gonum/stat"

	"github.com/wonny/grq-validation/internal/contracts"
)

// PortfolioAggregator 동일 가중 포트폴리오 집계
// 매수가를 결정할 수 없는 종목은 제외하고 분모를 조정
type PortfolioAggregator struct {
	returns *ReturnCalculator
}

// NewPortfolioAggregator 새 포트폴리오 집계기 생성
func NewPortfolioAggregator(returns *ReturnCalculator) PortfolioAggregator {
	return PortfolioAggregator{returns: returns}
}

// Resolvable 매수가가 결정된 종목 (배치 순서 유지)
func (a PortfolioAggregator) Resolvable() []string {
	var symbols []string
	for _, e := range a.returns.Batch().Entries {
		if _, err := a.returns.validBuyPrice(e.Symbol); err == nil {
			symbols = append(symbols, e.Symbol)
		}
	}
	return symbols
}

// Snapshots 날짜별 동일 가중 평균 누적 수익률
// 날짜 = 모든 종목 시계열 날짜의 합집합 ∪ {scoreDate}
func (a PortfolioAggregator) Snapshots() []contracts.PortfolioSnapshot {
	scoreDate := a.returns.ScoreDate()

	byDate := make(map[time.Time][]float64)
	byDate[scoreDate] = nil

	for _, symbol := range a.Resolvable() {
		series, err := a.returns.Series(symbol)
		if err == nil {
			for _, p := range series {
				if p.Date.Equal(scoreDate) {
					continue
				}
				byDate[p.Date] = append(byDate[p.Date], p.CumulativeReturn)
			}
		}
		// 0일차는 정의상 0%
		byDate[scoreDate] = append(byDate[scoreDate], 0)
	}

	snapshots := make([]contracts.PortfolioSnapshot, 0, len(byDate))
	for date, values := range byDate {
		if len(values) == 0 {
			continue
		}
		snapshots = append(snapshots, contracts.PortfolioSnapshot{
			Date:           date,
			DaysSinceScore: contracts.DaysBetween(scoreDate, date),
			MeanReturn:     stat.Mean(values, nil),
			Contributors:   len(values),
		})
	}

	sort.Slice(snapshots, func(i, j int) bool { return snapshots[i].Date.Before(snapshots[j].Date) })
	return snapshots
}

// Target 종목별 목표 수익률의 평균, 결정 가능한 종목이 없으면 기본값 20%
func (a PortfolioAggregator) Target() float64 {
	var targets []float64
	for _, symbol := range a.Resolvable() {
		pct, err := a.returns.TargetPercentage(symbol)
		if err != nil {
			continue
		}
		targets = append(targets, pct)
	}

	if len(targets) == 0 {
		return contracts.DefaultTargetPercent
	}
	return stat.Mean(targets, nil)
}

// Series 스냅샷을 추세선 입력용 시계열로 변환
func (a PortfolioAggregator) Series() (contracts.ReturnSeries, error) {
	snapshots := a.Snapshots()
	if len(snapshots) == 0 {
		return nil, fmt.Errorf("portfolio %s: %w", a.returns.ScoreDate().Format(contracts.DateLayout), contracts.ErrMissingMarketData)
	}

	series := make(contracts.ReturnSeries, len(snapshots))
	for i, s := range snapshots {
		series[i] = contracts.ReturnPoint{
			Date:             s.Date,
			DaysSinceScore:   s.DaysSinceScore,
			CumulativeReturn: s.MeanReturn,
		}
	}
	return series, nil
}

// CurrentPerformance 가장 최근 스냅샷의 평균 수익률
// 기여 종목이 없으면 ErrMissingMarketData
func (a PortfolioAggregator) CurrentPerformance() (contracts.PortfolioSnapshot, error) {
	snapshots := a.Snapshots()
	if len(snapshots) == 0 {
		return contracts.PortfolioSnapshot{}, fmt.Errorf("portfolio %s: %w", a.returns.ScoreDate().Format(contracts.DateLayout), contracts.ErrMissingMarketData)
	}
	return snapshots[len(snapshots)-1], nil
}
