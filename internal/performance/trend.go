package performance

import (
	"fmt"

	"gonum.org/v1/gonum/stat"

	"github.com/wonny/grq-validation/internal/contracts"
)

// minTrendSamples 회귀에 필요한 최소 샘플 수
const minTrendSamples = 3

// TrendLineEstimator 누적 수익률 vs 경과일 회귀 (절편 0 고정)
type TrendLineEstimator struct {
	returns *ReturnCalculator
}

// NewTrendLineEstimator 새 추세선 추정기 생성
func NewTrendLineEstimator(returns *ReturnCalculator) TrendLineEstimator {
	return TrendLineEstimator{returns: returns}
}

// Fit 종목의 [scoreDate, 최근 시세일] 구간 추세선
// 종료일은 최신 시장 데이터 날짜 (미래 날짜 편향 방지)
func (e TrendLineEstimator) Fit(symbol string) (contracts.TrendLine, error) {
	series, err := e.returns.Series(symbol)
	if err != nil {
		return contracts.TrendLine{}, fmt.Errorf("%s: %w", symbol, contracts.ErrInsufficientTrendData)
	}
	return FitTrendLine(series)
}

// FitTrendLine fits y = slope·x through the origin.
// Performance is 0 at day 0 by definition, so the intercept is not estimated.
func FitTrendLine(series contracts.ReturnSeries) (contracts.TrendLine, error) {
	if len(series) < minTrendSamples {
		return contracts.TrendLine{}, fmt.Errorf("%d samples: %w", len(series), contracts.ErrInsufficientTrendData)
	}

	xs := make([]float64, len(series))
	ys := make([]float64, len(series))
	var sumXX float64
	for i, p := range series {
		xs[i] = float64(p.DaysSinceScore)
		ys[i] = p.CumulativeReturn
		sumXX += xs[i] * xs[i]
	}

	// 모든 샘플이 0일차면 기울기 정의 불가
	if sumXX == 0 {
		return contracts.TrendLine{}, fmt.Errorf("no elapsed days: %w", contracts.ErrInsufficientTrendData)
	}

	_, slope := stat.LinearRegression(xs, ys, nil, true)
	if !isFinite(slope) {
		return contracts.TrendLine{}, fmt.Errorf("slope %v: %w", slope, contracts.ErrInvalidNumeric)
	}

	// 원점 고정 회귀는 평균 모델보다 나쁠 수 있음 (음수 R² → 0)
	rSquared := stat.RSquared(xs, ys, nil, 0, slope)
	if !isFinite(rSquared) {
		rSquared = 0
	}
	rSquared = clamp(rSquared, 0, 1)

	samples := make([]contracts.ReturnPoint, len(series))
	copy(samples, series)

	return contracts.TrendLine{
		Slope:    slope,
		RSquared: rSquared,
		Samples:  samples,
	}, nil
}
