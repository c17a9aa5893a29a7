package performance

import (
	"time"

	"github.com/wonny/grq-validation/internal/contracts"
)

// SplitAdjuster 과거 가격을 현재 주식 수 기준으로 환산
// ⭐ SSOT: 분할 보정은 여기서만
type SplitAdjuster struct {
	market map[string][]contracts.MarketPoint
}

// NewSplitAdjuster 새 분할 보정기 생성
func NewSplitAdjuster(market map[string][]contracts.MarketPoint) SplitAdjuster {
	return SplitAdjuster{market: market}
}

// Multiplier historicalDate 이후(당일 제외)에 기록된 분할 계수(>1.0)의 곱
// 시세가 없으면 1
func (s SplitAdjuster) Multiplier(symbol string, historicalDate time.Time) float64 {
	day := contracts.DateOnly(historicalDate)
	multiplier := 1.0

	for _, p := range s.market[symbol] {
		if p.IsSplit() && contracts.DateOnly(p.Date).After(day) {
			multiplier *= p.SplitCoefficient
		}
	}

	return multiplier
}

// Adjust price / Multiplier
func (s SplitAdjuster) Adjust(price float64, symbol string, historicalDate time.Time) float64 {
	return price / s.Multiplier(symbol, historicalDate)
}
