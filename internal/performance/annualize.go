package performance

import (
	"math"

	"github.com/wonny/grq-validation/internal/contracts"
)

// daysPerYear 윤년 포함 평균
const daysPerYear = 365.25

// Annualize 경과일 기준 연환산 수익률 (%)
// 고정 90일 분모를 쓰면 초기 구간 수익률이 왜곡되므로 실제 경과일 사용
func Annualize(performance float64, daysElapsed int) float64 {
	if performance == 0 || daysElapsed <= 0 || !isFinite(performance) {
		return 0
	}
	if performance <= -100 {
		return -100
	}

	rate := (math.Pow(1+performance/100, daysPerYear/float64(daysElapsed)) - 1) * 100
	if !isFinite(rate) {
		return 0
	}
	return rate
}

// ExcessOverCostOfCapital 연환산 수익률 - 자본비용(10%)
func ExcessOverCostOfCapital(annualized float64) float64 {
	return annualized - contracts.CostOfCapitalRate
}
