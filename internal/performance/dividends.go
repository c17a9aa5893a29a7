package performance

import (
	"time"

	"github.com/wonny/grq-validation/internal/contracts"
)

// DividendAccumulator 배당금 누적 ([from, cutoff] 배당락일 기준)
// 스코어 날짜 이전 배당은 매수 전이므로 제외
type DividendAccumulator struct {
	from      time.Time
	dividends map[string][]contracts.DividendRecord
}

// NewDividendAccumulator 새 배당 누적기 생성
// 배당 시계열이 없는 종목은 스코어 파일의 배당락일/주당배당금 힌트를 사용
func NewDividendAccumulator(from time.Time, dividends map[string][]contracts.DividendRecord, entries []contracts.ScoreEntry) DividendAccumulator {
	merged := make(map[string][]contracts.DividendRecord, len(dividends))
	for symbol, records := range dividends {
		merged[symbol] = records
	}

	for _, e := range entries {
		if len(merged[e.Symbol]) > 0 {
			continue
		}
		if record, ok := hintedDividend(e); ok {
			merged[e.Symbol] = []contracts.DividendRecord{record}
		}
	}

	return DividendAccumulator{from: contracts.DateOnly(from), dividends: merged}
}

// Sum from <= exDate <= cutoff 인 주당 배당금 합계, 기록이 없으면 0
func (a DividendAccumulator) Sum(symbol string, cutoff time.Time) float64 {
	day := contracts.DateOnly(cutoff)

	var total float64
	for _, d := range a.dividends[symbol] {
		exDate := contracts.DateOnly(d.ExDate)
		if exDate.Before(a.from) || exDate.After(day) {
			continue
		}
		total += d.Amount
	}
	return total
}

func hintedDividend(e contracts.ScoreEntry) (contracts.DividendRecord, bool) {
	if e.ExDividendDate == nil || e.DividendPerShare == nil || *e.DividendPerShare <= 0 {
		return contracts.DividendRecord{}, false
	}
	return contracts.DividendRecord{
		Symbol: e.Symbol,
		ExDate: contracts.DateOnly(*e.ExDividendDate),
		Amount: *e.DividendPerShare,
	}, true
}
