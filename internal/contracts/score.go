package contracts

import (
	"sort"
	"time"
)

// HorizonDays is the fixed validation window after a score date
const HorizonDays = 90

// CostOfCapitalRate is the annual benchmark (percent) recommendations are judged against
const CostOfCapitalRate = 10.0

// DefaultTargetPercent is used when no per-instrument target can be resolved
const DefaultTargetPercent = 20.0

// ScoreEntry represents one recommendation line of a score file
// ⭐ SSOT: 스코어 파일 한 줄 = ScoreEntry (배치 단위 불변)
type ScoreEntry struct {
	Symbol                 string     `json:"symbol" validate:"required,symbol"`
	Score                  float64    `json:"score" validate:"gte=0,lte=1"`
	TargetPrice            float64    `json:"target_price" validate:"gt=0"`
	ExDividendDate         *time.Time `json:"ex_dividend_date,omitempty"`                              // 배당 시계열이 없을 때 배당 힌트
	DividendPerShare       *float64   `json:"dividend_per_share,omitempty" validate:"omitempty,gte=0"` // 배당 시계열이 없을 때 배당 힌트
	IntrinsicValueBasic    *float64   `json:"intrinsic_value_basic,omitempty"`                         // 저장만 함 (평가에 사용 안 함)
	IntrinsicValueAdjusted *float64   `json:"intrinsic_value_adjusted,omitempty"`                      // 저장만 함 (평가에 사용 안 함)
	Notes                  string     `json:"notes,omitempty"`
}

// Batch is everything the performance engine needs for one score date
// 스코어 파일 1개 + 시세 + 배당 (한 번 로드 후 변경 없음)
type Batch struct {
	ScoreDate time.Time                   `json:"score_date"`
	Entries   []ScoreEntry                `json:"entries"`
	Market    map[string][]MarketPoint    `json:"market"`
	Dividends map[string][]DividendRecord `json:"dividends"`
}

// BatchSummary summarizes a score file
type BatchSummary struct {
	ScoreDate    time.Time `json:"score_date"`
	TotalEntries int       `json:"total_entries"`
	AverageScore float64   `json:"average_score"`
}

// Summary returns entry count and average score (0 for an empty batch)
func (b *Batch) Summary() BatchSummary {
	summary := BatchSummary{
		ScoreDate:    DateOnly(b.ScoreDate),
		TotalEntries: len(b.Entries),
	}
	if len(b.Entries) == 0 {
		return summary
	}

	var total float64
	for _, e := range b.Entries {
		total += e.Score
	}
	summary.AverageScore = total / float64(len(b.Entries))
	return summary
}

// Symbols returns the batch symbols in score-file order
func (b *Batch) Symbols() []string {
	symbols := make([]string, 0, len(b.Entries))
	for _, e := range b.Entries {
		symbols = append(symbols, e.Symbol)
	}
	return symbols
}

// Entry looks up a score entry by symbol
func (b *Batch) Entry(symbol string) (ScoreEntry, bool) {
	for _, e := range b.Entries {
		if e.Symbol == symbol {
			return e, true
		}
	}
	return ScoreEntry{}, false
}

// Normalized returns a deep copy with every series sorted ascending by date.
// The receiver is left untouched.
func (b *Batch) Normalized() Batch {
	out := Batch{
		ScoreDate: DateOnly(b.ScoreDate),
		Entries:   append([]ScoreEntry(nil), b.Entries...),
		Market:    make(map[string][]MarketPoint, len(b.Market)),
		Dividends: make(map[string][]DividendRecord, len(b.Dividends)),
	}

	for symbol, series := range b.Market {
		points := append([]MarketPoint(nil), series...)
		sort.SliceStable(points, func(i, j int) bool { return points[i].Date.Before(points[j].Date) })
		out.Market[symbol] = points
	}
	for symbol, records := range b.Dividends {
		divs := append([]DividendRecord(nil), records...)
		sort.SliceStable(divs, func(i, j int) bool { return divs[i].ExDate.Before(divs[j].ExDate) })
		out.Dividends[symbol] = divs
	}

	return out
}
