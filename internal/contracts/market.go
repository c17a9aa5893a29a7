package contracts

import (
	"math"
	"time"
)

// MarketPoint is one trading day of OHLC data
type MarketPoint struct {
	Symbol           string    `json:"symbol"`
	Date             time.Time `json:"date"`
	Open             float64   `json:"open"`
	High             float64   `json:"high"`
	Low              float64   `json:"low"`
	Close            float64   `json:"close"`
	SplitCoefficient float64   `json:"split_coefficient"` // 1.0 = 분할 없음
}

// Midpoint returns (high+low)/2
func (p MarketPoint) Midpoint() float64 {
	return (p.High + p.Low) / 2
}

// IsSplit reports whether a forward split was applied on this date
func (p MarketPoint) IsSplit() bool {
	return p.SplitCoefficient > 1.0
}

// DividendRecord is a per-share cash dividend
type DividendRecord struct {
	Symbol string    `json:"symbol"`
	ExDate time.Time `json:"ex_date"`
	Amount float64   `json:"amount"`
}

// BuyPriceResolution is the effective entry price for (symbol, score date)
// ⭐ SSOT: 한 번 결정되면 재계산하지 않음
type BuyPriceResolution struct {
	Symbol    string    `json:"symbol"`
	ScoreDate time.Time `json:"score_date"`
	Price     float64   `json:"price"`
	DateUsed  time.Time `json:"date_used"`
}

// ReturnPoint is the cumulative return (percent) on one date
type ReturnPoint struct {
	Date             time.Time `json:"date"`
	DaysSinceScore   int       `json:"days_since_score"`
	CumulativeReturn float64   `json:"cumulative_return"`
}

// ReturnSeries is ordered ascending by date and never extends past the horizon
type ReturnSeries []ReturnPoint

// Last returns the latest point
func (s ReturnSeries) Last() (ReturnPoint, bool) {
	if len(s) == 0 {
		return ReturnPoint{}, false
	}
	return s[len(s)-1], true
}

// TrendLine is a zero-intercept regression of cumulative return on elapsed days
type TrendLine struct {
	Slope    float64       `json:"slope"` // %/day
	RSquared float64       `json:"r_squared"`
	Samples  []ReturnPoint `json:"samples"`
}

// Predicted90Day extrapolates the line to the end of the window, floored at -100%
func (t TrendLine) Predicted90Day() float64 {
	return math.Max(t.Slope*HorizonDays, -100)
}

// PortfolioSnapshot is the equal-weight mean return on one date
type PortfolioSnapshot struct {
	Date           time.Time `json:"date"`
	DaysSinceScore int       `json:"days_since_score"`
	MeanReturn     float64   `json:"mean_return"`
	Contributors   int       `json:"contributors"`
}
