package contracts

import "time"

// MetricStatus explains why metrics are present or absent
type MetricStatus string

const (
	StatusOK                MetricStatus = "ok"
	StatusNoPerformanceData MetricStatus = "no performance data"
	StatusNoMarketData      MetricStatus = "no market data"
)

// InstrumentMetrics is everything the presentation layer shows for one recommendation
// nil 필드 = 계산 불가 (0과 구분)
type InstrumentMetrics struct {
	Symbol      string  `json:"symbol"`
	Score       float64 `json:"score"`
	TargetPrice float64 `json:"target_price"`

	BuyPrice           *BuyPriceResolution `json:"buy_price"`
	LatestDate         *time.Time          `json:"latest_date"`
	DaysElapsed        int                 `json:"days_elapsed"`
	CurrentPerformance *float64            `json:"current_performance"`
	DividendReturn     *float64            `json:"dividend_return"`
	TargetPercent      *float64            `json:"target_percent"`

	TrendLine  *TrendLine        `json:"trend_line"`
	Projection *HybridProjection `json:"projection"`
	Judgement  *Judgement        `json:"judgement"`

	Annualized              *float64 `json:"annualized"`
	ExcessOverCostOfCapital *float64 `json:"excess_over_cost_of_capital"`
	BeatsCostOfCapital      *bool    `json:"beats_cost_of_capital"`

	Series ReturnSeries `json:"series,omitempty"`
	Status MetricStatus `json:"status"`
}

// HasPerformance reports whether a current performance was computed
func (m *InstrumentMetrics) HasPerformance() bool {
	return m.CurrentPerformance != nil
}

// PortfolioMetrics is the equal-weight aggregate of one score file
type PortfolioMetrics struct {
	ScoreDate      time.Time `json:"score_date"`
	TotalStocks    int       `json:"total_stocks"`
	StocksWithData int       `json:"stocks_with_data"`
	AverageScore   float64   `json:"average_score"`

	Snapshots          []PortfolioSnapshot `json:"snapshots"`
	DaysElapsed        int                 `json:"days_elapsed"`
	CurrentPerformance *float64            `json:"current_performance"` // performance_90_day
	TargetPercent      float64             `json:"target_percent"`

	TrendLine  *TrendLine        `json:"trend_line"`
	Projection *HybridProjection `json:"projection"`
	Judgement  *Judgement        `json:"judgement"`

	Annualized              *float64 `json:"annualized"`
	ExcessOverCostOfCapital *float64 `json:"excess_over_cost_of_capital"`
	BeatsCostOfCapital      *bool    `json:"beats_cost_of_capital"`
}

// EvaluationRun is one persisted evaluation of a batch
type EvaluationRun struct {
	ID          string              `json:"id"`
	ScoreDate   time.Time           `json:"score_date"`
	PolicyHash  string              `json:"policy_hash"`
	EvaluatedAt time.Time           `json:"evaluated_at"`
	Portfolio   PortfolioMetrics    `json:"portfolio"`
	Instruments []InstrumentMetrics `json:"instruments"`
}
