package performance

import (
	"fmt"
	"sort"
	"time"

	"github.com/wonny/grq-validation/internal/contracts"
)

// ReturnCalculator 가격 + 배당 수익률 계산기
// ⭐ SSOT: 매수가는 생성 시 한 번만 결정 (이후 읽기 전용)
type ReturnCalculator struct {
	batch     contracts.Batch
	horizon   time.Time
	entries   map[string]contracts.ScoreEntry
	splits    SplitAdjuster
	dividends DividendAccumulator
	buyPrices map[string]contracts.BuyPriceResolution
	buyErrors map[string]error
}

// NewReturnCalculator 배치를 정규화하고 모든 종목의 매수가를 결정
func NewReturnCalculator(batch contracts.Batch) *ReturnCalculator {
	normalized := batch.Normalized()

	splits := NewSplitAdjuster(normalized.Market)
	resolver := NewBuyPriceResolver(normalized.Market, splits)

	c := &ReturnCalculator{
		batch:     normalized,
		horizon:   contracts.HorizonEnd(normalized.ScoreDate),
		entries:   make(map[string]contracts.ScoreEntry, len(normalized.Entries)),
		splits:    splits,
		dividends: NewDividendAccumulator(normalized.ScoreDate, normalized.Dividends, normalized.Entries),
		buyPrices: make(map[string]contracts.BuyPriceResolution, len(normalized.Entries)),
		buyErrors: make(map[string]error),
	}

	for _, e := range normalized.Entries {
		c.entries[e.Symbol] = e

		resolution, err := resolver.Resolve(e.Symbol, normalized.ScoreDate)
		if err != nil {
			c.buyErrors[e.Symbol] = err
			continue
		}
		c.buyPrices[e.Symbol] = resolution
	}

	return c
}

// Batch returns the normalized batch
func (c *ReturnCalculator) Batch() contracts.Batch {
	return c.batch
}

// ScoreDate returns the batch score date
func (c *ReturnCalculator) ScoreDate() time.Time {
	return c.batch.ScoreDate
}

// Horizon returns scoreDate + 90d
func (c *ReturnCalculator) Horizon() time.Time {
	return c.horizon
}

// BuyPrice 결정된 매수가 조회
func (c *ReturnCalculator) BuyPrice(symbol string) (contracts.BuyPriceResolution, error) {
	if resolution, ok := c.buyPrices[symbol]; ok {
		return resolution, nil
	}
	if err, ok := c.buyErrors[symbol]; ok {
		return contracts.BuyPriceResolution{}, err
	}
	return contracts.BuyPriceResolution{}, fmt.Errorf("%s: %w", symbol, contracts.ErrUnknownSymbol)
}

// LatestDate 윈도우 안에서 가장 최근 시세 날짜 (벽시계 시간이 아닌 시장 데이터 기준)
func (c *ReturnCalculator) LatestDate(symbol string) (time.Time, error) {
	point, ok := c.pointAtOrBefore(symbol, c.horizon)
	if !ok {
		return time.Time{}, fmt.Errorf("%s: %w", symbol, contracts.ErrMissingMarketData)
	}
	return contracts.DateOnly(point.Date), nil
}

// CurrentPerformance asOf 시점 누적 수익률 (%) = 가격 수익률 + 배당 수익률
func (c *ReturnCalculator) CurrentPerformance(symbol string, asOf time.Time) (float64, error) {
	buy, err := c.validBuyPrice(symbol)
	if err != nil {
		return 0, err
	}

	asOf = c.capToHorizon(asOf)
	point, ok := c.pointAtOrBefore(symbol, asOf)
	if !ok {
		return 0, fmt.Errorf("%s as of %s: %w", symbol, asOf.Format(contracts.DateLayout), contracts.ErrMissingMarketData)
	}

	total := c.priceReturn(symbol, point, buy) + c.dividendReturn(symbol, asOf, buy)
	if !isFinite(total) {
		return 0, fmt.Errorf("%s: %w", symbol, contracts.ErrInvalidNumeric)
	}
	return total, nil
}

// DividendReturn asOf 까지 누적 배당 / 매수가 × 100
func (c *ReturnCalculator) DividendReturn(symbol string, asOf time.Time) (float64, error) {
	buy, err := c.validBuyPrice(symbol)
	if err != nil {
		return 0, err
	}
	return c.dividendReturn(symbol, c.capToHorizon(asOf), buy), nil
}

// TargetPercentage 분할 보정된 목표가 기준 기대 수익률 (%)
// 매수가가 정해지면 시간과 무관
func (c *ReturnCalculator) TargetPercentage(symbol string) (float64, error) {
	entry, ok := c.entries[symbol]
	if !ok {
		return 0, fmt.Errorf("%s: %w", symbol, contracts.ErrUnknownSymbol)
	}

	buy, err := c.validBuyPrice(symbol)
	if err != nil {
		return 0, err
	}

	target := c.splits.Adjust(entry.TargetPrice, symbol, c.batch.ScoreDate)
	pct := (target - buy.Price) / buy.Price * 100
	if !isFinite(pct) {
		return 0, fmt.Errorf("%s: %w", symbol, contracts.ErrInvalidNumeric)
	}
	return pct, nil
}

// Series [scoreDate, scoreDate+90d] 구간의 누적 수익률 시계열
func (c *ReturnCalculator) Series(symbol string) (contracts.ReturnSeries, error) {
	buy, err := c.validBuyPrice(symbol)
	if err != nil {
		return nil, err
	}

	var series contracts.ReturnSeries
	for _, p := range c.batch.Market[symbol] {
		day := contracts.DateOnly(p.Date)
		if day.Before(c.batch.ScoreDate) || day.After(c.horizon) {
			continue
		}

		value := c.priceReturn(symbol, p, buy) + c.dividendReturn(symbol, day, buy)
		if !isFinite(value) {
			continue
		}

		series = append(series, contracts.ReturnPoint{
			Date:             day,
			DaysSinceScore:   contracts.DaysBetween(c.batch.ScoreDate, day),
			CumulativeReturn: value,
		})
	}

	if len(series) == 0 {
		return nil, fmt.Errorf("%s: %w", symbol, contracts.ErrMissingMarketData)
	}

	sort.SliceStable(series, func(i, j int) bool { return series[i].Date.Before(series[j].Date) })
	return series, nil
}

func (c *ReturnCalculator) validBuyPrice(symbol string) (contracts.BuyPriceResolution, error) {
	buy, err := c.BuyPrice(symbol)
	if err != nil {
		return buy, err
	}
	if buy.Price <= 0 {
		return buy, fmt.Errorf("%s: buy price %v: %w", symbol, buy.Price, contracts.ErrInvalidNumeric)
	}
	return buy, nil
}

func (c *ReturnCalculator) priceReturn(symbol string, p contracts.MarketPoint, buy contracts.BuyPriceResolution) float64 {
	price := c.splits.Adjust(p.Close, symbol, p.Date)
	return (price - buy.Price) / buy.Price * 100
}

func (c *ReturnCalculator) dividendReturn(symbol string, cutoff time.Time, buy contracts.BuyPriceResolution) float64 {
	return c.dividends.Sum(symbol, cutoff) / buy.Price * 100
}

func (c *ReturnCalculator) capToHorizon(t time.Time) time.Time {
	day := contracts.DateOnly(t)
	if day.After(c.horizon) {
		return c.horizon
	}
	return day
}

// pointAtOrBefore 스코어 날짜 이후, limit 이전의 가장 최근 시세
func (c *ReturnCalculator) pointAtOrBefore(symbol string, limit time.Time) (contracts.MarketPoint, bool) {
	var (
		found contracts.MarketPoint
		ok    bool
	)

	limit = contracts.DateOnly(limit)
	for _, p := range c.batch.Market[symbol] {
		day := contracts.DateOnly(p.Date)
		if day.Before(c.batch.ScoreDate) || day.After(limit) {
			continue
		}
		if !ok || day.After(contracts.DateOnly(found.Date)) {
			found, ok = p, true
		}
	}

	return found, ok
}
