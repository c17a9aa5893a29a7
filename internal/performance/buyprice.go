package performance

import (
	"fmt"
	"time"

	"github.com/wonny/grq-validation/internal/contracts"
)

// buyPriceWindowDays 주말/휴일을 건너뛰기 위한 탐색 범위 (score date + 0..5일)
const buyPriceWindowDays = 5

// BuyPriceResolver 스코어 날짜 이후 첫 거래일의 진입 가격 결정
type BuyPriceResolver struct {
	market map[string][]contracts.MarketPoint
	splits SplitAdjuster
}

// NewBuyPriceResolver 새 매수가 결정기 생성
func NewBuyPriceResolver(market map[string][]contracts.MarketPoint, splits SplitAdjuster) BuyPriceResolver {
	return BuyPriceResolver{market: market, splits: splits}
}

// Resolve 진입 가격 = 분할 보정된 (고가+저가)/2
// 5일 안에 거래일이 없으면 ErrMissingBuyPrice
func (r BuyPriceResolver) Resolve(symbol string, scoreDate time.Time) (contracts.BuyPriceResolution, error) {
	series := r.market[symbol]
	if len(series) == 0 {
		return contracts.BuyPriceResolution{}, fmt.Errorf("%s: %w", symbol, contracts.ErrMissingMarketData)
	}

	start := contracts.DateOnly(scoreDate)
	for offset := 0; offset <= buyPriceWindowDays; offset++ {
		candidate := start.AddDate(0, 0, offset)

		for _, p := range series {
			if !contracts.SameDay(p.Date, candidate) {
				continue
			}

			price := r.splits.Adjust(p.Midpoint(), symbol, p.Date)
			if !isFinite(price) || price <= 0 {
				return contracts.BuyPriceResolution{}, fmt.Errorf("%s on %s: buy price %v: %w",
					symbol, candidate.Format(contracts.DateLayout), price, contracts.ErrInvalidNumeric)
			}

			return contracts.BuyPriceResolution{
				Symbol:    symbol,
				ScoreDate: start,
				Price:     price,
				DateUsed:  candidate,
			}, nil
		}
	}

	return contracts.BuyPriceResolution{}, fmt.Errorf("%s from %s: %w",
		symbol, start.Format(contracts.DateLayout), contracts.ErrMissingBuyPrice)
}
