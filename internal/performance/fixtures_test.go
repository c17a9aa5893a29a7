package performance

import (
	"time"

	"github.com/wonny/grq-validation/internal/contracts"
)

func day(s string) time.Time {
	t, err := contracts.ParseDate(s)
	if err != nil {
		panic(err)
	}
	return t
}

func bar(symbol, date string, high, low, close float64) contracts.MarketPoint {
	return contracts.MarketPoint{
		Symbol:           symbol,
		Date:             day(date),
		Open:             (high + low) / 2,
		High:             high,
		Low:              low,
		Close:            close,
		SplitCoefficient: 1.0,
	}
}

func splitBar(symbol, date string, price, coefficient float64) contracts.MarketPoint {
	p := bar(symbol, date, price, price, price)
	p.SplitCoefficient = coefficient
	return p
}

func entry(symbol string, score, target float64) contracts.ScoreEntry {
	return contracts.ScoreEntry{Symbol: symbol, Score: score, TargetPrice: target}
}

func ptr(v float64) *float64 {
	return &v
}
