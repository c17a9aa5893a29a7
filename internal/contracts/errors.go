package contracts

import "errors"

// ⭐ SSOT: "데이터 없음"은 이 에러들로만 표현 (0/NaN 사용 금지)
var (
	// ErrMissingBuyPrice no tradable point within the resolution window
	ErrMissingBuyPrice = errors.New("no buy price within resolution window")

	// ErrInsufficientTrendData fewer than 3 regression samples
	ErrInsufficientTrendData = errors.New("insufficient trend data")

	// ErrMissingMarketData instrument has no usable market series
	ErrMissingMarketData = errors.New("no market data")

	// ErrInvalidNumeric a divisor was zero or a result was not finite
	ErrInvalidNumeric = errors.New("invalid numeric input")

	// ErrUnknownSymbol symbol is not part of the batch
	ErrUnknownSymbol = errors.New("symbol not in batch")

	// ErrNotFound no score file or run for the requested date
	ErrNotFound = errors.New("not found")
)
