package store

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/wonny/grq-validation/internal/contracts"
)

// MarketRepository 시세/배당 저장소
// 데이터 수집은 외부 수집기가 담당, 여기서는 완전한 시계열만 읽음
type MarketRepository struct {
	pool *pgxpool.Pool
}

// NewMarketRepository creates a new market repository
func NewMarketRepository(pool *pgxpool.Pool) *MarketRepository {
	return &MarketRepository{pool: pool}
}

// GetSeries returns every point on or after from, grouped by symbol, ascending.
// Points past the validation window are kept so later splits stay visible.
func (r *MarketRepository) GetSeries(ctx context.Context, symbols []string, from time.Time) (map[string][]contracts.MarketPoint, error) {
	query := `
		SELECT symbol, trade_date, open_price, high_price, low_price, close_price, split_coefficient
		FROM grq.market_points
		WHERE symbol = ANY($1) AND trade_date >= $2
		ORDER BY symbol, trade_date ASC
	`

	rows, err := r.pool.Query(ctx, query, symbols, contracts.DateOnly(from))
	if err != nil {
		return nil, fmt.Errorf("query market points: %w", err)
	}
	defer rows.Close()

	series := make(map[string][]contracts.MarketPoint, len(symbols))
	for rows.Next() {
		var p contracts.MarketPoint
		if err := rows.Scan(&p.Symbol, &p.Date, &p.Open, &p.High, &p.Low, &p.Close, &p.SplitCoefficient); err != nil {
			return nil, err
		}
		p.Date = contracts.DateOnly(p.Date)
		series[p.Symbol] = append(series[p.Symbol], p)
	}
	return series, rows.Err()
}

// GetDividends returns dividends with ex-date in [from, to], grouped by symbol
func (r *MarketRepository) GetDividends(ctx context.Context, symbols []string, from, to time.Time) (map[string][]contracts.DividendRecord, error) {
	query := `
		SELECT symbol, ex_date, amount
		FROM grq.dividends
		WHERE symbol = ANY($1) AND ex_date BETWEEN $2 AND $3
		ORDER BY symbol, ex_date ASC
	`

	rows, err := r.pool.Query(ctx, query, symbols, contracts.DateOnly(from), contracts.DateOnly(to))
	if err != nil {
		return nil, fmt.Errorf("query dividends: %w", err)
	}
	defer rows.Close()

	dividends := make(map[string][]contracts.DividendRecord, len(symbols))
	for rows.Next() {
		var d contracts.DividendRecord
		if err := rows.Scan(&d.Symbol, &d.ExDate, &d.Amount); err != nil {
			return nil, err
		}
		d.ExDate = contracts.DateOnly(d.ExDate)
		dividends[d.Symbol] = append(dividends[d.Symbol], d)
	}
	return dividends, rows.Err()
}

// SavePoints upserts market points
func (r *MarketRepository) SavePoints(ctx context.Context, points []contracts.MarketPoint) error {
	if len(points) == 0 {
		return nil
	}

	batch := &pgx.Batch{}
	query := `
		INSERT INTO grq.market_points
			(symbol, trade_date, open_price, high_price, low_price, close_price, split_coefficient)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		ON CONFLICT (symbol, trade_date) DO UPDATE SET
			open_price = EXCLUDED.open_price,
			high_price = EXCLUDED.high_price,
			low_price = EXCLUDED.low_price,
			close_price = EXCLUDED.close_price,
			split_coefficient = EXCLUDED.split_coefficient`

	for _, p := range points {
		coefficient := p.SplitCoefficient
		if coefficient == 0 {
			coefficient = 1.0
		}
		batch.Queue(query, p.Symbol, contracts.DateOnly(p.Date), p.Open, p.High, p.Low, p.Close, coefficient)
	}

	br := r.pool.SendBatch(ctx, batch)
	defer br.Close()

	for range points {
		if _, err := br.Exec(); err != nil {
			return fmt.Errorf("upsert market point: %w", err)
		}
	}
	return nil
}

// SaveDividends upserts dividend records
func (r *MarketRepository) SaveDividends(ctx context.Context, records []contracts.DividendRecord) error {
	if len(records) == 0 {
		return nil
	}

	batch := &pgx.Batch{}
	query := `
		INSERT INTO grq.dividends (symbol, ex_date, amount)
		VALUES ($1, $2, $3)
		ON CONFLICT (symbol, ex_date) DO UPDATE SET amount = EXCLUDED.amount`

	for _, d := range records {
		batch.Queue(query, d.Symbol, contracts.DateOnly(d.ExDate), d.Amount)
	}

	br := r.pool.SendBatch(ctx, batch)
	defer br.Close()

	for range records {
		if _, err := br.Exec(); err != nil {
			return fmt.Errorf("upsert dividend: %w", err)
		}
	}
	return nil
}
