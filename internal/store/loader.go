package store

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/wonny/grq-validation/internal/contracts"
)

// BatchLoader assembles a contracts.Batch from the repositories
// 배치는 한 번에 완전히 로드 (부분 시계열 사용 금지)
type BatchLoader struct {
	scores *ScoreRepository
	market *MarketRepository
}

var _ contracts.BatchSource = (*BatchLoader)(nil)

// NewBatchLoader creates a loader over one pool
func NewBatchLoader(pool *pgxpool.Pool) *BatchLoader {
	return &BatchLoader{
		scores: NewScoreRepository(pool),
		market: NewMarketRepository(pool),
	}
}

// ListScoreDates returns every score date, newest first
func (l *BatchLoader) ListScoreDates(ctx context.Context) ([]time.Time, error) {
	return l.scores.ListScoreDates(ctx)
}

// Load reads entries, market series and dividends for one score date.
// Dividends are limited to the validation window of that score file.
func (l *BatchLoader) Load(ctx context.Context, scoreDate time.Time) (contracts.Batch, error) {
	day := contracts.DateOnly(scoreDate)

	entries, err := l.scores.GetEntries(ctx, day)
	if err != nil {
		return contracts.Batch{}, err
	}

	batch := contracts.Batch{ScoreDate: day, Entries: entries}
	symbols := batch.Symbols()

	batch.Market, err = l.market.GetSeries(ctx, symbols, day)
	if err != nil {
		return contracts.Batch{}, fmt.Errorf("load market series: %w", err)
	}

	batch.Dividends, err = l.market.GetDividends(ctx, symbols, day, contracts.HorizonEnd(day))
	if err != nil {
		return contracts.Batch{}, fmt.Errorf("load dividends: %w", err)
	}

	return batch, nil
}
