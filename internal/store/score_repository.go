package store

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/wonny/grq-validation/internal/contracts"
)

// ScoreRepository 스코어 파일 저장소
// ⭐ SSOT: 스코어 엔트리 저장/조회는 여기서만
type ScoreRepository struct {
	pool *pgxpool.Pool
}

// NewScoreRepository creates a new score repository
func NewScoreRepository(pool *pgxpool.Pool) *ScoreRepository {
	return &ScoreRepository{pool: pool}
}

// ListScoreDates returns every score date, newest first
func (r *ScoreRepository) ListScoreDates(ctx context.Context) ([]time.Time, error) {
	return r.listDates(ctx, `
		SELECT DISTINCT score_date
		FROM grq.score_entries
		ORDER BY score_date DESC
	`)
}

// ListScoreDatesSince returns score dates on or after since, newest first
func (r *ScoreRepository) ListScoreDatesSince(ctx context.Context, since time.Time) ([]time.Time, error) {
	return r.listDates(ctx, `
		SELECT DISTINCT score_date
		FROM grq.score_entries
		WHERE score_date >= $1
		ORDER BY score_date DESC
	`, contracts.DateOnly(since))
}

func (r *ScoreRepository) listDates(ctx context.Context, query string, args ...any) ([]time.Time, error) {
	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query score dates: %w", err)
	}
	defer rows.Close()

	var dates []time.Time
	for rows.Next() {
		var d time.Time
		if err := rows.Scan(&d); err != nil {
			return nil, err
		}
		dates = append(dates, contracts.DateOnly(d))
	}
	return dates, rows.Err()
}

// GetEntries returns the entries of one score file in file order
func (r *ScoreRepository) GetEntries(ctx context.Context, scoreDate time.Time) ([]contracts.ScoreEntry, error) {
	query := `
		SELECT symbol, score, target_price, ex_dividend_date, dividend_per_share,
		       intrinsic_value_basic, intrinsic_value_adjusted, notes
		FROM grq.score_entries
		WHERE score_date = $1
		ORDER BY line_no ASC
	`

	rows, err := r.pool.Query(ctx, query, contracts.DateOnly(scoreDate))
	if err != nil {
		return nil, fmt.Errorf("query score entries: %w", err)
	}
	defer rows.Close()

	var entries []contracts.ScoreEntry
	for rows.Next() {
		var e contracts.ScoreEntry
		if err := rows.Scan(
			&e.Symbol, &e.Score, &e.TargetPrice, &e.ExDividendDate, &e.DividendPerShare,
			&e.IntrinsicValueBasic, &e.IntrinsicValueAdjusted, &e.Notes,
		); err != nil {
			return nil, err
		}
		entries = append(entries, e)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	if len(entries) == 0 {
		return nil, fmt.Errorf("score file %s: %w", scoreDate.Format(contracts.DateLayout), ErrNotFound)
	}
	return entries, nil
}

// SaveEntries replaces the entries of one score file.
// Every entry is validated before anything is written.
func (r *ScoreRepository) SaveEntries(ctx context.Context, scoreDate time.Time, entries []contracts.ScoreEntry) error {
	if err := contracts.ValidateEntries(entries); err != nil {
		return err
	}

	day := contracts.DateOnly(scoreDate)

	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}
	defer tx.Rollback(ctx)

	if _, err := tx.Exec(ctx, `DELETE FROM grq.score_entries WHERE score_date = $1`, day); err != nil {
		return fmt.Errorf("delete score entries: %w", err)
	}

	batch := &pgx.Batch{}
	query := `
		INSERT INTO grq.score_entries
			(score_date, symbol, score, target_price, ex_dividend_date, dividend_per_share,
			 intrinsic_value_basic, intrinsic_value_adjusted, notes, line_no)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`

	for i, e := range entries {
		batch.Queue(query, day, e.Symbol, e.Score, e.TargetPrice, e.ExDividendDate, e.DividendPerShare,
			e.IntrinsicValueBasic, e.IntrinsicValueAdjusted, e.Notes, i)
	}

	br := tx.SendBatch(ctx, batch)
	for range entries {
		if _, err := br.Exec(); err != nil {
			br.Close()
			return fmt.Errorf("insert score entry: %w", err)
		}
	}
	if err := br.Close(); err != nil {
		return err
	}

	return tx.Commit(ctx)
}

// Stats 저장된 스코어 파일/엔트리 수
func (r *ScoreRepository) Stats(ctx context.Context) (files, entries int, err error) {
	query := `SELECT COUNT(DISTINCT score_date), COUNT(*) FROM grq.score_entries`
	err = r.pool.QueryRow(ctx, query).Scan(&files, &entries)
	return files, entries, err
}
