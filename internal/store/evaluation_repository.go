package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/wonny/grq-validation/internal/contracts"
)

// EvaluationRepository 평가 결과 저장소
// 조회용 컬럼 + 전체 지표 JSONB
type EvaluationRepository struct {
	pool *pgxpool.Pool
}

// NewEvaluationRepository creates a new evaluation repository
func NewEvaluationRepository(pool *pgxpool.Pool) *EvaluationRepository {
	return &EvaluationRepository{pool: pool}
}

// SaveRun persists a run and its instrument rows in one transaction
func (r *EvaluationRepository) SaveRun(ctx context.Context, run contracts.EvaluationRun) error {
	runID, err := uuid.Parse(run.ID)
	if err != nil {
		return fmt.Errorf("invalid run id %q: %w", run.ID, err)
	}

	portfolioJSON, err := json.Marshal(run.Portfolio)
	if err != nil {
		return fmt.Errorf("marshal portfolio: %w", err)
	}

	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}
	defer tx.Rollback(ctx)

	_, err = tx.Exec(ctx, `
		INSERT INTO grq.evaluation_runs (id, score_date, policy_hash, evaluated_at, portfolio)
		VALUES ($1, $2, $3, $4, $5)
	`, runID, contracts.DateOnly(run.ScoreDate), run.PolicyHash, run.EvaluatedAt, portfolioJSON)
	if err != nil {
		return fmt.Errorf("insert evaluation run: %w", err)
	}

	batch := &pgx.Batch{}
	query := `
		INSERT INTO grq.instrument_metrics
			(run_id, symbol, status, days_elapsed, current_performance, target_percent,
			 projected_return, projection_method, judgement, annualized, metrics, line_no)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)`

	for i, m := range run.Instruments {
		metricsJSON, err := json.Marshal(m)
		if err != nil {
			return fmt.Errorf("marshal metrics %s: %w", m.Symbol, err)
		}

		var (
			projected *float64
			method    *string
			judgement *string
		)
		if m.Projection != nil {
			projected = &m.Projection.ProjectedReturn
			s := string(m.Projection.Method)
			method = &s
		}
		if m.Judgement != nil {
			s := m.Judgement.Display()
			judgement = &s
		}

		batch.Queue(query, runID, m.Symbol, string(m.Status), m.DaysElapsed, m.CurrentPerformance,
			m.TargetPercent, projected, method, judgement, m.Annualized, metricsJSON, i)
	}

	br := tx.SendBatch(ctx, batch)
	for range run.Instruments {
		if _, err := br.Exec(); err != nil {
			br.Close()
			return fmt.Errorf("insert instrument metrics: %w", err)
		}
	}
	if err := br.Close(); err != nil {
		return err
	}

	return tx.Commit(ctx)
}

// GetLatest returns the most recent run for a score date
func (r *EvaluationRepository) GetLatest(ctx context.Context, scoreDate time.Time) (*contracts.EvaluationRun, error) {
	var (
		run           contracts.EvaluationRun
		portfolioJSON []byte
	)

	err := r.pool.QueryRow(ctx, `
		SELECT id::text, score_date, policy_hash, evaluated_at, portfolio
		FROM grq.evaluation_runs
		WHERE score_date = $1
		ORDER BY evaluated_at DESC
		LIMIT 1
	`, contracts.DateOnly(scoreDate)).Scan(&run.ID, &run.ScoreDate, &run.PolicyHash, &run.EvaluatedAt, &portfolioJSON)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, fmt.Errorf("evaluation for %s: %w", scoreDate.Format(contracts.DateLayout), ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("query evaluation run: %w", err)
	}

	if err := json.Unmarshal(portfolioJSON, &run.Portfolio); err != nil {
		return nil, fmt.Errorf("unmarshal portfolio: %w", err)
	}

	rows, err := r.pool.Query(ctx, `
		SELECT metrics
		FROM grq.instrument_metrics
		WHERE run_id = $1
		ORDER BY line_no ASC
	`, uuid.MustParse(run.ID))
	if err != nil {
		return nil, fmt.Errorf("query instrument metrics: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var raw []byte
		if err := rows.Scan(&raw); err != nil {
			return nil, err
		}
		var m contracts.InstrumentMetrics
		if err := json.Unmarshal(raw, &m); err != nil {
			return nil, fmt.Errorf("unmarshal metrics: %w", err)
		}
		run.Instruments = append(run.Instruments, m)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	run.ScoreDate = contracts.DateOnly(run.ScoreDate)
	return &run, nil
}

// CountRuns 저장된 평가 실행 수
func (r *EvaluationRepository) CountRuns(ctx context.Context) (int, error) {
	var n int
	err := r.pool.QueryRow(ctx, `SELECT COUNT(*) FROM grq.evaluation_runs`).Scan(&n)
	return n, err
}

// PruneRuns keeps the newest keep runs per score date and deletes the rest.
// instrument_metrics rows go with their run (ON DELETE CASCADE).
func (r *EvaluationRepository) PruneRuns(ctx context.Context, keep int) (int64, error) {
	if keep < 1 {
		return 0, fmt.Errorf("keep must be >= 1, got %d", keep)
	}

	tag, err := r.pool.Exec(ctx, `
		DELETE FROM grq.evaluation_runs
		WHERE id IN (
			SELECT id FROM (
				SELECT id, ROW_NUMBER() OVER (PARTITION BY score_date ORDER BY evaluated_at DESC) AS rn
				FROM grq.evaluation_runs
			) ranked
			WHERE rn > $1
		)
	`, keep)
	if err != nil {
		return 0, fmt.Errorf("prune evaluation runs: %w", err)
	}
	return tag.RowsAffected(), nil
}

// SavePolicySnapshot records the policy a run hash refers to (first write wins)
func (r *EvaluationRepository) SavePolicySnapshot(ctx context.Context, hash, policyID, version, policyYAML string, createdAt time.Time) error {
	_, err := r.pool.Exec(ctx, `
		INSERT INTO grq.policy_snapshots (policy_hash, policy_id, version, policy_yaml, created_at)
		VALUES ($1, $2, $3, $4, $5)
		ON CONFLICT (policy_hash) DO NOTHING
	`, hash, policyID, version, policyYAML, createdAt)
	if err != nil {
		return fmt.Errorf("save policy snapshot: %w", err)
	}
	return nil
}

// GetPolicyYAML returns the policy text recorded for a hash
func (r *EvaluationRepository) GetPolicyYAML(ctx context.Context, hash string) (string, error) {
	var text string
	err := r.pool.QueryRow(ctx, `SELECT policy_yaml FROM grq.policy_snapshots WHERE policy_hash = $1`, hash).Scan(&text)
	if errors.Is(err, pgx.ErrNoRows) {
		return "", fmt.Errorf("policy %s: %w", hash, ErrNotFound)
	}
	return text, err
}
