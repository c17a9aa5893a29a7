package store

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
)

// Schema grq 스키마 DDL (멱등)
const Schema = `
CREATE SCHEMA IF NOT EXISTS grq;

CREATE TABLE IF NOT EXISTS grq.score_entries (
    score_date               DATE NOT NULL,
    symbol                   VARCHAR(10) NOT NULL,
    score                    DOUBLE PRECISION NOT NULL,
    target_price             DOUBLE PRECISION NOT NULL,
    ex_dividend_date         DATE,
    dividend_per_share       DOUBLE PRECISION,
    intrinsic_value_basic    DOUBLE PRECISION,
    intrinsic_value_adjusted DOUBLE PRECISION,
    notes                    TEXT NOT NULL DEFAULT '',
    line_no                  INTEGER NOT NULL,
    created_at               TIMESTAMPTZ NOT NULL DEFAULT NOW(),
    PRIMARY KEY (score_date, symbol)
);

CREATE TABLE IF NOT EXISTS grq.market_points (
    symbol            VARCHAR(10) NOT NULL,
    trade_date        DATE NOT NULL,
    open_price        DOUBLE PRECISION NOT NULL,
    high_price        DOUBLE PRECISION NOT NULL,
    low_price         DOUBLE PRECISION NOT NULL,
    close_price       DOUBLE PRECISION NOT NULL,
    split_coefficient DOUBLE PRECISION NOT NULL DEFAULT 1.0,
    PRIMARY KEY (symbol, trade_date)
);

CREATE TABLE IF NOT EXISTS grq.dividends (
    symbol  VARCHAR(10) NOT NULL,
    ex_date DATE NOT NULL,
    amount  DOUBLE PRECISION NOT NULL,
    PRIMARY KEY (symbol, ex_date)
);

CREATE TABLE IF NOT EXISTS grq.evaluation_runs (
    id           UUID PRIMARY KEY,
    score_date   DATE NOT NULL,
    policy_hash  CHAR(64) NOT NULL,
    evaluated_at TIMESTAMPTZ NOT NULL,
    portfolio    JSONB NOT NULL
);

CREATE TABLE IF NOT EXISTS grq.instrument_metrics (
    run_id              UUID NOT NULL REFERENCES grq.evaluation_runs(id) ON DELETE CASCADE,
    symbol              VARCHAR(10) NOT NULL,
    status              TEXT NOT NULL,
    days_elapsed        INTEGER NOT NULL,
    current_performance DOUBLE PRECISION,
    target_percent      DOUBLE PRECISION,
    projected_return    DOUBLE PRECISION,
    projection_method   TEXT,
    judgement           TEXT,
    annualized          DOUBLE PRECISION,
    metrics             JSONB NOT NULL,
    line_no             INTEGER NOT NULL,
    PRIMARY KEY (run_id, symbol)
);

CREATE TABLE IF NOT EXISTS grq.policy_snapshots (
    policy_hash CHAR(64) PRIMARY KEY,
    policy_id   TEXT NOT NULL,
    version     TEXT NOT NULL,
    policy_yaml TEXT NOT NULL,
    created_at  TIMESTAMPTZ NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_evaluation_runs_date ON grq.evaluation_runs(score_date, evaluated_at DESC);
`

// EnsureSchema creates the grq schema if it does not exist
func EnsureSchema(ctx context.Context, pool *pgxpool.Pool) error {
	if _, err := pool.Exec(ctx, Schema); err != nil {
		return fmt.Errorf("ensure grq schema: %w", err)
	}
	return nil
}
