package commands

import (
	"context"
	"fmt"
	"os"

	"github.com/wonny/grq-validation/internal/contracts"
	"github.com/wonny/grq-validation/internal/evaluation"
	"github.com/wonny/grq-validation/internal/policy"
	"github.com/wonny/grq-validation/internal/store"
	"github.com/wonny/grq-validation/pkg/config"
	"github.com/wonny/grq-validation/pkg/database"
	"github.com/wonny/grq-validation/pkg/logger"
	"github.com/wonny/grq-validation/pkg/redis"
)

// app 커맨드 공통 의존성
type app struct {
	cfg    *config.Config
	log    *logger.Logger
	policy *policy.File
	yaml   []byte
	hash   string

	db    *database.DB
	redis *redis.Client
	evals *store.EvaluationRepository
}

// newApp loads config, logger and policy (no connections)
// 로그는 stderr → 표 출력(stdout)과 분리
func newApp() (*app, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}
	if verbose {
		cfg.LogLevel = "debug"
	}
	if policyFile != "" {
		cfg.GRQ.PolicyFile = policyFile
	}

	log := logger.NewWithWriter(cfg, os.Stderr)

	pf, raw, err := policy.LoadOrDefault(cfg.GRQ.PolicyFile)
	if err != nil {
		return nil, fmt.Errorf("load policy: %w", err)
	}
	hash, err := policy.Hash(pf)
	if err != nil {
		return nil, fmt.Errorf("hash policy: %w", err)
	}

	for _, w := range policy.Warn(pf) {
		log.WithField("code", w.Code).Warn(w.Message)
	}

	return &app{cfg: cfg, log: log, policy: pf, yaml: raw, hash: hash}, nil
}

// connect opens PostgreSQL (schema ensured) and Redis
func (rt *app) connect(ctx context.Context) error {
	db, err := database.New(ctx, rt.cfg)
	if err != nil {
		return fmt.Errorf("connect to database: %w", err)
	}
	if err := store.EnsureSchema(ctx, db.Pool); err != nil {
		db.Close()
		return err
	}
	rt.db = db
	rt.evals = store.NewEvaluationRepository(db.Pool)

	// 실행 결과의 policy_hash → 정책 원문
	snap, err := policy.NewSnapshot(rt.policy, rt.yaml)
	if err != nil {
		return err
	}
	if err := rt.evals.SavePolicySnapshot(ctx, snap.PolicyHash, snap.PolicyID, snap.Version, snap.PolicyYAML, snap.CreatedAt); err != nil {
		return err
	}

	rc, err := redis.New(ctx, rt.cfg)
	if err != nil {
		// 캐시 없이도 동작
		rt.log.WithError(err).Warn("Redis unavailable, continuing without cache")
		rc = redis.Disabled()
	}
	rt.redis = rc

	return nil
}

// service builds the evaluation service over source
func (rt *app) service(source contracts.BatchSource) *evaluation.Service {
	opts := evaluation.Options{
		Policy:     rt.policy.Projection,
		PolicyHash: rt.hash,
		CacheTTL:   rt.cfg.GRQ.CacheTTL,
		WindowDays: rt.cfg.GRQ.RecentWindowDays,
	}
	if rt.evals != nil {
		opts.Store = rt.evals
	}
	if rt.redis != nil {
		opts.Cache = redis.NewCache(rt.redis, "grq")
	}
	return evaluation.NewService(source, opts, rt.log.Zerolog())
}

func (rt *app) close() {
	if rt.redis != nil {
		_ = rt.redis.Close()
	}
	if rt.db != nil {
		rt.db.Close()
	}
}
