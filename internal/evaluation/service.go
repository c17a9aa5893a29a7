package evaluation

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/wonny/grq-validation/internal/contracts"
	"github.com/wonny/grq-validation/internal/performance"
	"github.com/wonny/grq-validation/pkg/redis"
)

// Cache stores evaluation results between requests (pkg/redis.Cache)
type Cache interface {
	GetOrSet(ctx context.Context, key string, dest interface{}, ttl time.Duration, fn func() (interface{}, error)) error
	Set(ctx context.Context, key string, value interface{}, ttl time.Duration) error
	Delete(ctx context.Context, keys ...string) error
}

// Service ties batch loading, evaluation, caching and persistence together
// ⭐ SSOT: API, CLI, 스케줄러 모두 이 서비스로 평가
type Service struct {
	source     contracts.BatchSource
	store      contracts.EvaluationStore // nil = 저장 안 함
	cache      Cache                     // nil = 캐시 안 함
	policy     performance.ProjectionPolicy
	policyHash string
	cacheTTL   time.Duration
	windowDays int
	log        zerolog.Logger
}

// Options configures a Service
type Options struct {
	Store      contracts.EvaluationStore
	Cache      Cache
	Policy     performance.ProjectionPolicy
	PolicyHash string
	CacheTTL   time.Duration
	WindowDays int
}

// NewService creates a new evaluation service
func NewService(source contracts.BatchSource, opts Options, log zerolog.Logger) *Service {
	ttl := opts.CacheTTL
	if ttl <= 0 {
		ttl = redis.TTLEvaluation
	}

	return &Service{
		source:     source,
		store:      opts.Store,
		cache:      opts.Cache,
		policy:     opts.Policy,
		policyHash: opts.PolicyHash,
		cacheTTL:   ttl,
		windowDays: opts.WindowDays,
		log:        log.With().Str("component", "evaluation.service").Logger(),
	}
}

// PolicyHash returns the hash recorded with every run
func (s *Service) PolicyHash() string {
	return s.policyHash
}

// ScoreDates 스코어 날짜 목록 (최신순)
// all=false 면 최근 windowDays 이내만
func (s *Service) ScoreDates(ctx context.Context, all bool) ([]time.Time, error) {
	dates, err := s.listScoreDates(ctx)
	if err != nil {
		return nil, fmt.Errorf("list score dates: %w", err)
	}
	if all {
		return contracts.RecentDates(dates, time.Now(), 0), nil
	}
	return contracts.RecentDates(dates, time.Now(), s.windowDays), nil
}

func (s *Service) listScoreDates(ctx context.Context) ([]time.Time, error) {
	if s.cache == nil {
		return s.source.ListScoreDates(ctx)
	}

	var dates []time.Time
	err := s.cache.GetOrSet(ctx, redis.ScoreDatesKey(), &dates, redis.TTLScoreDates, func() (interface{}, error) {
		return s.source.ListScoreDates(ctx)
	})
	return dates, err
}

// Evaluator loads a batch and builds its evaluator
func (s *Service) Evaluator(ctx context.Context, scoreDate time.Time) (*performance.Evaluator, error) {
	batch, err := s.source.Load(ctx, scoreDate)
	if err != nil {
		return nil, fmt.Errorf("load batch %s: %w", scoreDate.Format(contracts.DateLayout), err)
	}
	return performance.NewEvaluator(batch, s.policy, s.log), nil
}

// Evaluate 배치 평가 (캐시 우선)
func (s *Service) Evaluate(ctx context.Context, scoreDate time.Time) (contracts.EvaluationRun, error) {
	if s.cache == nil {
		return s.evaluate(ctx, scoreDate)
	}

	var run contracts.EvaluationRun
	key := redis.EvaluationKey(scoreDate.Format(contracts.DateLayout))
	err := s.cache.GetOrSet(ctx, key, &run, s.cacheTTL, func() (interface{}, error) {
		return s.evaluate(ctx, scoreDate)
	})
	if err != nil {
		return contracts.EvaluationRun{}, err
	}

	// 정책이 바뀌었으면 캐시 무시
	if run.PolicyHash != s.policyHash {
		s.log.Debug().Str("cached_hash", run.PolicyHash).Msg("stale policy in cache")
		fresh, err := s.evaluate(ctx, scoreDate)
		if err != nil {
			return contracts.EvaluationRun{}, err
		}
		if err := s.cache.Set(ctx, key, fresh, s.cacheTTL); err != nil {
			s.log.Warn().Err(err).Msg("cache refresh failed")
		}
		return fresh, nil
	}
	return run, nil
}

func (s *Service) evaluate(ctx context.Context, scoreDate time.Time) (contracts.EvaluationRun, error) {
	evaluator, err := s.Evaluator(ctx, scoreDate)
	if err != nil {
		return contracts.EvaluationRun{}, err
	}
	return evaluator.Run(s.policyHash)
}

// Instrument 배치 내 한 종목 평가
func (s *Service) Instrument(ctx context.Context, scoreDate time.Time, symbol string) (contracts.InstrumentMetrics, error) {
	run, err := s.Evaluate(ctx, scoreDate)
	if err != nil {
		return contracts.InstrumentMetrics{}, err
	}
	for _, m := range run.Instruments {
		if m.Symbol == symbol {
			return m, nil
		}
	}
	return contracts.InstrumentMetrics{}, fmt.Errorf("%s: %w", symbol, contracts.ErrUnknownSymbol)
}

// EvaluateAndSave 캐시를 우회해 새로 평가하고 저장
func (s *Service) EvaluateAndSave(ctx context.Context, scoreDate time.Time) (contracts.EvaluationRun, error) {
	run, err := s.evaluate(ctx, scoreDate)
	if err != nil {
		return contracts.EvaluationRun{}, err
	}

	if s.store != nil {
		if err := s.store.SaveRun(ctx, run); err != nil {
			return contracts.EvaluationRun{}, fmt.Errorf("save run %s: %w", run.ID, err)
		}
	}
	if s.cache != nil {
		if err := s.cache.Set(ctx, redis.EvaluationKey(scoreDate.Format(contracts.DateLayout)), run, s.cacheTTL); err != nil {
			s.log.Warn().Err(err).Msg("cache refresh failed")
		}
	}
	return run, nil
}

// Invalidate drops the cached evaluation of a score date
func (s *Service) Invalidate(ctx context.Context, scoreDate time.Time) error {
	if s.cache == nil {
		return nil
	}
	return s.cache.Delete(ctx, redis.EvaluationKey(scoreDate.Format(contracts.DateLayout)), redis.ScoreDatesKey())
}

// Summary 일괄 평가 결과
type Summary struct {
	Evaluated int
	Failed    int
	Runs      []contracts.EvaluationRun
}

// EvaluateRecent 최근 스코어 파일 전부 평가 후 저장
// 한 배치 실패는 로그 후 건너뜀
func (s *Service) EvaluateRecent(ctx context.Context, all bool) (Summary, error) {
	dates, err := s.ScoreDates(ctx, all)
	if err != nil {
		return Summary{}, err
	}

	var summary Summary
	for _, date := range dates {
		if err := ctx.Err(); err != nil {
			return summary, err
		}

		run, err := s.EvaluateAndSave(ctx, date)
		if err != nil {
			summary.Failed++
			s.log.Error().Err(err).Str("score_date", date.Format(contracts.DateLayout)).Msg("batch evaluation failed")
			continue
		}
		summary.Evaluated++
		summary.Runs = append(summary.Runs, run)
	}

	if summary.Evaluated == 0 && summary.Failed > 0 {
		return summary, errors.New("all batch evaluations failed")
	}
	return summary, nil
}
