package performance

import (
	"fmt"
	"math"

	"github.com/rs/zerolog"

	"github.com/wonny/grq-validation/internal/contracts"
)

// ProjectionInput 예측 입력
type ProjectionInput struct {
	DaysElapsed int
	Current     *float64 // nil = 현재 성과 없음 → 예측 불가
	Target      *float64
	Trend       *contracts.TrendLine
}

// projectionStrategy 경과일 구간별 예측 전략
type projectionStrategy interface {
	project(in ProjectionInput, current float64) contracts.HybridProjection
}

// HybridProjector 경과일 구간에 따라 전략 선택
// [0,30) early, [30,60) mid, [60,∞) late
type HybridProjector struct {
	policy ProjectionPolicy
	early  projectionStrategy
	mid    projectionStrategy
	late   projectionStrategy
	log    zerolog.Logger
}

// NewHybridProjector 새 하이브리드 예측기 생성
func NewHybridProjector(policy ProjectionPolicy, log zerolog.Logger) *HybridProjector {
	reversion := meanReversion{policy: policy.MeanReversion}

	return &HybridProjector{
		policy: policy,
		early:  bucketStrategy{policy: policy.Early, reversion: reversion, clampMin: policy.ClampMin},
		mid:    bucketStrategy{policy: policy.Mid, reversion: reversion, clampMin: policy.ClampMin},
		late:   lateStrategy{policy: policy.Late, reversion: reversion},
		log:    log.With().Str("component", "performance.projector").Logger(),
	}
}

// Project 90일 최종 수익률 예측
// 결과는 항상 [ClampMin, ClampMax], 신뢰도는 [0, 1]
func (p *HybridProjector) Project(in ProjectionInput) (contracts.HybridProjection, error) {
	if in.Current == nil {
		return contracts.HybridProjection{}, fmt.Errorf("current performance unavailable: %w", contracts.ErrMissingMarketData)
	}
	current := *in.Current
	if !isFinite(current) || in.DaysElapsed < 0 {
		return contracts.HybridProjection{}, fmt.Errorf("current=%v days=%d: %w", current, in.DaysElapsed, contracts.ErrInvalidNumeric)
	}
	if in.Target != nil && !isFinite(*in.Target) {
		in.Target = nil
	}

	projection := p.strategyFor(in.DaysElapsed).project(in, current)

	if !isFinite(projection.ProjectedReturn) {
		projection.ProjectedReturn = current
	}
	projection.ProjectedReturn = clamp(projection.ProjectedReturn, p.policy.ClampMin, p.policy.ClampMax)
	projection.Confidence = clamp(projection.Confidence, 0, 1)
	projection.DaysElapsed = in.DaysElapsed
	projection.CurrentPerformance = current
	if in.Target != nil {
		projection.TargetPercent = floatPtr(*in.Target)
	}

	p.log.Debug().
		Int("days_elapsed", in.DaysElapsed).
		Float64("current", current).
		Str("method", string(projection.Method)).
		Float64("projected", projection.ProjectedReturn).
		Float64("confidence", projection.Confidence).
		Msg("projection generated")

	return projection, nil
}

func (p *HybridProjector) strategyFor(daysElapsed int) projectionStrategy {
	switch {
	case daysElapsed >= p.policy.LateBucketStart:
		return p.late
	case daysElapsed >= p.policy.MidBucketStart:
		return p.mid
	default:
		return p.early
	}
}

// bucketStrategy early/mid: 추세가 충분히 설명력 있으면 감쇠 추세, 아니면 목표가 기반
type bucketStrategy struct {
	policy    BucketPolicy
	reversion meanReversion
	clampMin  float64
}

func (s bucketStrategy) project(in ProjectionInput, current float64) contracts.HybridProjection {
	if in.Trend != nil && in.Trend.RSquared > s.policy.RSquaredThreshold {
		dampedSlope := in.Trend.Slope * s.policy.Dampening
		return contracts.HybridProjection{
			ProjectedReturn: dampedSlope * contracts.HorizonDays,
			Method:          contracts.MethodDampenedTrend,
			Confidence:      math.Min(in.Trend.RSquared*s.policy.ConfidenceFactor, s.policy.ConfidenceCap),
		}
	}

	if in.Target == nil {
		return s.reversion.project(current)
	}
	target := *in.Target

	var projected float64
	if current > 0 {
		projected = current + s.policy.GapBlend*(target-current)
	} else {
		projected = current * s.policy.DecayFactor
	}

	return contracts.HybridProjection{
		ProjectedReturn: clamp(projected, s.clampMin, target),
		Method:          contracts.MethodTargetBased,
		Confidence:      s.policy.FallbackConfidence,
	}
}

// lateStrategy 60일 이후: 현재 속도를 90일로 연장하되 목표가로 제한
type lateStrategy struct {
	policy    LatePolicy
	reversion meanReversion
}

func (s lateStrategy) project(in ProjectionInput, current float64) contracts.HybridProjection {
	if in.Target == nil {
		return s.reversion.project(current)
	}
	target := *in.Target

	remaining := contracts.HorizonDays - in.DaysElapsed
	if remaining <= 0 {
		return contracts.HybridProjection{
			ProjectedReturn: current,
			Method:          contracts.MethodRealisticTrajectory,
			Confidence:      s.policy.CompleteConfidence,
		}
	}

	var currentRate float64
	if in.DaysElapsed > 0 {
		currentRate = current / float64(in.DaysElapsed)
	}
	trajectory := currentRate * contracts.HorizonDays
	requiredDailyRate := (target - current) / float64(remaining)

	var (
		projected  float64
		confidence float64
	)
	switch {
	case requiredDailyRate > s.policy.UnrealisticDailyRate:
		projected = math.Max(math.Min(trajectory, target*s.policy.UnrealisticTargetCap), current*s.policy.MomentumFloor)
		confidence = s.policy.UnrealisticConfidence
	case current > target:
		projected = trajectory
		confidence = s.policy.ExceededConfidence
	default:
		projected = math.Min(trajectory, target*s.policy.TargetCap)
		confidence = s.policy.CappedConfidence
	}

	return contracts.HybridProjection{
		ProjectedReturn: projected,
		Method:          contracts.MethodRealisticTrajectory,
		Confidence:      confidence,
	}
}

// meanReversion 목표가가 없으면 현재 성과를 0 쪽으로 되돌림
type meanReversion struct {
	policy MeanReversionPolicy
}

func (m meanReversion) project(current float64) contracts.HybridProjection {
	return contracts.HybridProjection{
		ProjectedReturn: current * (1 - m.policy.Reversion),
		Method:          contracts.MethodMeanReversion,
		Confidence:      m.policy.Confidence,
	}
}
