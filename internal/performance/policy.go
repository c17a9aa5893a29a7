package performance

import (
	"fmt"

	"github.com/wonny/grq-validation/internal/contracts"
)

// ProjectionPolicy 하이브리드 예측 상수
// ⭐ SSOT: 구간 경계, 임계값, 감쇠 계수는 여기서만 정의
// 기본값은 과거 판정과의 호환을 위해 변경 금지 (실험은 정책 파일로)
type ProjectionPolicy struct {
	MidBucketStart  int `yaml:"mid_bucket_start" json:"mid_bucket_start" validate:"gt=0"`
	LateBucketStart int `yaml:"late_bucket_start" json:"late_bucket_start" validate:"gtfield=MidBucketStart"`

	Early         BucketPolicy        `yaml:"early" json:"early"`
	Mid           BucketPolicy        `yaml:"mid" json:"mid"`
	Late          LatePolicy          `yaml:"late" json:"late"`
	MeanReversion MeanReversionPolicy `yaml:"mean_reversion" json:"mean_reversion"`

	ClampMin float64 `yaml:"clamp_min" json:"clamp_min"`
	ClampMax float64 `yaml:"clamp_max" json:"clamp_max" validate:"gtfield=ClampMin"`
}

// BucketPolicy early/mid 구간: 감쇠 추세 또는 목표가 기반
type BucketPolicy struct {
	RSquaredThreshold  float64 `yaml:"r_squared_threshold" json:"r_squared_threshold" validate:"gte=0,lte=1"`
	Dampening          float64 `yaml:"dampening" json:"dampening" validate:"gt=0,lte=1"`
	ConfidenceFactor   float64 `yaml:"confidence_factor" json:"confidence_factor" validate:"gte=0,lte=1"`
	ConfidenceCap      float64 `yaml:"confidence_cap" json:"confidence_cap" validate:"gte=0,lte=1"`
	GapBlend           float64 `yaml:"gap_blend" json:"gap_blend" validate:"gte=0,lte=1"`
	DecayFactor        float64 `yaml:"decay_factor" json:"decay_factor" validate:"gte=0,lte=1"`
	FallbackConfidence float64 `yaml:"fallback_confidence" json:"fallback_confidence" validate:"gte=0,lte=1"`
}

// LatePolicy 60일 이후: 현실적 궤적
type LatePolicy struct {
	UnrealisticDailyRate  float64 `yaml:"unrealistic_daily_rate" json:"unrealistic_daily_rate" validate:"gt=0"` // %/day
	UnrealisticTargetCap  float64 `yaml:"unrealistic_target_cap" json:"unrealistic_target_cap" validate:"gte=0,lte=1"`
	MomentumFloor         float64 `yaml:"momentum_floor" json:"momentum_floor" validate:"gte=0"`
	TargetCap             float64 `yaml:"target_cap" json:"target_cap" validate:"gte=0,lte=1"`
	UnrealisticConfidence float64 `yaml:"unrealistic_confidence" json:"unrealistic_confidence" validate:"gte=0,lte=1"`
	ExceededConfidence    float64 `yaml:"exceeded_confidence" json:"exceeded_confidence" validate:"gte=0,lte=1"`
	CappedConfidence      float64 `yaml:"capped_confidence" json:"capped_confidence" validate:"gte=0,lte=1"`
	CompleteConfidence    float64 `yaml:"complete_confidence" json:"complete_confidence" validate:"gte=0,lte=1"`
}

// MeanReversionPolicy 목표가가 없을 때
type MeanReversionPolicy struct {
	Reversion  float64 `yaml:"reversion" json:"reversion" validate:"gte=0,lte=1"`
	Confidence float64 `yaml:"confidence" json:"confidence" validate:"gte=0,lte=1"`
}

// DefaultProjectionPolicy 기본 정책 (과거 판정과 동일한 상수)
func DefaultProjectionPolicy() ProjectionPolicy {
	return ProjectionPolicy{
		MidBucketStart:  30,
		LateBucketStart: 60,
		Early: BucketPolicy{
			RSquaredThreshold:  0.1,
			Dampening:          0.3,
			ConfidenceFactor:   0.7,
			ConfidenceCap:      0.8,
			GapBlend:           0.10,
			DecayFactor:        0.5, // 0 방향으로 절반
			FallbackConfidence: 0.3,
		},
		Mid: BucketPolicy{
			RSquaredThreshold:  0.05,
			Dampening:          0.5,
			ConfidenceFactor:   0.8,
			ConfidenceCap:      0.9,
			GapBlend:           0.15,
			DecayFactor:        0.6,
			FallbackConfidence: 0.5,
		},
		Late: LatePolicy{
			UnrealisticDailyRate:  2.0,
			UnrealisticTargetCap:  0.6,
			MomentumFloor:         1.2,
			TargetCap:             0.8,
			UnrealisticConfidence: 0.7,
			ExceededConfidence:    0.7,
			CappedConfidence:      0.6,
			CompleteConfidence:    1.0,
		},
		MeanReversion: MeanReversionPolicy{
			Reversion:  0.4,
			Confidence: 0.3,
		},
		ClampMin: -100,
		ClampMax: 200,
	}
}

// Validate checks ranges and bucket ordering
func (p ProjectionPolicy) Validate() error {
	if err := contracts.Validator().Struct(p); err != nil {
		return fmt.Errorf("invalid projection policy: %w", err)
	}
	if p.LateBucketStart > contracts.HorizonDays {
		return fmt.Errorf("invalid projection policy: late bucket starts after day %d", contracts.HorizonDays)
	}
	return nil
}
