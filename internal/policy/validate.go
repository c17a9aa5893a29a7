package policy

import (
	"fmt"

	"github.com/wonny/grq-validation/internal/performance"
)

// ValidationError 검증 실패 (프로그램 중단)
type ValidationError struct {
	Field   string
	Message string
}

func (e ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// Warning 권장 위반 (경고만)
type Warning struct {
	Code    string
	Message string
}

// Validate checks all required constraints
func Validate(f *File) error {
	if f.Meta.PolicyID == "" {
		return ValidationError{"meta.policy_id", "required"}
	}
	if f.Meta.Version == "" {
		return ValidationError{"meta.version", "required"}
	}

	if err := f.Projection.Validate(); err != nil {
		return ValidationError{"projection", err.Error()}
	}

	if f.Projection.ClampMin < -100 {
		return ValidationError{"projection.clamp_min", "must be >= -100 (a position cannot lose more than its value)"}
	}

	return nil
}

// Warn returns non-fatal deviations from the compatibility defaults
// 기본값과 다르면 과거 판정과 비교 불가
func Warn(f *File) []Warning {
	var warnings []Warning
	def := performance.DefaultProjectionPolicy()
	p := f.Projection

	if p.MidBucketStart != def.MidBucketStart || p.LateBucketStart != def.LateBucketStart {
		warnings = append(warnings, Warning{
			Code:    "BUCKET_BOUNDS_CHANGED",
			Message: fmt.Sprintf("bucket bounds %d/%d differ from %d/%d: historical judgements are not comparable", p.MidBucketStart, p.LateBucketStart, def.MidBucketStart, def.LateBucketStart),
		})
	}

	if p.Early.RSquaredThreshold != def.Early.RSquaredThreshold || p.Mid.RSquaredThreshold != def.Mid.RSquaredThreshold {
		warnings = append(warnings, Warning{
			Code:    "R_SQUARED_CHANGED",
			Message: "trend r_squared thresholds differ from defaults",
		})
	}

	// 초기 추세는 노이즈가 많아 중기보다 더 감쇠해야 함
	if p.Early.Dampening > p.Mid.Dampening {
		warnings = append(warnings, Warning{
			Code:    "EARLY_DAMPENING_HIGH",
			Message: "early dampening above mid dampening: early trends will dominate",
		})
	}

	if p.ClampMax > def.ClampMax {
		warnings = append(warnings, Warning{
			Code:    "WIDE_CLAMP",
			Message: fmt.Sprintf("clamp_max %.0f%% above %.0f%%", p.ClampMax, def.ClampMax),
		})
	}

	return warnings
}
