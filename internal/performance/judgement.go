package performance

import "github.com/wonny/grq-validation/internal/contracts"

const (
	// targetAchievementRatio 목표가의 80% 이상이면 달성으로 본다
	targetAchievementRatio = 0.8

	// minProjectionConfidence 이 값 이하의 예측은 판정에 쓰지 않음
	minProjectionConfidence = 0.2
)

// JudgementInput 판정 입력
type JudgementInput struct {
	DaysElapsed   int
	Performance   float64
	TargetPercent *float64 // nil → 기본 20%
	Projection    *contracts.HybridProjection
}

// Classify 실현 또는 예측 성과를 목표 대비 분류
//
//	90일 이상: 실현 성과 → Hit Target / Partial Success / Missed Target
//	90일 미만 + 신뢰도 > 0.2: 예측 성과 → On Track / Below Target / Declining
//	그 외: 실현 성과를 진행 중 라벨로 (Display 에 구간 표시)
func Classify(in JudgementInput) contracts.Judgement {
	target := contracts.DefaultTargetPercent
	if in.TargetPercent != nil && isFinite(*in.TargetPercent) {
		target = *in.TargetPercent
	}
	threshold := target * targetAchievementRatio
	phase := contracts.PhaseFor(in.DaysElapsed)

	if in.DaysElapsed >= contracts.HorizonDays {
		return contracts.Judgement{
			Label: completedLabel(in.Performance, threshold),
			Basis: contracts.BasisRealized,
			Phase: phase,
			Value: in.Performance,
		}
	}

	if in.Projection != nil && in.Projection.Confidence > minProjectionConfidence {
		return contracts.Judgement{
			Label: inProgressLabel(in.Projection.ProjectedReturn, threshold),
			Basis: contracts.BasisProjected,
			Phase: phase,
			Value: in.Projection.ProjectedReturn,
		}
	}

	return contracts.Judgement{
		Label: inProgressLabel(in.Performance, threshold),
		Basis: contracts.BasisRealized,
		Phase: phase,
		Value: in.Performance,
	}
}

func completedLabel(value, threshold float64) contracts.JudgementLabel {
	switch {
	case value >= threshold:
		return contracts.JudgementHitTarget
	case value > 0:
		return contracts.JudgementPartialSuccess
	default:
		return contracts.JudgementMissedTarget
	}
}

func inProgressLabel(value, threshold float64) contracts.JudgementLabel {
	switch {
	case value >= threshold:
		return contracts.JudgementOnTrack
	case value > 0:
		return contracts.JudgementBelowTarget
	default:
		return contracts.JudgementDeclining
	}
}
