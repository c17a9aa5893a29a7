package performance

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/wonny/grq-validation/internal/contracts"
)

func TestClassify(t *testing.T) {
	tests := []struct {
		name    string
		in      JudgementInput
		label   contracts.JudgementLabel
		basis   contracts.JudgementBasis
		display string
	}{
		{
			name:    "hit target",
			in:      JudgementInput{DaysElapsed: 90, Performance: 25, TargetPercent: ptr(20)},
			label:   contracts.JudgementHitTarget,
			basis:   contracts.BasisRealized,
			display: "Hit Target",
		},
		{
			name:    "partial success",
			in:      JudgementInput{DaysElapsed: 90, Performance: 15, TargetPercent: ptr(20)},
			label:   contracts.JudgementPartialSuccess,
			basis:   contracts.BasisRealized,
			display: "Partial Success",
		},
		{
			name:    "missed target",
			in:      JudgementInput{DaysElapsed: 90, Performance: -5, TargetPercent: ptr(20)},
			label:   contracts.JudgementMissedTarget,
			basis:   contracts.BasisRealized,
			display: "Missed Target",
		},
		{
			name:    "exactly eighty percent of target",
			in:      JudgementInput{DaysElapsed: 90, Performance: 16, TargetPercent: ptr(20)},
			label:   contracts.JudgementHitTarget,
			basis:   contracts.BasisRealized,
			display: "Hit Target",
		},
		{
			name:    "complete ignores projection",
			in:      JudgementInput{DaysElapsed: 90, Performance: 0, TargetPercent: ptr(20), Projection: &contracts.HybridProjection{ProjectedReturn: 50, Confidence: 1}},
			label:   contracts.JudgementMissedTarget,
			basis:   contracts.BasisRealized,
			display: "Missed Target",
		},
		{
			name:    "projected on track",
			in:      JudgementInput{DaysElapsed: 40, Performance: 2, TargetPercent: ptr(20), Projection: &contracts.HybridProjection{ProjectedReturn: 18, Confidence: 0.5}},
			label:   contracts.JudgementOnTrack,
			basis:   contracts.BasisProjected,
			display: "On Track",
		},
		{
			name:    "projected below target",
			in:      JudgementInput{DaysElapsed: 70, Performance: 2, TargetPercent: ptr(20), Projection: &contracts.HybridProjection{ProjectedReturn: 8, Confidence: 0.6}},
			label:   contracts.JudgementBelowTarget,
			basis:   contracts.BasisProjected,
			display: "Below Target",
		},
		{
			name:    "projected declining",
			in:      JudgementInput{DaysElapsed: 10, Performance: 2, TargetPercent: ptr(20), Projection: &contracts.HybridProjection{ProjectedReturn: -3, Confidence: 0.3}},
			label:   contracts.JudgementDeclining,
			basis:   contracts.BasisProjected,
			display: "Declining",
		},
		{
			name:    "low confidence falls back to realized",
			in:      JudgementInput{DaysElapsed: 40, Performance: 5, TargetPercent: ptr(20), Projection: &contracts.HybridProjection{ProjectedReturn: 50, Confidence: 0.2}},
			label:   contracts.JudgementBelowTarget,
			basis:   contracts.BasisRealized,
			display: "Mid-window: Below Target",
		},
		{
			name:    "no projection early",
			in:      JudgementInput{DaysElapsed: 3, Performance: -1, TargetPercent: ptr(20)},
			label:   contracts.JudgementDeclining,
			basis:   contracts.BasisRealized,
			display: "Early: Declining",
		},
		{
			name:    "missing target defaults to twenty",
			in:      JudgementInput{DaysElapsed: 90, Performance: 16},
			label:   contracts.JudgementHitTarget,
			basis:   contracts.BasisRealized,
			display: "Hit Target",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Classify(tt.in)
			assert.Equal(t, tt.label, got.Label)
			assert.Equal(t, tt.basis, got.Basis)
			assert.Equal(t, tt.display, got.Display())
		})
	}
}
