package contracts

// JudgementLabel is the discrete outcome shown for a recommendation
type JudgementLabel string

const (
	// 90일 완료
	JudgementHitTarget      JudgementLabel = "Hit Target"
	JudgementPartialSuccess JudgementLabel = "Partial Success"
	JudgementMissedTarget   JudgementLabel = "Missed Target"

	// 진행 중
	JudgementOnTrack     JudgementLabel = "On Track"
	JudgementBelowTarget JudgementLabel = "Below Target"
	JudgementDeclining   JudgementLabel = "Declining"
)

// JudgementBasis tells whether the label came from realized or projected performance
type JudgementBasis string

const (
	BasisRealized  JudgementBasis = "realized"
	BasisProjected JudgementBasis = "projected"
)

// WindowPhase is the elapsed-time range of an evaluation
type WindowPhase string

const (
	PhaseEarly    WindowPhase = "early"
	PhaseMid      WindowPhase = "mid"
	PhaseLate     WindowPhase = "late"
	PhaseComplete WindowPhase = "complete"
)

// PhaseFor maps elapsed days onto a window phase
func PhaseFor(daysElapsed int) WindowPhase {
	switch {
	case daysElapsed >= HorizonDays:
		return PhaseComplete
	case daysElapsed >= 60:
		return PhaseLate
	case daysElapsed >= 30:
		return PhaseMid
	default:
		return PhaseEarly
	}
}

// Judgement is the classified outcome
type Judgement struct {
	Label JudgementLabel `json:"label"`
	Basis JudgementBasis `json:"basis"`
	Phase WindowPhase    `json:"phase"`
	Value float64        `json:"value"` // 분류에 사용된 수익률 (%)
}

// Display returns the label as shown to users.
// Realized fallbacks inside the window carry the phase so they are not read as final.
func (j Judgement) Display() string {
	if j.Basis == BasisProjected || j.Phase == PhaseComplete {
		return string(j.Label)
	}

	switch j.Phase {
	case PhaseEarly:
		return "Early: " + string(j.Label)
	case PhaseMid:
		return "Mid-window: " + string(j.Label)
	case PhaseLate:
		return "Late: " + string(j.Label)
	}
	return string(j.Label)
}
