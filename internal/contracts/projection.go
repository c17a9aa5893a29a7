package contracts

// ProjectionMethod tags which strategy produced a projection
type ProjectionMethod string

const (
	MethodDampenedTrend       ProjectionMethod = "dampened_trend"
	MethodTargetBased         ProjectionMethod = "target_based"
	MethodRealisticTrajectory ProjectionMethod = "realistic_trajectory"
	MethodMeanReversion       ProjectionMethod = "mean_reversion"
)

// HybridProjection is the estimated 90-day return before the window completes
type HybridProjection struct {
	ProjectedReturn    float64          `json:"projected_return"` // -100 ~ 200
	Method             ProjectionMethod `json:"method"`
	Confidence         float64          `json:"confidence"` // 0 ~ 1
	DaysElapsed        int              `json:"days_elapsed"`
	CurrentPerformance float64          `json:"current_performance"`
	TargetPercent      *float64         `json:"target_percent"`
}
