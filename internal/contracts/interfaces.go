package contracts

import (
	"context"
	"time"
)

// BatchSource loads immutable batches (store or fixtures)
// ⭐ SSOT: 배치 로딩 인터페이스
type BatchSource interface {
	ListScoreDates(ctx context.Context) ([]time.Time, error)
	Load(ctx context.Context, scoreDate time.Time) (Batch, error)
}

// EvaluationStore persists evaluation runs
// ⭐ SSOT: 평가 결과 저장 인터페이스
type EvaluationStore interface {
	SaveRun(ctx context.Context, run EvaluationRun) error
}
