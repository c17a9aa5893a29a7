package policy

import (
	"time"

	"github.com/wonny/grq-validation/internal/performance"
)

// File 예측 정책 파일 (YAML)
// ⭐ SSOT: 과거 판정 재현을 위해 정책 해시를 평가 결과와 함께 저장
type File struct {
	Meta       Meta                         `yaml:"meta" json:"meta"`
	Projection performance.ProjectionPolicy `yaml:"projection" json:"projection"`
}

// Meta 정책 식별 정보
type Meta struct {
	PolicyID    string `yaml:"policy_id" json:"policy_id"`
	Version     string `yaml:"version" json:"version"`
	Description string `yaml:"description,omitempty" json:"description,omitempty"`
}

// DefaultPolicyID 파일 없이 기본 상수를 쓸 때의 ID
const DefaultPolicyID = "grq_default"

// Default 호환 기본값
func Default() *File {
	return &File{
		Meta: Meta{
			PolicyID: DefaultPolicyID,
			Version:  "1.0.0",
		},
		Projection: performance.DefaultProjectionPolicy(),
	}
}

// Snapshot 평가 실행 시점의 정책 (재현성용)
type Snapshot struct {
	PolicyHash string    `json:"policy_hash"`
	PolicyYAML string    `json:"policy_yaml"`
	PolicyID   string    `json:"policy_id"`
	Version    string    `json:"version"`
	CreatedAt  time.Time `json:"created_at"`
}
