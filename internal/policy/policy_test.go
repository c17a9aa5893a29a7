package policy

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/wonny/grq-validation/internal/performance"
)

func TestLoad(t *testing.T) {
	path := "../../config/policy/grq_default.yaml"

	if _, err := os.Stat(path); os.IsNotExist(err) {
		t.Skip("policy file not found")
	}

	f, yamlData, err := Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	if f.Meta.PolicyID != DefaultPolicyID {
		t.Errorf("expected policy_id=%s, got %s", DefaultPolicyID, f.Meta.PolicyID)
	}

	// 파일 = 호환 기본값
	if f.Projection != performance.DefaultProjectionPolicy() {
		t.Errorf("policy file diverges from defaults: %+v", f.Projection)
	}

	hash, err := Hash(f)
	if err != nil {
		t.Fatalf("Hash failed: %v", err)
	}
	if len(hash) != 64 {
		t.Errorf("expected 64 char hash, got %d", len(hash))
	}

	hash2, _ := Hash(f)
	if hash != hash2 {
		t.Error("hash not deterministic")
	}

	t.Logf("policy hash: %s", hash)
	t.Logf("yaml size: %d bytes", len(yamlData))
}

func TestParse_PartialOverride(t *testing.T) {
	data := []byte(`
meta:
  policy_id: experiment
  version: "0.1.0"
projection:
  early:
    dampening: 0.2
`)

	f, err := Parse(data)
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}

	if f.Projection.Early.Dampening != 0.2 {
		t.Errorf("expected early.dampening=0.2, got %v", f.Projection.Early.Dampening)
	}
	// 나머지는 기본값 유지
	def := performance.DefaultProjectionPolicy()
	if f.Projection.Early.RSquaredThreshold != def.Early.RSquaredThreshold {
		t.Errorf("expected default r_squared_threshold, got %v", f.Projection.Early.RSquaredThreshold)
	}
	if f.Projection.LateBucketStart != def.LateBucketStart {
		t.Errorf("expected late_bucket_start=%d, got %d", def.LateBucketStart, f.Projection.LateBucketStart)
	}

	defHash, _ := Hash(Default())
	hash, _ := Hash(f)
	if hash == defHash {
		t.Error("override should change the hash")
	}
}

func TestParse_UnknownField(t *testing.T) {
	data := []byte(`
meta:
  policy_id: typo
  version: "1"
projection:
  early:
    dampning: 0.2
`)

	if _, err := Parse(data); err == nil {
		t.Error("expected error for unknown field")
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(f *File)
		field  string
	}{
		{name: "defaults", mutate: func(f *File) {}},
		{name: "missing id", mutate: func(f *File) { f.Meta.PolicyID = "" }, field: "meta.policy_id"},
		{name: "missing version", mutate: func(f *File) { f.Meta.Version = "" }, field: "meta.version"},
		{name: "buckets out of order", mutate: func(f *File) { f.Projection.LateBucketStart = 20 }, field: "projection"},
		{name: "late bucket after horizon", mutate: func(f *File) { f.Projection.LateBucketStart = 120 }, field: "projection"},
		{name: "confidence above one", mutate: func(f *File) { f.Projection.Mid.ConfidenceCap = 1.5 }, field: "projection"},
		{name: "clamp inverted", mutate: func(f *File) { f.Projection.ClampMax = -200 }, field: "projection"},
		{name: "clamp below total loss", mutate: func(f *File) { f.Projection.ClampMin = -150 }, field: "projection.clamp_min"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			f := Default()
			tc.mutate(f)

			err := Validate(f)
			if tc.field == "" {
				if err != nil {
					t.Fatalf("expected valid, got %v", err)
				}
				return
			}

			var verr ValidationError
			if !errors.As(err, &verr) {
				t.Fatalf("expected ValidationError, got %v", err)
			}
			if verr.Field != tc.field {
				t.Errorf("expected field %s, got %s", tc.field, verr.Field)
			}
		})
	}
}

func TestWarn(t *testing.T) {
	if w := Warn(Default()); len(w) != 0 {
		t.Errorf("defaults should not warn, got %v", w)
	}

	f := Default()
	f.Projection.MidBucketStart = 20
	f.Projection.Early.Dampening = 0.9
	f.Projection.ClampMax = 500

	codes := make([]string, 0)
	for _, w := range Warn(f) {
		codes = append(codes, w.Code)
	}
	joined := strings.Join(codes, ",")
	for _, want := range []string{"BUCKET_BOUNDS_CHANGED", "EARLY_DAMPENING_HIGH", "WIDE_CLAMP"} {
		if !strings.Contains(joined, want) {
			t.Errorf("expected warning %s, got %s", want, joined)
		}
	}
}

func TestLoadOrDefault(t *testing.T) {
	f, data, err := LoadOrDefault("")
	if err != nil {
		t.Fatalf("LoadOrDefault failed: %v", err)
	}
	if f.Meta.PolicyID != DefaultPolicyID {
		t.Errorf("expected default policy, got %s", f.Meta.PolicyID)
	}
	if len(data) == 0 {
		t.Error("expected rendered yaml for the default policy")
	}

	// 기본 정책 YAML → 다시 읽으면 같은 해시
	path := filepath.Join(t.TempDir(), "policy.yaml")
	if err := os.WriteFile(path, data, 0o644); err != nil {
		t.Fatal(err)
	}
	reloaded, _, err := Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	h1, _ := Hash(f)
	h2, _ := Hash(reloaded)
	if h1 != h2 {
		t.Error("default policy does not round-trip through yaml")
	}
}

func TestNewSnapshot(t *testing.T) {
	snapshot, err := NewSnapshot(Default(), []byte("meta: {}"))
	if err != nil {
		t.Fatalf("NewSnapshot failed: %v", err)
	}
	if snapshot.PolicyID != DefaultPolicyID {
		t.Errorf("expected policy_id=%s, got %s", DefaultPolicyID, snapshot.PolicyID)
	}
	if len(snapshot.PolicyHash) != 64 {
		t.Errorf("expected 64 char hash, got %d", len(snapshot.PolicyHash))
	}
}
