package policy

import (
	"bytes"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

// Load reads a policy YAML file on top of the defaults.
// Fields omitted from the file keep their default value.
// KnownFields(true): 오타/미사용 필드 즉시 실패
func Load(path string) (*File, []byte, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, nil, fmt.Errorf("read policy file: %w", err)
	}

	f, err := Parse(data)
	if err != nil {
		return nil, data, err
	}
	return f, data, nil
}

// Parse decodes and validates policy YAML
func Parse(data []byte) (*File, error) {
	f := Default()

	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(f); err != nil {
		return nil, fmt.Errorf("decode policy: %w", err)
	}

	if err := Validate(f); err != nil {
		return nil, err
	}
	return f, nil
}

// LoadOrDefault 경로가 비어 있으면 기본 정책
func LoadOrDefault(path string) (*File, []byte, error) {
	if path == "" {
		f := Default()
		data, err := yaml.Marshal(f)
		if err != nil {
			return nil, nil, err
		}
		return f, data, nil
	}
	return Load(path)
}

// Hash generates SHA256 hash from File (canonical JSON)
// map 대신 struct 사용으로 해시 재현성 보장
func Hash(f *File) (string, error) {
	jsonBytes, err := json.Marshal(f)
	if err != nil {
		return "", err
	}

	sum := sha256.Sum256(jsonBytes)
	return hex.EncodeToString(sum[:]), nil
}

// NewSnapshot creates a snapshot stored alongside evaluation runs
func NewSnapshot(f *File, yamlData []byte) (*Snapshot, error) {
	hash, err := Hash(f)
	if err != nil {
		return nil, err
	}

	return &Snapshot{
		PolicyHash: hash,
		PolicyYAML: string(yamlData),
		PolicyID:   f.Meta.PolicyID,
		Version:    f.Meta.Version,
		CreatedAt:  time.Now(),
	}, nil
}
