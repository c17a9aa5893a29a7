package evaluation

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"sort"
	"sync"
	"time"

	"github.com/wonny/grq-validation/internal/contracts"
)

// MemorySource serves batches held in memory (offline files, tests)
type MemorySource struct {
	mu      sync.RWMutex
	batches map[time.Time]contracts.Batch
}

var _ contracts.BatchSource = (*MemorySource)(nil)

// NewMemorySource creates a source over the given batches
func NewMemorySource(batches ...contracts.Batch) *MemorySource {
	s := &MemorySource{batches: make(map[time.Time]contracts.Batch, len(batches))}
	for _, b := range batches {
		s.Add(b)
	}
	return s
}

// Add registers or replaces a batch
func (s *MemorySource) Add(b contracts.Batch) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.batches[contracts.DateOnly(b.ScoreDate)] = b
}

// ListScoreDates returns every score date, newest first
func (s *MemorySource) ListScoreDates(_ context.Context) ([]time.Time, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	dates := make([]time.Time, 0, len(s.batches))
	for d := range s.batches {
		dates = append(dates, d)
	}
	sort.Slice(dates, func(i, j int) bool { return dates[i].After(dates[j]) })
	return dates, nil
}

// Load returns the batch for a score date
func (s *MemorySource) Load(_ context.Context, scoreDate time.Time) (contracts.Batch, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	b, ok := s.batches[contracts.DateOnly(scoreDate)]
	if !ok {
		return contracts.Batch{}, fmt.Errorf("score file %s: %w", scoreDate.Format(contracts.DateLayout), contracts.ErrNotFound)
	}
	return b, nil
}

// ReadBatchFile decodes a JSON batch and validates its entries
func ReadBatchFile(path string) (contracts.Batch, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return contracts.Batch{}, fmt.Errorf("read batch file: %w", err)
	}

	var b contracts.Batch
	if err := json.Unmarshal(data, &b); err != nil {
		return contracts.Batch{}, fmt.Errorf("parse batch file: %w", err)
	}
	if b.ScoreDate.IsZero() {
		return contracts.Batch{}, fmt.Errorf("batch file %s: missing score_date", path)
	}
	if err := contracts.ValidateEntries(b.Entries); err != nil {
		return contracts.Batch{}, err
	}
	return b, nil
}
