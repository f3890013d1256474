package storage

import (
	"context"
	"errors"
	"sort"
	"sync"
)

type MemoryStore struct {
	mu          sync.RWMutex
	initialized bool
	results     map[string][]StageResult
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{}
}

func (s *MemoryStore) Init(_ context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.initialized = true
	s.results = make(map[string][]StageResult)
	return nil
}

func (s *MemoryStore) SaveStageResult(_ context.Context, result StageResult) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.initialized {
		return errors.New("memory store is not initialized")
	}
	result.Permutation = append([]int(nil), result.Permutation...)
	s.results[result.Experiment] = append(s.results[result.Experiment], result)
	return nil
}

func (s *MemoryStore) ListStageResults(_ context.Context, experiment string) ([]StageResult, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if !s.initialized {
		return nil, errors.New("memory store is not initialized")
	}
	src := s.results[experiment]
	out := make([]StageResult, len(src))
	for i, r := range src {
		r.Permutation = append([]int(nil), r.Permutation...)
		out[i] = r
	}
	sort.SliceStable(out, func(i, j int) bool {
		if out[i].RunIndex != out[j].RunIndex {
			return out[i].RunIndex < out[j].RunIndex
		}
		return out[i].StageOrder < out[j].StageOrder
	})
	return out, nil
}
