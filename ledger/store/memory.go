// Package store provides RunStore implementations.
package store

import (
	"context"
	"sort"
	"sync"

	"github.com/warp/receivables-engine/ledger"
)

// =============================================================================
// MEMORY STORE - In-memory implementation (for testing/dev)
// =============================================================================

type Memory struct {
	mu   sync.RWMutex
	runs map[string]ledger.RunSummary
}

func NewMemory() *Memory {
	return &Memory{runs: make(map[string]ledger.RunSummary)}
}

func (m *Memory) SaveRun(_ context.Context, run ledger.RunSummary) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.runs[run.ID] = run
	return nil
}

func (m *Memory) ListRuns(_ context.Context) ([]ledger.RunSummary, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	out := make([]ledger.RunSummary, 0, len(m.runs))
	for _, run := range m.runs {
		out = append(out, run)
	}
	// Newest first; ties broken by ID for a stable listing.
	sort.Slice(out, func(i, j int) bool {
		if out[i].CreatedAt.Equal(out[j].CreatedAt) {
			return out[i].ID < out[j].ID
		}
		return out[i].CreatedAt.After(out[j].CreatedAt)
	})
	return out, nil
}

func (m *Memory) GetRun(_ context.Context, id string) (ledger.RunSummary, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	run, ok := m.runs[id]
	if !ok {
		return ledger.RunSummary{}, ledger.ErrRunNotFound
	}
	return run, nil
}
