package scores

import (
	"context"
	"sync"

	"github.com/renwic/trusthub/internal/domain/model"
)

// MemoryStore is the in-process score cache. Construct one per app or test.
type MemoryStore struct {
	mu          sync.Mutex
	entries     map[int64]model.Score
	generations map[int64]int64
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		entries:     make(map[int64]model.Score),
		generations: make(map[int64]int64),
	}
}

func (m *MemoryStore) Load(_ context.Context, profileID int64) (model.Score, bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	score, ok := m.entries[profileID]
	return score, ok, nil
}

func (m *MemoryStore) Generation(_ context.Context, profileID int64) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.generations[profileID], nil
}

func (m *MemoryStore) SaveIfGeneration(_ context.Context, score model.Score, generation int64) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.generations[score.ProfileID] != generation {
		return false, nil
	}
	m.entries[score.ProfileID] = score
	return true, nil
}

func (m *MemoryStore) Invalidate(_ context.Context, profileID int64) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.generations[profileID]++
	delete(m.entries, profileID)
	return nil
}

func (m *MemoryStore) Len() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.entries)
}
