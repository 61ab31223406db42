package preferences

import (
	"context"
	"sort"
	"sync"

	"github.com/ariawaludin/smarttourism/internal/models"
)

// MemoryRepository keeps preferences in process memory. It backs the store
// when no database is wanted, e.g. in tests and throwaway sessions.
type MemoryRepository struct {
	mu   sync.Mutex
	rows map[string]models.Preference
}

var _ Repository = (*MemoryRepository)(nil)

func NewMemoryRepository() *MemoryRepository {
	return &MemoryRepository{rows: make(map[string]models.Preference)}
}

func (m *MemoryRepository) Get(_ context.Context, key string) (*models.Preference, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	p, ok := m.rows[key]
	if !ok {
		return nil, nil
	}
	return &p, nil
}

func (m *MemoryRepository) Set(_ context.Context, pref models.Preference) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.rows[pref.Key] = pref
	return nil
}

func (m *MemoryRepository) Delete(_ context.Context, key string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.rows, key)
	return nil
}

func (m *MemoryRepository) Clear(_ context.Context) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.rows = make(map[string]models.Preference)
	return nil
}

func (m *MemoryRepository) List(_ context.Context) ([]models.Preference, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]models.Preference, 0, len(m.rows))
	for _, p := range m.rows {
		out = append(out, p)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Key < out[j].Key })
	return out, nil
}
