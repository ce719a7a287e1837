package store

import (
	"context"
	"sort"
	"sync"

	"github.com/stayline/availability-engine/engine"
)

// =============================================================================
// MEMORY STORE - In-memory implementation (for testing/dev)
// =============================================================================

type Memory struct {
	mu       sync.RWMutex
	datasets map[string]Dataset
}

func NewMemory() *Memory {
	return &Memory{datasets: make(map[string]Dataset)}
}

func (m *Memory) Save(_ context.Context, d Dataset) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.datasets[d.ID] = d
	return nil
}

func (m *Memory) Get(_ context.Context, id string) (Dataset, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	d, ok := m.datasets[id]
	if !ok {
		return Dataset{}, ErrNotFound
	}

	// Copies keep callers from mutating the stored tables.
	result := d
	result.Apartments = append([]engine.Apartment(nil), d.Apartments...)
	result.Reservations = append([]engine.Reservation(nil), d.Reservations...)
	return result, nil
}

func (m *Memory) List(_ context.Context) ([]DatasetInfo, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	infos := make([]DatasetInfo, 0, len(m.datasets))
	for _, d := range m.datasets {
		infos = append(infos, d.Info())
	}
	sort.Slice(infos, func(i, j int) bool {
		if infos[i].CreatedAt.Equal(infos[j].CreatedAt) {
			return infos[i].ID > infos[j].ID
		}
		return infos[i].CreatedAt.After(infos[j].CreatedAt)
	})
	return infos, nil
}

func (m *Memory) Delete(_ context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, ok := m.datasets[id]; !ok {
		return ErrNotFound
	}
	delete(m.datasets, id)
	return nil
}
