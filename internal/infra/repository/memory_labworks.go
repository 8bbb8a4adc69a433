package repository

import (
	"context"
	"sort"
	"strings"

	labdomain "github.com/BruksfildServices01/dental-scheduler/internal/domain/labwork"
	"github.com/BruksfildServices01/dental-scheduler/internal/models"
)

func (m *MemoryStore) CreateLabWork(ctx context.Context, lw *models.LabWork) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	now := m.now()
	lw.ID = m.nextID("lab_works")
	lw.CreatedAt = now
	lw.UpdatedAt = now
	m.labWorks[lw.ID] = *lw
	return nil
}

func (m *MemoryStore) GetLabWork(ctx context.Context, id uint) (*models.LabWork, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	lw, ok := m.labWorks[id]
	if !ok {
		return nil, labdomain.ErrLabWorkNotFound
	}
	return &lw, nil
}

func (m *MemoryStore) UpdateLabWork(ctx context.Context, lw *models.LabWork) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	old, ok := m.labWorks[lw.ID]
	if !ok {
		return labdomain.ErrLabWorkNotFound
	}
	lw.CreatedAt = old.CreatedAt
	lw.UpdatedAt = m.now()
	m.labWorks[lw.ID] = *lw
	return nil
}

func (m *MemoryStore) DeleteLabWork(ctx context.Context, id uint) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, ok := m.labWorks[id]; !ok {
		return labdomain.ErrLabWorkNotFound
	}
	delete(m.labWorks, id)
	return nil
}

func (m *MemoryStore) SearchLabWorks(ctx context.Context, filter labdomain.Filter) ([]models.LabWork, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	term := strings.ToLower(strings.TrimSpace(filter.Query))

	out := []models.LabWork{}
	for _, lw := range m.labWorks {
		if filter.Status != "" && lw.Status != string(filter.Status) {
			continue
		}
		if term != "" && !labWorkMatches(lw, term) {
			continue
		}
		out = append(out, lw)
	}

	sort.Slice(out, func(i, j int) bool {
		if out[i].DateExpected != out[j].DateExpected {
			return out[i].DateExpected < out[j].DateExpected
		}
		return out[i].ID < out[j].ID
	})
	return out, nil
}

func labWorkMatches(lw models.LabWork, term string) bool {
	for _, field := range []string{lw.LabName, lw.PatientName, lw.TypeWork} {
		if strings.Contains(strings.ToLower(field), term) {
			return true
		}
	}
	return false
}
