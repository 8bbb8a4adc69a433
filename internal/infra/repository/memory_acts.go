package repository

import (
	"context"
	"sort"

	actdomain "github.com/BruksfildServices01/dental-scheduler/internal/domain/act"
	"github.com/BruksfildServices01/dental-scheduler/internal/models"
)

// --------------------------------------------------
// Acts
// --------------------------------------------------

func (m *MemoryStore) CreateAct(ctx context.Context, a *models.Act) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	now := m.now()
	a.ID = m.nextID("acts")
	a.CreatedAt = now
	a.UpdatedAt = now

	row := *a
	row.Phases, row.Payments = nil, nil
	m.acts[a.ID] = row
	return nil
}

func (m *MemoryStore) GetAct(ctx context.Context, id uint) (*models.Act, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	a, ok := m.acts[id]
	if !ok {
		return nil, actdomain.ErrActNotFound
	}
	a = m.loadAct(a)
	return &a, nil
}

func (m *MemoryStore) UpdateAct(ctx context.Context, a *models.Act) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	old, ok := m.acts[a.ID]
	if !ok {
		return actdomain.ErrActNotFound
	}
	a.PatientID = old.PatientID
	a.CreatedAt = old.CreatedAt
	a.UpdatedAt = m.now()

	row := *a
	row.Phases, row.Payments = nil, nil
	m.acts[a.ID] = row
	return nil
}

func (m *MemoryStore) DeleteAct(ctx context.Context, id uint) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, ok := m.acts[id]; !ok {
		return actdomain.ErrActNotFound
	}
	for pid, ph := range m.phases {
		if ph.ActID == id {
			m.dropPhase(pid)
		}
	}
	for pid, pay := range m.payments {
		if pay.ActID == id {
			delete(m.payments, pid)
		}
	}
	delete(m.acts, id)
	return nil
}

func (m *MemoryStore) ListActsByPatient(ctx context.Context, patientID string) ([]models.Act, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	out := []models.Act{}
	for _, a := range m.acts {
		if a.PatientID == patientID {
			out = append(out, m.loadAct(a))
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Date != out[j].Date {
			return out[i].Date < out[j].Date
		}
		return out[i].ID < out[j].ID
	})
	return out, nil
}

func (m *MemoryStore) CountActsByPatient(ctx context.Context, patientID string) (int64, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	var n int64
	for _, a := range m.acts {
		if a.PatientID == patientID {
			n++
		}
	}
	return n, nil
}

// loadAct attaches phases, photos and payments. Callers hold m.mu.
func (m *MemoryStore) loadAct(a models.Act) models.Act {
	a.Phases = []models.TreatmentPhase{}
	for _, ph := range m.phases {
		if ph.ActID == a.ID {
			a.Phases = append(a.Phases, m.loadPhase(ph))
		}
	}
	sort.Slice(a.Phases, func(i, j int) bool {
		if a.Phases[i].Date != a.Phases[j].Date {
			return a.Phases[i].Date < a.Phases[j].Date
		}
		return a.Phases[i].ID < a.Phases[j].ID
	})

	a.Payments = []models.Payment{}
	for _, pay := range m.payments {
		if pay.ActID == a.ID {
			a.Payments = append(a.Payments, pay)
		}
	}
	sort.Slice(a.Payments, func(i, j int) bool {
		if a.Payments[i].Date != a.Payments[j].Date {
			return a.Payments[i].Date < a.Payments[j].Date
		}
		return a.Payments[i].ID < a.Payments[j].ID
	})
	return a
}

// --------------------------------------------------
// Treatment phases
// --------------------------------------------------

func (m *MemoryStore) CreatePhase(ctx context.Context, p *models.TreatmentPhase) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, ok := m.acts[p.ActID]; !ok {
		return actdomain.ErrActNotFound
	}
	now := m.now()
	p.ID = m.nextID("phases")
	p.CreatedAt = now
	p.UpdatedAt = now

	row := *p
	row.Photos = nil
	m.phases[p.ID] = row
	return nil
}

func (m *MemoryStore) GetPhase(ctx context.Context, id uint) (*models.TreatmentPhase, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	ph, ok := m.phases[id]
	if !ok {
		return nil, actdomain.ErrPhaseNotFound
	}
	ph = m.loadPhase(ph)
	return &ph, nil
}

func (m *MemoryStore) UpdatePhase(ctx context.Context, p *models.TreatmentPhase) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	old, ok := m.phases[p.ID]
	if !ok {
		return actdomain.ErrPhaseNotFound
	}
	p.ActID = old.ActID
	p.CreatedAt = old.CreatedAt
	p.UpdatedAt = m.now()

	row := *p
	row.Photos = nil
	m.phases[p.ID] = row
	return nil
}

func (m *MemoryStore) DeletePhase(ctx context.Context, id uint) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, ok := m.phases[id]; !ok {
		return actdomain.ErrPhaseNotFound
	}
	m.dropPhase(id)
	return nil
}

// dropPhase removes a phase and its photo rows. Callers hold m.mu.
func (m *MemoryStore) dropPhase(id uint) {
	for pid, photo := range m.photos {
		if photo.PhaseID == id {
			delete(m.photos, pid)
		}
	}
	delete(m.phases, id)
}

func (m *MemoryStore) loadPhase(ph models.TreatmentPhase) models.TreatmentPhase {
	ph.Photos = []models.PhasePhoto{}
	for _, photo := range m.photos {
		if photo.PhaseID == ph.ID {
			ph.Photos = append(ph.Photos, photo)
		}
	}
	sort.Slice(ph.Photos, func(i, j int) bool { return ph.Photos[i].ID < ph.Photos[j].ID })
	return ph
}

// --------------------------------------------------
// Photos
// --------------------------------------------------

func (m *MemoryStore) CreatePhoto(ctx context.Context, p *models.PhasePhoto) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, ok := m.phases[p.PhaseID]; !ok {
		return actdomain.ErrPhaseNotFound
	}
	p.ID = m.nextID("photos")
	p.CreatedAt = m.now()
	m.photos[p.ID] = *p
	return nil
}

func (m *MemoryStore) GetPhoto(ctx context.Context, id uint) (*models.PhasePhoto, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	p, ok := m.photos[id]
	if !ok {
		return nil, actdomain.ErrPhotoNotFound
	}
	return &p, nil
}

func (m *MemoryStore) DeletePhoto(ctx context.Context, id uint) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, ok := m.photos[id]; !ok {
		return actdomain.ErrPhotoNotFound
	}
	delete(m.photos, id)
	return nil
}

// --------------------------------------------------
// Payments
// --------------------------------------------------

func (m *MemoryStore) CreatePayment(ctx context.Context, p *models.Payment) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, ok := m.acts[p.ActID]; !ok {
		return actdomain.ErrActNotFound
	}
	now := m.now()
	p.ID = m.nextID("payments")
	p.CreatedAt = now
	p.UpdatedAt = now
	m.payments[p.ID] = *p
	return nil
}

func (m *MemoryStore) GetPayment(ctx context.Context, id uint) (*models.Payment, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	p, ok := m.payments[id]
	if !ok {
		return nil, actdomain.ErrPaymentNotFound
	}
	return &p, nil
}

func (m *MemoryStore) UpdatePayment(ctx context.Context, p *models.Payment) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	old, ok := m.payments[p.ID]
	if !ok {
		return actdomain.ErrPaymentNotFound
	}
	p.ActID = old.ActID
	p.CreatedAt = old.CreatedAt
	p.UpdatedAt = m.now()
	m.payments[p.ID] = *p
	return nil
}

func (m *MemoryStore) DeletePayment(ctx context.Context, id uint) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, ok := m.payments[id]; !ok {
		return actdomain.ErrPaymentNotFound
	}
	delete(m.payments, id)
	return nil
}
