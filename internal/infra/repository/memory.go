package repository

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/BruksfildServices01/dental-scheduler/internal/audit"
	actdomain "github.com/BruksfildServices01/dental-scheduler/internal/domain/act"
	domain "github.com/BruksfildServices01/dental-scheduler/internal/domain/appointment"
	labdomain "github.com/BruksfildServices01/dental-scheduler/internal/domain/labwork"
	patientdomain "github.com/BruksfildServices01/dental-scheduler/internal/domain/patient"
	"github.com/BruksfildServices01/dental-scheduler/internal/lock"
	"github.com/BruksfildServices01/dental-scheduler/internal/models"
)

const memoryBookingKey = "booking:memory"

// MemoryStore keeps every record of the clinic in process. It backs
// STORAGE=memory and the use case tests.
type MemoryStore struct {
	mu sync.RWMutex

	appointments map[uint]models.Appointment
	nextAppID    uint

	patients map[string]models.Patient

	acts     map[uint]models.Act
	phases   map[uint]models.TreatmentPhase
	photos   map[uint]models.PhasePhoto
	payments map[uint]models.Payment
	labWorks map[uint]models.LabWork
	lastID   map[string]uint

	auditLogs []models.AuditLog

	locks *lock.Local
	now   func() time.Time
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		appointments: make(map[uint]models.Appointment),
		nextAppID:    1,
		patients:     make(map[string]models.Patient),
		acts:         make(map[uint]models.Act),
		phases:       make(map[uint]models.TreatmentPhase),
		photos:       make(map[uint]models.PhasePhoto),
		payments:     make(map[uint]models.Payment),
		labWorks:     make(map[uint]models.LabWork),
		lastID:       make(map[string]uint),
		locks:        lock.NewLocal(),
		now:          time.Now,
	}
}

// --------------------------------------------------
// Scheduling
// --------------------------------------------------

func (m *MemoryStore) ListByDateAndRoom(
	ctx context.Context,
	date string,
	room string,
) ([]models.Appointment, error) {

	m.mu.RLock()
	defer m.mu.RUnlock()

	var out []models.Appointment
	for _, ap := range m.appointments {
		if ap.Date == date && ap.Room == room && ap.Status != string(domain.StatusCancelled) {
			out = append(out, ap)
		}
	}
	return out, nil
}

// WithBookingLock serialises every booking section of the store, whatever
// its (date, room). There are no row locks here, so a status change locked
// on an appointment's old room-day must still exclude a reschedule locked
// on its new one.
func (m *MemoryStore) WithBookingLock(
	ctx context.Context,
	date string,
	room string,
	fn domain.BookingFunc,
) error {

	release, err := m.locks.Acquire(ctx, memoryBookingKey)
	if err != nil {
		return err
	}
	defer release()

	return fn(ctx, m)
}

// --------------------------------------------------
// Appointment
// --------------------------------------------------

func (m *MemoryStore) CreateAppointment(ctx context.Context, ap *models.Appointment) error {
	if err := ap.BeforeSave(nil); err != nil {
		return err
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	now := m.now()
	ap.ID = m.nextAppID
	m.nextAppID++
	if ap.Status == "" {
		ap.Status = string(domain.InitialStatus())
	}
	ap.CreatedAt = now
	ap.UpdatedAt = now

	m.appointments[ap.ID] = *ap
	return nil
}

func (m *MemoryStore) GetAppointment(ctx context.Context, id uint) (*models.Appointment, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	ap, ok := m.appointments[id]
	if !ok {
		return nil, domain.ErrAppointmentNotFound
	}
	return &ap, nil
}

func (m *MemoryStore) GetAppointmentForUpdate(ctx context.Context, id uint) (*models.Appointment, error) {
	return m.GetAppointment(ctx, id)
}

func (m *MemoryStore) UpdateAppointment(ctx context.Context, ap *models.Appointment) error {
	if err := ap.BeforeSave(nil); err != nil {
		return err
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	if _, ok := m.appointments[ap.ID]; !ok {
		return domain.ErrAppointmentNotFound
	}
	ap.UpdatedAt = m.now()
	m.appointments[ap.ID] = *ap
	return nil
}

func (m *MemoryStore) UpdateStatus(
	ctx context.Context,
	id uint,
	status domain.Status,
	reason string,
) error {

	m.mu.Lock()
	defer m.mu.Unlock()

	ap, ok := m.appointments[id]
	if !ok {
		return domain.ErrAppointmentNotFound
	}
	ap.Status = string(status)
	ap.StatusReason = reason
	ap.UpdatedAt = m.now()
	m.appointments[id] = ap
	return nil
}

func (m *MemoryStore) DeleteAppointment(ctx context.Context, id uint) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, ok := m.appointments[id]; !ok {
		return domain.ErrAppointmentNotFound
	}
	delete(m.appointments, id)
	return nil
}

func (m *MemoryStore) ListAppointments(ctx context.Context, filter domain.Filter) ([]models.Appointment, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	out := []models.Appointment{}
	for _, ap := range m.appointments {
		if filter.Date != "" && ap.Date != filter.Date {
			continue
		}
		if filter.PatientID != "" && ap.PatientID != filter.PatientID {
			continue
		}
		if filter.Status != "" && ap.Status != string(filter.Status) {
			continue
		}
		if filter.Room != "" && ap.Room != filter.Room {
			continue
		}
		out = append(out, ap)
	}

	sort.Slice(out, func(i, j int) bool {
		if out[i].Date != out[j].Date {
			return out[i].Date > out[j].Date
		}
		if out[i].Time != out[j].Time {
			return out[i].Time < out[j].Time
		}
		return out[i].Room < out[j].Room
	})
	return out, nil
}

// --------------------------------------------------
// Patient
// --------------------------------------------------

func (m *MemoryStore) CreatePatient(ctx context.Context, year int, p *models.Patient) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	ids := make([]string, 0, len(m.patients))
	for id := range m.patients {
		ids = append(ids, id)
	}

	now := m.now()
	p.ID = patientdomain.NextID(ids, year)
	p.CreatedAt = now
	p.UpdatedAt = now

	m.patients[p.ID] = *p
	return nil
}

func (m *MemoryStore) GetPatient(ctx context.Context, id string) (*models.Patient, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	p, ok := m.patients[id]
	if !ok {
		return nil, patientdomain.ErrPatientNotFound
	}
	return &p, nil
}

func (m *MemoryStore) UpdatePatient(ctx context.Context, p *models.Patient) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	old, ok := m.patients[p.ID]
	if !ok {
		return patientdomain.ErrPatientNotFound
	}
	p.CreatedAt = old.CreatedAt
	p.UpdatedAt = m.now()
	m.patients[p.ID] = *p
	return nil
}

func (m *MemoryStore) DeletePatient(ctx context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, ok := m.patients[id]; !ok {
		return patientdomain.ErrPatientNotFound
	}
	for _, a := range m.acts {
		if a.PatientID == id {
			return patientdomain.ErrPatientHasActs
		}
	}
	delete(m.patients, id)
	return nil
}

func (m *MemoryStore) SearchPatients(ctx context.Context, query string, limit int) ([]models.Patient, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	term := strings.ToLower(strings.TrimSpace(query))

	out := []models.Patient{}
	for _, p := range m.patients {
		if term != "" && !patientMatches(p, term) {
			continue
		}
		out = append(out, p)
	}

	sort.Slice(out, func(i, j int) bool {
		if out[i].LastName != out[j].LastName {
			return out[i].LastName < out[j].LastName
		}
		return out[i].FirstName < out[j].FirstName
	})
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

func patientMatches(p models.Patient, term string) bool {
	for _, field := range []string{p.FirstName, p.LastName, p.FullName(), p.CINPassport, p.ID} {
		if strings.Contains(strings.ToLower(field), term) {
			return true
		}
	}
	return false
}

// --------------------------------------------------
// Audit
// --------------------------------------------------

func (m *MemoryStore) WriteAuditLog(ctx context.Context, log *models.AuditLog) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	log.ID = uint(len(m.auditLogs) + 1)
	log.CreatedAt = m.now()
	m.auditLogs = append(m.auditLogs, *log)
	return nil
}

func (m *MemoryStore) ListAuditLogs(ctx context.Context, q audit.Query) ([]models.AuditLog, int64, error) {
	page, limit := audit.Page(q)

	var from, to time.Time
	if q.From != "" {
		t, err := time.Parse("2006-01-02", q.From)
		if err != nil {
			return nil, 0, fmt.Errorf("audit from: %w", err)
		}
		from = t
	}
	if q.To != "" {
		t, err := time.Parse("2006-01-02", q.To)
		if err != nil {
			return nil, 0, fmt.Errorf("audit to: %w", err)
		}
		to = t.Add(24 * time.Hour)
	}

	m.mu.RLock()
	defer m.mu.RUnlock()

	var matched []models.AuditLog
	for i := len(m.auditLogs) - 1; i >= 0; i-- {
		l := m.auditLogs[i]
		if q.Action != "" && l.Action != q.Action {
			continue
		}
		if q.Entity != "" && l.Entity != q.Entity {
			continue
		}
		if !from.IsZero() && l.CreatedAt.Before(from) {
			continue
		}
		if !to.IsZero() && !l.CreatedAt.Before(to) {
			continue
		}
		matched = append(matched, l)
	}

	total := int64(len(matched))
	start := (page - 1) * limit
	if start >= len(matched) {
		return []models.AuditLog{}, total, nil
	}
	end := min(start+limit, len(matched))
	return matched[start:end], total, nil
}

// nextID hands out per-table sequence numbers. Callers hold m.mu.
func (m *MemoryStore) nextID(table string) uint {
	m.lastID[table]++
	return m.lastID[table]
}

var (
	_ domain.Repository        = (*MemoryStore)(nil)
	_ patientdomain.Repository = (*MemoryStore)(nil)
	_ actdomain.Repository     = (*MemoryStore)(nil)
	_ labdomain.Repository     = (*MemoryStore)(nil)
	_ audit.Store              = (*MemoryStore)(nil)
)
