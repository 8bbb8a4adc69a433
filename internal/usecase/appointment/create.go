package appointment

import (
	"context"
	"errors"
	"strconv"

	"github.com/BruksfildServices01/dental-scheduler/internal/audit"
	domain "github.com/BruksfildServices01/dental-scheduler/internal/domain/appointment"
	"github.com/BruksfildServices01/dental-scheduler/internal/lock"
	"github.com/BruksfildServices01/dental-scheduler/internal/metrics"
	"github.com/BruksfildServices01/dental-scheduler/internal/models"
	"github.com/BruksfildServices01/dental-scheduler/internal/scheduling"
)

// ======================================================
// INPUT
// ======================================================

type CreateAppointmentInput struct {
	PatientID string
	Type      string

	Date     string
	Time     string
	Room     string
	Duration int

	Notes string
}

// ======================================================
// USE CASE
// ======================================================

type CreateAppointment struct {
	repo      domain.Repository
	scheduler *scheduling.Scheduler
	locker    lock.Locker
	audit     *audit.Dispatcher
	metrics   *metrics.Collector
}

func NewCreateAppointment(
	repo domain.Repository,
	scheduler *scheduling.Scheduler,
	locker lock.Locker,
	audit *audit.Dispatcher,
	metrics *metrics.Collector,
) *CreateAppointment {
	return &CreateAppointment{
		repo:      repo,
		scheduler: scheduler,
		locker:    locker,
		audit:     audit,
		metrics:   metrics,
	}
}

// ======================================================
// EXECUTE
// ======================================================

func (uc *CreateAppointment) Execute(
	ctx context.Context,
	in CreateAppointmentInput,
) (*models.Appointment, error) {

	// --------------------------------------------------
	// 1️⃣ Paciente
	// --------------------------------------------------
	patient, err := uc.repo.GetPatient(ctx, trim(in.PatientID))
	if err != nil {
		return nil, err
	}

	// --------------------------------------------------
	// 2️⃣ Data / hora / sala
	// --------------------------------------------------
	slot := slotInput{
		Date:     trim(in.Date),
		Time:     trim(in.Time),
		Room:     trim(in.Room),
		Duration: in.Duration,
	}
	if err := validateSlot(uc.scheduler.Hours(), slot); err != nil {
		uc.metrics.Booking("create", "invalid")
		return nil, err
	}

	ap := &models.Appointment{
		PatientID:   patient.ID,
		PatientName: patient.FullName(),
		Type:        trim(in.Type),
		Date:        slot.Date,
		Time:        slot.Time,
		Room:        slot.Room,
		Duration:    slot.Duration,
		Status:      string(domain.InitialStatus()),
		Notes:       trim(in.Notes),
	}

	// --------------------------------------------------
	// 3️⃣ Reverificação + criação sob o lock da sala
	// --------------------------------------------------
	err = withBookingLock(ctx, uc.locker, uc.repo, slot.Date, slot.Room,
		func(ctx context.Context, repo domain.Repository) error {
			ok, err := uc.scheduler.WithRepository(repo).IsAvailable(
				ctx, slot.Date, slot.Time, slot.Room, slot.Duration, 0,
			)
			if err != nil {
				return err
			}
			if !ok {
				return domain.ErrTimeConflict
			}
			return repo.CreateAppointment(ctx, ap)
		},
	)
	if err != nil {
		uc.metrics.Booking("create", outcome(err))
		return nil, err
	}
	uc.metrics.Booking("create", "ok")

	// --------------------------------------------------
	// 4️⃣ Auditoria
	// --------------------------------------------------
	uc.audit.Dispatch(ctx, audit.Event{
		Action:   "appointment_created",
		Entity:   "appointment",
		EntityID: strconv.FormatUint(uint64(ap.ID), 10),
		Metadata: map[string]any{
			"patient_id": ap.PatientID,
			"date":       ap.Date,
			"time":       ap.Time,
			"room":       ap.Room,
			"duration":   ap.Duration,
		},
	})

	return ap, nil
}

func outcome(err error) string {
	if err == nil {
		return "ok"
	}
	if errors.Is(err, domain.ErrTimeConflict) {
		return "conflict"
	}
	return "error"
}
