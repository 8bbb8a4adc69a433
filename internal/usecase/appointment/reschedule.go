package appointment

import (
	"context"
	"strconv"

	"github.com/BruksfildServices01/dental-scheduler/internal/audit"
	domain "github.com/BruksfildServices01/dental-scheduler/internal/domain/appointment"
	"github.com/BruksfildServices01/dental-scheduler/internal/lock"
	"github.com/BruksfildServices01/dental-scheduler/internal/metrics"
	"github.com/BruksfildServices01/dental-scheduler/internal/models"
	"github.com/BruksfildServices01/dental-scheduler/internal/scheduling"
)

// RescheduleAppointmentInput carries the edit form. Empty fields (zero
// duration) keep the current value.
type RescheduleAppointmentInput struct {
	PatientID string
	Type      string

	Date     string
	Time     string
	Room     string
	Duration int

	Notes *string
}

type RescheduleAppointment struct {
	repo      domain.Repository
	scheduler *scheduling.Scheduler
	locker    lock.Locker
	audit     *audit.Dispatcher
	metrics   *metrics.Collector
}

func NewRescheduleAppointment(
	repo domain.Repository,
	scheduler *scheduling.Scheduler,
	locker lock.Locker,
	audit *audit.Dispatcher,
	metrics *metrics.Collector,
) *RescheduleAppointment {
	return &RescheduleAppointment{
		repo:      repo,
		scheduler: scheduler,
		locker:    locker,
		audit:     audit,
		metrics:   metrics,
	}
}

func (uc *RescheduleAppointment) Execute(
	ctx context.Context,
	id uint,
	in RescheduleAppointmentInput,
) (*models.Appointment, error) {

	current, err := uc.repo.GetAppointment(ctx, id)
	if err != nil {
		return nil, err
	}

	slot := slotInput{
		Date:     orDefault(trim(in.Date), current.Date),
		Time:     orDefault(trim(in.Time), current.Time),
		Room:     orDefault(trim(in.Room), current.Room),
		Duration: current.Duration,
	}
	if in.Duration != 0 {
		slot.Duration = in.Duration
	}
	if err := validateSlot(uc.scheduler.Hours(), slot); err != nil {
		uc.metrics.Booking("reschedule", "invalid")
		return nil, err
	}

	var patient *models.Patient
	if pid := trim(in.PatientID); pid != "" && pid != current.PatientID {
		if patient, err = uc.repo.GetPatient(ctx, pid); err != nil {
			return nil, err
		}
	}

	var updated *models.Appointment
	err = withBookingLock(ctx, uc.locker, uc.repo, slot.Date, slot.Room,
		func(ctx context.Context, repo domain.Repository) error {
			ap, err := repo.GetAppointmentForUpdate(ctx, id)
			if err != nil {
				return err
			}

			// cancelled appointments hold no slot, nothing to re-check
			if domain.Status(ap.Status).BlocksSlot() {
				ok, err := uc.scheduler.WithRepository(repo).IsAvailable(
					ctx, slot.Date, slot.Time, slot.Room, slot.Duration, ap.ID,
				)
				if err != nil {
					return err
				}
				if !ok {
					return domain.ErrTimeConflict
				}
			}

			ap.Date = slot.Date
			ap.Time = slot.Time
			ap.Room = slot.Room
			ap.Duration = slot.Duration
			if t := trim(in.Type); t != "" {
				ap.Type = t
			}
			if in.Notes != nil {
				ap.Notes = trim(*in.Notes)
			}
			if patient != nil {
				ap.PatientID = patient.ID
				ap.PatientName = patient.FullName()
			}

			if err := repo.UpdateAppointment(ctx, ap); err != nil {
				return err
			}
			updated = ap
			return nil
		},
	)
	if err != nil {
		uc.metrics.Booking("reschedule", outcome(err))
		return nil, err
	}
	uc.metrics.Booking("reschedule", "ok")

	uc.audit.Dispatch(ctx, audit.Event{
		Action:   "appointment_rescheduled",
		Entity:   "appointment",
		EntityID: strconv.FormatUint(uint64(updated.ID), 10),
		Metadata: map[string]any{
			"from": map[string]any{"date": current.Date, "time": current.Time, "room": current.Room, "duration": current.Duration},
			"to":   map[string]any{"date": updated.Date, "time": updated.Time, "room": updated.Room, "duration": updated.Duration},
		},
	})

	return updated, nil
}

func orDefault(v, def string) string {
	if v == "" {
		return def
	}
	return v
}
