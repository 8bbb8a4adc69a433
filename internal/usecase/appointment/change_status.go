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

type ChangeStatus struct {
	repo      domain.Repository
	scheduler *scheduling.Scheduler
	locker    lock.Locker
	audit     *audit.Dispatcher
	metrics   *metrics.Collector
}

func NewChangeStatus(
	repo domain.Repository,
	scheduler *scheduling.Scheduler,
	locker lock.Locker,
	audit *audit.Dispatcher,
	metrics *metrics.Collector,
) *ChangeStatus {
	return &ChangeStatus{
		repo:      repo,
		scheduler: scheduler,
		locker:    locker,
		audit:     audit,
		metrics:   metrics,
	}
}

// errMoved reports that the appointment left the locked (date, room)
// between the unlocked read and the lock.
var errMoved = errors.New("appointment moved while locking")

const statusChangeAttempts = 3

// Execute changes status and reason only. The row is re-read under the
// booking lock of its room-day and only the status columns are written, so a
// concurrent reschedule is never undone. The slot is re-checked when a
// cancelled appointment is brought back and would occupy it again.
func (uc *ChangeStatus) Execute(
	ctx context.Context,
	id uint,
	rawStatus string,
	reason string,
) (*models.Appointment, error) {

	status, err := domain.ParseStatus(rawStatus)
	if err != nil {
		return nil, err
	}

	var (
		ap       *models.Appointment
		previous domain.Status
	)
	for attempt := 0; attempt < statusChangeAttempts; attempt++ {
		ap, previous, err = uc.apply(ctx, id, status, reason)
		if !errors.Is(err, errMoved) {
			break
		}
	}
	if errors.Is(err, errMoved) {
		err = domain.ErrTimeConflict
	}

	reactivation := !previous.BlocksSlot() && status.BlocksSlot()
	if reactivation || errors.Is(err, domain.ErrTimeConflict) {
		uc.metrics.Booking("reactivate", outcome(err))
	}
	if err != nil {
		return nil, err
	}

	uc.audit.Dispatch(ctx, audit.Event{
		Action:   "appointment_status_changed",
		Entity:   "appointment",
		EntityID: strconv.FormatUint(uint64(ap.ID), 10),
		Metadata: map[string]any{
			"from":   string(previous),
			"to":     ap.Status,
			"reason": ap.StatusReason,
		},
	})

	return ap, nil
}

func (uc *ChangeStatus) apply(
	ctx context.Context,
	id uint,
	status domain.Status,
	reason string,
) (*models.Appointment, domain.Status, error) {

	current, err := uc.repo.GetAppointment(ctx, id)
	if err != nil {
		return nil, "", err
	}

	var (
		updated  *models.Appointment
		previous domain.Status
	)
	err = withBookingLock(ctx, uc.locker, uc.repo, current.Date, current.Room,
		func(ctx context.Context, repo domain.Repository) error {
			locked, err := repo.GetAppointmentForUpdate(ctx, id)
			if err != nil {
				return err
			}
			if locked.Date != current.Date || locked.Room != current.Room {
				return errMoved
			}
			previous = domain.Status(locked.Status)

			if !previous.BlocksSlot() && status.BlocksSlot() {
				ok, err := uc.scheduler.WithRepository(repo).IsAvailable(
					ctx, locked.Date, locked.Time, locked.Room, locked.Duration, locked.ID,
				)
				if err != nil {
					return err
				}
				if !ok {
					return domain.ErrTimeConflict
				}
			}

			if err := domain.ApplyStatus(locked, status, reason); err != nil {
				return err
			}
			if err := repo.UpdateStatus(ctx, id, status, locked.StatusReason); err != nil {
				return err
			}
			updated = locked
			return nil
		},
	)
	return updated, previous, err
}
