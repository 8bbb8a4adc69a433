package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	domain "github.com/BruksfildServices01/dental-scheduler/internal/domain/appointment"
	"github.com/BruksfildServices01/dental-scheduler/internal/httperr"
	"github.com/BruksfildServices01/dental-scheduler/internal/lock"
	"github.com/BruksfildServices01/dental-scheduler/internal/models"
)

type AppointmentGormRepository struct {
	db *gorm.DB
}

func NewAppointmentGormRepository(db *gorm.DB) *AppointmentGormRepository {
	return &AppointmentGormRepository{db: db}
}

// --------------------------------------------------
// Scheduling
// --------------------------------------------------

func (r *AppointmentGormRepository) ListByDateAndRoom(
	ctx context.Context,
	date string,
	room string,
) ([]models.Appointment, error) {

	var apps []models.Appointment
	if err := r.db.WithContext(ctx).
		Select("id", "date", "time", "room", "duration", "status").
		Where("date = ? AND room = ? AND status <> ?", date, room, string(domain.StatusCancelled)).
		Find(&apps).Error; err != nil {
		return nil, fmt.Errorf("list appointments by date and room: %w", err)
	}

	return apps, nil
}

// WithBookingLock runs fn in a transaction holding a postgres advisory lock
// on (date, room). The lock is released on commit or rollback.
func (r *AppointmentGormRepository) WithBookingLock(
	ctx context.Context,
	date string,
	room string,
	fn domain.BookingFunc,
) error {

	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Exec(
			"SELECT pg_advisory_xact_lock(hashtext(?))",
			lock.BookingKey(date, room),
		).Error; err != nil {
			return fmt.Errorf("advisory lock: %w", err)
		}

		return fn(ctx, &AppointmentGormRepository{db: tx})
	})
}

// --------------------------------------------------
// Appointment
// --------------------------------------------------

func (r *AppointmentGormRepository) CreateAppointment(
	ctx context.Context,
	ap *models.Appointment,
) error {
	return mapWriteError(r.db.WithContext(ctx).Create(ap).Error)
}

func (r *AppointmentGormRepository) GetAppointment(
	ctx context.Context,
	id uint,
) (*models.Appointment, error) {

	var ap models.Appointment
	if err := r.db.WithContext(ctx).First(&ap, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrAppointmentNotFound
		}
		return nil, err
	}
	return &ap, nil
}

// GetAppointmentForUpdate loads the row with FOR UPDATE; only meaningful
// inside WithBookingLock.
func (r *AppointmentGormRepository) GetAppointmentForUpdate(
	ctx context.Context,
	id uint,
) (*models.Appointment, error) {

	var ap models.Appointment
	if err := r.db.WithContext(ctx).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		First(&ap, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrAppointmentNotFound
		}
		return nil, err
	}
	return &ap, nil
}

func (r *AppointmentGormRepository) UpdateAppointment(
	ctx context.Context,
	ap *models.Appointment,
) error {
	return mapWriteError(r.db.WithContext(ctx).Save(ap).Error)
}

// UpdateStatus skips the model hooks: BeforeSave recomputes the minute
// bounds from columns this statement does not load.
func (r *AppointmentGormRepository) UpdateStatus(
	ctx context.Context,
	id uint,
	status domain.Status,
	reason string,
) error {

	res := r.db.WithContext(ctx).
		Session(&gorm.Session{SkipHooks: true}).
		Model(&models.Appointment{}).
		Where("id = ?", id).
		Updates(map[string]any{
			"status":        string(status),
			"status_reason": reason,
			"updated_at":    time.Now(),
		})
	if res.Error != nil {
		return mapWriteError(res.Error)
	}
	if res.RowsAffected == 0 {
		return domain.ErrAppointmentNotFound
	}
	return nil
}

func (r *AppointmentGormRepository) DeleteAppointment(
	ctx context.Context,
	id uint,
) error {

	res := r.db.WithContext(ctx).Delete(&models.Appointment{}, id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return domain.ErrAppointmentNotFound
	}
	return nil
}

func (r *AppointmentGormRepository) ListAppointments(
	ctx context.Context,
	filter domain.Filter,
) ([]models.Appointment, error) {

	q := r.db.WithContext(ctx).Model(&models.Appointment{})

	if filter.Date != "" {
		q = q.Where("date = ?", filter.Date)
	}
	if filter.PatientID != "" {
		q = q.Where("patient_id = ?", filter.PatientID)
	}
	if filter.Status != "" {
		q = q.Where("status = ?", string(filter.Status))
	}
	if filter.Room != "" {
		q = q.Where("room = ?", filter.Room)
	}

	var apps []models.Appointment
	if err := q.
		Order("date DESC").
		Order("time ASC").
		Order("room ASC").
		Find(&apps).Error; err != nil {
		return nil, err
	}

	return apps, nil
}

// --------------------------------------------------
// Patient
// --------------------------------------------------

func (r *AppointmentGormRepository) GetPatient(
	ctx context.Context,
	id string,
) (*models.Patient, error) {
	return NewPatientGormRepository(r.db).GetPatient(ctx, id)
}

// mapWriteError turns a violation of the no-overlap exclusion constraint
// into the same business error the scheduler produces.
func mapWriteError(err error) error {
	if err == nil {
		return nil
	}
	if httperr.IsExclusionConflict(err) {
		return domain.ErrTimeConflict
	}
	return err
}

// Compile-time check
var _ domain.Repository = (*AppointmentGormRepository)(nil)
