package appointment

import (
	"context"

	"github.com/BruksfildServices01/dental-scheduler/internal/models"
)

// Filter mirrors the appointments table filters; zero fields are ignored.
type Filter struct {
	Date      string
	PatientID string
	Status    Status
	Room      string
}

// BookingFunc runs while the (date, room) booking lock is held. repo is bound
// to the same transaction as the lock.
type BookingFunc func(ctx context.Context, repo Repository) error

type Repository interface {
	// -------- Scheduling --------

	// ListByDateAndRoom returns the appointments of a room-day whose status
	// is not Annulé. Order is not significant.
	ListByDateAndRoom(
		ctx context.Context,
		date string,
		room string,
	) ([]models.Appointment, error)

	// WithBookingLock serialises booking decisions per (date, room).
	WithBookingLock(
		ctx context.Context,
		date string,
		room string,
		fn BookingFunc,
	) error

	// -------- Appointment (CRUD) --------
	CreateAppointment(
		ctx context.Context,
		ap *models.Appointment,
	) error

	GetAppointment(
		ctx context.Context,
		id uint,
	) (*models.Appointment, error)

	// GetAppointmentForUpdate also row-locks the appointment when called on
	// the repo handed to a BookingFunc.
	GetAppointmentForUpdate(
		ctx context.Context,
		id uint,
	) (*models.Appointment, error)

	UpdateAppointment(
		ctx context.Context,
		ap *models.Appointment,
	) error

	// UpdateStatus writes status and status_reason only; every other column
	// keeps its stored value.
	UpdateStatus(
		ctx context.Context,
		id uint,
		status Status,
		reason string,
	) error

	DeleteAppointment(
		ctx context.Context,
		id uint,
	) error

	ListAppointments(
		ctx context.Context,
		filter Filter,
	) ([]models.Appointment, error)

	// -------- Patient --------
	GetPatient(
		ctx context.Context,
		id string,
	) (*models.Patient, error)
}
