package appointment

import (
	"context"
	"strconv"

	"github.com/BruksfildServices01/dental-scheduler/internal/audit"
	domain "github.com/BruksfildServices01/dental-scheduler/internal/domain/appointment"
)

type DeleteAppointment struct {
	repo  domain.Repository
	audit *audit.Dispatcher
}

func NewDeleteAppointment(
	repo domain.Repository,
	audit *audit.Dispatcher,
) *DeleteAppointment {
	return &DeleteAppointment{
		repo:  repo,
		audit: audit,
	}
}

// Execute removes the appointment for good; there is no soft delete.
func (uc *DeleteAppointment) Execute(ctx context.Context, id uint) error {
	ap, err := uc.repo.GetAppointment(ctx, id)
	if err != nil {
		return err
	}

	if err := uc.repo.DeleteAppointment(ctx, id); err != nil {
		return err
	}

	uc.audit.Dispatch(ctx, audit.Event{
		Action:   "appointment_deleted",
		Entity:   "appointment",
		EntityID: strconv.FormatUint(uint64(id), 10),
		Metadata: map[string]any{
			"patient_id": ap.PatientID,
			"date":       ap.Date,
			"time":       ap.Time,
			"room":       ap.Room,
		},
	})

	return nil
}
