package appointment

import (
	"context"

	domain "github.com/BruksfildServices01/dental-scheduler/internal/domain/appointment"
	"github.com/BruksfildServices01/dental-scheduler/internal/dto"
	"github.com/BruksfildServices01/dental-scheduler/internal/models"
)

type ListAppointments struct {
	repo domain.Repository
}

func NewListAppointments(repo domain.Repository) *ListAppointments {
	return &ListAppointments{repo: repo}
}

// Execute returns appointments sorted by date (newest first) then time.
func (uc *ListAppointments) Execute(
	ctx context.Context,
	filter domain.Filter,
) ([]dto.AppointmentListDTO, error) {

	apps, err := uc.repo.ListAppointments(ctx, filter)
	if err != nil {
		return nil, err
	}

	out := make([]dto.AppointmentListDTO, 0, len(apps))
	for _, ap := range apps {
		out = append(out, dto.NewAppointmentListDTO(ap, endTime(ap.Time, ap.Duration)))
	}
	return out, nil
}

func (uc *ListAppointments) Get(ctx context.Context, id uint) (*models.Appointment, error) {
	return uc.repo.GetAppointment(ctx, id)
}
