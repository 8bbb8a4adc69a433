package act

import (
	"context"

	"github.com/BruksfildServices01/dental-scheduler/internal/models"
)

type Repository interface {
	// -------- Acts --------

	CreateAct(ctx context.Context, a *models.Act) error

	// GetAct loads the act with its phases, their photos and its payments.
	GetAct(ctx context.Context, id uint) (*models.Act, error)

	// UpdateAct writes the act's own columns; phases and payments are left alone.
	UpdateAct(ctx context.Context, a *models.Act) error

	// DeleteAct removes the act together with its phases, photos and payments.
	DeleteAct(ctx context.Context, id uint) error

	// ListActsByPatient returns fully loaded acts ordered by date, then id.
	ListActsByPatient(ctx context.Context, patientID string) ([]models.Act, error)

	CountActsByPatient(ctx context.Context, patientID string) (int64, error)

	// -------- Treatment phases --------

	CreatePhase(ctx context.Context, p *models.TreatmentPhase) error
	GetPhase(ctx context.Context, id uint) (*models.TreatmentPhase, error)
	UpdatePhase(ctx context.Context, p *models.TreatmentPhase) error
	DeletePhase(ctx context.Context, id uint) error

	// -------- Photos --------

	CreatePhoto(ctx context.Context, p *models.PhasePhoto) error
	GetPhoto(ctx context.Context, id uint) (*models.PhasePhoto, error)
	DeletePhoto(ctx context.Context, id uint) error

	// -------- Payments --------

	CreatePayment(ctx context.Context, p *models.Payment) error
	GetPayment(ctx context.Context, id uint) (*models.Payment, error)
	UpdatePayment(ctx context.Context, p *models.Payment) error
	DeletePayment(ctx context.Context, id uint) error
}

// PhotoKeys lists the object keys referenced by the phases of an act.
func PhotoKeys(phases []models.TreatmentPhase) []string {
	var keys []string
	for _, ph := range phases {
		for _, photo := range ph.Photos {
			keys = append(keys, photo.ObjectKey)
		}
	}
	return keys
}
