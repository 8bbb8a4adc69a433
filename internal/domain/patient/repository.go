package patient

import (
	"context"

	"github.com/BruksfildServices01/dental-scheduler/internal/httperr"
	"github.com/BruksfildServices01/dental-scheduler/internal/models"
)

var (
	ErrPatientNotFound    = httperr.ErrBusiness("patient_not_found")
	ErrInvalidPatient     = httperr.ErrBusiness("invalid_patient")
	ErrDuplicatePatientID = httperr.ErrBusiness("patient_id_taken")
	ErrPatientHasActs     = httperr.ErrBusiness("patient_has_acts")
)

type Repository interface {
	// CreatePatient assigns p.ID from the year scoped sequence and stores p.
	CreatePatient(ctx context.Context, year int, p *models.Patient) error

	GetPatient(ctx context.Context, id string) (*models.Patient, error)

	// UpdatePatient rewrites the editable fields of p; the id never changes.
	UpdatePatient(ctx context.Context, p *models.Patient) error

	// DeletePatient fails with ErrPatientHasActs while acts still reference
	// the patient. Appointments and lab works keep their copied name.
	DeletePatient(ctx context.Context, id string) error

	// SearchPatients matches query against names, CIN/passport and id,
	// case-insensitively. An empty query lists every patient.
	SearchPatients(ctx context.Context, query string, limit int) ([]models.Patient, error)
}
