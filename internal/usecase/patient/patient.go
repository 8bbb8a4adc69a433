package patient

import (
	"context"
	"time"

	"github.com/BruksfildServices01/dental-scheduler/internal/audit"
	domain "github.com/BruksfildServices01/dental-scheduler/internal/domain/patient"
	"github.com/BruksfildServices01/dental-scheduler/internal/dto"
	"github.com/BruksfildServices01/dental-scheduler/internal/metrics"
	"github.com/BruksfildServices01/dental-scheduler/internal/models"
	"github.com/BruksfildServices01/dental-scheduler/internal/timezone"
	"github.com/BruksfildServices01/dental-scheduler/internal/validators"
)

type CreatePatientInput struct {
	FirstName   string
	LastName    string
	CINPassport string
	BirthDate   string
	Phone       string
	Email       string
	Notes       string
}

type CreatePatient struct {
	repo     domain.Repository
	audit    *audit.Dispatcher
	metrics  *metrics.Collector
	timezone string

	// EmailCheck, when set, validates the email beyond its syntax.
	EmailCheck func(email string) bool

	now func() time.Time
}

func NewCreatePatient(
	repo domain.Repository,
	audit *audit.Dispatcher,
	metrics *metrics.Collector,
	tz string,
) *CreatePatient {
	return &CreatePatient{
		repo:     repo,
		audit:    audit,
		metrics:  metrics,
		timezone: tz,
		now:      time.Now,
	}
}

func (uc *CreatePatient) Execute(ctx context.Context, in CreatePatientInput) (*models.Patient, error) {
	now := uc.now().In(timezone.Location(uc.timezone))

	p, err := normalize(in, now, uc.EmailCheck)
	if err != nil {
		return nil, err
	}

	if err := uc.repo.CreatePatient(ctx, now.Year(), p); err != nil {
		return nil, err
	}
	uc.metrics.PatientCreated()

	uc.audit.Dispatch(ctx, audit.Event{
		Action:   "patient_created",
		Entity:   "patient",
		EntityID: p.ID,
	})

	return p, nil
}

// normalize trims the input and rejects what the reception form would.
func normalize(in CreatePatientInput, now time.Time, emailCheck func(string) bool) (*models.Patient, error) {
	p := &models.Patient{
		FirstName:   validators.NormalizeName(in.FirstName),
		LastName:    validators.NormalizeName(in.LastName),
		CINPassport: validators.NormalizeName(in.CINPassport),
		BirthDate:   validators.NormalizeName(in.BirthDate),
		Phone:       validators.NormalizeName(in.Phone),
		Email:       validators.NormalizeName(in.Email),
		Notes:       in.Notes,
	}

	if p.FirstName == "" || p.LastName == "" {
		return nil, domain.ErrInvalidPatient
	}
	if p.BirthDate != "" && !validators.IsBirthDate(p.BirthDate, now) {
		return nil, domain.ErrInvalidPatient
	}
	if p.Phone != "" && !validators.IsPhone(p.Phone) {
		return nil, domain.ErrInvalidPatient
	}
	if p.Email != "" && emailCheck != nil && !emailCheck(p.Email) {
		return nil, domain.ErrInvalidPatient
	}
	return p, nil
}

// UpdatePatient replaces the editable fields. Appointments and lab works
// keep the name they were booked with.
type UpdatePatient struct {
	repo     domain.Repository
	audit    *audit.Dispatcher
	timezone string

	EmailCheck func(email string) bool

	now func() time.Time
}

func NewUpdatePatient(
	repo domain.Repository,
	audit *audit.Dispatcher,
	tz string,
) *UpdatePatient {
	return &UpdatePatient{
		repo:     repo,
		audit:    audit,
		timezone: tz,
		now:      time.Now,
	}
}

func (uc *UpdatePatient) Execute(ctx context.Context, id string, in CreatePatientInput) (*models.Patient, error) {
	current, err := uc.repo.GetPatient(ctx, id)
	if err != nil {
		return nil, err
	}

	now := uc.now().In(timezone.Location(uc.timezone))
	p, err := normalize(in, now, uc.EmailCheck)
	if err != nil {
		return nil, err
	}
	p.ID = current.ID
	p.CreatedAt = current.CreatedAt

	if err := uc.repo.UpdatePatient(ctx, p); err != nil {
		return nil, err
	}

	uc.audit.Dispatch(ctx, audit.Event{
		Action:   "patient_updated",
		Entity:   "patient",
		EntityID: p.ID,
	})

	return p, nil
}

// ActCounter is the slice of the act repository DeletePatient needs.
type ActCounter interface {
	CountActsByPatient(ctx context.Context, patientID string) (int64, error)
}

// DeletePatient refuses while acts exist, since they carry the payment
// history. Appointments and lab works stay, with their copied name.
type DeletePatient struct {
	repo  domain.Repository
	acts  ActCounter
	audit *audit.Dispatcher
}

func NewDeletePatient(
	repo domain.Repository,
	acts ActCounter,
	audit *audit.Dispatcher,
) *DeletePatient {
	return &DeletePatient{
		repo:  repo,
		acts:  acts,
		audit: audit,
	}
}

func (uc *DeletePatient) Execute(ctx context.Context, id string) error {
	p, err := uc.repo.GetPatient(ctx, id)
	if err != nil {
		return err
	}

	n, err := uc.acts.CountActsByPatient(ctx, id)
	if err != nil {
		return err
	}
	if n > 0 {
		return domain.ErrPatientHasActs
	}

	if err := uc.repo.DeletePatient(ctx, id); err != nil {
		return err
	}

	uc.audit.Dispatch(ctx, audit.Event{
		Action:   "patient_deleted",
		Entity:   "patient",
		EntityID: id,
		Metadata: map[string]any{"name": p.FullName()},
	})

	return nil
}

type GetPatient struct {
	repo domain.Repository
}

func NewGetPatient(repo domain.Repository) *GetPatient {
	return &GetPatient{repo: repo}
}

func (uc *GetPatient) Execute(ctx context.Context, id string) (*models.Patient, error) {
	return uc.repo.GetPatient(ctx, id)
}

type SearchPatients struct {
	repo domain.Repository
}

func NewSearchPatients(repo domain.Repository) *SearchPatients {
	return &SearchPatients{repo: repo}
}

func (uc *SearchPatients) Execute(ctx context.Context, query string, limit int) ([]dto.PatientDTO, error) {
	if limit <= 0 || limit > 100 {
		limit = 50
	}

	patients, err := uc.repo.SearchPatients(ctx, query, limit)
	if err != nil {
		return nil, err
	}

	out := make([]dto.PatientDTO, 0, len(patients))
	for _, p := range patients {
		out = append(out, ToDTO(p))
	}
	return out, nil
}

func ToDTO(p models.Patient) dto.PatientDTO {
	return dto.PatientDTO{
		ID:          p.ID,
		DisplayID:   domain.DisplayID(p.ID),
		FirstName:   p.FirstName,
		LastName:    p.LastName,
		CINPassport: p.CINPassport,
		BirthDate:   p.BirthDate,
		Phone:       p.Phone,
		Email:       p.Email,
		Notes:       p.Notes,
	}
}
