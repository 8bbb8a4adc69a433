package labwork

import (
	"context"
	"errors"
	"strconv"
	"strings"
	"time"

	"github.com/BruksfildServices01/dental-scheduler/internal/audit"
	domain "github.com/BruksfildServices01/dental-scheduler/internal/domain/labwork"
	patientdomain "github.com/BruksfildServices01/dental-scheduler/internal/domain/patient"
	"github.com/BruksfildServices01/dental-scheduler/internal/dto"
	"github.com/BruksfildServices01/dental-scheduler/internal/models"
	"github.com/BruksfildServices01/dental-scheduler/internal/timezone"
	"github.com/BruksfildServices01/dental-scheduler/internal/validators"
)

const dateLayout = "2006-01-02"

type LabWorkInput struct {
	LabName      string
	Phone        string
	TypeWork     string
	Tooth        string
	PatientID    string
	PatientName  string
	Status       string
	DateSent     string
	DateExpected string
	Notes        string
}

// LabWorks follows prostheses sent out to laboratories.
type LabWorks struct {
	repo     domain.Repository
	patients patientdomain.Repository
	audit    *audit.Dispatcher
	timezone string

	now func() time.Time
}

func NewLabWorks(
	repo domain.Repository,
	patients patientdomain.Repository,
	audit *audit.Dispatcher,
	tz string,
) *LabWorks {
	return &LabWorks{
		repo:     repo,
		patients: patients,
		audit:    audit,
		timezone: tz,
		now:      time.Now,
	}
}

func (uc *LabWorks) Create(ctx context.Context, in LabWorkInput) (*dto.LabWorkDTO, error) {
	lw := &models.LabWork{}
	if err := uc.fill(ctx, lw, in); err != nil {
		return nil, err
	}
	if err := uc.repo.CreateLabWork(ctx, lw); err != nil {
		return nil, err
	}

	uc.audit.Dispatch(ctx, audit.Event{
		Action:   "lab_work_created",
		Entity:   "lab_work",
		EntityID: strconv.FormatUint(uint64(lw.ID), 10),
		Metadata: map[string]any{"lab_name": lw.LabName, "patient_id": lw.PatientID},
	})

	out := uc.toDTO(*lw)
	return &out, nil
}

func (uc *LabWorks) Get(ctx context.Context, id uint) (*dto.LabWorkDTO, error) {
	lw, err := uc.repo.GetLabWork(ctx, id)
	if err != nil {
		return nil, err
	}
	out := uc.toDTO(*lw)
	return &out, nil
}

func (uc *LabWorks) Update(ctx context.Context, id uint, in LabWorkInput) (*dto.LabWorkDTO, error) {
	lw, err := uc.repo.GetLabWork(ctx, id)
	if err != nil {
		return nil, err
	}
	before := lw.Status

	if err := uc.fill(ctx, lw, in); err != nil {
		return nil, err
	}
	if err := uc.repo.UpdateLabWork(ctx, lw); err != nil {
		return nil, err
	}

	uc.audit.Dispatch(ctx, audit.Event{
		Action:   "lab_work_updated",
		Entity:   "lab_work",
		EntityID: strconv.FormatUint(uint64(id), 10),
		Metadata: map[string]any{"from_status": before, "to_status": lw.Status},
	})

	out := uc.toDTO(*lw)
	return &out, nil
}

func (uc *LabWorks) Delete(ctx context.Context, id uint) error {
	lw, err := uc.repo.GetLabWork(ctx, id)
	if err != nil {
		return err
	}
	if err := uc.repo.DeleteLabWork(ctx, id); err != nil {
		return err
	}

	uc.audit.Dispatch(ctx, audit.Event{
		Action:   "lab_work_deleted",
		Entity:   "lab_work",
		EntityID: strconv.FormatUint(uint64(id), 10),
		Metadata: map[string]any{"lab_name": lw.LabName, "patient_name": lw.PatientName},
	})

	return nil
}

// Search lists lab works matching query and, when non-empty, status.
func (uc *LabWorks) Search(ctx context.Context, query, status string) ([]dto.LabWorkDTO, error) {
	filter := domain.Filter{Query: strings.TrimSpace(query)}
	if status != "" {
		s, err := domain.ParseStatus(status)
		if err != nil {
			return nil, err
		}
		filter.Status = s
	}

	works, err := uc.repo.SearchLabWorks(ctx, filter)
	if err != nil {
		return nil, err
	}

	out := make([]dto.LabWorkDTO, 0, len(works))
	for _, lw := range works {
		out = append(out, uc.toDTO(lw))
	}
	return out, nil
}

// fill copies the patient name from the record when an id is given, and
// defaults the dates: sent today, expected a week later. A patient deleted
// after the work was registered keeps the name copied back then.
func (uc *LabWorks) fill(ctx context.Context, lw *models.LabWork, in LabWorkInput) error {
	status, err := domain.ParseStatus(strings.TrimSpace(in.Status))
	if err != nil {
		return err
	}
	prevID, prevName := lw.PatientID, lw.PatientName

	lw.LabName = validators.NormalizeName(in.LabName)
	lw.Phone = validators.NormalizeName(in.Phone)
	lw.TypeWork = validators.NormalizeName(in.TypeWork)
	lw.Tooth = strings.TrimSpace(in.Tooth)
	lw.PatientID = strings.TrimSpace(in.PatientID)
	lw.PatientName = validators.NormalizeName(in.PatientName)
	lw.Status = string(status)
	lw.Notes = in.Notes

	if lw.LabName == "" {
		return domain.ErrInvalidLabWork
	}
	if lw.Phone != "" && !validators.IsPhone(lw.Phone) {
		return domain.ErrInvalidLabWork
	}

	if lw.PatientID != "" {
		p, err := uc.patients.GetPatient(ctx, lw.PatientID)
		switch {
		case err == nil:
			lw.PatientName = p.FullName()
		case errors.Is(err, patientdomain.ErrPatientNotFound) && lw.PatientID == prevID:
			// patient deleted since; the copied name stays
			lw.PatientName = prevName
		default:
			return err
		}
	}

	lw.DateSent = strings.TrimSpace(in.DateSent)
	if lw.DateSent == "" {
		lw.DateSent = timezone.DateIn(uc.now(), uc.timezone)
	}
	if _, err := time.Parse(dateLayout, lw.DateSent); err != nil {
		return domain.ErrInvalidLabWork
	}

	lw.DateExpected = strings.TrimSpace(in.DateExpected)
	if lw.DateExpected == "" {
		lw.DateExpected = domain.DefaultExpected(lw.DateSent)
	}
	if _, err := time.Parse(dateLayout, lw.DateExpected); err != nil || lw.DateExpected < lw.DateSent {
		return domain.ErrInvalidLabWork
	}

	return nil
}

func (uc *LabWorks) toDTO(lw models.LabWork) dto.LabWorkDTO {
	today := timezone.DateIn(uc.now(), uc.timezone)
	return dto.LabWorkDTO{LabWork: lw, Overdue: domain.Overdue(lw, today)}
}
