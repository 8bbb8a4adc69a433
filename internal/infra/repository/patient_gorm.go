package repository

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"gorm.io/gorm"

	domain "github.com/BruksfildServices01/dental-scheduler/internal/domain/patient"
	"github.com/BruksfildServices01/dental-scheduler/internal/httperr"
	"github.com/BruksfildServices01/dental-scheduler/internal/models"
)

type PatientGormRepository struct {
	db *gorm.DB
}

func NewPatientGormRepository(db *gorm.DB) *PatientGormRepository {
	return &PatientGormRepository{db: db}
}

// CreatePatient serialises id allocation per year with an advisory lock so
// two concurrent registrations never share a sequence number.
func (r *PatientGormRepository) CreatePatient(
	ctx context.Context,
	year int,
	p *models.Patient,
) error {

	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Exec(
			"SELECT pg_advisory_xact_lock(hashtext(?))",
			fmt.Sprintf("patient:%d", year),
		).Error; err != nil {
			return fmt.Errorf("advisory lock: %w", err)
		}

		var ids []string
		if err := tx.Model(&models.Patient{}).
			Where("id LIKE ?", fmt.Sprintf("%%/%d", year)).
			Pluck("id", &ids).Error; err != nil {
			return err
		}

		p.ID = domain.NextID(ids, year)
		if err := tx.Create(p).Error; err != nil {
			if httperr.IsUniqueViolation(err) {
				return domain.ErrDuplicatePatientID
			}
			return err
		}
		return nil
	})
}

func (r *PatientGormRepository) GetPatient(
	ctx context.Context,
	id string,
) (*models.Patient, error) {

	var p models.Patient
	if err := r.db.WithContext(ctx).
		Where("id = ?", id).
		First(&p).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrPatientNotFound
		}
		return nil, err
	}
	return &p, nil
}

func (r *PatientGormRepository) UpdatePatient(
	ctx context.Context,
	p *models.Patient,
) error {

	res := r.db.WithContext(ctx).
		Model(&models.Patient{}).
		Where("id = ?", p.ID).
		Updates(map[string]any{
			"first_name":   p.FirstName,
			"last_name":    p.LastName,
			"cin_passport": p.CINPassport,
			"birth_date":   p.BirthDate,
			"phone":        p.Phone,
			"email":        p.Email,
			"notes":        p.Notes,
			"updated_at":   time.Now(),
		})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return domain.ErrPatientNotFound
	}
	return nil
}

// DeletePatient relies on the RESTRICT foreign key from acts; the use case
// checks first, this catches an act inserted in between.
func (r *PatientGormRepository) DeletePatient(
	ctx context.Context,
	id string,
) error {

	res := r.db.WithContext(ctx).
		Where("id = ?", id).
		Delete(&models.Patient{})
	if res.Error != nil {
		if httperr.IsForeignKeyViolation(res.Error) {
			return domain.ErrPatientHasActs
		}
		return res.Error
	}
	if res.RowsAffected == 0 {
		return domain.ErrPatientNotFound
	}
	return nil
}

func (r *PatientGormRepository) SearchPatients(
	ctx context.Context,
	query string,
	limit int,
) ([]models.Patient, error) {

	q := r.db.WithContext(ctx).Model(&models.Patient{})

	if term := strings.TrimSpace(query); term != "" {
		like := "%" + strings.ToLower(term) + "%"
		q = q.Where(
			"LOWER(first_name) LIKE ? OR LOWER(last_name) LIKE ? OR LOWER(first_name || ' ' || last_name) LIKE ? OR LOWER(cin_passport) LIKE ? OR id LIKE ?",
			like, like, like, like, like,
		)
	}
	if limit > 0 {
		q = q.Limit(limit)
	}

	var patients []models.Patient
	if err := q.
		Order("last_name ASC").
		Order("first_name ASC").
		Find(&patients).Error; err != nil {
		return nil, err
	}

	return patients, nil
}

var _ domain.Repository = (*PatientGormRepository)(nil)
