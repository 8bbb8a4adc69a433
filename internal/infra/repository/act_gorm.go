package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"

	domain "github.com/BruksfildServices01/dental-scheduler/internal/domain/act"
	"github.com/BruksfildServices01/dental-scheduler/internal/httperr"
	"github.com/BruksfildServices01/dental-scheduler/internal/models"
)

type ActGormRepository struct {
	db *gorm.DB
}

func NewActGormRepository(db *gorm.DB) *ActGormRepository {
	return &ActGormRepository{db: db}
}

// loaded preloads what an act card shows, oldest first.
func (r *ActGormRepository) loaded(ctx context.Context) *gorm.DB {
	return r.db.WithContext(ctx).
		Preload("Phases", func(db *gorm.DB) *gorm.DB {
			return db.Order("date ASC").Order("id ASC")
		}).
		Preload("Phases.Photos", func(db *gorm.DB) *gorm.DB {
			return db.Order("id ASC")
		}).
		Preload("Payments", func(db *gorm.DB) *gorm.DB {
			return db.Order("date ASC").Order("id ASC")
		})
}

// --------------------------------------------------
// Acts
// --------------------------------------------------

func (r *ActGormRepository) CreateAct(ctx context.Context, a *models.Act) error {
	if err := r.db.WithContext(ctx).Omit("Phases", "Payments", "Patient").Create(a).Error; err != nil {
		return fmt.Errorf("create act: %w", err)
	}
	return nil
}

func (r *ActGormRepository) GetAct(ctx context.Context, id uint) (*models.Act, error) {
	var a models.Act
	if err := r.loaded(ctx).First(&a, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrActNotFound
		}
		return nil, err
	}
	return &a, nil
}

func (r *ActGormRepository) UpdateAct(ctx context.Context, a *models.Act) error {
	res := r.db.WithContext(ctx).
		Model(&models.Act{}).
		Where("id = ?", a.ID).
		Updates(map[string]any{
			"type":        a.Type,
			"tooth":       a.Tooth,
			"price_cents": a.PriceCents,
			"date":        a.Date,
			"notes":       a.Notes,
			"updated_at":  time.Now(),
		})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return domain.ErrActNotFound
	}
	return nil
}

// DeleteAct leans on the ON DELETE CASCADE of phases, photos and payments.
func (r *ActGormRepository) DeleteAct(ctx context.Context, id uint) error {
	res := r.db.WithContext(ctx).Delete(&models.Act{}, id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return domain.ErrActNotFound
	}
	return nil
}

func (r *ActGormRepository) ListActsByPatient(ctx context.Context, patientID string) ([]models.Act, error) {
	var acts []models.Act
	if err := r.loaded(ctx).
		Where("patient_id = ?", patientID).
		Order("date ASC").
		Order("id ASC").
		Find(&acts).Error; err != nil {
		return nil, fmt.Errorf("list acts: %w", err)
	}
	return acts, nil
}

func (r *ActGormRepository) CountActsByPatient(ctx context.Context, patientID string) (int64, error) {
	var n int64
	err := r.db.WithContext(ctx).
		Model(&models.Act{}).
		Where("patient_id = ?", patientID).
		Count(&n).Error
	return n, err
}

// --------------------------------------------------
// Treatment phases
// --------------------------------------------------

func (r *ActGormRepository) CreatePhase(ctx context.Context, p *models.TreatmentPhase) error {
	if err := r.db.WithContext(ctx).Omit("Photos").Create(p).Error; err != nil {
		if httperr.IsForeignKeyViolation(err) {
			return domain.ErrActNotFound
		}
		return fmt.Errorf("create phase: %w", err)
	}
	return nil
}

func (r *ActGormRepository) GetPhase(ctx context.Context, id uint) (*models.TreatmentPhase, error) {
	var p models.TreatmentPhase
	if err := r.db.WithContext(ctx).
		Preload("Photos", func(db *gorm.DB) *gorm.DB {
			return db.Order("id ASC")
		}).
		First(&p, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrPhaseNotFound
		}
		return nil, err
	}
	return &p, nil
}

func (r *ActGormRepository) UpdatePhase(ctx context.Context, p *models.TreatmentPhase) error {
	res := r.db.WithContext(ctx).
		Model(&models.TreatmentPhase{}).
		Where("id = ?", p.ID).
		Updates(map[string]any{
			"date":        p.Date,
			"description": p.Description,
			"notes":       p.Notes,
			"updated_at":  time.Now(),
		})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return domain.ErrPhaseNotFound
	}
	return nil
}

func (r *ActGormRepository) DeletePhase(ctx context.Context, id uint) error {
	res := r.db.WithContext(ctx).Delete(&models.TreatmentPhase{}, id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return domain.ErrPhaseNotFound
	}
	return nil
}

// --------------------------------------------------
// Photos
// --------------------------------------------------

func (r *ActGormRepository) CreatePhoto(ctx context.Context, p *models.PhasePhoto) error {
	if err := r.db.WithContext(ctx).Create(p).Error; err != nil {
		if httperr.IsForeignKeyViolation(err) {
			return domain.ErrPhaseNotFound
		}
		return fmt.Errorf("create photo: %w", err)
	}
	return nil
}

func (r *ActGormRepository) GetPhoto(ctx context.Context, id uint) (*models.PhasePhoto, error) {
	var p models.PhasePhoto
	if err := r.db.WithContext(ctx).First(&p, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrPhotoNotFound
		}
		return nil, err
	}
	return &p, nil
}

func (r *ActGormRepository) DeletePhoto(ctx context.Context, id uint) error {
	res := r.db.WithContext(ctx).Delete(&models.PhasePhoto{}, id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return domain.ErrPhotoNotFound
	}
	return nil
}

// --------------------------------------------------
// Payments
// --------------------------------------------------

func (r *ActGormRepository) CreatePayment(ctx context.Context, p *models.Payment) error {
	if err := r.db.WithContext(ctx).Create(p).Error; err != nil {
		if httperr.IsForeignKeyViolation(err) {
			return domain.ErrActNotFound
		}
		return fmt.Errorf("create payment: %w", err)
	}
	return nil
}

func (r *ActGormRepository) GetPayment(ctx context.Context, id uint) (*models.Payment, error) {
	var p models.Payment
	if err := r.db.WithContext(ctx).First(&p, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrPaymentNotFound
		}
		return nil, err
	}
	return &p, nil
}

func (r *ActGormRepository) UpdatePayment(ctx context.Context, p *models.Payment) error {
	res := r.db.WithContext(ctx).
		Model(&models.Payment{}).
		Where("id = ?", p.ID).
		Updates(map[string]any{
			"date":         p.Date,
			"amount_cents": p.AmountCents,
			"method":       p.Method,
			"reference":    p.Reference,
			"notes":        p.Notes,
			"updated_at":   time.Now(),
		})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return domain.ErrPaymentNotFound
	}
	return nil
}

func (r *ActGormRepository) DeletePayment(ctx context.Context, id uint) error {
	res := r.db.WithContext(ctx).Delete(&models.Payment{}, id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return domain.ErrPaymentNotFound
	}
	return nil
}

var _ domain.Repository = (*ActGormRepository)(nil)
