package repository

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"gorm.io/gorm"

	domain "github.com/BruksfildServices01/dental-scheduler/internal/domain/labwork"
	"github.com/BruksfildServices01/dental-scheduler/internal/models"
)

type LabWorkGormRepository struct {
	db *gorm.DB
}

func NewLabWorkGormRepository(db *gorm.DB) *LabWorkGormRepository {
	return &LabWorkGormRepository{db: db}
}

func (r *LabWorkGormRepository) CreateLabWork(ctx context.Context, lw *models.LabWork) error {
	if err := r.db.WithContext(ctx).Create(lw).Error; err != nil {
		return fmt.Errorf("create lab work: %w", err)
	}
	return nil
}

func (r *LabWorkGormRepository) GetLabWork(ctx context.Context, id uint) (*models.LabWork, error) {
	var lw models.LabWork
	if err := r.db.WithContext(ctx).First(&lw, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrLabWorkNotFound
		}
		return nil, err
	}
	return &lw, nil
}

func (r *LabWorkGormRepository) UpdateLabWork(ctx context.Context, lw *models.LabWork) error {
	res := r.db.WithContext(ctx).
		Model(lw).
		Select("*").
		Omit("id", "created_at").
		Updates(lw)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return domain.ErrLabWorkNotFound
	}
	return nil
}

func (r *LabWorkGormRepository) DeleteLabWork(ctx context.Context, id uint) error {
	res := r.db.WithContext(ctx).Delete(&models.LabWork{}, id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return domain.ErrLabWorkNotFound
	}
	return nil
}

func (r *LabWorkGormRepository) SearchLabWorks(ctx context.Context, filter domain.Filter) ([]models.LabWork, error) {
	q := r.db.WithContext(ctx).Model(&models.LabWork{})

	if filter.Status != "" {
		q = q.Where("status = ?", string(filter.Status))
	}
	if term := strings.TrimSpace(filter.Query); term != "" {
		like := "%" + strings.ToLower(term) + "%"
		q = q.Where(
			"LOWER(lab_name) LIKE ? OR LOWER(patient_name) LIKE ? OR LOWER(type_work) LIKE ?",
			like, like, like,
		)
	}

	var works []models.LabWork
	if err := q.
		Order("date_expected ASC").
		Order("id ASC").
		Find(&works).Error; err != nil {
		return nil, fmt.Errorf("search lab works: %w", err)
	}
	return works, nil
}

var _ domain.Repository = (*LabWorkGormRepository)(nil)
