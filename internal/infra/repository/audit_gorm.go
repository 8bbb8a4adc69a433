package repository

import (
	"context"
	"time"

	"gorm.io/gorm"

	"github.com/BruksfildServices01/dental-scheduler/internal/audit"
	"github.com/BruksfildServices01/dental-scheduler/internal/models"
)

type AuditGormRepository struct {
	db *gorm.DB
}

func NewAuditGormRepository(db *gorm.DB) *AuditGormRepository {
	return &AuditGormRepository{db: db}
}

func (r *AuditGormRepository) WriteAuditLog(ctx context.Context, log *models.AuditLog) error {
	return r.db.WithContext(ctx).Create(log).Error
}

func (r *AuditGormRepository) ListAuditLogs(
	ctx context.Context,
	q audit.Query,
) ([]models.AuditLog, int64, error) {

	page, limit := audit.Page(q)

	tx := r.db.WithContext(ctx).Model(&models.AuditLog{})

	if q.Action != "" {
		tx = tx.Where("action = ?", q.Action)
	}
	if q.Entity != "" {
		tx = tx.Where("entity = ?", q.Entity)
	}
	if q.From != "" {
		if from, err := time.Parse("2006-01-02", q.From); err == nil {
			tx = tx.Where("created_at >= ?", from)
		}
	}
	if q.To != "" {
		if to, err := time.Parse("2006-01-02", q.To); err == nil {
			tx = tx.Where("created_at < ?", to.Add(24*time.Hour))
		}
	}

	var total int64
	if err := tx.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var logs []models.AuditLog
	if err := tx.
		Order("created_at DESC").
		Limit(limit).
		Offset((page - 1) * limit).
		Find(&logs).Error; err != nil {
		return nil, 0, err
	}

	return logs, total, nil
}

var _ audit.Store = (*AuditGormRepository)(nil)
