package db

import (
	"fmt"
	"time"

	"go.uber.org/zap"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"github.com/BruksfildServices01/dental-scheduler/internal/config"
	"github.com/BruksfildServices01/dental-scheduler/internal/models"
)

// noOverlapDDL backs the scheduler at the storage level: two active
// appointments of the same room-day cannot share a minute.
const noOverlapDDL = `
DO $$
BEGIN
    IF NOT EXISTS (
        SELECT 1 FROM pg_constraint WHERE conname = 'appointments_no_overlap'
    ) THEN
        ALTER TABLE appointments
            ADD CONSTRAINT appointments_no_overlap
            EXCLUDE USING gist (
                date WITH =,
                room WITH =,
                int4range(start_minute, end_minute) WITH &&
            )
            WHERE (status <> 'Annulé');
    END IF;
END
$$;`

func NewDB(cfg *config.Config, log *zap.Logger) (*gorm.DB, error) {
	db, err := gorm.Open(postgres.Open(cfg.DBUrl), &gorm.Config{
		PrepareStmt: true,
		Logger:      gormlogger.Default.LogMode(gormlogger.Warn),
	})
	if err != nil {
		return nil, fmt.Errorf("connect database: %w", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("get sql.DB: %w", err)
	}

	sqlDB.SetMaxOpenConns(10)
	sqlDB.SetMaxIdleConns(5)
	sqlDB.SetConnMaxLifetime(30 * time.Minute)
	sqlDB.SetConnMaxIdleTime(10 * time.Minute)

	if err := Migrate(db); err != nil {
		return nil, err
	}

	log.Info("database ready")
	return db, nil
}

func Migrate(db *gorm.DB) error {
	if err := db.Exec("CREATE EXTENSION IF NOT EXISTS btree_gist").Error; err != nil {
		return fmt.Errorf("enable btree_gist: %w", err)
	}

	if err := db.AutoMigrate(
		&models.Patient{},
		&models.Appointment{},
		&models.Act{},
		&models.TreatmentPhase{},
		&models.PhasePhoto{},
		&models.Payment{},
		&models.LabWork{},
		&models.AuditLog{},
	); err != nil {
		return fmt.Errorf("migrate: %w", err)
	}

	// linhas antigas sem limites em minutos
	if err := db.Exec(`
        UPDATE appointments
        SET start_minute = split_part(time, ':', 1)::int * 60 + split_part(time, ':', 2)::int,
            end_minute   = split_part(time, ':', 1)::int * 60 + split_part(time, ':', 2)::int + duration
        WHERE end_minute = 0
    `).Error; err != nil {
		return fmt.Errorf("backfill minute bounds: %w", err)
	}

	if err := db.Exec(noOverlapDDL).Error; err != nil {
		return fmt.Errorf("no-overlap constraint: %w", err)
	}

	return nil
}
