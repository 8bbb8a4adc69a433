package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os/signal"
	"syscall"
	"time"
	_ "time/tzdata"

	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"

	"github.com/BruksfildServices01/dental-scheduler/internal/audit"
	"github.com/BruksfildServices01/dental-scheduler/internal/config"
	dbpkg "github.com/BruksfildServices01/dental-scheduler/internal/db"
	infraRepo "github.com/BruksfildServices01/dental-scheduler/internal/infra/repository"
	"github.com/BruksfildServices01/dental-scheduler/internal/lock"
	"github.com/BruksfildServices01/dental-scheduler/internal/logger"
	"github.com/BruksfildServices01/dental-scheduler/internal/metrics"
	"github.com/BruksfildServices01/dental-scheduler/internal/objectstore"
	"github.com/BruksfildServices01/dental-scheduler/internal/routes"
)

func main() {

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config: %v", err)
	}

	zlog, err := logger.New(cfg.Log)
	if err != nil {
		log.Fatalf("logger: %v", err)
	}
	defer func() { _ = zlog.Sync() }()

	hours, err := cfg.Clinic.Hours()
	if err != nil {
		zlog.Fatal("clinic hours", zap.Error(err))
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	collector := metrics.NewCollector()

	deps := routes.Dependencies{
		Config:  cfg,
		Hours:   hours,
		Log:     zlog,
		Metrics: collector,
	}

	// ======================================================
	// 🔧 STORAGE
	// ======================================================
	switch cfg.Storage {
	case "memory":
		store := infraRepo.NewMemoryStore()
		deps.Appointments = store
		deps.Patients = store
		deps.Acts = store
		deps.LabWorks = store
		deps.AuditStore = store
		zlog.Warn("using in-memory storage, data is lost on restart")

	default:
		db, err := dbpkg.NewDB(cfg, zlog)
		if err != nil {
			zlog.Fatal("database", zap.Error(err))
		}
		sqlDB, err := db.DB()
		if err != nil {
			zlog.Fatal("database", zap.Error(err))
		}
		defer sqlDB.Close()

		deps.Appointments = infraRepo.NewAppointmentGormRepository(db)
		deps.Patients = infraRepo.NewPatientGormRepository(db)
		deps.Acts = infraRepo.NewActGormRepository(db)
		deps.LabWorks = infraRepo.NewLabWorkGormRepository(db)
		deps.AuditStore = infraRepo.NewAuditGormRepository(db)
		deps.Ping = sqlDB.Ping
	}

	// ======================================================
	// 🖼️ FOTOS (S3 / MinIO)
	// ======================================================
	if cfg.S3.Bucket != "" {
		deps.Photos = objectstore.NewS3(objectstore.S3Config{
			Bucket:          cfg.S3.Bucket,
			Region:          cfg.S3.Region,
			Endpoint:        cfg.S3.Endpoint,
			AccessKeyID:     cfg.S3.AccessKeyID,
			SecretAccessKey: cfg.S3.SecretAccessKey,
			PathStyle:       cfg.S3.PathStyle,
		})
		zlog.Info("s3 photo storage enabled", zap.String("bucket", cfg.S3.Bucket))
	} else {
		deps.Photos = objectstore.NewMemory()
		zlog.Warn("S3_BUCKET not set, treatment photos are kept in memory")
	}

	// ======================================================
	// 🔒 BOOKING LOCK (multi instância)
	// ======================================================
	if cfg.RedisURL != "" {
		opts, err := redis.ParseURL(cfg.RedisURL)
		if err != nil {
			zlog.Fatal("redis url", zap.Error(err))
		}
		rdb := redis.NewClient(opts)
		defer rdb.Close()

		if err := rdb.Ping(ctx).Err(); err != nil {
			zlog.Fatal("redis ping", zap.Error(err))
		}
		deps.Locker = lock.NewRedis(rdb, cfg.LockTTL, zlog)
		zlog.Info("redis booking lock enabled")
	}

	auditDispatcher := audit.NewDispatcher(audit.New(deps.AuditStore), zlog, collector, 256)
	deps.Audit = auditDispatcher

	// ======================================================
	// 🌐 HTTP
	// ======================================================
	gin.SetMode(gin.ReleaseMode)
	r := gin.New()
	routes.RegisterRoutes(r, deps)

	srv := &http.Server{
		Addr:              cfg.Addr(),
		Handler:           r,
		ReadHeaderTimeout: 5 * time.Second,
	}

	go func() {
		zlog.Info("server running", zap.String("addr", srv.Addr), zap.String("storage", cfg.Storage))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			zlog.Fatal("http server", zap.Error(err))
		}
	}()

	<-ctx.Done()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		zlog.Error("http server shutdown", zap.Error(err))
	}
	if err := auditDispatcher.Close(shutdownCtx); err != nil {
		zlog.Warn("audit queue not drained", zap.Error(err))
	}
	zlog.Info("server stopped")
}
