package config

import (
	"strings"
	"testing"
	"time"
)

func TestLoad_Defaults(t *testing.T) {
	for _, k := range []string{"CLINIC_OPEN", "CLINIC_CLOSE", "CLINIC_SLOT_MINUTES", "CLINIC_ROOMS", "CLINIC_TIMEZONE", "STORAGE"} {
		t.Setenv(k, "")
	}

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}

	h, err := cfg.Clinic.Hours()
	if err != nil {
		t.Fatalf("Hours: %v", err)
	}
	if h.Open.String() != "08:00" || h.Close.String() != "18:00" || h.Step != 30 {
		t.Fatalf("unexpected hours %+v", h)
	}
	if strings.Join(h.Rooms, ",") != "1,2" {
		t.Fatalf("unexpected rooms %v", h.Rooms)
	}
	if cfg.Addr() == "" {
		t.Fatalf("empty address")
	}
}

func TestLoad_Overrides(t *testing.T) {
	t.Setenv("CLINIC_OPEN", "09:00")
	t.Setenv("CLINIC_CLOSE", "12:00")
	t.Setenv("CLINIC_SLOT_MINUTES", "15")
	t.Setenv("CLINIC_ROOMS", "A, B ,C")
	t.Setenv("BOOKING_LOCK_TTL", "2s")
	t.Setenv("STORAGE", "memory")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	h, _ := cfg.Clinic.Hours()
	if h.Step != 15 || strings.Join(h.Rooms, ",") != "A,B,C" {
		t.Fatalf("unexpected hours %+v", h)
	}
	if cfg.LockTTL != 2*time.Second {
		t.Fatalf("LockTTL = %s", cfg.LockTTL)
	}
}

func TestLoad_RejectsBadClinicHours(t *testing.T) {
	t.Setenv("CLINIC_OPEN", "19:00")
	t.Setenv("CLINIC_CLOSE", "18:00")

	if _, err := Load(); err == nil {
		t.Fatalf("expected error for close before open")
	}
}

func TestLoad_RejectsUnknownStorage(t *testing.T) {
	t.Setenv("STORAGE", "sqlite")

	if _, err := Load(); err == nil {
		t.Fatalf("expected error for unknown storage")
	}
}

func TestLoad_PhotoAndS3(t *testing.T) {
	for _, k := range []string{"PHOTO_MAX_BYTES", "PHOTO_MAX_DIMENSION", "PHOTO_WEBP_QUALITY", "S3_BUCKET", "S3_ACCESS_KEY_ID", "S3_SECRET_ACCESS_KEY", "STORAGE"} {
		t.Setenv(k, "")
	}

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Photo.MaxBytes != 5<<20 || cfg.Photo.MaxDimension != 1600 || cfg.Photo.Quality != 80 {
		t.Fatalf("photo defaults = %+v", cfg.Photo)
	}
	if cfg.S3.Bucket != "" {
		t.Fatalf("bucket = %q", cfg.S3.Bucket)
	}

	t.Setenv("PHOTO_WEBP_QUALITY", "0")
	if _, err := Load(); err == nil || !strings.Contains(err.Error(), "PHOTO_WEBP_QUALITY") {
		t.Fatalf("quality err = %v", err)
	}

	t.Setenv("PHOTO_WEBP_QUALITY", "")
	t.Setenv("S3_BUCKET", "clinic-photos")
	t.Setenv("S3_ACCESS_KEY_ID", "key")
	if _, err := Load(); err == nil || !strings.Contains(err.Error(), "S3_SECRET_ACCESS_KEY") {
		t.Fatalf("half credentials err = %v", err)
	}

	t.Setenv("S3_SECRET_ACCESS_KEY", "secret")
	t.Setenv("S3_PATH_STYLE", "true")
	cfg, err = Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if !cfg.S3.PathStyle || cfg.S3.Bucket != "clinic-photos" {
		t.Fatalf("s3 = %+v", cfg.S3)
	}
}
