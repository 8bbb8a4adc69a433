package act

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"path"
	"strings"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/BruksfildServices01/dental-scheduler/internal/audit"
	domain "github.com/BruksfildServices01/dental-scheduler/internal/domain/act"
	"github.com/BruksfildServices01/dental-scheduler/internal/imaging"
	"github.com/BruksfildServices01/dental-scheduler/internal/metrics"
	"github.com/BruksfildServices01/dental-scheduler/internal/models"
	"github.com/BruksfildServices01/dental-scheduler/internal/objectstore"
)

type PhotoConfig struct {
	MaxBytes     int64
	MaxDimension int
	Quality      float32
}

type PhotoUpload struct {
	Name        string
	ContentType string
	Size        int64
	Body        io.Reader
}

// Photos stores phase pictures as WebP blobs, one row per picture.
type Photos struct {
	repo    domain.Repository
	blobs   objectstore.Store
	cfg     PhotoConfig
	audit   *audit.Dispatcher
	metrics *metrics.Collector
	log     *zap.Logger
}

func NewPhotos(
	repo domain.Repository,
	blobs objectstore.Store,
	cfg PhotoConfig,
	audit *audit.Dispatcher,
	metrics *metrics.Collector,
	log *zap.Logger,
) *Photos {
	if log == nil {
		log = zap.NewNop()
	}
	return &Photos{
		repo:    repo,
		blobs:   blobs,
		cfg:     cfg,
		audit:   audit,
		metrics: metrics,
		log:     log,
	}
}

func (uc *Photos) Upload(ctx context.Context, phaseID uint, in PhotoUpload) (*models.PhasePhoto, error) {
	photo, err := uc.upload(ctx, phaseID, in)
	switch {
	case err == nil:
		uc.metrics.PhotoUpload("ok")
	case errors.Is(err, domain.ErrInvalidPhoto), errors.Is(err, domain.ErrPhotoTooLarge), errors.Is(err, domain.ErrPhaseNotFound):
		uc.metrics.PhotoUpload("rejected")
	default:
		uc.metrics.PhotoUpload("error")
	}
	return photo, err
}

func (uc *Photos) upload(ctx context.Context, phaseID uint, in PhotoUpload) (*models.PhasePhoto, error) {
	if _, err := uc.repo.GetPhase(ctx, phaseID); err != nil {
		return nil, err
	}

	if !strings.HasPrefix(in.ContentType, "image/") {
		return nil, domain.ErrInvalidPhoto
	}
	if uc.cfg.MaxBytes > 0 && in.Size > uc.cfg.MaxBytes {
		return nil, domain.ErrPhotoTooLarge
	}

	body := in.Body
	if uc.cfg.MaxBytes > 0 {
		body = io.LimitReader(in.Body, uc.cfg.MaxBytes+1)
	}
	raw, err := io.ReadAll(body)
	if err != nil {
		return nil, fmt.Errorf("read photo: %w", err)
	}
	if uc.cfg.MaxBytes > 0 && int64(len(raw)) > uc.cfg.MaxBytes {
		return nil, domain.ErrPhotoTooLarge
	}

	img, err := imaging.ToWebP(bytes.NewReader(raw), imaging.Options{
		MaxDimension: uc.cfg.MaxDimension,
		Quality:      uc.cfg.Quality,
	})
	if err != nil {
		if errors.Is(err, imaging.ErrUnsupported) {
			return nil, domain.ErrInvalidPhoto
		}
		return nil, err
	}

	key := fmt.Sprintf("phases/%d/%s.webp", phaseID, uuid.NewString())
	if err := uc.blobs.Put(ctx, key, img.Data, imaging.ContentType); err != nil {
		return nil, err
	}

	photo := &models.PhasePhoto{
		PhaseID:      phaseID,
		ObjectKey:    key,
		OriginalName: path.Base(strings.ReplaceAll(in.Name, "\\", "/")),
		ContentType:  imaging.ContentType,
		SizeBytes:    int64(len(img.Data)),
		Width:        img.Width,
		Height:       img.Height,
	}
	if err := uc.repo.CreatePhoto(ctx, photo); err != nil {
		purge(ctx, uc.blobs, uc.log, []string{key})
		return nil, err
	}

	uc.audit.Dispatch(ctx, audit.Event{
		Action:   "photo_uploaded",
		Entity:   "phase_photo",
		EntityID: idString(photo.ID),
		Metadata: map[string]any{"phase_id": phaseID, "size_bytes": photo.SizeBytes},
	})

	return photo, nil
}

// Open returns the photo row and its blob; the caller closes the body.
func (uc *Photos) Open(ctx context.Context, id uint) (*models.PhasePhoto, *objectstore.Object, error) {
	photo, err := uc.repo.GetPhoto(ctx, id)
	if err != nil {
		return nil, nil, err
	}

	obj, err := uc.blobs.Get(ctx, photo.ObjectKey)
	if err != nil {
		if errors.Is(err, objectstore.ErrNotFound) {
			return nil, nil, domain.ErrPhotoNotFound
		}
		return nil, nil, err
	}
	return photo, obj, nil
}

func (uc *Photos) Delete(ctx context.Context, id uint) error {
	photo, err := uc.repo.GetPhoto(ctx, id)
	if err != nil {
		return err
	}
	if err := uc.repo.DeletePhoto(ctx, id); err != nil {
		return err
	}
	purge(ctx, uc.blobs, uc.log, []string{photo.ObjectKey})

	uc.audit.Dispatch(ctx, audit.Event{
		Action:   "photo_deleted",
		Entity:   "phase_photo",
		EntityID: idString(id),
		Metadata: map[string]any{"phase_id": photo.PhaseID},
	})

	return nil
}
