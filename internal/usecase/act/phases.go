package act

import (
	"context"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/BruksfildServices01/dental-scheduler/internal/audit"
	domain "github.com/BruksfildServices01/dental-scheduler/internal/domain/act"
	"github.com/BruksfildServices01/dental-scheduler/internal/models"
	"github.com/BruksfildServices01/dental-scheduler/internal/objectstore"
)

type PhaseInput struct {
	Date        string
	Description string
	Notes       string
}

// Phases records the sessions of an act.
type Phases struct {
	repo     domain.Repository
	blobs    objectstore.Store
	audit    *audit.Dispatcher
	log      *zap.Logger
	timezone string

	now func() time.Time
}

func NewPhases(
	repo domain.Repository,
	blobs objectstore.Store,
	audit *audit.Dispatcher,
	log *zap.Logger,
	tz string,
) *Phases {
	if log == nil {
		log = zap.NewNop()
	}
	return &Phases{
		repo:     repo,
		blobs:    blobs,
		audit:    audit,
		log:      log,
		timezone: tz,
		now:      time.Now,
	}
}

func (uc *Phases) Create(ctx context.Context, actID uint, in PhaseInput) (*models.TreatmentPhase, error) {
	if _, err := uc.repo.GetAct(ctx, actID); err != nil {
		return nil, err
	}

	p := &models.TreatmentPhase{ActID: actID}
	if err := uc.fill(p, in); err != nil {
		return nil, err
	}
	if err := uc.repo.CreatePhase(ctx, p); err != nil {
		return nil, err
	}
	p.Photos = []models.PhasePhoto{}

	uc.audit.Dispatch(ctx, audit.Event{
		Action:   "phase_created",
		Entity:   "treatment_phase",
		EntityID: idString(p.ID),
		Metadata: map[string]any{"act_id": actID, "date": p.Date},
	})

	return p, nil
}

func (uc *Phases) Update(ctx context.Context, id uint, in PhaseInput) (*models.TreatmentPhase, error) {
	p, err := uc.repo.GetPhase(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := uc.fill(p, in); err != nil {
		return nil, err
	}
	if err := uc.repo.UpdatePhase(ctx, p); err != nil {
		return nil, err
	}

	uc.audit.Dispatch(ctx, audit.Event{
		Action:   "phase_updated",
		Entity:   "treatment_phase",
		EntityID: idString(id),
	})

	return p, nil
}

func (uc *Phases) Delete(ctx context.Context, id uint) error {
	p, err := uc.repo.GetPhase(ctx, id)
	if err != nil {
		return err
	}

	if err := uc.repo.DeletePhase(ctx, id); err != nil {
		return err
	}
	purge(ctx, uc.blobs, uc.log, domain.PhotoKeys([]models.TreatmentPhase{*p}))

	uc.audit.Dispatch(ctx, audit.Event{
		Action:   "phase_deleted",
		Entity:   "treatment_phase",
		EntityID: idString(id),
		Metadata: map[string]any{"act_id": p.ActID, "photos": len(p.Photos)},
	})

	return nil
}

func (uc *Phases) fill(p *models.TreatmentPhase, in PhaseInput) error {
	p.Description = strings.TrimSpace(in.Description)
	p.Notes = in.Notes

	date, ok := dateOrToday(in.Date, uc.now(), uc.timezone)
	if !ok || p.Description == "" {
		return domain.ErrInvalidPhase
	}
	p.Date = date
	return nil
}
