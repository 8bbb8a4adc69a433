package act

import (
	"context"
	"strconv"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/BruksfildServices01/dental-scheduler/internal/audit"
	domain "github.com/BruksfildServices01/dental-scheduler/internal/domain/act"
	patientdomain "github.com/BruksfildServices01/dental-scheduler/internal/domain/patient"
	"github.com/BruksfildServices01/dental-scheduler/internal/dto"
	"github.com/BruksfildServices01/dental-scheduler/internal/models"
	"github.com/BruksfildServices01/dental-scheduler/internal/objectstore"
	"github.com/BruksfildServices01/dental-scheduler/internal/timezone"
)

const dateLayout = "2006-01-02"

type ActInput struct {
	Type       string
	Tooth      string
	PriceCents int64
	Date       string
	Notes      string
}

// Acts manages the billed treatments of a patient.
type Acts struct {
	repo     domain.Repository
	patients patientdomain.Repository
	blobs    objectstore.Store
	audit    *audit.Dispatcher
	log      *zap.Logger
	timezone string

	now func() time.Time
}

func NewActs(
	repo domain.Repository,
	patients patientdomain.Repository,
	blobs objectstore.Store,
	audit *audit.Dispatcher,
	log *zap.Logger,
	tz string,
) *Acts {
	if log == nil {
		log = zap.NewNop()
	}
	return &Acts{
		repo:     repo,
		patients: patients,
		blobs:    blobs,
		audit:    audit,
		log:      log,
		timezone: tz,
		now:      time.Now,
	}
}

func (uc *Acts) Create(ctx context.Context, patientID string, in ActInput) (*dto.ActDTO, error) {
	if _, err := uc.patients.GetPatient(ctx, patientID); err != nil {
		return nil, err
	}

	a := &models.Act{PatientID: patientID}
	if err := uc.fill(a, in); err != nil {
		return nil, err
	}

	if err := uc.repo.CreateAct(ctx, a); err != nil {
		return nil, err
	}

	uc.audit.Dispatch(ctx, audit.Event{
		Action:   "act_created",
		Entity:   "act",
		EntityID: idString(a.ID),
		Metadata: map[string]any{
			"patient_id":  patientID,
			"type":        a.Type,
			"tooth":       a.Tooth,
			"price_cents": a.PriceCents,
		},
	})

	return uc.Get(ctx, a.ID)
}

func (uc *Acts) Get(ctx context.Context, id uint) (*dto.ActDTO, error) {
	a, err := uc.repo.GetAct(ctx, id)
	if err != nil {
		return nil, err
	}
	out := ToDTO(*a)
	return &out, nil
}

func (uc *Acts) Update(ctx context.Context, id uint, in ActInput) (*dto.ActDTO, error) {
	a, err := uc.repo.GetAct(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := uc.fill(a, in); err != nil {
		return nil, err
	}

	if err := uc.repo.UpdateAct(ctx, a); err != nil {
		return nil, err
	}

	uc.audit.Dispatch(ctx, audit.Event{
		Action:   "act_updated",
		Entity:   "act",
		EntityID: idString(id),
		Metadata: map[string]any{"price_cents": a.PriceCents},
	})

	return uc.Get(ctx, id)
}

// Delete drops the act with its phases and payments, then the stored photos.
func (uc *Acts) Delete(ctx context.Context, id uint) error {
	a, err := uc.repo.GetAct(ctx, id)
	if err != nil {
		return err
	}

	if err := uc.repo.DeleteAct(ctx, id); err != nil {
		return err
	}
	purge(ctx, uc.blobs, uc.log, domain.PhotoKeys(a.Phases))

	uc.audit.Dispatch(ctx, audit.Event{
		Action:   "act_deleted",
		Entity:   "act",
		EntityID: idString(id),
		Metadata: map[string]any{
			"patient_id": a.PatientID,
			"type":       a.Type,
			"paid_cents": domain.ActBalance(*a).PaidCents,
		},
	})

	return nil
}

// ListByPatient returns the acts of a patient with the balance of each and in total.
func (uc *Acts) ListByPatient(ctx context.Context, patientID string) (*dto.PatientActsDTO, error) {
	if _, err := uc.patients.GetPatient(ctx, patientID); err != nil {
		return nil, err
	}

	acts, err := uc.repo.ListActsByPatient(ctx, patientID)
	if err != nil {
		return nil, err
	}

	out := &dto.PatientActsDTO{
		PatientID: patientID,
		Acts:      make([]dto.ActDTO, 0, len(acts)),
		Summary:   balanceDTO(domain.Summarize(acts)),
	}
	for _, a := range acts {
		out.Acts = append(out.Acts, ToDTO(a))
	}
	return out, nil
}

func (uc *Acts) fill(a *models.Act, in ActInput) error {
	a.Type = strings.TrimSpace(in.Type)
	a.Tooth = strings.TrimSpace(in.Tooth)
	a.PriceCents = in.PriceCents
	a.Notes = in.Notes

	date, ok := dateOrToday(in.Date, uc.now(), uc.timezone)
	if !ok || a.Type == "" || a.Tooth == "" || a.PriceCents < 0 {
		return domain.ErrInvalidAct
	}
	a.Date = date
	return nil
}

func ToDTO(a models.Act) dto.ActDTO {
	if a.Phases == nil {
		a.Phases = []models.TreatmentPhase{}
	}
	if a.Payments == nil {
		a.Payments = []models.Payment{}
	}
	return dto.ActDTO{Act: a, Balance: balanceDTO(domain.ActBalance(a))}
}

func balanceDTO(b domain.Balance) dto.BalanceDTO {
	return dto.BalanceDTO{
		TotalCents:     b.TotalCents,
		PaidCents:      b.PaidCents,
		RemainingCents: b.RemainingCents,
		Settled:        b.Settled(),
	}
}

// dateOrToday validates an ISO date; empty means today in the clinic zone.
func dateOrToday(raw string, now time.Time, tz string) (string, bool) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return timezone.DateIn(now, tz), true
	}
	if _, err := time.Parse(dateLayout, raw); err != nil {
		return "", false
	}
	return raw, true
}

// purge removes blobs whose rows are gone. A failed delete is logged and
// leaves the blob orphaned.
func purge(ctx context.Context, blobs objectstore.Store, log *zap.Logger, keys []string) {
	for _, key := range keys {
		if err := blobs.Delete(ctx, key); err != nil {
			log.Warn("photo blob not removed", zap.String("key", key), zap.Error(err))
		}
	}
}

func idString(id uint) string {
	return strconv.FormatUint(uint64(id), 10)
}
