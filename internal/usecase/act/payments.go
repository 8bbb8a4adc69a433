package act

import (
	"context"
	"strings"
	"time"

	"github.com/BruksfildServices01/dental-scheduler/internal/audit"
	domain "github.com/BruksfildServices01/dental-scheduler/internal/domain/act"
	"github.com/BruksfildServices01/dental-scheduler/internal/dto"
	"github.com/BruksfildServices01/dental-scheduler/internal/metrics"
	"github.com/BruksfildServices01/dental-scheduler/internal/models"
)

type PaymentInput struct {
	Date        string
	AmountCents int64
	Method      string
	Reference   string
	Notes       string
}

// Payments records money received against an act. Paying more than the
// price is accepted; the balance then goes negative.
type Payments struct {
	repo     domain.Repository
	audit    *audit.Dispatcher
	metrics  *metrics.Collector
	timezone string

	now func() time.Time
}

func NewPayments(
	repo domain.Repository,
	audit *audit.Dispatcher,
	metrics *metrics.Collector,
	tz string,
) *Payments {
	return &Payments{
		repo:     repo,
		audit:    audit,
		metrics:  metrics,
		timezone: tz,
		now:      time.Now,
	}
}

// Create returns the act card so the caller sees the new balance.
func (uc *Payments) Create(ctx context.Context, actID uint, in PaymentInput) (*dto.ActDTO, error) {
	if _, err := uc.repo.GetAct(ctx, actID); err != nil {
		return nil, err
	}

	p := &models.Payment{ActID: actID}
	if err := uc.fill(p, in); err != nil {
		return nil, err
	}
	if err := uc.repo.CreatePayment(ctx, p); err != nil {
		return nil, err
	}
	uc.metrics.PaymentRecorded()

	uc.audit.Dispatch(ctx, audit.Event{
		Action:   "payment_created",
		Entity:   "payment",
		EntityID: idString(p.ID),
		Metadata: map[string]any{
			"act_id":       actID,
			"amount_cents": p.AmountCents,
			"method":       p.Method,
		},
	})

	return uc.card(ctx, actID)
}

func (uc *Payments) Update(ctx context.Context, id uint, in PaymentInput) (*dto.ActDTO, error) {
	p, err := uc.repo.GetPayment(ctx, id)
	if err != nil {
		return nil, err
	}
	before := p.AmountCents

	if err := uc.fill(p, in); err != nil {
		return nil, err
	}
	if err := uc.repo.UpdatePayment(ctx, p); err != nil {
		return nil, err
	}

	uc.audit.Dispatch(ctx, audit.Event{
		Action:   "payment_updated",
		Entity:   "payment",
		EntityID: idString(id),
		Metadata: map[string]any{
			"act_id":     p.ActID,
			"from_cents": before,
			"to_cents":   p.AmountCents,
		},
	})

	return uc.card(ctx, p.ActID)
}

func (uc *Payments) Delete(ctx context.Context, id uint) (*dto.ActDTO, error) {
	p, err := uc.repo.GetPayment(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := uc.repo.DeletePayment(ctx, id); err != nil {
		return nil, err
	}

	uc.audit.Dispatch(ctx, audit.Event{
		Action:   "payment_deleted",
		Entity:   "payment",
		EntityID: idString(id),
		Metadata: map[string]any{"act_id": p.ActID, "amount_cents": p.AmountCents},
	})

	return uc.card(ctx, p.ActID)
}

func (uc *Payments) card(ctx context.Context, actID uint) (*dto.ActDTO, error) {
	a, err := uc.repo.GetAct(ctx, actID)
	if err != nil {
		return nil, err
	}
	out := ToDTO(*a)
	return &out, nil
}

func (uc *Payments) fill(p *models.Payment, in PaymentInput) error {
	method := domain.PaymentMethod(strings.TrimSpace(in.Method))

	date, ok := dateOrToday(in.Date, uc.now(), uc.timezone)
	if !ok || in.AmountCents <= 0 || !method.Valid() {
		return domain.ErrInvalidPayment
	}

	p.Date = date
	p.AmountCents = in.AmountCents
	p.Method = string(method)
	p.Reference = strings.TrimSpace(in.Reference)
	p.Notes = in.Notes
	return nil
}
