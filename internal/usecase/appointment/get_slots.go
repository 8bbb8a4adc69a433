package appointment

import (
	"context"

	domain "github.com/BruksfildServices01/dental-scheduler/internal/domain/appointment"
	"github.com/BruksfildServices01/dental-scheduler/internal/dto"
	"github.com/BruksfildServices01/dental-scheduler/internal/metrics"
	"github.com/BruksfildServices01/dental-scheduler/internal/scheduling"
)

type GetSlots struct {
	scheduler *scheduling.Scheduler
	metrics   *metrics.Collector
}

func NewGetSlots(
	scheduler *scheduling.Scheduler,
	metrics *metrics.Collector,
) *GetSlots {
	return &GetSlots{
		scheduler: scheduler,
		metrics:   metrics,
	}
}

// Execute lists the slot grid of a room-day tagged with availability. An
// edit form passes ExcludeID so the appointment never blocks itself.
func (uc *GetSlots) Execute(
	ctx context.Context,
	q domain.SlotQuery,
) (dto.SlotsDTO, error) {

	slots, err := uc.scheduler.ListSlots(ctx, q.Date, q.Room, q.Duration, q.ExcludeID)
	if err != nil {
		return dto.SlotsDTO{}, err
	}

	out := dto.SlotsDTO{
		Date:     q.Date,
		Room:     q.Room,
		Duration: q.Duration,
		Slots:    make([]dto.SlotDTO, 0, len(slots)),
	}
	for _, s := range slots {
		out.Slots = append(out.Slots, dto.SlotDTO{Time: s.Time, Available: s.Available})
	}
	return out, nil
}

// Check answers a single candidate. Incomplete input is reported as not
// available.
func (uc *GetSlots) Check(
	ctx context.Context,
	q domain.SlotQuery,
	clock string,
) (bool, error) {

	ok, err := uc.scheduler.IsAvailable(ctx, q.Date, clock, q.Room, q.Duration, q.ExcludeID)
	if err != nil {
		return false, err
	}
	uc.metrics.SlotCheck(ok)
	return ok, nil
}

// Grid returns the static candidate start times.
func (uc *GetSlots) Grid() []string {
	return uc.scheduler.GenerateTimeSlots()
}
