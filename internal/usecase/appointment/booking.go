package appointment

import (
	"context"
	"strings"

	domain "github.com/BruksfildServices01/dental-scheduler/internal/domain/appointment"
	"github.com/BruksfildServices01/dental-scheduler/internal/lock"
	"github.com/BruksfildServices01/dental-scheduler/internal/scheduling"
)

// withBookingLock takes the cross-process lock (when configured) and then the
// repository lock for (date, room) before running fn.
func withBookingLock(
	ctx context.Context,
	locker lock.Locker,
	repo domain.Repository,
	date string,
	room string,
	fn domain.BookingFunc,
) error {

	if locker != nil {
		release, err := locker.Acquire(ctx, lock.BookingKey(date, room))
		if err != nil {
			return err
		}
		defer release()
	}

	return repo.WithBookingLock(ctx, date, room, fn)
}

type slotInput struct {
	Date     string
	Time     string
	Room     string
	Duration int
}

// validateSlot rejects candidates the scheduler would only answer "false"
// for, so callers get a precise business code instead of a conflict.
func validateSlot(h scheduling.Hours, in slotInput) error {
	if !scheduling.ValidDate(in.Date) {
		return domain.ErrInvalidSlot
	}
	if !h.HasRoom(in.Room) {
		return domain.ErrInvalidRoom
	}
	if in.Duration <= 0 {
		return domain.ErrInvalidSlot
	}

	start, err := scheduling.ParseClock(in.Time)
	if err != nil || !h.OnGrid(start) || !start.Fits(in.Duration) {
		return domain.ErrInvalidSlot
	}
	return nil
}

func endTime(clock string, duration int) string {
	start, err := scheduling.ParseClock(clock)
	if err != nil {
		return ""
	}
	return start.Add(duration).String()
}

func trim(s string) string {
	return strings.TrimSpace(s)
}
