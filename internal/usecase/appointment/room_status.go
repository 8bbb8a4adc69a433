package appointment

import (
	"context"
	"sort"
	"time"

	domain "github.com/BruksfildServices01/dental-scheduler/internal/domain/appointment"
	"github.com/BruksfildServices01/dental-scheduler/internal/dto"
	"github.com/BruksfildServices01/dental-scheduler/internal/scheduling"
	"github.com/BruksfildServices01/dental-scheduler/internal/timezone"
)

type RoomStatus struct {
	repo     domain.Repository
	hours    scheduling.Hours
	timezone string
	now      func() time.Time
}

func NewRoomStatus(
	repo domain.Repository,
	hours scheduling.Hours,
	tz string,
) *RoomStatus {
	return &RoomStatus{
		repo:     repo,
		hours:    hours,
		timezone: tz,
		now:      time.Now,
	}
}

// Execute counts the active appointments of each room on date (today in the
// clinic timezone when empty). Next is the first appointment still to come
// today, or the first of the day for any other date.
func (uc *RoomStatus) Execute(ctx context.Context, date string) (dto.RoomsStatusDTO, error) {
	now := uc.now().In(timezone.Location(uc.timezone))
	today := timezone.DateIn(now, uc.timezone)

	if date == "" {
		date = today
	}
	if !scheduling.ValidDate(date) {
		return dto.RoomsStatusDTO{}, domain.ErrInvalidSlot
	}

	nowMinute := scheduling.Minute(now.Hour()*60 + now.Minute())

	out := dto.RoomsStatusDTO{Date: date, Rooms: make([]dto.RoomStatusDTO, 0, len(uc.hours.Rooms))}
	for _, room := range uc.hours.Rooms {
		apps, err := uc.repo.ListByDateAndRoom(ctx, date, room)
		if err != nil {
			return dto.RoomsStatusDTO{}, err
		}

		var starts []scheduling.Minute
		for _, ap := range apps {
			start, err := scheduling.ParseClock(ap.Time)
			if err != nil {
				continue
			}
			if date == today && start.Add(ap.Duration) <= nowMinute {
				continue
			}
			starts = append(starts, start)
		}
		sort.Slice(starts, func(i, j int) bool { return starts[i] < starts[j] })

		st := dto.RoomStatusDTO{Room: room, Appointments: len(apps)}
		if len(starts) > 0 {
			st.Next = starts[0].String()
		}
		out.Rooms = append(out.Rooms, st)
	}

	return out, nil
}
