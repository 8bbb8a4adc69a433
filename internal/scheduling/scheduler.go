package scheduling

import (
	"context"
	"fmt"

	"github.com/BruksfildServices01/dental-scheduler/internal/models"
)

// Repository is the only collaborator of the scheduler. Implementations
// return the non-cancelled appointments of a room-day in any order.
type Repository interface {
	ListByDateAndRoom(ctx context.Context, date, room string) ([]models.Appointment, error)
}

type Slot struct {
	Time      string `json:"time"`
	Available bool   `json:"available"`
}

// Scheduler answers slot availability queries. It holds no booking state.
type Scheduler struct {
	hours Hours
	repo  Repository
}

func New(hours Hours, repo Repository) *Scheduler {
	return &Scheduler{hours: hours, repo: repo}
}

// WithRepository returns a scheduler reading from repo, typically one bound
// to a booking transaction.
func (s *Scheduler) WithRepository(repo Repository) *Scheduler {
	return &Scheduler{hours: s.hours, repo: repo}
}

func (s *Scheduler) Hours() Hours {
	return s.hours
}

// GenerateTimeSlots returns the candidate start times, ascending. It does
// not depend on dates, rooms or bookings.
func (s *Scheduler) GenerateTimeSlots() []string {
	grid := s.hours.grid()
	out := make([]string, 0, len(grid))
	for _, m := range grid {
		out = append(out, m.String())
	}
	return out
}

// IsAvailable reports whether [clock, clock+duration) is free in room on
// date, ignoring the appointment excludeID. An incomplete candidate is never
// available; only repository failures produce an error.
func (s *Scheduler) IsAvailable(
	ctx context.Context,
	date string,
	clock string,
	room string,
	duration int,
	excludeID uint,
) (bool, error) {

	if !s.validUniverse(date, room, duration) {
		return false, nil
	}
	start, err := ParseClock(clock)
	if err != nil || !start.Fits(duration) {
		return false, nil
	}

	existing, err := s.repo.ListByDateAndRoom(ctx, date, room)
	if err != nil {
		return false, fmt.Errorf("list appointments %s room %s: %w", date, room, err)
	}

	return IsFree(NewInterval(start, duration), existing, excludeID), nil
}

// ListSlots tags every grid slot as available or not for a booking of
// duration minutes. Pass the edited appointment's id as excludeID so its
// current slot is not reported as taken. Invalid input yields no slots.
func (s *Scheduler) ListSlots(
	ctx context.Context,
	date string,
	room string,
	duration int,
	excludeID uint,
) ([]Slot, error) {

	if !s.validUniverse(date, room, duration) {
		return []Slot{}, nil
	}

	existing, err := s.repo.ListByDateAndRoom(ctx, date, room)
	if err != nil {
		return nil, fmt.Errorf("list appointments %s room %s: %w", date, room, err)
	}

	grid := s.hours.grid()
	slots := make([]Slot, 0, len(grid))
	for _, m := range grid {
		slots = append(slots, Slot{
			Time:      m.String(),
			Available: m.Fits(duration) && IsFree(NewInterval(m, duration), existing, excludeID),
		})
	}
	return slots, nil
}

func (s *Scheduler) validUniverse(date, room string, duration int) bool {
	return duration > 0 && duration <= int(DayEnd) && ValidDate(date) && s.hours.HasRoom(room)
}
