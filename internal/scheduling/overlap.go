package scheduling

import (
	domain "github.com/BruksfildServices01/dental-scheduler/internal/domain/appointment"
	"github.com/BruksfildServices01/dental-scheduler/internal/models"
)

// Interval is the half-open span [Start, End).
type Interval struct {
	Start Minute
	End   Minute
}

// NewInterval builds [start, start+duration). An empty span, or one running
// past DayEnd, is stretched to DayEnd: a stored row with a corrupt duration
// keeps blocking the rest of its day instead of blocking nothing.
func NewInterval(start Minute, duration int) Interval {
	if !start.Fits(duration) {
		return Interval{Start: start, End: DayEnd}
	}
	return Interval{Start: start, End: start.Add(duration)}
}

// Overlaps treats touching intervals as disjoint: back-to-back bookings are legal.
func (iv Interval) Overlaps(o Interval) bool {
	return iv.Start < o.End && iv.End > o.Start
}

// IsFree reports whether candidate collides with none of existing. The
// appointment with id excludeID (when non-zero) is ignored, as are cancelled
// ones and rows whose start time cannot be parsed.
func IsFree(candidate Interval, existing []models.Appointment, excludeID uint) bool {
	for _, ap := range existing {
		if excludeID != 0 && ap.ID == excludeID {
			continue
		}
		if !domain.Status(ap.Status).BlocksSlot() {
			continue
		}

		start, err := ParseClock(ap.Time)
		if err != nil {
			continue
		}

		if candidate.Overlaps(NewInterval(start, ap.Duration)) {
			return false
		}
	}
	return true
}
