package timezone

import (
	"sync"
	"time"
)

// DefaultTimezone is the clinic's zone when none is configured.
const DefaultTimezone = "Africa/Casablanca"

const dateLayout = "2006-01-02"

var zones sync.Map // name -> *time.Location

func load(tz string) (*time.Location, bool) {
	if tz == "" {
		return nil, false
	}
	if loc, ok := zones.Load(tz); ok {
		return loc.(*time.Location), true
	}

	loc, err := time.LoadLocation(tz)
	if err != nil {
		return nil, false
	}
	zones.Store(tz, loc)
	return loc, true
}

func IsValid(tz string) bool {
	_, ok := load(tz)
	return ok
}

// Location resolves tz, then DefaultTimezone, then UTC.
func Location(tz string) *time.Location {
	if loc, ok := load(tz); ok {
		return loc
	}
	if loc, ok := load(DefaultTimezone); ok {
		return loc
	}
	return time.UTC
}

// DateIn renders t as the clinic's calendar date (2006-01-02).
func DateIn(t time.Time, tz string) string {
	return t.In(Location(tz)).Format(dateLayout)
}
