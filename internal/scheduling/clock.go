package scheduling

import (
	"fmt"
	"strings"
	"time"
)

// Minute is a minute-of-day value. Clinic days never cross midnight, so no
// wraparound is applied.
type Minute int

// DayEnd is midnight closing the day. No interval reaches past it.
const DayEnd Minute = 24 * 60

func ParseClock(s string) (Minute, error) {
	t, err := time.Parse("15:04", strings.TrimSpace(s))
	if err != nil {
		return 0, fmt.Errorf("parse clock %q: %w", s, err)
	}
	return Minute(t.Hour()*60 + t.Minute()), nil
}

func MustParseClock(s string) Minute {
	m, err := ParseClock(s)
	if err != nil {
		panic(err)
	}
	return m
}

func (m Minute) Add(minutes int) Minute {
	return m + Minute(minutes)
}

// Fits reports whether [m, m+duration) is non-empty and ends by DayEnd.
// The comparison is done on the remaining room so huge durations cannot wrap.
func (m Minute) Fits(duration int) bool {
	return m >= 0 && m < DayEnd && duration > 0 && duration <= int(DayEnd-m)
}

func (m Minute) String() string {
	return fmt.Sprintf("%02d:%02d", int(m)/60, int(m)%60)
}

// ValidDate reports whether s is an ISO calendar date (2006-01-02).
func ValidDate(s string) bool {
	if len(s) != len("2006-01-02") {
		return false
	}
	_, err := time.Parse("2006-01-02", s)
	return err == nil
}
