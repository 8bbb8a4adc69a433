package validators

import (
	"strings"
	"time"
	"unicode"
)

// IsPhone accepts digits with an optional leading '+' and the usual
// separators (space, dot, dash). At least 8 digits are required.
func IsPhone(s string) bool {
	s = strings.TrimSpace(s)
	if s == "" {
		return false
	}

	digits := 0
	for i, r := range s {
		switch {
		case unicode.IsDigit(r):
			digits++
		case r == '+' && i == 0:
		case r == ' ' || r == '.' || r == '-':
		default:
			return false
		}
	}
	return digits >= 8 && digits <= 15
}

// IsBirthDate accepts an ISO date that is not after today.
func IsBirthDate(s string, today time.Time) bool {
	d, err := time.Parse("2006-01-02", s)
	if err != nil {
		return false
	}
	y, m, day := today.Date()
	return !d.After(time.Date(y, m, day, 0, 0, 0, 0, time.UTC))
}

// NormalizeName trims and collapses inner whitespace.
func NormalizeName(s string) string {
	return strings.Join(strings.Fields(s), " ")
}
