package patient

import (
	"fmt"
	"strconv"
	"strings"
)

// ===============================
// Identificador do paciente
// ===============================

// FormatID renders the year scoped id, e.g. "03/2026". Sequences are padded
// to two digits and grow past 99 as needed.
func FormatID(seq, year int) string {
	return fmt.Sprintf("%02d/%d", seq, year)
}

// ParseID splits an id into its sequence and year.
func ParseID(id string) (seq, year int, err error) {
	left, right, ok := strings.Cut(id, "/")
	if !ok {
		return 0, 0, fmt.Errorf("patient id %q: missing year", id)
	}
	if seq, err = strconv.Atoi(left); err != nil || seq <= 0 {
		return 0, 0, fmt.Errorf("patient id %q: bad sequence", id)
	}
	if year, err = strconv.Atoi(right); err != nil || len(right) != 4 {
		return 0, 0, fmt.Errorf("patient id %q: bad year", id)
	}
	return seq, year, nil
}

// NextID returns the id following the highest sequence of year among ids.
// Ids of other years and malformed ids are ignored.
func NextID(ids []string, year int) string {
	maxSeq := 0
	for _, id := range ids {
		seq, y, err := ParseID(id)
		if err != nil || y != year {
			continue
		}
		if seq > maxSeq {
			maxSeq = seq
		}
	}
	return FormatID(maxSeq+1, year)
}

// DisplayID is the label shown on screens and documents.
func DisplayID(id string) string {
	if id == "" {
		return ""
	}
	return "PA-" + id
}
