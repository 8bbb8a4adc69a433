package labwork

import (
	"context"
	"time"

	"github.com/BruksfildServices01/dental-scheduler/internal/httperr"
	"github.com/BruksfildServices01/dental-scheduler/internal/models"
)

// ===============================
// Status
// ===============================

type Status string

const (
	StatusNotStarted Status = "Not Started"
	StatusInProgress Status = "In Progress"
	StatusReady      Status = "Ready"
	StatusCompleted  Status = "Completed"
	StatusDelayed    Status = "Delayed"
)

func (s Status) Valid() bool {
	switch s {
	case StatusNotStarted, StatusInProgress, StatusReady, StatusCompleted, StatusDelayed:
		return true
	}
	return false
}

// Back reports whether the work has come back from the laboratory.
func (s Status) Back() bool {
	return s == StatusReady || s == StatusCompleted
}

// ParseStatus maps "" to StatusNotStarted.
func ParseStatus(raw string) (Status, error) {
	if raw == "" {
		return StatusNotStarted, nil
	}
	s := Status(raw)
	if !s.Valid() {
		return "", ErrInvalidStatus
	}
	return s, nil
}

// ===============================
// Errors
// ===============================

var (
	ErrLabWorkNotFound = httperr.ErrBusiness("lab_work_not_found")
	ErrInvalidLabWork  = httperr.ErrBusiness("invalid_lab_work")
	ErrInvalidStatus   = httperr.ErrBusiness("invalid_lab_status")
)

// ===============================
// Dates
// ===============================

// TurnaroundDays is the default delay between sending and expecting a work.
const TurnaroundDays = 7

const dateLayout = "2006-01-02"

// DefaultExpected returns sent + TurnaroundDays, or "" when sent is not a date.
func DefaultExpected(sent string) string {
	t, err := time.Parse(dateLayout, sent)
	if err != nil {
		return ""
	}
	return t.AddDate(0, 0, TurnaroundDays).Format(dateLayout)
}

// Overdue reports a work still at the laboratory after its expected date.
func Overdue(lw models.LabWork, today string) bool {
	if lw.DateExpected == "" || Status(lw.Status).Back() {
		return false
	}
	return lw.DateExpected < today
}

// ===============================
// Repository
// ===============================

// Filter matches Query against lab name, patient name and work type,
// case-insensitively; Status is an exact match. Zero fields are ignored.
type Filter struct {
	Query  string
	Status Status
}

type Repository interface {
	CreateLabWork(ctx context.Context, lw *models.LabWork) error
	GetLabWork(ctx context.Context, id uint) (*models.LabWork, error)
	UpdateLabWork(ctx context.Context, lw *models.LabWork) error
	DeleteLabWork(ctx context.Context, id uint) error

	// SearchLabWorks orders by expected date, then id.
	SearchLabWorks(ctx context.Context, filter Filter) ([]models.LabWork, error)
}
