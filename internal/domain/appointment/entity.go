package appointment

import (
	"strings"

	"github.com/BruksfildServices01/dental-scheduler/internal/models"
)

// ===============================
// Domain Actions
// ===============================

// ApplyStatus changes status and reason only; the booked interval is never
// touched, so no availability re-check is needed.
func ApplyStatus(ap *models.Appointment, status Status, reason string) error {
	if !status.Valid() {
		return ErrInvalidStatus
	}

	ap.Status = string(status)
	if status.RequiresReason() {
		ap.StatusReason = strings.TrimSpace(reason)
	} else {
		ap.StatusReason = ""
	}
	return nil
}
