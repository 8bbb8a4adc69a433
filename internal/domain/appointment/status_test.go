package appointment

import (
	"testing"

	"github.com/BruksfildServices01/dental-scheduler/internal/models"
)

func TestParseStatus(t *testing.T) {
	for _, raw := range []string{"Confirmé", "Annulé", "Absent", "Terminé"} {
		if _, err := ParseStatus(raw); err != nil {
			t.Fatalf("ParseStatus(%q) error: %v", raw, err)
		}
	}
	if _, err := ParseStatus("cancelled"); err != ErrInvalidStatus {
		t.Fatalf("error = %v, want %v", err, ErrInvalidStatus)
	}
}

func TestStatusBlocksSlot(t *testing.T) {
	if StatusCancelled.BlocksSlot() {
		t.Fatalf("cancelled appointments must free their slot")
	}
	for _, s := range []Status{StatusConfirmed, StatusAbsent, StatusCompleted} {
		if !s.BlocksSlot() {
			t.Fatalf("%s should block its slot", s)
		}
	}
}

func TestApplyStatus_KeepsReasonOnlyForCancelledOrAbsent(t *testing.T) {
	ap := &models.Appointment{Time: "10:00", Duration: 30, Status: string(StatusConfirmed)}

	if err := ApplyStatus(ap, StatusCancelled, "  patient malade "); err != nil {
		t.Fatalf("ApplyStatus error: %v", err)
	}
	if ap.Status != "Annulé" || ap.StatusReason != "patient malade" {
		t.Fatalf("got status=%q reason=%q", ap.Status, ap.StatusReason)
	}

	if err := ApplyStatus(ap, StatusCompleted, "ignored"); err != nil {
		t.Fatalf("ApplyStatus error: %v", err)
	}
	if ap.Status != "Terminé" || ap.StatusReason != "" {
		t.Fatalf("got status=%q reason=%q", ap.Status, ap.StatusReason)
	}
	if ap.Time != "10:00" || ap.Duration != 30 {
		t.Fatalf("interval changed: time=%q duration=%d", ap.Time, ap.Duration)
	}
}

func TestApplyStatus_RejectsUnknownStatus(t *testing.T) {
	ap := &models.Appointment{Status: string(StatusConfirmed)}
	if err := ApplyStatus(ap, Status("Reporté"), ""); err != ErrInvalidStatus {
		t.Fatalf("error = %v, want %v", err, ErrInvalidStatus)
	}
	if ap.Status != string(StatusConfirmed) {
		t.Fatalf("status changed to %q", ap.Status)
	}
}
