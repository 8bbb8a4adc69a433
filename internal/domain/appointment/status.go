package appointment

// ===============================
// Appointment Status
// ===============================

type Status string

const (
	StatusConfirmed Status = "Confirmé"
	StatusCancelled Status = "Annulé"
	StatusAbsent    Status = "Absent"
	StatusCompleted Status = "Terminé"
)

func (s Status) Valid() bool {
	switch s {
	case StatusConfirmed, StatusCancelled, StatusAbsent, StatusCompleted:
		return true
	}
	return false
}

// RequiresReason reports whether a free-text reason accompanies the status.
func (s Status) RequiresReason() bool {
	return s == StatusCancelled || s == StatusAbsent
}

// BlocksSlot reports whether an appointment in this status occupies its room.
// Cancelled appointments free their slot.
func (s Status) BlocksSlot() bool {
	return s != StatusCancelled
}

// ===============================
// Validations
// ===============================

// ParseStatus validates a status received from the API.
func ParseStatus(raw string) (Status, error) {
	s := Status(raw)
	if !s.Valid() {
		return "", ErrInvalidStatus
	}
	return s, nil
}

func InitialStatus() Status {
	return StatusConfirmed
}
