package appointment

import "github.com/BruksfildServices01/dental-scheduler/internal/httperr"

var (
	ErrTimeConflict        = httperr.ErrBusiness("time_conflict")
	ErrInvalidSlot         = httperr.ErrBusiness("invalid_slot")
	ErrInvalidRoom         = httperr.ErrBusiness("invalid_room")
	ErrInvalidStatus       = httperr.ErrBusiness("invalid_status")
	ErrAppointmentNotFound = httperr.ErrBusiness("appointment_not_found")
	ErrPatientNotFound     = httperr.ErrBusiness("patient_not_found")
)
