package dto

import "github.com/BruksfildServices01/dental-scheduler/internal/models"

type AppointmentListDTO struct {
	ID           uint   `json:"id"`
	PatientID    string `json:"patient_id"`
	PatientName  string `json:"patient_name"`
	Type         string `json:"type"`
	Date         string `json:"date"`
	Time         string `json:"time"`
	EndTime      string `json:"end_time"`
	Room         string `json:"room"`
	Duration     int    `json:"duration"`
	Status       string `json:"status"`
	StatusReason string `json:"status_reason,omitempty"`
	Notes        string `json:"notes,omitempty"`
}

// endTime is passed in so this package stays free of clock arithmetic.
func NewAppointmentListDTO(ap models.Appointment, endTime string) AppointmentListDTO {
	return AppointmentListDTO{
		ID:           ap.ID,
		PatientID:    ap.PatientID,
		PatientName:  ap.PatientName,
		Type:         ap.Type,
		Date:         ap.Date,
		Time:         ap.Time,
		EndTime:      endTime,
		Room:         ap.Room,
		Duration:     ap.Duration,
		Status:       ap.Status,
		StatusReason: ap.StatusReason,
		Notes:        ap.Notes,
	}
}
