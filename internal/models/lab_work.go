package models

import "time"

// LabWork tracks a prosthesis or appliance sent out to a dental laboratory.
type LabWork struct {
	ID uint `gorm:"primaryKey" json:"id"`

	LabName  string `gorm:"size:100;not null;index" json:"lab_name"`
	Phone    string `gorm:"size:20" json:"phone"`
	TypeWork string `gorm:"size:100" json:"type_work"`
	Tooth    string `gorm:"size:20" json:"tooth"`

	// PatientID is optional; PatientName is copied at save time and kept
	// when the patient record goes away.
	PatientID   string `gorm:"size:20;index" json:"patient_id,omitempty"`
	PatientName string `gorm:"size:200" json:"patient_name"`

	Status       string `gorm:"size:20;not null;default:'Not Started';index" json:"status"`
	DateSent     string `gorm:"size:10" json:"date_sent"`
	DateExpected string `gorm:"size:10" json:"date_expected"`
	Notes        string `gorm:"type:text" json:"notes"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
