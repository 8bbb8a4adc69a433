package models

import (
	"fmt"
	"time"

	"gorm.io/gorm"
)

type Appointment struct {
	ID uint `gorm:"primaryKey" json:"id"`

	PatientID   string `gorm:"size:20;index" json:"patient_id"`
	PatientName string `gorm:"size:200" json:"patient_name"`

	Type string `gorm:"size:100" json:"type"`

	// Date is an ISO calendar date (2006-01-02), Time a slot start (15:04).
	Date     string `gorm:"size:10;not null;index:idx_appointments_date_room" json:"date"`
	Time     string `gorm:"size:5;not null" json:"time"`
	Room     string `gorm:"size:10;not null;index:idx_appointments_date_room" json:"room"`
	Duration int    `gorm:"not null" json:"duration"`

	Status       string `gorm:"size:20;default:'Confirmé'" json:"status"`
	StatusReason string `gorm:"size:255" json:"status_reason,omitempty"`

	Notes string `gorm:"size:255" json:"notes"`

	// Minute-of-day bounds backing the no-overlap exclusion constraint.
	StartMinute int `gorm:"not null;default:0" json:"-"`
	EndMinute   int `gorm:"not null;default:0" json:"-"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (a *Appointment) BeforeSave(tx *gorm.DB) error {
	t, err := time.Parse("15:04", a.Time)
	if err != nil {
		return err
	}
	a.StartMinute = t.Hour()*60 + t.Minute()
	if a.Duration <= 0 || a.Duration > 24*60-a.StartMinute {
		return fmt.Errorf("appointment %s+%d runs past midnight", a.Time, a.Duration)
	}
	a.EndMinute = a.StartMinute + a.Duration
	return nil
}
