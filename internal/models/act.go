package models

import "time"

// Act is a billed treatment on one tooth. Amounts are in centimes (1/100 DH).
type Act struct {
	ID uint `gorm:"primaryKey" json:"id"`

	PatientID string   `gorm:"size:20;not null;index" json:"patient_id"`
	Patient   *Patient `gorm:"foreignKey:PatientID;constraint:OnDelete:RESTRICT" json:"-"`

	Type       string `gorm:"size:100;not null" json:"type"`
	Tooth      string `gorm:"size:20;not null" json:"tooth"`
	PriceCents int64  `gorm:"not null" json:"price_cents"`
	Date       string `gorm:"size:10;not null" json:"date"`
	Notes      string `gorm:"type:text" json:"notes"`

	Phases   []TreatmentPhase `gorm:"constraint:OnDelete:CASCADE" json:"phases"`
	Payments []Payment        `gorm:"constraint:OnDelete:CASCADE" json:"payments"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// TreatmentPhase is one session of an act, optionally documented with photos.
type TreatmentPhase struct {
	ID    uint `gorm:"primaryKey" json:"id"`
	ActID uint `gorm:"not null;index" json:"act_id"`

	Date        string `gorm:"size:10;not null" json:"date"`
	Description string `gorm:"size:255;not null" json:"description"`
	Notes       string `gorm:"type:text" json:"notes"`

	Photos []PhasePhoto `gorm:"foreignKey:PhaseID;constraint:OnDelete:CASCADE" json:"photos"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// PhasePhoto points at a transcoded image in the object store.
type PhasePhoto struct {
	ID      uint `gorm:"primaryKey" json:"id"`
	PhaseID uint `gorm:"not null;index" json:"phase_id"`

	ObjectKey    string `gorm:"size:255;not null;uniqueIndex" json:"-"`
	OriginalName string `gorm:"size:255" json:"original_name"`
	ContentType  string `gorm:"size:50" json:"content_type"`
	SizeBytes    int64  `json:"size_bytes"`
	Width        int    `json:"width"`
	Height       int    `json:"height"`

	CreatedAt time.Time `json:"created_at"`
}

type Payment struct {
	ID    uint `gorm:"primaryKey" json:"id"`
	ActID uint `gorm:"not null;index" json:"act_id"`

	Date        string `gorm:"size:10;not null" json:"date"`
	AmountCents int64  `gorm:"not null" json:"amount_cents"`
	Method      string `gorm:"size:20" json:"method,omitempty"`
	Reference   string `gorm:"size:100" json:"reference,omitempty"`
	Notes       string `gorm:"type:text" json:"notes,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
