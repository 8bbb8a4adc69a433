package models

import "time"

// Patient ids are year scoped sequences: "01/2026", "02/2026", ...
type Patient struct {
	ID string `gorm:"primaryKey;size:20" json:"id"`

	FirstName   string `gorm:"size:100;not null" json:"first_name"`
	LastName    string `gorm:"size:100;not null" json:"last_name"`
	CINPassport string `gorm:"size:50;index" json:"cin_passport"`
	BirthDate   string `gorm:"size:10" json:"birth_date"`
	Phone       string `gorm:"size:20" json:"phone"`
	Email       string `gorm:"size:100" json:"email"`
	Notes       string `gorm:"type:text" json:"notes"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (p Patient) FullName() string {
	return p.FirstName + " " + p.LastName
}
