package models

import "time"

// AuditLog is one recorded change to an appointment or patient.
type AuditLog struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	CreatedAt time.Time `gorm:"index" json:"created_at"`

	RequestID string `gorm:"size:64" json:"request_id,omitempty"`
	Actor     string `gorm:"size:100" json:"actor"`
	Action    string `gorm:"size:50;not null;index" json:"action"`

	// Entity/EntityID address the changed row: ("appointment", "17"), ("patient", "03/2026").
	Entity   string `gorm:"size:50;index:idx_audit_entity" json:"entity"`
	EntityID string `gorm:"size:50;index:idx_audit_entity" json:"entity_id"`

	Metadata string `gorm:"type:text" json:"metadata"`
}

func (AuditLog) TableName() string { return "audit_logs" }
