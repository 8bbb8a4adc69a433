package dto

import "github.com/BruksfildServices01/dental-scheduler/internal/models"

type BalanceDTO struct {
	TotalCents     int64 `json:"total_cents"`
	PaidCents      int64 `json:"paid_cents"`
	RemainingCents int64 `json:"remaining_cents"`
	Settled        bool  `json:"settled"`
}

// ActDTO is an act card: the act, its phases and payments, and what is left to pay.
type ActDTO struct {
	models.Act
	Balance BalanceDTO `json:"balance"`
}

type PatientActsDTO struct {
	PatientID string     `json:"patient_id"`
	Acts      []ActDTO   `json:"acts"`
	Summary   BalanceDTO `json:"summary"`
}
