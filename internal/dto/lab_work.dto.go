package dto

import "github.com/BruksfildServices01/dental-scheduler/internal/models"

type LabWorkDTO struct {
	models.LabWork
	Overdue bool `json:"overdue"`
}
