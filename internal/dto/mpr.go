package dto

import "github.com/hirepulse/hirepulse-api/internal/models"

// CreateMPRRequest raises a manpower requisition.
type CreateMPRRequest struct {
	Title         string   `json:"title" validate:"required"`
	Department    string   `json:"department" validate:"required"`
	Headcount     int      `json:"headcount" validate:"required,gt=0"`
	Justification string   `json:"justification"`
	BudgetMin     *float64 `json:"budget_min" validate:"omitempty,gte=0"`
	BudgetMax     *float64 `json:"budget_max" validate:"omitempty,gte=0"`
	JobID         *int64   `json:"job_id"`
}

// ReviewMPRRequest approves or rejects a submitted requisition.
type ReviewMPRRequest struct {
	Status models.MPRStatus `json:"status" validate:"required,oneof=approved rejected"`
	Note   string           `json:"note"`
}

// MPRQuery mirrors supported listing filters.
type MPRQuery struct {
	Department string
	Status     models.MPRStatus
	Page       int
	PageSize   int
}
