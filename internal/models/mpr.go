package models

import "time"

// MPRStatus enumerates manpower requisition states.
type MPRStatus string

const (
	MPRStatusDraft     MPRStatus = "draft"
	MPRStatusSubmitted MPRStatus = "submitted"
	MPRStatusApproved  MPRStatus = "approved"
	MPRStatusRejected  MPRStatus = "rejected"
	MPRStatusFulfilled MPRStatus = "fulfilled"
)

// MPR is a manpower requisition raised by a hiring manager. Approved MPRs
// are the source of budget caps for offers against the linked job.
type MPR struct {
	ID              int64      `db:"id" json:"id"`
	RequisitionCode string     `db:"requisition_code" json:"requisition_code"`
	Title           string     `db:"title" json:"title"`
	Department      string     `db:"department" json:"department"`
	Headcount       int        `db:"headcount" json:"headcount"`
	JustificationID *string    `db:"justification" json:"justification,omitempty"`
	BudgetMin       *float64   `db:"budget_min" json:"budget_min,omitempty"`
	BudgetMax       *float64   `db:"budget_max" json:"budget_max,omitempty"`
	RequestedBy     int64      `db:"requested_by" json:"requested_by"`
	ApprovedBy      *int64     `db:"approved_by" json:"approved_by,omitempty"`
	JobID           *int64     `db:"job_id" json:"job_id,omitempty"`
	Status          MPRStatus  `db:"status" json:"status"`
	Config          JSONMap    `db:"config" json:"config,omitempty"`
	CreatedAt       time.Time  `db:"created_at" json:"created_at"`
	ApprovedAt      *time.Time `db:"approved_at" json:"approved_at,omitempty"`
	UpdatedAt       *time.Time `db:"updated_at" json:"updated_at,omitempty"`
}

// MPRConfig is the budget snapshot frozen into the config column at approval
// time. Offers read the cap from here so later MPR edits cannot shift the
// variance of already-released offers.
type MPRConfig struct {
	BudgetMin float64 `json:"budget_min"`
	BudgetMax float64 `json:"budget_max"`
	Headcount int     `json:"headcount"`
	FrozenAt  string  `json:"frozen_at"`
}

// FrozenBudgetMax returns the approved budget cap, preferring the frozen
// config snapshot over the live column.
func (m *MPR) FrozenBudgetMax() (float64, bool) {
	if m.Config != nil {
		if v, ok := m.Config["budget_max"].(float64); ok && v > 0 {
			return v, true
		}
	}
	if m.BudgetMax != nil && *m.BudgetMax > 0 {
		return *m.BudgetMax, true
	}
	return 0, false
}
