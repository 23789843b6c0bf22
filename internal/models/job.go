package models

import "time"

// JobStatus enumerates job posting states.
type JobStatus string

const (
	JobStatusDraft     JobStatus = "draft"
	JobStatusOpen      JobStatus = "open"
	JobStatusClosed    JobStatus = "closed"
	JobStatusFilled    JobStatus = "filled"
	JobStatusCancelled JobStatus = "cancelled"
)

// Job is a posting/requisition candidates apply against.
type Job struct {
	ID                 int64      `db:"id" json:"id"`
	Title              string     `db:"title" json:"title"`
	Description        string     `db:"description" json:"description"`
	Department         string     `db:"department" json:"department"`
	Location           *string    `db:"location" json:"location,omitempty"`
	JobType            *string    `db:"job_type" json:"job_type,omitempty"`
	ExperienceRequired int        `db:"experience_required" json:"experience_required"`
	BudgetMin          *float64   `db:"budget_min" json:"budget_min,omitempty"`
	BudgetMax          *float64   `db:"budget_max" json:"budget_max,omitempty"`
	ManagerID          *int64     `db:"manager_id" json:"manager_id,omitempty"`
	Status             JobStatus  `db:"status" json:"status"`
	Visibility         string     `db:"visibility" json:"visibility"`
	SkillsRequired     StringList `db:"skills_required" json:"skills_required"`
	Responsibilities   *string    `db:"responsibilities" json:"responsibilities,omitempty"`
	Requirements       *string    `db:"requirements" json:"requirements,omitempty"`
	PostedAt           *time.Time `db:"posted_at" json:"posted_at,omitempty"`
	ClosedAt           *time.Time `db:"closed_at" json:"closed_at,omitempty"`
	CreatedAt          time.Time  `db:"created_at" json:"created_at"`
	UpdatedAt          *time.Time `db:"updated_at" json:"updated_at,omitempty"`
}
