package dto

import "github.com/hirepulse/hirepulse-api/internal/models"

// CreateJobRequest creates a job posting.
type CreateJobRequest struct {
	Title              string   `json:"title" validate:"required"`
	Description        string   `json:"description" validate:"required"`
	Department         string   `json:"department" validate:"required"`
	Location           string   `json:"location"`
	JobType            string   `json:"job_type"`
	ExperienceRequired int      `json:"experience_required" validate:"gte=0"`
	BudgetMin          *float64 `json:"budget_min" validate:"omitempty,gte=0"`
	BudgetMax          *float64 `json:"budget_max" validate:"omitempty,gte=0"`
	ManagerID          *int64   `json:"manager_id"`
	SkillsRequired     []string `json:"skills_required"`
	Responsibilities   string   `json:"responsibilities"`
	Requirements       string   `json:"requirements"`
	Visibility         string   `json:"visibility"`
}

// UpdateJobRequest carries partial job edits.
type UpdateJobRequest struct {
	Title              *string  `json:"title"`
	Description        *string  `json:"description"`
	Location           *string  `json:"location"`
	JobType            *string  `json:"job_type"`
	ExperienceRequired *int     `json:"experience_required" validate:"omitempty,gte=0"`
	BudgetMin          *float64 `json:"budget_min" validate:"omitempty,gte=0"`
	BudgetMax          *float64 `json:"budget_max" validate:"omitempty,gte=0"`
	SkillsRequired     []string `json:"skills_required"`
	Responsibilities   *string  `json:"responsibilities"`
	Requirements       *string  `json:"requirements"`
	Visibility         *string  `json:"visibility"`
}

// UpdateJobStatusRequest moves a job between posting states.
type UpdateJobStatusRequest struct {
	Status models.JobStatus `json:"status" validate:"required"`
}

// JobQuery mirrors supported listing filters.
type JobQuery struct {
	Department string
	Status     models.JobStatus
	Search     string
	Page       int
	PageSize   int
}

// JobMatchResponse is one ranked candidate suggestion for a job.
type JobMatchResponse struct {
	CandidateID     int64    `json:"candidate_id"`
	CandidateName   string   `json:"candidate_name"`
	Score           float64  `json:"score"`
	MatchedSkills   []string `json:"matched_skills"`
	MissingSkills   []string `json:"missing_skills"`
	ExperienceYears int      `json:"experience_years"`
}
