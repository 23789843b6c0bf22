package dto

import (
	"time"

	"github.com/hirepulse/hirepulse-api/internal/models"
)

// SubmitApplicationRequest is the candidate-facing apply payload.
type SubmitApplicationRequest struct {
	JobID           int64          `json:"job_id" validate:"required,gt=0"`
	CoverLetter     string         `json:"cover_letter"`
	ApplicationData models.JSONMap `json:"application_data"`
}

// UpdateApplicationStatusRequest drives recruiter/manager pipeline moves.
type UpdateApplicationStatusRequest struct {
	Status models.ApplicationStatus `json:"status" validate:"required"`
	Notes  string                   `json:"notes"`
}

// ApplicationQuery mirrors supported listing filters.
type ApplicationQuery struct {
	JobID       int64
	CandidateID int64
	Status      models.ApplicationStatus
	Page        int
	PageSize    int
}

// ApplicationResponse is the enriched application view returned to clients.
type ApplicationResponse struct {
	ID             int64                    `json:"id"`
	CandidateID    int64                    `json:"candidate_id"`
	CandidateName  string                   `json:"candidate_name,omitempty"`
	JobID          int64                    `json:"job_id"`
	JobTitle       string                   `json:"job_title,omitempty"`
	Status         models.ApplicationStatus `json:"status"`
	AIScore        *int                     `json:"ai_score,omitempty"`
	ScreeningNotes *string                  `json:"screening_notes,omitempty"`
	AppliedAt      time.Time                `json:"applied_at"`
	UpdatedAt      *time.Time               `json:"updated_at,omitempty"`
}

// StatusTransitionResult reports what a pipeline move caused.
type StatusTransitionResult struct {
	Application          *models.Application      `json:"application"`
	PreviousStatus       models.ApplicationStatus `json:"previous_status"`
	InterviewAutoCreated bool                     `json:"interview_auto_created"`
	InterviewID          *int64                   `json:"interview_id,omitempty"`
}
