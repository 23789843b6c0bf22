package dto

import (
	"time"

	"github.com/hirepulse/hirepulse-api/internal/models"
)

// ScheduleInterviewRequest creates an interview for a candidate and job.
// Manual scheduling is not constrained by the one-active-interview rule that
// applies to auto-created sessions.
type ScheduleInterviewRequest struct {
	CandidateID     int64                 `json:"candidate_id" validate:"required,gt=0"`
	JobID           int64                 `json:"job_id" validate:"required,gt=0"`
	Round           models.InterviewRound `json:"round" validate:"required"`
	ScheduledAt     time.Time             `json:"scheduled_at" validate:"required"`
	DurationMinutes int                   `json:"duration_minutes"`
	Mode            models.InterviewMode  `json:"mode"`
	MeetingLink     string                `json:"meeting_link"`
	Location        string                `json:"location"`
	PanelMembers    []int64               `json:"panel_members"`
	Notes           string                `json:"notes"`
}

// RescheduleInterviewRequest moves an existing interview.
type RescheduleInterviewRequest struct {
	ScheduledAt     time.Time `json:"scheduled_at" validate:"required"`
	DurationMinutes int       `json:"duration_minutes"`
	MeetingLink     string    `json:"meeting_link"`
	Reason          string    `json:"reason"`
}

// SubmitEvaluationRequest records the panel verdict for an interview. When
// the interview id no longer resolves to a row, the service synthesizes a
// completed session from the candidate's latest application instead of
// failing the submission.
type SubmitEvaluationRequest struct {
	InterviewID         int64   `json:"interview_id" validate:"required,gt=0"`
	CandidateID         int64   `json:"candidate_id" validate:"required,gt=0"`
	TechnicalRating     *int    `json:"technical_rating" validate:"omitempty,gte=1,lte=5"`
	CommunicationRating *int    `json:"communication_rating" validate:"omitempty,gte=1,lte=5"`
	CulturalFitRating   *int    `json:"cultural_fit_rating" validate:"omitempty,gte=1,lte=5"`
	OverallRating       float64 `json:"overall_rating" validate:"required,gte=0,lte=5"`
	Outcome             string  `json:"outcome" validate:"required"`
	Recommendation      string  `json:"recommendation"`
	Feedback            string  `json:"feedback"`
}

// EvaluationResult reports the stored evaluation plus how the interview row
// was obtained.
type EvaluationResult struct {
	Evaluation           *models.InterviewEvaluation `json:"evaluation"`
	Interview            *models.Interview           `json:"interview"`
	InterviewSynthesized bool                        `json:"interview_synthesized"`
	ApplicationStatus    models.ApplicationStatus    `json:"application_status,omitempty"`
}

// InterviewQuery mirrors supported listing filters.
type InterviewQuery struct {
	CandidateID int64
	JobID       int64
	Status      models.InterviewStatus
	PanelMember int64
	From        *time.Time
	To          *time.Time
	Page        int
	PageSize    int
}
