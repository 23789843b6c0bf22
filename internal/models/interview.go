package models

import "time"

// InterviewRound enumerates the interview stages.
type InterviewRound string

const (
	RoundScreening  InterviewRound = "screening"
	RoundTechnical1 InterviewRound = "technical_1"
	RoundTechnical2 InterviewRound = "technical_2"
	RoundManagerial InterviewRound = "managerial"
	RoundHR         InterviewRound = "hr"
	RoundFinal      InterviewRound = "final"
)

// InterviewMode enumerates how an interview is conducted.
type InterviewMode string

const (
	ModeVideoCall InterviewMode = "video_call"
	ModeInPerson  InterviewMode = "in_person"
	ModePhone     InterviewMode = "phone"
)

// InterviewStatus enumerates interview lifecycle states.
type InterviewStatus string

const (
	InterviewStatusScheduled InterviewStatus = "scheduled"
	InterviewStatusCompleted InterviewStatus = "completed"
	InterviewStatusCancelled InterviewStatus = "cancelled"
	InterviewStatusNoShow    InterviewStatus = "no_show"
)

// Interview is a scheduled session for a (candidate, job) pair. There is no
// foreign key to the application on purpose: interviews and offers are
// siblings under the composite (candidate_id, job_id) key, so an interview
// can exist without an application.
type Interview struct {
	ID              int64           `db:"id" json:"id"`
	CandidateID     int64           `db:"candidate_id" json:"candidate_id"`
	JobID           int64           `db:"job_id" json:"job_id"`
	Round           InterviewRound  `db:"round" json:"round"`
	ScheduledAt     time.Time       `db:"scheduled_at" json:"scheduled_at"`
	DurationMinutes int             `db:"duration_minutes" json:"duration_minutes"`
	Mode            InterviewMode   `db:"mode" json:"mode"`
	MeetingLink     *string         `db:"meeting_link" json:"meeting_link,omitempty"`
	Location        *string         `db:"location" json:"location,omitempty"`
	PanelMembers    Int64List       `db:"panel_members" json:"panel_members"`
	Status          InterviewStatus `db:"status" json:"status"`
	Notes           *string         `db:"notes" json:"notes,omitempty"`
	CreatedBy       int64           `db:"created_by" json:"created_by"`
	CreatedAt       time.Time       `db:"created_at" json:"created_at"`
	UpdatedAt       *time.Time      `db:"updated_at" json:"updated_at,omitempty"`
}

// IsActive reports whether the interview still blocks auto-scheduling of a
// new one for the same candidate and job.
func (s InterviewStatus) IsActive() bool {
	return s == InterviewStatusScheduled || s == InterviewStatusCompleted
}

// InterviewEvaluation is the panel's verdict for one interview. At most one
// row exists per interview; resubmission overwrites in place.
type InterviewEvaluation struct {
	ID                  int64      `db:"id" json:"id"`
	InterviewID         int64      `db:"interview_id" json:"interview_id"`
	EvaluatorID         int64      `db:"evaluator_id" json:"evaluator_id"`
	TechnicalRating     *int       `db:"technical_rating" json:"technical_rating,omitempty"`
	CommunicationRating *int       `db:"communication_rating" json:"communication_rating,omitempty"`
	CulturalFitRating   *int       `db:"cultural_fit_rating" json:"cultural_fit_rating,omitempty"`
	OverallRating       float64    `db:"overall_rating" json:"overall_rating"`
	Outcome             string     `db:"outcome" json:"outcome"`
	Recommendation      *string    `db:"recommendation" json:"recommendation,omitempty"`
	Feedback            *string    `db:"feedback" json:"feedback,omitempty"`
	SubmittedAt         time.Time  `db:"submitted_at" json:"submitted_at"`
	UpdatedAt           *time.Time `db:"updated_at" json:"updated_at,omitempty"`
}

// OutcomeRejects reports whether an evaluation outcome sinks the application.
// The review tooling that feeds this endpoint has emitted several spellings
// for the negative verdict over time; all of them are honored.
func OutcomeRejects(outcome string) bool {
	switch outcome {
	case "rejected", "reject", "fail":
		return true
	}
	return false
}
