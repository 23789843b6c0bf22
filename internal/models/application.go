package models

import "time"

// ApplicationStatus is persisted as its lowercase string value.
type ApplicationStatus string

const (
	ApplicationStatusApplied     ApplicationStatus = "applied"
	ApplicationStatusScreening   ApplicationStatus = "screening"
	ApplicationStatusShortlisted ApplicationStatus = "shortlisted"
	ApplicationStatusInterview   ApplicationStatus = "interview"
	ApplicationStatusOffered     ApplicationStatus = "offered"
	ApplicationStatusRejected    ApplicationStatus = "rejected"
	ApplicationStatusJoined      ApplicationStatus = "joined"
	ApplicationStatusHold        ApplicationStatus = "hold"
)

// AllowedApplicationStatuses is the transition allow-list for recruiter/manager
// status updates. The pipeline deliberately permits jumps (applied -> rejected,
// applied -> shortlisted) rather than enforcing a strict linear graph.
var AllowedApplicationStatuses = map[ApplicationStatus]struct{}{
	ApplicationStatusApplied:     {},
	ApplicationStatusScreening:   {},
	ApplicationStatusShortlisted: {},
	ApplicationStatusInterview:   {},
	ApplicationStatusOffered:     {},
	ApplicationStatusRejected:    {},
	ApplicationStatusJoined:      {},
	ApplicationStatusHold:        {},
}

// Application represents one candidate's pursuit of one job.
type Application struct {
	ID              int64             `db:"id" json:"id"`
	CandidateID     int64             `db:"candidate_id" json:"candidate_id"`
	JobID           int64             `db:"job_id" json:"job_id"`
	Status          ApplicationStatus `db:"status" json:"status"`
	ApplicationData JSONMap           `db:"application_data" json:"application_data,omitempty"`
	AIScore         *int              `db:"ai_score" json:"ai_score,omitempty"`
	ScreeningNotes  *string           `db:"screening_notes" json:"screening_notes,omitempty"`
	AppliedAt       time.Time         `db:"applied_at" json:"applied_at"`
	UpdatedAt       *time.Time        `db:"updated_at" json:"updated_at,omitempty"`
}

// IsTerminal reports whether the application left the active pipeline.
func (s ApplicationStatus) IsTerminal() bool {
	return s == ApplicationStatusRejected || s == ApplicationStatusJoined
}
