package models

import "time"

// Candidate stores profile data for a candidate-portal user.
type Candidate struct {
	ID              int64      `db:"id" json:"id"`
	UserID          int64      `db:"user_id" json:"user_id"`
	Phone           *string    `db:"phone" json:"phone,omitempty"`
	Address         *string    `db:"address" json:"address,omitempty"`
	City            *string    `db:"city" json:"city,omitempty"`
	Country         *string    `db:"country" json:"country,omitempty"`
	Skills          StringList `db:"skills" json:"skills"`
	ExperienceYears int        `db:"experience_years" json:"experience_years"`
	CurrentCompany  *string    `db:"current_company" json:"current_company,omitempty"`
	CurrentPosition *string    `db:"current_position" json:"current_position,omitempty"`
	ExpectedCTC     *int64     `db:"expected_ctc" json:"expected_ctc,omitempty"`
	NoticePeriod    *int       `db:"notice_period" json:"notice_period,omitempty"`
	ResumeURL       *string    `db:"resume_url" json:"resume_url,omitempty"`
	CreatedAt       time.Time  `db:"created_at" json:"created_at"`
	UpdatedAt       *time.Time `db:"updated_at" json:"updated_at,omitempty"`

	// Joined from users for convenience in list/detail queries.
	FullName string `db:"full_name" json:"full_name,omitempty"`
	Email    string `db:"email" json:"email,omitempty"`
}

// CandidateDocument is an uploaded artifact (resume, ID proof, certificate).
type CandidateDocument struct {
	ID           int64     `db:"id" json:"id"`
	CandidateID  int64     `db:"candidate_id" json:"candidate_id"`
	DocumentType string    `db:"document_type" json:"document_type"`
	DocumentURL  string    `db:"document_url" json:"document_url"`
	FileName     string    `db:"file_name" json:"file_name"`
	FileSize     *int64    `db:"file_size" json:"file_size,omitempty"`
	Verified     bool      `db:"verified" json:"verified"`
	UploadedAt   time.Time `db:"uploaded_at" json:"uploaded_at"`
}

// CandidateUpdate carries partial profile updates.
type CandidateUpdate struct {
	Phone           *string
	Address         *string
	City            *string
	Country         *string
	Skills          StringList
	ExperienceYears *int
	CurrentCompany  *string
	CurrentPosition *string
	ExpectedCTC     *int64
	NoticePeriod    *int
	ResumeURL       *string
}
