package dto

// RegisterCandidateRequest creates a candidate-portal account and profile.
type RegisterCandidateRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=8"`
	FullName string `json:"full_name" validate:"required"`
	Phone    string `json:"phone"`
}

// UpdateCandidateProfileRequest carries partial profile edits.
type UpdateCandidateProfileRequest struct {
	Phone           *string  `json:"phone"`
	Address         *string  `json:"address"`
	City            *string  `json:"city"`
	Country         *string  `json:"country"`
	Skills          []string `json:"skills"`
	ExperienceYears *int     `json:"experience_years" validate:"omitempty,gte=0"`
	CurrentCompany  *string  `json:"current_company"`
	CurrentPosition *string  `json:"current_position"`
	ExpectedCTC     *int64   `json:"expected_ctc" validate:"omitempty,gte=0"`
	NoticePeriod    *int     `json:"notice_period" validate:"omitempty,gte=0"`
}

// CandidateQuery mirrors supported listing filters.
type CandidateQuery struct {
	Search   string
	Skill    string
	MinExp   int
	Page     int
	PageSize int
}
