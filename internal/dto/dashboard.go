package dto

// RecruiterDashboardResponse aggregates pipeline health for recruiters.
type RecruiterDashboardResponse struct {
	Pipeline   PipelineSection  `json:"pipeline"`
	Interviews InterviewSection `json:"interviews"`
	Offers     OfferSection     `json:"offers"`
	OpenJobs   int              `json:"open_jobs"`
}

// PipelineSection counts applications by status.
type PipelineSection struct {
	ByStatus map[string]int `json:"by_status"`
	Total    int            `json:"total"`
}

// InterviewSection summarises upcoming and recent interview activity.
type InterviewSection struct {
	UpcomingCount  int `json:"upcoming_count"`
	CompletedCount int `json:"completed_count"`
	NoShowCount    int `json:"no_show_count"`
}

// OfferSection summarises offer funnel health.
type OfferSection struct {
	Offered         int     `json:"offered"`
	Accepted        int     `json:"accepted"`
	Declined        int     `json:"declined"`
	Joined          int     `json:"joined"`
	PendingApproval int     `json:"pending_approval"`
	AcceptanceRate  float64 `json:"acceptance_rate"`
	AverageVariance float64 `json:"average_variance"`
}
