package dto

import (
	"time"

	"github.com/hirepulse/hirepulse-api/internal/models"
)

// ReleaseOfferRequest creates and releases a compensation offer.
type ReleaseOfferRequest struct {
	CandidateID     int64          `json:"candidate_id" validate:"required,gt=0"`
	JobID           int64          `json:"job_id" validate:"required,gt=0"`
	MPRID           *int64         `json:"mpr_id"`
	CTCFixed        float64        `json:"ctc_fixed" validate:"gte=0"`
	CTCVariable     float64        `json:"ctc_variable" validate:"gte=0"`
	JoiningBonus    float64        `json:"joining_bonus" validate:"gte=0"`
	RelocationBonus float64        `json:"relocation_bonus" validate:"gte=0"`
	ValidUntil      *time.Time     `json:"valid_until"`
	JoiningDate     *time.Time     `json:"joining_date"`
	OtherBenefits   models.JSONMap `json:"other_benefits"`
}

// UpdateOfferStatusRequest drives recruiter-side offer moves.
type UpdateOfferStatusRequest struct {
	Status      models.OfferStatus `json:"status" validate:"required"`
	JoiningDate *time.Time         `json:"joining_date"`
	Note        string             `json:"note"`
}

// OfferDecisionRequest records the candidate's accept/decline choice.
type OfferDecisionRequest struct {
	Decision string `json:"decision" validate:"required"`
	Note     string `json:"note"`
}

// JoiningRequestPayload asks for a joining date on an accepted offer.
type JoiningRequestPayload struct {
	RequestedDate string `json:"requested_date"`
	Note          string `json:"note"`
}

// ApproveOfferRequest signs off an over-budget offer.
type ApproveOfferRequest struct {
	Note string `json:"note"`
}

// OfferResponse is the enriched offer view returned to clients.
type OfferResponse struct {
	*models.Offer
	CandidateName string `json:"candidate_name,omitempty"`
	JobTitle      string `json:"job_title,omitempty"`
}

// OfferQuery mirrors supported listing filters.
type OfferQuery struct {
	CandidateID      int64
	JobID            int64
	Status           models.OfferStatus
	RequiresApproval *bool
	Page             int
	PageSize         int
}
