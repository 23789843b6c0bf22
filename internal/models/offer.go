package models

import "time"

// OfferStatus enumerates offer lifecycle states.
type OfferStatus string

const (
	OfferStatusDraft     OfferStatus = "draft"
	OfferStatusOffered   OfferStatus = "offered"
	OfferStatusAccepted  OfferStatus = "accepted"
	OfferStatusDeclined  OfferStatus = "declined"
	OfferStatusWithdrawn OfferStatus = "withdrawn"
	OfferStatusExpired   OfferStatus = "expired"
	OfferStatusJoined    OfferStatus = "joined"
)

// AllowedOfferStatuses is the allow-list for offer status updates. "joined"
// is a terminal state: it can be entered through here but never left.
var AllowedOfferStatuses = map[OfferStatus]struct{}{
	OfferStatusDraft:     {},
	OfferStatusOffered:   {},
	OfferStatusAccepted:  {},
	OfferStatusDeclined:  {},
	OfferStatusWithdrawn: {},
	OfferStatusExpired:   {},
	OfferStatusJoined:    {},
}

// Offer is a compensation proposal tied to a candidate, a job and optionally
// the requisition whose budget it is measured against.
type Offer struct {
	ID               int64       `db:"id" json:"id"`
	OfferCode        string      `db:"offer_code" json:"offer_code"`
	CandidateID      int64       `db:"candidate_id" json:"candidate_id"`
	JobID            int64       `db:"job_id" json:"job_id"`
	MPRID            *int64      `db:"mpr_id" json:"mpr_id,omitempty"`
	CTCFixed         float64     `db:"ctc_fixed" json:"ctc_fixed"`
	CTCVariable      float64     `db:"ctc_variable" json:"ctc_variable"`
	JoiningBonus     float64     `db:"joining_bonus" json:"joining_bonus"`
	RelocationBonus  float64     `db:"relocation_bonus" json:"relocation_bonus"`
	CTCTotal         float64     `db:"ctc_total" json:"ctc_total"`
	VariancePercent  float64     `db:"variance_percent" json:"variance_percent"`
	RequiresApproval bool        `db:"requires_approval" json:"requires_approval"`
	ApprovedBy       *int64      `db:"approved_by" json:"approved_by,omitempty"`
	ApprovedAt       *time.Time  `db:"approved_at" json:"approved_at,omitempty"`
	Status           OfferStatus `db:"status" json:"status"`
	ValidUntil       *time.Time  `db:"valid_until" json:"valid_until,omitempty"`
	JoiningDate      *time.Time  `db:"joining_date" json:"joining_date,omitempty"`
	OtherBenefits    JSONMap     `db:"other_benefits" json:"other_benefits,omitempty"`
	OfferedBy        int64       `db:"offered_by" json:"offered_by"`
	OfferedAt        time.Time   `db:"offered_at" json:"offered_at"`
	AcceptedAt       *time.Time  `db:"accepted_at" json:"accepted_at,omitempty"`
	UpdatedAt        *time.Time  `db:"updated_at" json:"updated_at,omitempty"`
}

// ComputeCTCTotal recomputes the total from the four components. Stored
// totals are never trusted; every mutation path touching compensation calls
// this inside the same transaction as the write.
func (o *Offer) ComputeCTCTotal() {
	o.CTCTotal = o.CTCFixed + o.CTCVariable + o.JoiningBonus + o.RelocationBonus
}

// Joining request sub-states embedded in other_benefits.
const (
	JoiningRequestPending  = "pending"
	JoiningRequestApproved = "approved"
)

// JoiningRequest is embedded in the other_benefits JSON blob when an
// accepted candidate requests a joining date.
type JoiningRequest struct {
	RequestedDate string `json:"requested_date,omitempty"`
	Note          string `json:"note,omitempty"`
	RequestedAt   string `json:"requested_at"`
	Status        string `json:"status"`
}

// SetJoiningRequest writes the joining request into other_benefits.
func (o *Offer) SetJoiningRequest(req JoiningRequest) {
	if o.OtherBenefits == nil {
		o.OtherBenefits = JSONMap{}
	}
	entry := map[string]interface{}{
		"requested_at": req.RequestedAt,
		"status":       req.Status,
	}
	if req.RequestedDate != "" {
		entry["requested_date"] = req.RequestedDate
	}
	if req.Note != "" {
		entry["note"] = req.Note
	}
	o.OtherBenefits["joining_request"] = entry
}

// GetJoiningRequest reads the joining request back out of other_benefits.
func (o *Offer) GetJoiningRequest() (JoiningRequest, bool) {
	if o.OtherBenefits == nil {
		return JoiningRequest{}, false
	}
	raw, ok := o.OtherBenefits["joining_request"].(map[string]interface{})
	if !ok {
		return JoiningRequest{}, false
	}
	req := JoiningRequest{}
	if v, ok := raw["requested_date"].(string); ok {
		req.RequestedDate = v
	}
	if v, ok := raw["note"].(string); ok {
		req.Note = v
	}
	if v, ok := raw["requested_at"].(string); ok {
		req.RequestedAt = v
	}
	if v, ok := raw["status"].(string); ok {
		req.Status = v
	}
	return req, true
}
