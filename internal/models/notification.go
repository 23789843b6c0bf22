package models

import "time"

// Notification event types emitted by pipeline transitions.
const (
	EventApplicationSubmitted = "application_submitted"
	EventInterviewScheduled   = "interview_scheduled"
	EventSelected             = "selected"
	EventRejected             = "rejected"
	EventOfferReleased        = "offer_released"
	EventJoined               = "joined"
)

// Notification delivery states.
const (
	NotificationStatusQueued    = "queued"
	NotificationStatusSent      = "sent"
	NotificationStatusSimulated = "simulated"
	NotificationStatusFailed    = "failed"
)

// NotificationLog records one delivery attempt. Exactly one row is written
// per attempt regardless of whether the send succeeded; delivery failures
// never propagate to the pipeline mutation that triggered them.
type NotificationLog struct {
	ID        int64      `db:"id" json:"id"`
	UserID    *int64     `db:"user_id" json:"user_id,omitempty"`
	Recipient string     `db:"recipient" json:"recipient"`
	EventType string     `db:"event_type" json:"event_type"`
	Subject   string     `db:"subject" json:"subject"`
	Body      string     `db:"body" json:"body"`
	Status    string     `db:"status" json:"status"`
	Error     *string    `db:"error" json:"error,omitempty"`
	CreatedAt time.Time  `db:"created_at" json:"created_at"`
	SentAt    *time.Time `db:"sent_at" json:"sent_at,omitempty"`
}
