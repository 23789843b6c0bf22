package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/hirepulse/hirepulse-api/internal/models"
)

// NotificationRepository persists notification delivery attempts.
type NotificationRepository struct {
	db *sqlx.DB
}

// NewNotificationRepository constructs the repository.
func NewNotificationRepository(db *sqlx.DB) *NotificationRepository {
	return &NotificationRepository{db: db}
}

// Insert records a queued delivery attempt and fills in the generated id.
func (r *NotificationRepository) Insert(ctx context.Context, log *models.NotificationLog) error {
	log.CreatedAt = time.Now().UTC()
	if log.Status == "" {
		log.Status = models.NotificationStatusQueued
	}
	const query = `
INSERT INTO notification_logs (user_id, recipient, event_type, subject, body, status, created_at)
VALUES ($1, $2, $3, $4, $5, $6, $7)
RETURNING id`
	if err := r.db.GetContext(ctx, &log.ID, query,
		log.UserID, log.Recipient, log.EventType, log.Subject, log.Body, log.Status, log.CreatedAt); err != nil {
		return fmt.Errorf("insert notification log: %w", err)
	}
	return nil
}

// MarkOutcome records the delivery result for an attempt.
func (r *NotificationRepository) MarkOutcome(ctx context.Context, id int64, status string, deliveryErr error) error {
	var errText *string
	if deliveryErr != nil {
		s := deliveryErr.Error()
		errText = &s
	}
	const query = `UPDATE notification_logs SET status = $1, error = $2, sent_at = NOW() WHERE id = $3`
	if _, err := r.db.ExecContext(ctx, query, status, errText, id); err != nil {
		return fmt.Errorf("mark notification outcome: %w", err)
	}
	return nil
}

// ListByRecipient returns recent attempts for one recipient, newest first.
func (r *NotificationRepository) ListByRecipient(ctx context.Context, recipient string, limit int) ([]models.NotificationLog, error) {
	if limit <= 0 {
		limit = 50
	}
	const query = `SELECT id, user_id, recipient, event_type, subject, body, status, error, created_at, sent_at
FROM notification_logs WHERE recipient = $1 ORDER BY created_at DESC LIMIT $2`
	var logs []models.NotificationLog
	if err := r.db.SelectContext(ctx, &logs, query, recipient, limit); err != nil {
		return nil, fmt.Errorf("list notification logs: %w", err)
	}
	return logs, nil
}
