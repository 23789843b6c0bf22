package service

import (
	"context"
	"fmt"
	"net/smtp"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/hirepulse/hirepulse-api/internal/models"
	"github.com/hirepulse/hirepulse-api/pkg/config"
	"github.com/hirepulse/hirepulse-api/pkg/jobs"
)

type notificationStore interface {
	Insert(ctx context.Context, log *models.NotificationLog) error
	MarkOutcome(ctx context.Context, id int64, status string, deliveryErr error) error
}

// EmailSender delivers a single message.
type EmailSender interface {
	Send(ctx context.Context, to, subject, body string) error
}

// SMTPSender delivers mail through a plain SMTP relay.
type SMTPSender struct {
	cfg config.EmailConfig
}

// NewSMTPSender constructs the sender.
func NewSMTPSender(cfg config.EmailConfig) *SMTPSender {
	return &SMTPSender{cfg: cfg}
}

// Send pushes one message to the relay.
func (s *SMTPSender) Send(ctx context.Context, to, subject, body string) error {
	addr := fmt.Sprintf("%s:%d", s.cfg.SMTPHost, s.cfg.SMTPPort)
	msg := []byte(fmt.Sprintf("From: %s\r\nTo: %s\r\nSubject: %s\r\nMIME-Version: 1.0\r\nContent-Type: text/plain; charset=utf-8\r\n\r\n%s\r\n",
		s.cfg.From, to, subject, body))
	var auth smtp.Auth
	if s.cfg.SMTPUser != "" {
		auth = smtp.PlainAuth("", s.cfg.SMTPUser, s.cfg.SMTPPass, s.cfg.SMTPHost)
	}
	done := make(chan error, 1)
	go func() {
		done <- smtp.SendMail(addr, auth, s.cfg.From, []string{to}, msg)
	}()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case err := <-done:
		if err != nil {
			return fmt.Errorf("smtp send: %w", err)
		}
		return nil
	}
}

// NotificationService builds candidate-facing event messages, records one
// delivery attempt per call and hands delivery to a background queue.
// Delivery is strictly best effort: nothing that happens here may fail the
// pipeline mutation that triggered it.
type NotificationService struct {
	store   notificationStore
	sender  EmailSender
	queue   *jobs.Queue
	logger  *zap.Logger
	company string
	enabled bool
}

// CandidateEvent is the payload handed to the delivery queue.
type CandidateEvent struct {
	LogID     int64
	Recipient string
	Subject   string
	Body      string
}

// NewNotificationService constructs the dispatcher and its delivery queue.
func NewNotificationService(store notificationStore, sender EmailSender, cfg config.EmailConfig, company string, logger *zap.Logger) *NotificationService {
	if logger == nil {
		logger = zap.NewNop()
	}
	if company == "" {
		company = "HirePulse"
	}
	svc := &NotificationService{
		store:   store,
		sender:  sender,
		logger:  logger,
		company: company,
		enabled: cfg.Enabled && sender != nil,
	}
	workers := cfg.Workers
	if workers <= 0 {
		workers = 2
	}
	svc.queue = jobs.NewQueue("notifications", svc.deliver, jobs.QueueConfig{
		Workers: workers,
		Logger:  logger,
	})
	return svc
}

// Start begins background delivery workers.
func (s *NotificationService) Start(ctx context.Context) {
	s.queue.Start(ctx)
}

// Stop drains the delivery workers.
func (s *NotificationService) Stop() {
	s.queue.Stop()
}

// SendCandidateEvent records exactly one notification_logs row for the event
// and enqueues its delivery. Errors are logged and swallowed.
func (s *NotificationService) SendCandidateEvent(ctx context.Context, event, toEmail, candidateName string, userID *int64, payload map[string]string) {
	subject, body, ok := renderCandidateEvent(event, candidateName, s.company, payload)
	if !ok {
		s.logger.Warn("unknown notification event", zap.String("event", event))
		return
	}

	log := &models.NotificationLog{
		UserID:    userID,
		Recipient: toEmail,
		EventType: event,
		Subject:   subject,
		Body:      body,
		Status:    models.NotificationStatusQueued,
	}
	if err := s.store.Insert(ctx, log); err != nil {
		s.logger.Warn("failed to record notification attempt", zap.String("event", event), zap.Error(err))
		return
	}

	err := s.queue.Enqueue(jobs.Job{
		ID:   uuid.NewString(),
		Type: event,
		Payload: CandidateEvent{
			LogID:     log.ID,
			Recipient: toEmail,
			Subject:   subject,
			Body:      body,
		},
	})
	if err != nil {
		s.logger.Warn("failed to enqueue notification", zap.String("event", event), zap.Error(err))
		s.markOutcome(log.ID, models.NotificationStatusFailed, err)
	}
}

func (s *NotificationService) deliver(ctx context.Context, job jobs.Job) error {
	event, ok := job.Payload.(CandidateEvent)
	if !ok {
		s.logger.Warn("notification job with unexpected payload", zap.String("job_id", job.ID))
		return nil
	}
	if !s.enabled {
		s.markOutcome(event.LogID, models.NotificationStatusSimulated, nil)
		return nil
	}
	if err := s.sender.Send(ctx, event.Recipient, event.Subject, event.Body); err != nil {
		s.logger.Warn("notification delivery failed",
			zap.String("recipient", event.Recipient), zap.Error(err))
		s.markOutcome(event.LogID, models.NotificationStatusFailed, err)
		return nil
	}
	s.markOutcome(event.LogID, models.NotificationStatusSent, nil)
	return nil
}

func (s *NotificationService) markOutcome(logID int64, status string, deliveryErr error) {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := s.store.MarkOutcome(ctx, logID, status, deliveryErr); err != nil {
		s.logger.Warn("failed to record notification outcome", zap.Int64("log_id", logID), zap.Error(err))
	}
}

func renderCandidateEvent(event, candidateName, company string, payload map[string]string) (subject, body string, ok bool) {
	jobTitle := payload["job_title"]
	switch event {
	case models.EventApplicationSubmitted:
		subject = fmt.Sprintf("Application received for %s", jobTitle)
		body = fmt.Sprintf("Dear %s,\n\nWe have received your application for the %s position at %s. Our team will review it and get back to you.\n\nRegards,\n%s Recruitment",
			candidateName, jobTitle, company, company)
	case models.EventInterviewScheduled:
		subject = fmt.Sprintf("Interview scheduled for %s", jobTitle)
		body = fmt.Sprintf("Dear %s,\n\nYour interview for the %s position at %s has been scheduled.\n\nDate: %s\nTime: %s\nMode: %s\n\nRegards,\n%s Recruitment",
			candidateName, jobTitle, company,
			payload["interview_date"], payload["interview_time"], payload["interview_mode"], company)
	case models.EventSelected:
		subject = fmt.Sprintf("Update on your application for %s", jobTitle)
		body = fmt.Sprintf("Dear %s,\n\nCongratulations! You have been shortlisted for the %s position at %s. We will reach out with the next steps shortly.\n\nRegards,\n%s Recruitment",
			candidateName, jobTitle, company, company)
	case models.EventRejected:
		subject = fmt.Sprintf("Update on your application for %s", jobTitle)
		body = fmt.Sprintf("Dear %s,\n\nThank you for your interest in the %s position at %s. After careful consideration we have decided not to move forward at this time.\n\nRegards,\n%s Recruitment",
			candidateName, jobTitle, company, company)
	case models.EventOfferReleased:
		subject = fmt.Sprintf("Offer for %s at %s", jobTitle, company)
		body = fmt.Sprintf("Dear %s,\n\nWe are pleased to extend an offer for the %s position at %s. Please log in to the portal to review and respond.\n\nRegards,\n%s Recruitment",
			candidateName, jobTitle, company, company)
	case models.EventJoined:
		subject = fmt.Sprintf("Welcome to %s", company)
		body = fmt.Sprintf("Dear %s,\n\nYour joining for the %s position at %s has been confirmed. Welcome aboard!\n\nRegards,\n%s Recruitment",
			candidateName, jobTitle, company, company)
	default:
		return "", "", false
	}
	return subject, body, true
}
