package service

import (
	"context"

	"github.com/jmoiron/sqlx"

	"github.com/hirepulse/hirepulse-api/internal/models"
)

type mockCandidateReader struct {
	byID     map[int64]*models.Candidate
	byUserID map[int64]*models.Candidate
}

func (m *mockCandidateReader) GetByID(ctx context.Context, id int64) (*models.Candidate, error) {
	return m.byID[id], nil
}

func (m *mockCandidateReader) GetByUserID(ctx context.Context, userID int64) (*models.Candidate, error) {
	return m.byUserID[userID], nil
}

type mockJobReader struct {
	jobs map[int64]*models.Job
}

func (m *mockJobReader) GetByID(ctx context.Context, exec sqlx.ExtContext, id int64) (*models.Job, error) {
	return m.jobs[id], nil
}

type sentEvent struct {
	Event   string
	Email   string
	Payload map[string]string
}

type mockNotifier struct {
	sent []sentEvent
}

func (m *mockNotifier) SendCandidateEvent(ctx context.Context, event, toEmail, candidateName string, userID *int64, payload map[string]string) {
	m.sent = append(m.sent, sentEvent{Event: event, Email: toEmail, Payload: payload})
}

func (m *mockNotifier) events() []string {
	out := make([]string, 0, len(m.sent))
	for _, e := range m.sent {
		out = append(out, e.Event)
	}
	return out
}

type mockMPRReader struct {
	byID    map[int64]*models.MPR
	byJobID map[int64]*models.MPR
}

func (m *mockMPRReader) GetByID(ctx context.Context, exec sqlx.ExtContext, id int64) (*models.MPR, error) {
	return m.byID[id], nil
}

func (m *mockMPRReader) GetApprovedByJobID(ctx context.Context, exec sqlx.ExtContext, jobID int64) (*models.MPR, error) {
	return m.byJobID[jobID], nil
}

func intPtr(v int) *int { return &v }

func floatPtr(v float64) *float64 { return &v }

func strPtr(v string) *string { return &v }
