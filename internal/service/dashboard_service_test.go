package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hirepulse/hirepulse-api/internal/repository"
	"github.com/hirepulse/hirepulse-api/pkg/config"
)

type fakeAppCounts map[string]int

func (f fakeAppCounts) CountByStatus(context.Context) (map[string]int, error) {
	return f, nil
}

type fakeInterviewCounts map[string]int

func (f fakeInterviewCounts) CountByStatusSince(context.Context, time.Time) (map[string]int, error) {
	return f, nil
}

type fakeOfferStats repository.OfferStats

func (f fakeOfferStats) Stats(context.Context) (*repository.OfferStats, error) {
	stats := repository.OfferStats(f)
	return &stats, nil
}

type fakeOpenJobs int

func (f fakeOpenJobs) CountOpen(context.Context) (int, error) {
	return int(f), nil
}

func TestDashboardRecruiterAggregates(t *testing.T) {
	svc := NewDashboardService(DashboardStores{
		Applications: fakeAppCounts{"applied": 10, "screening": 4, "rejected": 6},
		Interviews:   fakeInterviewCounts{"scheduled": 3, "completed": 7, "no_show": 1},
		Offers: fakeOfferStats{
			Offered:         5,
			Accepted:        3,
			Declined:        1,
			Joined:          2,
			PendingApproval: 1,
			AverageVariance: 4.789,
		},
		Jobs: fakeOpenJobs(8),
	}, nil, config.DashboardConfig{Enabled: true}, nil)

	resp, err := svc.Recruiter(context.Background())
	require.NoError(t, err)

	assert.Equal(t, 20, resp.Pipeline.Total)
	assert.Equal(t, 10, resp.Pipeline.ByStatus["applied"])
	assert.Equal(t, 3, resp.Interviews.UpcomingCount)
	assert.Equal(t, 7, resp.Interviews.CompletedCount)
	assert.Equal(t, 1, resp.Interviews.NoShowCount)
	assert.Equal(t, 8, resp.OpenJobs)

	// 3 accepted out of 4 decided.
	assert.InDelta(t, 75.0, resp.Offers.AcceptanceRate, 0.001)
	assert.InDelta(t, 4.79, resp.Offers.AverageVariance, 0.001)
}

func TestAcceptanceRateNoDecisions(t *testing.T) {
	assert.Equal(t, 0.0, acceptanceRate(0, 0))
}
