package service

import (
	"context"
	"encoding/json"
	"math"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/hirepulse/hirepulse-api/internal/dto"
	"github.com/hirepulse/hirepulse-api/internal/repository"
	"github.com/hirepulse/hirepulse-api/pkg/config"
	appErrors "github.com/hirepulse/hirepulse-api/pkg/errors"
)

const dashboardCacheKey = "dashboard:recruiter"

type DashboardStores struct {
	Applications interface {
		CountByStatus(ctx context.Context) (map[string]int, error)
	}
	Interviews interface {
		CountByStatusSince(ctx context.Context, since time.Time) (map[string]int, error)
	}
	Offers interface {
		Stats(ctx context.Context) (*repository.OfferStats, error)
	}
	Jobs interface {
		CountOpen(ctx context.Context) (int, error)
	}
}

// DashboardService builds the recruiter overview. Results are cached in
// redis for a short TTL since every section is an aggregate scan.
type DashboardService struct {
	stores DashboardStores
	cache  *redis.Client
	cfg    config.DashboardConfig
	logger *zap.Logger
}

// NewDashboardService constructs the service. The cache client may be nil,
// in which case every request recomputes.
func NewDashboardService(stores DashboardStores, cache *redis.Client, cfg config.DashboardConfig, logger *zap.Logger) *DashboardService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &DashboardService{stores: stores, cache: cache, cfg: cfg, logger: logger}
}

// Recruiter returns the pipeline, interview and offer summary.
func (s *DashboardService) Recruiter(ctx context.Context) (*dto.RecruiterDashboardResponse, error) {
	if cached := s.fromCache(ctx); cached != nil {
		return cached, nil
	}

	byStatus, err := s.stores.Applications.CountByStatus(ctx)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to count applications")
	}
	total := 0
	for _, n := range byStatus {
		total += n
	}

	since := time.Now().UTC().AddDate(0, 0, -30)
	interviewCounts, err := s.stores.Interviews.CountByStatusSince(ctx, since)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to count interviews")
	}

	offerStats, err := s.stores.Offers.Stats(ctx)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to compute offer stats")
	}

	openJobs, err := s.stores.Jobs.CountOpen(ctx)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to count open jobs")
	}

	resp := &dto.RecruiterDashboardResponse{
		Pipeline: dto.PipelineSection{
			ByStatus: byStatus,
			Total:    total,
		},
		Interviews: dto.InterviewSection{
			UpcomingCount:  interviewCounts["scheduled"],
			CompletedCount: interviewCounts["completed"],
			NoShowCount:    interviewCounts["no_show"],
		},
		Offers: dto.OfferSection{
			Offered:         offerStats.Offered,
			Accepted:        offerStats.Accepted,
			Declined:        offerStats.Declined,
			Joined:          offerStats.Joined,
			PendingApproval: offerStats.PendingApproval,
			AcceptanceRate:  acceptanceRate(offerStats.Accepted, offerStats.Declined),
			AverageVariance: math.Round(offerStats.AverageVariance*100) / 100,
		},
		OpenJobs: openJobs,
	}
	s.toCache(ctx, resp)
	return resp, nil
}

func (s *DashboardService) fromCache(ctx context.Context) *dto.RecruiterDashboardResponse {
	if s.cache == nil || !s.cfg.Enabled {
		return nil
	}
	raw, err := s.cache.Get(ctx, dashboardCacheKey).Bytes()
	if err != nil {
		if err != redis.Nil {
			s.logger.Warn("dashboard cache read failed", zap.Error(err))
		}
		return nil
	}
	var resp dto.RecruiterDashboardResponse
	if err := json.Unmarshal(raw, &resp); err != nil {
		s.logger.Warn("dashboard cache entry is corrupt, dropping it", zap.Error(err))
		s.cache.Del(ctx, dashboardCacheKey)
		return nil
	}
	return &resp
}

func (s *DashboardService) toCache(ctx context.Context, resp *dto.RecruiterDashboardResponse) {
	if s.cache == nil || !s.cfg.Enabled {
		return
	}
	raw, err := json.Marshal(resp)
	if err != nil {
		return
	}
	if err := s.cache.Set(ctx, dashboardCacheKey, raw, s.cfg.CacheTTL).Err(); err != nil {
		s.logger.Warn("dashboard cache write failed", zap.Error(err))
	}
}

func acceptanceRate(accepted, declined int) float64 {
	decided := accepted + declined
	if decided == 0 {
		return 0
	}
	return math.Round(float64(accepted)/float64(decided)*10000) / 100
}
