package report

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/rentdesk/backend/internal/domain/report"
	"go.uber.org/zap"
)

const (
	// DefaultDashboardTTL bounds how stale a cached summary may get when no
	// invalidating event arrives
	DefaultDashboardTTL = 5 * time.Minute

	revenueWindowDays = 30
	leaseHorizonDays  = 60
)

// DashboardService serves the per-business dashboard summary
type DashboardService struct {
	repo   report.DashboardRepository
	cache  report.DashboardCache
	ttl    time.Duration
	logger *zap.Logger
	now    func() time.Time
}

// NewDashboardService creates a new DashboardService. cache may be nil.
func NewDashboardService(repo report.DashboardRepository, cache report.DashboardCache, ttl time.Duration, logger *zap.Logger) *DashboardService {
	if logger == nil {
		logger = zap.NewNop()
	}
	if ttl <= 0 {
		ttl = DefaultDashboardTTL
	}
	return &DashboardService{
		repo:   repo,
		cache:  cache,
		ttl:    ttl,
		logger: logger,
		now:    time.Now,
	}
}

// Summary returns the cached summary of a business, computing and caching it on a miss
func (s *DashboardService) Summary(ctx context.Context, businessID uuid.UUID) (*report.DashboardSummary, error) {
	if s.cache != nil {
		cached, err := s.cache.Get(ctx, businessID)
		if err != nil {
			s.logger.Warn("Dashboard cache read failed",
				zap.String("business_id", businessID.String()),
				zap.Error(err))
		} else if cached != nil {
			return cached, nil
		}
	}

	summary, err := s.Compute(ctx, businessID)
	if err != nil {
		return nil, err
	}

	if s.cache != nil {
		if err := s.cache.Set(ctx, summary, s.ttl); err != nil {
			s.logger.Warn("Dashboard cache write failed",
				zap.String("business_id", businessID.String()),
				zap.Error(err))
		}
	}
	return summary, nil
}

// Compute builds a fresh summary without consulting the cache
func (s *DashboardService) Compute(ctx context.Context, businessID uuid.UUID) (*report.DashboardSummary, error) {
	now := s.now()
	monthStart := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location())

	summary, err := s.repo.Summary(ctx, report.DashboardQuery{
		BusinessID:   businessID,
		MonthStart:   monthStart,
		MonthEnd:     monthStart.AddDate(0, 1, 0),
		RevenueSince: now.AddDate(0, 0, -revenueWindowDays),
		LeaseHorizon: now.AddDate(0, 0, leaseHorizonDays),
		Now:          now,
	})
	if err != nil {
		return nil, err
	}
	summary.BusinessID = businessID
	summary.GeneratedAt = now
	summary.Finalize()
	return summary, nil
}

// Invalidate drops the cached summary of a business
func (s *DashboardService) Invalidate(ctx context.Context, businessID uuid.UUID) error {
	if s.cache == nil {
		return nil
	}
	return s.cache.Invalidate(ctx, businessID)
}
