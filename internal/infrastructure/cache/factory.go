package cache

import (
	"fmt"

	"github.com/rentdesk/backend/internal/domain/report"
	"go.uber.org/zap"
)

// DashboardCacheFactory creates dashboard caches based on configuration
type DashboardCacheFactory struct {
	redisConfig           RedisConfig
	logger                *zap.Logger
	allowInMemoryFallback bool
}

// DashboardCacheFactoryOption is a functional option for configuring the factory
type DashboardCacheFactoryOption func(*DashboardCacheFactory)

// WithLogger sets the logger for the factory
func WithLogger(logger *zap.Logger) DashboardCacheFactoryOption {
	return func(f *DashboardCacheFactory) {
		f.logger = logger
	}
}

// WithInMemoryFallback controls whether an unreachable Redis falls back to
// the in-memory cache. Default is true.
func WithInMemoryFallback(allow bool) DashboardCacheFactoryOption {
	return func(f *DashboardCacheFactory) {
		f.allowInMemoryFallback = allow
	}
}

// NewDashboardCacheFactory creates a new factory
func NewDashboardCacheFactory(cfg RedisConfig, opts ...DashboardCacheFactoryOption) *DashboardCacheFactory {
	f := &DashboardCacheFactory{
		redisConfig:           cfg,
		logger:                zap.NewNop(),
		allowInMemoryFallback: true,
	}
	for _, opt := range opts {
		opt(f)
	}
	return f
}

// Create returns a Redis cache when Redis answers, otherwise an in-memory
// cache if fallback is allowed
func (f *DashboardCacheFactory) Create() (report.DashboardCache, error) {
	if f.redisConfig.Host != "" {
		c, err := NewRedisDashboardCache(f.redisConfig)
		if err == nil {
			f.logger.Info("using Redis dashboard cache", zap.String("addr", f.redisConfig.Addr()))
			return c, nil
		}
		if !f.allowInMemoryFallback {
			return nil, fmt.Errorf("Redis required for dashboard cache but unavailable: %w", err)
		}
		f.logger.Warn("Redis unavailable, falling back to in-memory dashboard cache. "+
			"Summaries will not be shared between instances.",
			zap.Error(err),
		)
	} else if !f.allowInMemoryFallback {
		return nil, fmt.Errorf("Redis host not configured")
	}
	return NewInMemoryDashboardCache(), nil
}
