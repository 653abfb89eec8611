package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/rentdesk/backend/internal/domain/report"
)

const defaultDashboardKeyPrefix = "rentdesk:dashboard:"

// RedisConfig holds Redis connection configuration
type RedisConfig struct {
	Host     string
	Port     int
	Password string
	DB       int
}

// Addr returns the host:port pair go-redis expects
func (c RedisConfig) Addr() string {
	return fmt.Sprintf("%s:%d", c.Host, c.Port)
}

// RedisDashboardCache implements report.DashboardCache using Redis, so every
// API instance serves and invalidates the same summaries. A cache built
// without a client stores nothing and always misses.
type RedisDashboardCache struct {
	client     *redis.Client
	ownsClient bool
	keyPrefix  string
}

// NewRedisDashboardCache connects to Redis and verifies the connection
func NewRedisDashboardCache(cfg RedisConfig) (*RedisDashboardCache, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Addr(),
		Password: cfg.Password,
		DB:       cfg.DB,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("failed to connect to Redis: %w", err)
	}

	return &RedisDashboardCache{
		client:     client,
		ownsClient: true,
		keyPrefix:  defaultDashboardKeyPrefix,
	}, nil
}

// NewRedisDashboardCacheWithClient creates a cache on a shared client.
// The caller keeps ownership of the client.
func NewRedisDashboardCacheWithClient(client *redis.Client, keyPrefix string) *RedisDashboardCache {
	if keyPrefix == "" {
		keyPrefix = defaultDashboardKeyPrefix
	}
	return &RedisDashboardCache{
		client:    client,
		keyPrefix: keyPrefix,
	}
}

func (c *RedisDashboardCache) key(businessID uuid.UUID) string {
	return c.keyPrefix + businessID.String()
}

// Get returns the cached summary, or nil on a miss
func (c *RedisDashboardCache) Get(ctx context.Context, businessID uuid.UUID) (*report.DashboardSummary, error) {
	if c.client == nil {
		return nil, nil
	}

	data, err := c.client.Get(ctx, c.key(businessID)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read dashboard cache: %w", err)
	}

	var summary report.DashboardSummary
	if err := json.Unmarshal(data, &summary); err != nil {
		// A payload from an older layout is treated as a miss and overwritten
		return nil, nil
	}
	return &summary, nil
}

// Set stores the summary under its business for ttl
func (c *RedisDashboardCache) Set(ctx context.Context, summary *report.DashboardSummary, ttl time.Duration) error {
	if c.client == nil || summary == nil {
		return nil
	}

	data, err := json.Marshal(summary)
	if err != nil {
		return fmt.Errorf("failed to marshal dashboard summary: %w", err)
	}
	if err := c.client.Set(ctx, c.key(summary.BusinessID), data, ttl).Err(); err != nil {
		return fmt.Errorf("failed to write dashboard cache: %w", err)
	}
	return nil
}

// Invalidate drops the cached summary of a business
func (c *RedisDashboardCache) Invalidate(ctx context.Context, businessID uuid.UUID) error {
	if c.client == nil {
		return nil
	}
	if err := c.client.Del(ctx, c.key(businessID)).Err(); err != nil {
		return fmt.Errorf("failed to invalidate dashboard cache: %w", err)
	}
	return nil
}

// Close closes the client if the cache created it
func (c *RedisDashboardCache) Close() error {
	if c.client == nil || !c.ownsClient {
		return nil
	}
	return c.client.Close()
}
