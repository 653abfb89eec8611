package cache

import (
	"context"
	"sync"
	"sync/atomic"
	"time"

	"github.com/google/uuid"
	"github.com/rentdesk/backend/internal/domain/report"
)

// InMemoryDashboardCache implements report.DashboardCache in process memory.
// It serves single-instance deployments and tests; entries are not shared
// between instances.
type InMemoryDashboardCache struct {
	mu      sync.RWMutex
	entries map[uuid.UUID]dashboardEntry
	now     func() time.Time

	hits   int64
	misses int64
}

type dashboardEntry struct {
	summary   report.DashboardSummary
	expiresAt time.Time
}

// NewInMemoryDashboardCache creates an empty in-memory cache
func NewInMemoryDashboardCache() *InMemoryDashboardCache {
	return &InMemoryDashboardCache{
		entries: make(map[uuid.UUID]dashboardEntry),
		now:     time.Now,
	}
}

// Get returns a copy of the cached summary, or nil when absent or expired
func (c *InMemoryDashboardCache) Get(_ context.Context, businessID uuid.UUID) (*report.DashboardSummary, error) {
	c.mu.RLock()
	entry, ok := c.entries[businessID]
	c.mu.RUnlock()

	if !ok || !c.now().Before(entry.expiresAt) {
		atomic.AddInt64(&c.misses, 1)
		if ok {
			c.mu.Lock()
			delete(c.entries, businessID)
			c.mu.Unlock()
		}
		return nil, nil
	}

	atomic.AddInt64(&c.hits, 1)
	summary := entry.summary
	return &summary, nil
}

// Set stores a copy of summary for ttl
func (c *InMemoryDashboardCache) Set(_ context.Context, summary *report.DashboardSummary, ttl time.Duration) error {
	if summary == nil || ttl <= 0 {
		return nil
	}
	c.mu.Lock()
	c.entries[summary.BusinessID] = dashboardEntry{summary: *summary, expiresAt: c.now().Add(ttl)}
	c.mu.Unlock()
	return nil
}

// Invalidate drops the cached summary of a business
func (c *InMemoryDashboardCache) Invalidate(_ context.Context, businessID uuid.UUID) error {
	c.mu.Lock()
	delete(c.entries, businessID)
	c.mu.Unlock()
	return nil
}

// Stats returns hit and miss counts
func (c *InMemoryDashboardCache) Stats() (hits, misses int64) {
	return atomic.LoadInt64(&c.hits), atomic.LoadInt64(&c.misses)
}
