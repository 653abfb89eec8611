package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

func TestRateLimiter_Allow(t *testing.T) {
	rl := NewRateLimiter(3, time.Minute)
	defer rl.Stop()
	now := time.Date(2026, 10, 1, 0, 0, 0, 0, time.UTC)
	rl.now = func() time.Time { return now }

	for i := 0; i < 3; i++ {
		ok, _ := rl.Allow("a")
		assert.True(t, ok, "request %d", i)
	}
	ok, remaining := rl.Allow("a")
	assert.False(t, ok)
	assert.Zero(t, remaining)

	ok, _ = rl.Allow("b")
	assert.True(t, ok, "keys are independent")

	// 3 per minute refills one token every 20s
	now = now.Add(21 * time.Second)
	ok, _ = rl.Allow("a")
	assert.True(t, ok)
}

func TestRateLimiter_EvictIdle(t *testing.T) {
	rl := NewRateLimiter(1, time.Second)
	defer rl.Stop()
	now := time.Now()
	rl.now = func() time.Time { return now }

	rl.Allow("a")
	now = now.Add(3 * time.Second)
	rl.evictIdle()

	rl.mu.Lock()
	defer rl.mu.Unlock()
	assert.Empty(t, rl.clients)
}

func TestRateLimit_Middleware(t *testing.T) {
	rl := NewRateLimiter(1, time.Hour)
	defer rl.Stop()
	r := newEngine(RateLimit(rl))
	r.GET("/", func(c *gin.Context) { c.Status(http.StatusOK) })

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/", nil))
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "1", w.Header().Get("X-RateLimit-Limit"))

	w = httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/", nil))
	assert.Equal(t, http.StatusTooManyRequests, w.Code)
	assert.Contains(t, w.Body.String(), "ERR_RATE_LIMITED")

	// another business behind the same IP has its own bucket
	w = httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set(BusinessHeader, "b2")
	r.ServeHTTP(w, req)
	assert.Equal(t, http.StatusOK, w.Code)
}
