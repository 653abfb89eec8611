package middleware

import (
	"context"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/rentdesk/backend/internal/infrastructure/telemetry"
)

// Profiling label keys
const (
	profileLabelRoute    = "route"
	profileLabelMethod   = "method"
	profileLabelHandler  = "handler"
	profileLabelBusiness = "business_id"
)

// ProfilingConfig holds configuration for the profiling middleware
type ProfilingConfig struct {
	Enabled   bool
	SkipPaths []string
}

// DefaultProfilingConfig skips the operational endpoints
func DefaultProfilingConfig() ProfilingConfig {
	return ProfilingConfig{
		Enabled:   true,
		SkipPaths: []string{"/health", "/metrics"},
	}
}

// Profiling runs each request under pprof labels so Pyroscope can slice
// profiles by route and business
func Profiling(cfg ProfilingConfig) gin.HandlerFunc {
	if !cfg.Enabled {
		return func(c *gin.Context) { c.Next() }
	}

	return func(c *gin.Context) {
		path := c.Request.URL.Path
		for _, skip := range cfg.SkipPaths {
			if path == skip {
				c.Next()
				return
			}
		}

		telemetry.WithProfilingLabels(c.Request.Context(), profilingLabels(c), func(ctx context.Context) {
			c.Request = c.Request.WithContext(ctx)
			c.Next()
		})
	}
}

func profilingLabels(c *gin.Context) map[string]string {
	labels := map[string]string{
		profileLabelRoute:  routePattern(c),
		profileLabelMethod: c.Request.Method,
	}
	if h := handlerName(c.HandlerName()); h != "" {
		labels[profileLabelHandler] = h
	}
	// business_id comes from the header since BusinessScope may run later
	if business := c.GetHeader(BusinessHeader); business != "" && len(business) <= 64 {
		labels[profileLabelBusiness] = business
	}
	return labels
}

// handlerName shortens "pkg/handler.(*UnitHandler).Create-fm" to
// "UnitHandler.Create"
func handlerName(full string) string {
	if full == "" {
		return ""
	}
	if i := strings.LastIndex(full, "/"); i >= 0 {
		full = full[i+1:]
	}
	if i := strings.Index(full, "."); i >= 0 {
		full = full[i+1:]
	}
	full = strings.TrimSuffix(full, "-fm")
	full = strings.NewReplacer("(*", "", ")", "").Replace(full)
	return full
}
