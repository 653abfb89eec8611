package middleware

import (
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/rentdesk/backend/internal/interfaces/http/dto"
)

// Business scope keys
const (
	BusinessIDKey  = "business_id"
	BusinessHeader = "X-Business-ID"
)

// BusinessScopeConfig holds configuration for BusinessScope
type BusinessScopeConfig struct {
	// SkipPaths are served without a business, matched exactly or as a prefix
	// followed by "/"
	SkipPaths []string
}

// DefaultBusinessScopeConfig skips the operational endpoints
func DefaultBusinessScopeConfig() BusinessScopeConfig {
	return BusinessScopeConfig{
		SkipPaths: []string{"/health", "/metrics", "/api/v1/system"},
	}
}

// BusinessScope requires a valid X-Business-ID on every request and stores
// the parsed id for handlers. Every record the API touches is owned by the
// business named here.
func BusinessScope(cfg BusinessScopeConfig) gin.HandlerFunc {
	return func(c *gin.Context) {
		path := c.Request.URL.Path
		for _, skip := range cfg.SkipPaths {
			if path == skip || strings.HasPrefix(path, skip+"/") {
				c.Next()
				return
			}
		}

		raw := strings.TrimSpace(c.GetHeader(BusinessHeader))
		if raw == "" {
			abortWithError(c, dto.ErrCodeMissingBusiness, "X-Business-ID header is required")
			return
		}
		id, err := uuid.Parse(raw)
		if err != nil || id == uuid.Nil {
			abortWithError(c, dto.ErrCodeMissingBusiness, "X-Business-ID must be a UUID")
			return
		}

		c.Set(BusinessIDKey, id)
		c.Next()
	}
}

// GetBusinessID returns the id stored by BusinessScope
func GetBusinessID(c *gin.Context) (uuid.UUID, bool) {
	v, ok := c.Get(BusinessIDKey)
	if !ok {
		return uuid.Nil, false
	}
	id, ok := v.(uuid.UUID)
	return id, ok && id != uuid.Nil
}
