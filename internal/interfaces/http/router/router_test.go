package router

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/rentdesk/backend/internal/interfaces/http/handler"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func TestNewRouter(t *testing.T) {
	r := NewRouter(gin.New())
	assert.Equal(t, "v1", r.version)
	assert.Nil(t, r.scope)

	r = NewRouter(gin.New(), WithVersion("v2"))
	assert.Equal(t, "v2", r.version)
}

func TestRouterSetup_ScopesPrivateGroups(t *testing.T) {
	engine := gin.New()
	var order []string
	mark := func(name string) gin.HandlerFunc {
		return func(c *gin.Context) {
			order = append(order, name)
			c.Next()
		}
	}
	ok := func(c *gin.Context) { c.String(http.StatusOK, "ok") }

	NewRouter(engine, WithBusinessScope(mark("scope")), WithMiddleware(mark("api"))).
		Register(
			NewResourceGroup("/units").GET("", ok),
			NewResourceGroup("/system").Public().GET("/ping", ok),
		).
		Setup()
	engine.GET("/health", ok)

	serve := func(path string) {
		order = nil
		w := httptest.NewRecorder()
		engine.ServeHTTP(w, httptest.NewRequest(http.MethodGet, path, nil))
		require.Equal(t, http.StatusOK, w.Code, path)
	}

	serve("/api/v1/units")
	assert.Equal(t, []string{"scope", "api"}, order, "scope resolves the business before other API middleware")

	serve("/api/v1/system/ping")
	assert.Equal(t, []string{"api"}, order)

	serve("/health")
	assert.Empty(t, order, "API middleware stays off operational routes")
}

func TestResourceGroup_Verbs(t *testing.T) {
	echo := func(c *gin.Context) { c.String(http.StatusOK, c.Request.Method) }
	g := NewResourceGroup("/units").
		GET("", echo).
		POST("", echo).
		PUT("/:id", echo).
		PATCH("/:id/status", echo).
		DELETE("/:id/utilities/:utilityId", echo)
	assert.False(t, g.public)

	engine := gin.New()
	NewRouter(engine).Register(g).Setup()

	tests := []struct {
		method string
		path   string
	}{
		{http.MethodGet, "/api/v1/units"},
		{http.MethodPost, "/api/v1/units"},
		{http.MethodPut, "/api/v1/units/1"},
		{http.MethodPatch, "/api/v1/units/1/status"},
		{http.MethodDelete, "/api/v1/units/1/utilities/2"},
	}
	for _, tt := range tests {
		t.Run(tt.method+" "+tt.path, func(t *testing.T) {
			w := httptest.NewRecorder()
			engine.ServeHTTP(w, httptest.NewRequest(tt.method, tt.path, nil))
			assert.Equal(t, http.StatusOK, w.Code)
			assert.Equal(t, tt.method, w.Body.String())
		})
	}
}

func TestGroups_RouteTable(t *testing.T) {
	engine := gin.New()
	NewRouter(engine).Register(Groups(Handlers{
		Property:     new(handler.PropertyHandler),
		Unit:         new(handler.UnitHandler),
		Utility:      new(handler.UtilityHandler),
		Tenant:       new(handler.TenantHandler),
		Lease:        new(handler.LeaseHandler),
		Payment:      new(handler.PaymentHandler),
		Maintenance:  new(handler.MaintenanceHandler),
		Expense:      new(handler.ExpenseHandler),
		Landlord:     new(handler.LandlordHandler),
		Notification: new(handler.NotificationHandler),
		Dashboard:    new(handler.DashboardHandler),
		System:       new(handler.SystemHandler),
	})...).Setup()

	routes := map[string]bool{}
	for _, r := range engine.Routes() {
		routes[r.Method+" "+r.Path] = true
	}

	for _, want := range []string{
		"POST /api/v1/properties",
		"POST /api/v1/properties/:id/recompute",
		"GET /api/v1/properties/:id/tenants",
		"GET /api/v1/units/available",
		"GET /api/v1/units/:id/monthly-total",
		"PUT /api/v1/units/:id/utilities",
		"DELETE /api/v1/units/:id/utilities/:utilityId",
		"PATCH /api/v1/tenants/:id/status",
		"GET /api/v1/tenants/:id/total-due",
		"POST /api/v1/tenants/:id/documents/upload-url",
		"POST /api/v1/payments/:id/confirm",
		"GET /api/v1/payments/summary",
		"GET /api/v1/payments/:id/receipt",
		"GET /api/v1/leases/expiring",
		"POST /api/v1/leases/:id/renew",
		"GET /api/v1/maintenance/stats",
		"GET /api/v1/dashboard/summary",
		"GET /api/v1/system/ping",
		"GET /api/v1/system/info",
		"POST /api/v1/units/:id/images/upload-url",
		"GET /api/v1/expenses/summary",
		"GET /api/v1/expenses/property/:propertyId",
		"POST /api/v1/expenses/:id/receipt/upload-url",
		"PATCH /api/v1/landlords/:id/status",
		"GET /api/v1/landlords/:id/stats",
		"PATCH /api/v1/notifications/read-all",
		"PATCH /api/v1/notifications/:id/read",
		"GET /api/v1/notifications/stats",
	} {
		require.True(t, routes[want], want)
	}
}
