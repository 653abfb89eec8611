package logger

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func newTestRouter(l *zap.Logger) *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.Use(func(c *gin.Context) {
		c.Set("request_id", "req-42")
		c.Next()
	})
	router.Use(GinMiddleware(l), Recovery(l))
	return router
}

func TestGinMiddleware(t *testing.T) {
	core, recorded := observer.New(zapcore.DebugLevel)
	router := newTestRouter(zap.New(core))

	var fromRequest, fromGin *zap.Logger
	router.GET("/units/:id", func(c *gin.Context) {
		fromRequest = FromContext(c.Request.Context())
		fromGin = GetGinLogger(c, nil)
		assert.Equal(t, "req-42", RequestID(c.Request.Context()))
		c.Status(http.StatusOK)
	})
	router.GET("/missing", func(c *gin.Context) {
		c.Status(http.StatusNotFound)
	})

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/units/7?expand=tenant", nil)
	req.Header.Set("X-Business-ID", "biz-3")
	router.ServeHTTP(w, req)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Same(t, fromGin, fromRequest)

	logs := recorded.FilterMessage("HTTP Request").All()
	require.Len(t, logs, 1)
	fields := logs[0].ContextMap()
	assert.Equal(t, zapcore.InfoLevel, logs[0].Level)
	assert.Equal(t, "req-42", fields["request_id"])
	assert.Equal(t, "biz-3", fields["business_id"])
	assert.Equal(t, "/units/:id", fields["route"])
	assert.Equal(t, "expand=tenant", fields["query"])

	w = httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/missing", nil))
	logs = recorded.FilterMessage("HTTP Request").All()
	require.Len(t, logs, 2)
	assert.Equal(t, zapcore.WarnLevel, logs[1].Level)
}

func TestRecovery(t *testing.T) {
	core, recorded := observer.New(zapcore.InfoLevel)
	router := newTestRouter(zap.New(core))
	router.GET("/panic", func(c *gin.Context) {
		panic("boom")
	})

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/panic", nil))

	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.Contains(t, w.Body.String(), `"code":"INTERNAL_ERROR"`)
	assert.Contains(t, w.Body.String(), `"request_id":"req-42"`)
	assert.Equal(t, 1, recorded.FilterMessage("Panic recovered").Len())
}

func TestGetGinLogger_Fallback(t *testing.T) {
	gin.SetMode(gin.TestMode)
	c, _ := gin.CreateTestContext(httptest.NewRecorder())
	fallback := zap.NewExample()

	assert.Same(t, fallback, GetGinLogger(c, fallback))
	assert.NotNil(t, GetGinLogger(c, nil))
}
