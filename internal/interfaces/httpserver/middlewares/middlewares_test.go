package middlewares

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nomadreads/nomadreads-server/internal/utils/platformerrors"
)

func newEngine(handlers ...gin.HandlerFunc) *gin.Engine {
	gin.SetMode(gin.TestMode)
	engine := gin.New()
	engine.Use(handlers...)
	return engine
}

func TestRequestID_GeneratesAndPropagates(t *testing.T) {
	engine := newEngine(RequestID())
	var fromGin, fromCtx string
	engine.GET("/x", func(c *gin.Context) {
		fromGin = RequestIDFromContext(c)
		fromCtx = platformerrors.RequestIDFromContext(c.Request.Context())
		c.Status(http.StatusOK)
	})

	w := httptest.NewRecorder()
	engine.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/x", nil))

	generated := w.Header().Get(RequestIDHeader)
	require.NotEmpty(t, generated)
	assert.Equal(t, generated, fromGin)
	assert.Equal(t, generated, fromCtx)
}

func TestRequestID_EchoesIncoming(t *testing.T) {
	engine := newEngine(RequestID())
	engine.GET("/x", func(c *gin.Context) { c.Status(http.StatusOK) })

	req := httptest.NewRequest(http.MethodGet, "/x", nil)
	req.Header.Set(RequestIDHeader, "abc-123")
	w := httptest.NewRecorder()
	engine.ServeHTTP(w, req)

	assert.Equal(t, "abc-123", w.Header().Get(RequestIDHeader))
}

func TestRateLimitMiddleware(t *testing.T) {
	engine := newEngine(RateLimitMiddleware(2))
	engine.POST("/x", func(c *gin.Context) { c.Status(http.StatusOK) })

	codes := make([]int, 0, 3)
	for i := 0; i < 3; i++ {
		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodPost, "/x", nil)
		req.RemoteAddr = "203.0.113.7:5000"
		engine.ServeHTTP(w, req)
		codes = append(codes, w.Code)
		if w.Code == http.StatusTooManyRequests {
			assert.Equal(t, "Too Many Requests", w.Body.String())
			assert.NotEmpty(t, w.Header().Get("Retry-After"))
		}
	}
	assert.Equal(t, []int{http.StatusOK, http.StatusOK, http.StatusTooManyRequests}, codes)

	// Another client has its own bucket.
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/x", nil)
	req.RemoteAddr = "198.51.100.1:5000"
	engine.ServeHTTP(w, req)
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestRateLimiter_EvictsIdleClients(t *testing.T) {
	limiter := NewRateLimiter(1)
	clock := time.Date(2026, 1, 1, 12, 0, 0, 0, time.UTC)
	limiter.now = func() time.Time { return clock }

	assert.True(t, limiter.Allow("ip:203.0.113.1"))
	assert.False(t, limiter.Allow("ip:203.0.113.1"))
	assert.True(t, limiter.Allow("ip:203.0.113.2"))
	require.Equal(t, 2, limiter.Len())

	clock = clock.Add(30 * time.Second)
	assert.False(t, limiter.Allow("ip:203.0.113.2"))

	clock = clock.Add(45 * time.Second)
	assert.True(t, limiter.Allow("ip:203.0.113.3"))
	assert.Equal(t, 2, limiter.Len(), "203.0.113.1 idle past the window is dropped")

	clock = clock.Add(2 * time.Minute)
	assert.True(t, limiter.Allow("ip:203.0.113.1"))
	assert.Equal(t, 1, limiter.Len())
}

func TestRateLimitMiddleware_Disabled(t *testing.T) {
	engine := newEngine(RateLimitMiddleware(0))
	engine.POST("/x", func(c *gin.Context) { c.Status(http.StatusOK) })

	for i := 0; i < 50; i++ {
		w := httptest.NewRecorder()
		engine.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/x", nil))
		require.Equal(t, http.StatusOK, w.Code)
	}
}

func TestLoggingAndMetricsMiddleware_PassThrough(t *testing.T) {
	engine := newEngine(RequestID(), TracingMiddleware("test"), LoggingMiddleware(zerolog.Nop()), MetricsMiddleware())
	engine.GET("/x", func(c *gin.Context) { c.String(http.StatusTeapot, "short and stout") })

	w := httptest.NewRecorder()
	engine.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/x", nil))
	assert.Equal(t, http.StatusTeapot, w.Code)
	assert.Equal(t, "short and stout", w.Body.String())
}
