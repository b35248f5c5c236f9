package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

func newLimitedRouter(rl *RateLimiter) *gin.Engine {
	router := gin.New()
	router.Use(rl.Middleware())
	router.GET("/test", func(c *gin.Context) { c.Status(http.StatusOK) })
	router.GET("/health", func(c *gin.Context) { c.Status(http.StatusOK) })
	return router
}

func hit(router *gin.Engine, path string, headers map[string]string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, path, nil)
	for k, v := range headers {
		req.Header.Set(k, v)
	}
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func TestRateLimiter(t *testing.T) {
	gin.SetMode(gin.TestMode)

	t.Run("allows requests within the burst", func(t *testing.T) {
		rl := NewRateLimiter(10, 20)
		defer rl.Stop()
		router := newLimitedRouter(rl)

		for i := 0; i < 10; i++ {
			w := hit(router, "/test", map[string]string{"X-Forwarded-For": "192.168.1.1"})
			assert.Equal(t, http.StatusOK, w.Code)
			assert.Equal(t, "10", w.Header().Get("X-RateLimit-Limit"))
			assert.NotEmpty(t, w.Header().Get("X-RateLimit-Remaining"))
		}
	})

	t.Run("blocks once the burst is spent", func(t *testing.T) {
		rl := NewRateLimiter(1, 2)
		defer rl.Stop()
		router := newLimitedRouter(rl)

		headers := map[string]string{"X-Forwarded-For": "192.168.1.2"}
		hit(router, "/test", headers)
		hit(router, "/test", headers)
		w := hit(router, "/test", headers)

		assert.Equal(t, http.StatusTooManyRequests, w.Code)
		assert.Equal(t, "0", w.Header().Get("X-RateLimit-Remaining"))
		assert.Equal(t, "1", w.Header().Get("Retry-After"))
	})

	t.Run("workspaces have separate buckets", func(t *testing.T) {
		rl := NewRateLimiter(1, 1)
		defer rl.Stop()
		router := newLimitedRouter(rl)

		wsA := map[string]string{"X-Workspace-ID": "a"}
		wsB := map[string]string{"X-Workspace-ID": "b"}
		assert.Equal(t, http.StatusOK, hit(router, "/test", wsA).Code)
		assert.Equal(t, http.StatusOK, hit(router, "/test", wsB).Code)
		assert.Equal(t, http.StatusTooManyRequests, hit(router, "/test", wsA).Code)
	})

	t.Run("api key takes precedence over workspace", func(t *testing.T) {
		rl := NewRateLimiter(1, 1)
		defer rl.Stop()
		router := newLimitedRouter(rl)

		assert.Equal(t, http.StatusOK, hit(router, "/test", map[string]string{"X-API-Key": "key-aaaaaaaa-1", "X-Workspace-ID": "a"}).Code)
		assert.Equal(t, http.StatusTooManyRequests, hit(router, "/test", map[string]string{"X-API-Key": "key-aaaaaaaa-2", "X-Workspace-ID": "b"}).Code)
	})

	t.Run("health is never limited", func(t *testing.T) {
		rl := NewRateLimiter(1, 1)
		defer rl.Stop()
		router := newLimitedRouter(rl)

		for i := 0; i < 5; i++ {
			assert.Equal(t, http.StatusOK, hit(router, "/health", nil).Code)
		}
	})

	t.Run("stop is idempotent", func(t *testing.T) {
		rl := NewRateLimiter(1, 1)
		rl.Stop()
		assert.NotPanics(t, rl.Stop)
	})
}
