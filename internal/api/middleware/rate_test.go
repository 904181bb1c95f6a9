package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

func newRateLimitedRouter(config RateLimitConfig) *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.POST("/contact", RateLimitMiddleware(config), func(c *gin.Context) {
		c.Status(http.StatusOK)
	})
	return router
}

func postFrom(router http.Handler, ip string) int {
	req := httptest.NewRequest(http.MethodPost, "/contact", nil)
	req.Header.Set("X-Real-IP", ip)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w.Code
}

func TestRateLimit_ClientsAreIsolated(t *testing.T) {
	router := newRateLimitedRouter(RateLimitConfig{RPS: 1, Burst: 5})

	for i := 0; i < 5; i++ {
		assert.Equal(t, http.StatusOK, postFrom(router, "203.0.113.9"), "request %d", i)
	}
	assert.Equal(t, http.StatusTooManyRequests, postFrom(router, "203.0.113.9"))

	// A burst from one address leaves another visitor untouched
	assert.Equal(t, http.StatusOK, postFrom(router, "198.51.100.7"))
}

func TestRateLimit_RejectionBody(t *testing.T) {
	router := newRateLimitedRouter(RateLimitConfig{RPS: 1, Burst: 1})
	postFrom(router, "203.0.113.9")

	req := httptest.NewRequest(http.MethodPost, "/contact", nil)
	req.Header.Set("X-Real-IP", "203.0.113.9")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusTooManyRequests, w.Code)
	assert.JSONEq(t,
		`{"success":false,"message":"Demasiadas solicitudes. Inténtalo de nuevo más tarde.","code":"TOO_MANY_REQUESTS"}`,
		w.Body.String())
}

func TestIPRateLimiter_EvictsIdleClients(t *testing.T) {
	l := newIPRateLimiter(RateLimitConfig{RPS: 1, Burst: 1, IdleTTL: time.Minute})
	start := l.lastSweep

	l.get("203.0.113.9", start)
	l.get("198.51.100.7", start.Add(30*time.Second))
	assert.Equal(t, 2, l.size())

	// The first client has been idle a full TTL, the second only half of it
	l.get("192.0.2.1", start.Add(time.Minute+time.Second))
	assert.Equal(t, 2, l.size())
	_, stillTracked := l.clients["203.0.113.9"]
	assert.False(t, stillTracked)
}

func TestIPRateLimiter_ReusesLimiterPerClient(t *testing.T) {
	l := newIPRateLimiter(RateLimitConfig{RPS: 1, Burst: 1})
	now := time.Now()

	assert.Same(t, l.get("203.0.113.9", now), l.get("203.0.113.9", now))
	assert.NotSame(t, l.get("203.0.113.9", now), l.get("198.51.100.7", now))
}
