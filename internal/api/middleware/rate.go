package middleware

import (
	"net/http"
	"strconv"
	"sync"
	"time"

	"github.com/osa911/landing/internal/api/dto/common"
	"github.com/osa911/landing/internal/utils"

	"github.com/gin-gonic/gin"
	"golang.org/x/time/rate"
)

// DefaultRateLimitIdleTTL is how long a client's limiter is kept without traffic
const DefaultRateLimitIdleTTL = 10 * time.Minute

// RateLimitConfig defines configuration for the rate limiter
type RateLimitConfig struct {
	// Requests per second, per client IP
	RPS int
	// Burst size (number of requests that can be made in a single burst)
	Burst int
	// Limiters idle for longer than this are dropped; zero means DefaultRateLimitIdleTTL
	IdleTTL time.Duration
}

type clientLimiter struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

// ipRateLimiter keeps one token bucket per client IP
type ipRateLimiter struct {
	mu        sync.Mutex
	config    RateLimitConfig
	clients   map[string]*clientLimiter
	lastSweep time.Time
}

func newIPRateLimiter(config RateLimitConfig) *ipRateLimiter {
	if config.IdleTTL <= 0 {
		config.IdleTTL = DefaultRateLimitIdleTTL
	}
	return &ipRateLimiter{
		config:    config,
		clients:   make(map[string]*clientLimiter),
		lastSweep: time.Now(),
	}
}

// get returns the limiter for ip, evicting idle clients at most once per TTL
func (l *ipRateLimiter) get(ip string, now time.Time) *rate.Limiter {
	l.mu.Lock()
	defer l.mu.Unlock()

	if now.Sub(l.lastSweep) >= l.config.IdleTTL {
		for key, client := range l.clients {
			if now.Sub(client.lastSeen) >= l.config.IdleTTL {
				delete(l.clients, key)
			}
		}
		l.lastSweep = now
	}

	client, ok := l.clients[ip]
	if !ok {
		client = &clientLimiter{limiter: rate.NewLimiter(rate.Limit(l.config.RPS), l.config.Burst)}
		l.clients[ip] = client
	}
	client.lastSeen = now
	return client.limiter
}

func (l *ipRateLimiter) size() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.clients)
}

// RateLimitMiddleware creates a rate limiting middleware with one limiter per client IP,
// so one noisy client cannot use up the allowance of everyone else
func RateLimitMiddleware(config RateLimitConfig) gin.HandlerFunc {
	return newIPRateLimiter(config).handler()
}

func (l *ipRateLimiter) handler() gin.HandlerFunc {
	return func(c *gin.Context) {
		limiter := l.get(utils.GetRealIP(c), time.Now())
		if !limiter.Allow() {
			c.AbortWithStatusJSON(http.StatusTooManyRequests, common.NewErrorResponse(
				common.ErrCodeTooManyRequests,
				"Demasiadas solicitudes. Inténtalo de nuevo más tarde.",
				"",
			))
			return
		}

		c.Header("X-RateLimit-Limit", strconv.Itoa(l.config.RPS))
		c.Header("X-RateLimit-Remaining", strconv.Itoa(int(limiter.Tokens())))
		if l.config.RPS > 0 {
			c.Header("X-RateLimit-Reset", time.Now().Add(time.Second/time.Duration(l.config.RPS)).Format(time.RFC1123))
		}

		c.Next()
	}
}
