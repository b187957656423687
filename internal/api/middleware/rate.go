package middleware

import (
	"math"
	"net/http"
	"strconv"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"golang.org/x/time/rate"

	"github.com/osa911/portfolio/internal/api/dto/common"
)

// RateLimitConfig defines configuration for the rate limiter
type RateLimitConfig struct {
	// Requests per second
	RPS float64
	// Burst size (number of requests that can be made in a single burst)
	Burst int
	// IdleTTL is how long an idle client's limiter is kept. Defaults to ten minutes.
	IdleTTL time.Duration
}

type clientLimiter struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

// ipLimiter keeps one token bucket per client IP
type ipLimiter struct {
	config    RateLimitConfig
	mu        sync.Mutex
	clients   map[string]*clientLimiter
	lastSweep time.Time
	now       func() time.Time
}

func newIPLimiter(config RateLimitConfig) *ipLimiter {
	if config.IdleTTL <= 0 {
		config.IdleTTL = 10 * time.Minute
	}
	if config.Burst <= 0 {
		config.Burst = 1
	}
	return &ipLimiter{
		config:  config,
		clients: make(map[string]*clientLimiter),
		now:     time.Now,
	}
}

func (l *ipLimiter) get(ip string) *rate.Limiter {
	l.mu.Lock()
	defer l.mu.Unlock()

	now := l.now()
	if now.Sub(l.lastSweep) > l.config.IdleTTL {
		for key, client := range l.clients {
			if now.Sub(client.lastSeen) > l.config.IdleTTL {
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

func (l *ipLimiter) size() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.clients)
}

// RateLimitByIP limits requests per client IP with a token bucket. Clients
// are keyed by gin's ClientIP, so forwarding headers only count when the
// engine trusts the proxy or platform that set them.
func RateLimitByIP(config RateLimitConfig) gin.HandlerFunc {
	return rateLimitWith(newIPLimiter(config))
}

func rateLimitWith(limiters *ipLimiter) gin.HandlerFunc {
	limitHeader := strconv.FormatFloat(limiters.config.RPS, 'f', -1, 64)

	return func(c *gin.Context) {
		limiter := limiters.get(c.ClientIP())

		c.Header("X-RateLimit-Limit", limitHeader)

		if !limiter.Allow() {
			retryAfter := 1
			if limiters.config.RPS > 0 {
				retryAfter = int(math.Ceil(1 / limiters.config.RPS))
			}
			c.Header("X-RateLimit-Remaining", "0")
			c.Header("Retry-After", strconv.Itoa(retryAfter))
			c.AbortWithStatusJSON(http.StatusTooManyRequests, common.NewErrorResponse(common.MessageRateLimited, nil))
			return
		}

		c.Header("X-RateLimit-Remaining", strconv.Itoa(int(limiter.Tokens())))

		c.Next()
	}
}
