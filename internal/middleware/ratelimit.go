package middleware

import (
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/shivamgupta951/YemmyChats-sub000/pkg/errors"
	"golang.org/x/time/rate"
)

// IPRateLimiter manages rate limiters for each IP
type IPRateLimiter struct {
	ips   map[string]*rateLimiterEntry
	mu    sync.Mutex
	r     rate.Limit
	burst int
}

type rateLimiterEntry struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

// NewIPRateLimiter creates a new IP-based rate limiter.
// r = requests per second, burst = max burst size.
func NewIPRateLimiter(r rate.Limit, burst int) *IPRateLimiter {
	rl := &IPRateLimiter{
		ips:   make(map[string]*rateLimiterEntry),
		r:     r,
		burst: burst,
	}

	go rl.cleanup()

	return rl
}

func (rl *IPRateLimiter) cleanup() {
	for {
		time.Sleep(time.Minute)
		rl.mu.Lock()
		for ip, entry := range rl.ips {
			if time.Since(entry.lastSeen) > 3*time.Minute {
				delete(rl.ips, ip)
			}
		}
		rl.mu.Unlock()
	}
}

// GetLimiter returns the rate limiter for the given IP
func (rl *IPRateLimiter) GetLimiter(ip string) *rate.Limiter {
	rl.mu.Lock()
	defer rl.mu.Unlock()

	entry, exists := rl.ips[ip]
	if !exists {
		limiter := rate.NewLimiter(rl.r, rl.burst)
		rl.ips[ip] = &rateLimiterEntry{
			limiter:  limiter,
			lastSeen: time.Now(),
		}
		return limiter
	}

	entry.lastSeen = time.Now()
	return entry.limiter
}

// Pre-configured limiters per endpoint class
var (
	// Auth endpoints: 20 requests per minute
	authLimiter = NewIPRateLimiter(rate.Limit(20.0/60.0), 10)

	// Contact form: 5 per minute
	contactLimiter = NewIPRateLimiter(rate.Limit(5.0/60.0), 3)

	// Everything else: 10/sec with bursts
	generalLimiter = NewIPRateLimiter(rate.Limit(10.0), 30)
)

func limitWith(rl *IPRateLimiter) gin.HandlerFunc {
	return func(c *gin.Context) {
		if !rl.GetLimiter(c.ClientIP()).Allow() {
			c.AbortWithStatusJSON(errors.ErrRateLimit.Code, gin.H{"error": errors.ErrRateLimit.Message})
			return
		}
		c.Next()
	}
}

func GeneralRateLimit() gin.HandlerFunc {
	return limitWith(generalLimiter)
}

func AuthRateLimit() gin.HandlerFunc {
	return limitWith(authLimiter)
}

func ContactRateLimit() gin.HandlerFunc {
	return limitWith(contactLimiter)
}
