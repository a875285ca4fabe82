package middleware

import (
	"net/http"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"golang.org/x/time/rate"

	"github.com/campuslink/backend/internal/config"
)

const (
	bucketIdleTTL  = 5 * time.Minute
	bucketSweepGap = 3 * time.Minute
)

// visitorBucket tracks one client's token bucket and when that client
// last hit the API, so idle entries can be swept.
type visitorBucket struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

// RateLimiter throttles requests per client IP. The auth group uses it
// to slow down credential guessing against campus accounts.
type RateLimiter struct {
	mu      sync.Mutex
	buckets map[string]*visitorBucket
	rps     rate.Limit
	burst   int
}

// NewRateLimiter builds a per-IP limiter from the configured
// requests-per-second and burst. Unset or non-positive values fall
// back to defaults rather than locking everyone out.
func NewRateLimiter(cfg *config.RateLimitConfig) *RateLimiter {
	rps := cfg.AuthRPS
	burst := cfg.AuthBurst
	if rps <= 0 {
		rps = 5
	}
	if burst <= 0 {
		burst = 10
	}

	rl := &RateLimiter{
		buckets: make(map[string]*visitorBucket),
		rps:     rate.Limit(rps),
		burst:   burst,
	}
	go rl.sweep()
	return rl
}

func (rl *RateLimiter) bucketFor(ip string) *rate.Limiter {
	rl.mu.Lock()
	defer rl.mu.Unlock()

	b, ok := rl.buckets[ip]
	if !ok {
		b = &visitorBucket{limiter: rate.NewLimiter(rl.rps, rl.burst)}
		rl.buckets[ip] = b
	}
	b.lastSeen = time.Now()
	return b.limiter
}

// sweep drops buckets for addresses that have gone quiet.
func (rl *RateLimiter) sweep() {
	for {
		time.Sleep(bucketSweepGap)
		rl.mu.Lock()
		for ip, b := range rl.buckets {
			if time.Since(b.lastSeen) > bucketIdleTTL {
				delete(rl.buckets, ip)
			}
		}
		rl.mu.Unlock()
	}
}

// Middleware rejects requests over the per-IP budget with 429.
func (rl *RateLimiter) Middleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		if !rl.bucketFor(c.ClientIP()).Allow() {
			c.AbortWithStatusJSON(http.StatusTooManyRequests, gin.H{
				"code":    http.StatusTooManyRequests,
				"message": "too many attempts, slow down",
			})
			return
		}
		c.Next()
	}
}
