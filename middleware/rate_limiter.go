package middleware

import (
	"net/http"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"golang.org/x/time/rate"

	"asokatrip/utils"
)

// RateLimiter holds a map of IP addresses to their rate limiters.
type RateLimiter struct {
	limiters map[string]*visitor
	perMin   int
	mu       sync.Mutex
}

type visitor struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

// idleVisitor is how long an IP may stay silent before its limiter is dropped.
const idleVisitor = 10 * time.Minute

// NewRateLimiter allows perMin requests per minute per IP with a burst of the same size.
func NewRateLimiter(perMin int) *RateLimiter {
	if perMin <= 0 {
		perMin = 200
	}
	return &RateLimiter{limiters: make(map[string]*visitor), perMin: perMin}
}

// getLimiter returns the rate limiter for a given IP, creating one if it doesn't exist.
func (s *RateLimiter) getLimiter(ip string, now time.Time) *rate.Limiter {
	s.mu.Lock()
	defer s.mu.Unlock()

	v, exists := s.limiters[ip]
	if !exists {
		v = &visitor{limiter: rate.NewLimiter(rate.Every(time.Minute/time.Duration(s.perMin)), s.perMin)}
		s.limiters[ip] = v
	}
	v.lastSeen = now
	return v.limiter
}

// Sweep forgets limiters of IPs idle for longer than idleVisitor.
func (s *RateLimiter) Sweep(now time.Time) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for ip, v := range s.limiters {
		if now.Sub(v.lastSeen) > idleVisitor {
			delete(s.limiters, ip)
		}
	}
}

// Middleware limits requests per client IP. Forwarding headers only count when the engine trusts
// the sending proxy (gin.Engine.SetTrustedProxies).
func (s *RateLimiter) Middleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		ip := c.ClientIP()
		now := time.Now()
		if !s.getLimiter(ip, now).AllowN(now, 1) {
			utils.GetLogger().Warn("Rate limit exceeded", zap.String("ip", ip))
			c.AbortWithStatusJSON(http.StatusTooManyRequests, utils.ErrorResponse{Error: "Rate limit exceeded. Try again later."})
			return
		}
		c.Next()
	}
}
