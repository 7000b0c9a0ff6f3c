package middleware

import (
	"math"
	"net/http"
	"strconv"
	"sync"
	"time"

	"roomservice/utils"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"golang.org/x/time/rate"
)

// rateLimiterStore holds a map of IP addresses to their rate limiters.
type rateLimiterStore struct {
	limiters map[string]*rate.Limiter
	mu       sync.Mutex
	limit    rate.Limit
	burst    int
}

func newRateLimiterStore(max int, window time.Duration) *rateLimiterStore {
	if max < 1 {
		max = 1
	}
	if window <= 0 {
		window = time.Minute
	}
	return &rateLimiterStore{
		limiters: make(map[string]*rate.Limiter),
		limit:    rate.Every(window / time.Duration(max)),
		burst:    max,
	}
}

// getLimiter returns the rate limiter for a given IP, creating one if it doesn't exist.
func (s *rateLimiterStore) getLimiter(ip string) *rate.Limiter {
	s.mu.Lock()
	defer s.mu.Unlock()

	limiter, exists := s.limiters[ip]
	if !exists {
		limiter = rate.NewLimiter(s.limit, s.burst)
		s.limiters[ip] = limiter
	}
	return limiter
}

// RateLimitMiddleware allows max requests per window per client IP. Rejected
// requests get 429 with a Retry-After header in seconds.
func RateLimitMiddleware(max int, window time.Duration) gin.HandlerFunc {
	store := newRateLimiterStore(max, window)
	return func(c *gin.Context) {
		ip := clientIP(c)
		limiter := store.getLimiter(ip)

		r := limiter.Reserve()
		if delay := r.Delay(); delay > 0 {
			r.Cancel()
			retryAfter := int(math.Ceil(delay.Seconds()))
			utils.GetLogger().Warn("Rate limit exceeded", zap.String("ip", ip), zap.Int("retryAfter", retryAfter))
			c.Header("Retry-After", strconv.Itoa(retryAfter))
			c.AbortWithStatusJSON(http.StatusTooManyRequests, gin.H{
				"message":    "Too many requests, please try again later.",
				"retryAfter": retryAfter,
			})
			return
		}
		c.Next()
	}
}
