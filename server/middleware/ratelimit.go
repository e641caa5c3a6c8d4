package middleware

import (
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	apperrors "github.com/kbukum/labauth/errors"
	"github.com/kbukum/labauth/resilience"
)

// RateLimitConfig configures the per-client rate limiter.
type RateLimitConfig struct {
	// RequestsPerMinute is the sustained rate allowed per key. Zero disables limiting.
	RequestsPerMinute int `yaml:"requests_per_minute" mapstructure:"requests_per_minute"`
	// Burst is the number of requests a fresh key may send at once (default: RequestsPerMinute).
	Burst int `yaml:"burst" mapstructure:"burst"`
	// KeyFunc extracts the rate limit key from a request. Defaults to client IP.
	KeyFunc func(*gin.Context) string `yaml:"-" mapstructure:"-"`
	// OnLimit is called for every rejected request.
	OnLimit func(c *gin.Context) `yaml:"-" mapstructure:"-"`
}

// Enabled reports whether limiting is configured.
func (c RateLimitConfig) Enabled() bool { return c.RequestsPerMinute > 0 }

// RateLimit returns a Gin middleware that applies a token bucket per key and
// answers 429 with Retry-After once a key runs dry.
func RateLimit(cfg RateLimitConfig) gin.HandlerFunc {
	if !cfg.Enabled() {
		return func(c *gin.Context) { c.Next() }
	}
	if cfg.KeyFunc == nil {
		cfg.KeyFunc = IPBasedKey
	}
	if cfg.Burst <= 0 {
		cfg.Burst = cfg.RequestsPerMinute
	}

	rate := float64(cfg.RequestsPerMinute) / 60
	limiter := resilience.NewKeyedLimiter(resilience.LimiterConfig{
		Rate:    rate,
		Burst:   cfg.Burst,
		IdleTTL: 10 * time.Minute,
	})
	retryAfter := strconv.Itoa(max(1, (60+cfg.RequestsPerMinute-1)/cfg.RequestsPerMinute))

	return func(c *gin.Context) {
		if !limiter.Allow(cfg.KeyFunc(c)) {
			if cfg.OnLimit != nil {
				cfg.OnLimit(c)
			}
			c.Header("Retry-After", retryAfter)
			abortWithError(c, apperrors.RateLimited())
			return
		}
		c.Next()
	}
}

// IPBasedKey extracts the client IP for use as a rate limit key.
func IPBasedKey(c *gin.Context) string {
	return c.ClientIP()
}
