package resilience

import (
	"sync"
	"time"
)

// LimiterConfig configures a token bucket.
type LimiterConfig struct {
	// Rate is the number of tokens refilled per second.
	Rate float64
	// Burst is the bucket capacity.
	Burst int
	// IdleTTL evicts buckets of keys that have not been seen for this long.
	IdleTTL time.Duration
}

func (c *LimiterConfig) applyDefaults() {
	if c.Rate <= 0 {
		c.Rate = 1
	}
	if c.Burst <= 0 {
		c.Burst = max(1, int(c.Rate))
	}
	if c.IdleTTL <= 0 {
		c.IdleTTL = 10 * time.Minute
	}
}

type bucket struct {
	tokens   float64
	lastSeen time.Time
}

// KeyedLimiter is a token bucket per key, typically a client IP.
type KeyedLimiter struct {
	cfg LimiterConfig
	now func() time.Time

	mu        sync.Mutex
	buckets   map[string]*bucket
	lastSweep time.Time
}

// NewKeyedLimiter creates a limiter with one bucket per key.
func NewKeyedLimiter(cfg LimiterConfig) *KeyedLimiter {
	cfg.applyDefaults()
	return &KeyedLimiter{
		cfg:     cfg,
		now:     time.Now,
		buckets: make(map[string]*bucket),
	}
}

// Allow consumes one token for key and reports whether one was available.
func (l *KeyedLimiter) Allow(key string) bool {
	l.mu.Lock()
	defer l.mu.Unlock()
	now := l.now()
	l.sweep(now)

	b, ok := l.buckets[key]
	if !ok {
		b = &bucket{tokens: float64(l.cfg.Burst), lastSeen: now}
		l.buckets[key] = b
	}
	b.tokens = min(float64(l.cfg.Burst), b.tokens+now.Sub(b.lastSeen).Seconds()*l.cfg.Rate)
	b.lastSeen = now

	if b.tokens < 1 {
		return false
	}
	b.tokens--
	return true
}

// Len returns the number of tracked keys.
func (l *KeyedLimiter) Len() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.buckets)
}

// sweep drops idle buckets at most once per IdleTTL. Caller holds mu.
func (l *KeyedLimiter) sweep(now time.Time) {
	if now.Sub(l.lastSweep) < l.cfg.IdleTTL {
		return
	}
	l.lastSweep = now
	for key, b := range l.buckets {
		if now.Sub(b.lastSeen) >= l.cfg.IdleTTL {
			delete(l.buckets, key)
		}
	}
}
