// Package resilience provides the two fault-tolerance primitives the service
// relies on:
//
//   - Retry: retries connection setup with exponential backoff and jitter
//   - KeyedLimiter: token-bucket rate limiting per client key
//
// Example:
//
//	db, err := resilience.Retry(ctx, resilience.DefaultRetryConfig(), func() (*sql.DB, error) {
//	    return open(dsn)
//	})
//
//	limiter := resilience.NewKeyedLimiter(resilience.LimiterConfig{Rate: 0.5, Burst: 10})
//	if !limiter.Allow(clientIP) {
//	    return errors.RateLimited()
//	}
package resilience
