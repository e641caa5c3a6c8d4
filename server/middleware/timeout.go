package middleware

import (
	"context"
	"net/http"
	"time"
)

// Timeout gives every request a deadline of d. Handlers observe it through the
// request context; store calls that outlive it fail as unavailable.
// A non-positive d disables the deadline.
func Timeout(d time.Duration) Middleware {
	return func(next http.Handler) http.Handler {
		if d <= 0 {
			return next
		}
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx, cancel := context.WithTimeout(r.Context(), d)
			defer cancel()
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}
