package middleware

import (
	"net/http"
	"time"

	"github.com/kbukum/labauth/logger"
	"github.com/kbukum/labauth/util"
)

// quietPaths are probed often enough that logging them drowns everything else.
var quietPaths = map[string]bool{
	"/health": true,
	"/info":   true,
}

// RequestLogger logs every request with method, path, status code and
// duration. The request id comes from the context set by RequestID, so this
// must run inside it. Query strings are not logged and control characters are
// stripped from the path.
func RequestLogger(log *logger.Logger) Middleware {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if quietPaths[r.URL.Path] {
				next.ServeHTTP(w, r)
				return
			}

			start := time.Now()
			sw := newStatusWriter(w)
			next.ServeHTTP(sw, r)
			duration := time.Since(start)

			fields := map[string]interface{}{
				"method":             r.Method,
				"path":               util.SanitizeString(r.URL.Path),
				"status":             sw.status,
				logger.FieldDuration: duration.Milliseconds(),
			}
			if duration > 500*time.Millisecond {
				fields["slow"] = true
			}
			logByStatus(log.WithContext(r.Context()), fields, sw.status)
		})
	}
}

// logByStatus logs request fields at the appropriate level based on HTTP status code.
func logByStatus(log *logger.Logger, fields map[string]interface{}, status int) {
	switch {
	case status >= 500:
		log.Error("Request completed", fields)
	case status >= 400:
		log.Warn("Request completed", fields)
	default:
		log.Debug("Request completed", fields)
	}
}
