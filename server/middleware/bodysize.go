package middleware

import (
	"net/http"

	apperrors "github.com/kbukum/labauth/errors"
	"github.com/kbukum/labauth/util"
)

const defaultMaxBodySize = 1024 * 1024 // 1MB

// BodySizeLimit restricts the request body to the given size string
// (e.g. "64KB", "1MB").
func BodySizeLimit(maxSize string) Middleware {
	size := util.ParseSize(maxSize, defaultMaxBodySize)
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if r.ContentLength > size {
				writeError(w, apperrors.BodyTooLarge(size))
				return
			}
			r.Body = http.MaxBytesReader(w, r.Body, size)
			next.ServeHTTP(w, r)
		})
	}
}
