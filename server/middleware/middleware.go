package middleware

import (
	"encoding/json"
	"net/http"

	"github.com/gin-gonic/gin"

	apperrors "github.com/kbukum/labauth/errors"
)

// Middleware wraps an http.Handler with additional behavior.
// Server-wide concerns use this type and run in front of the Gin engine.
// Route-scoped concerns (auth, rate limiting, metrics) are gin.HandlerFunc.
type Middleware func(http.Handler) http.Handler

// Chain composes multiple middleware. The first in the list is the outermost
// (runs first on a request, last on a response).
func Chain(middlewares ...Middleware) Middleware {
	return func(final http.Handler) http.Handler {
		for i := len(middlewares) - 1; i >= 0; i-- {
			final = middlewares[i](final)
		}
		return final
	}
}

// writeError sends the standard error envelope outside of Gin.
func writeError(w http.ResponseWriter, e *apperrors.AppError) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(e.HTTPStatus)
	_ = json.NewEncoder(w).Encode(e.ToResponse())
}

// abortWithError sends the standard error envelope and stops the Gin chain.
func abortWithError(c *gin.Context, e *apperrors.AppError) {
	c.AbortWithStatusJSON(e.HTTPStatus, e.ToResponse())
}
