package middleware

import (
	"context"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/kbukum/labauth/auth"
	"github.com/kbukum/labauth/auth/authctx"
	"github.com/kbukum/labauth/logger"
)

// Authorizer resolves the principal behind a request's headers.
// *gate.Gate implements it.
type Authorizer interface {
	Authorize(ctx context.Context, header http.Header) (authctx.Principal, error)
}

// Auth rejects requests without a valid bearer token. Every token failure
// gets the same 401 body with a WWW-Authenticate challenge; an expired request
// deadline gets 503. On success the principal is stored in the request
// context for authctx.Get.
func Auth(a Authorizer, log *logger.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx := c.Request.Context()
		p, err := a.Authorize(ctx, c.Request.Header)
		if err != nil {
			reason := "invalid_token"
			switch {
			case errors.Is(err, auth.ErrMissingToken):
				reason = "missing_token"
			case errors.Is(err, auth.ErrUnavailable):
				reason = "unavailable"
			}
			log.WithContext(ctx).Debug("Bearer token rejected", map[string]interface{}{
				"path":   c.Request.URL.Path,
				"reason": reason,
			})
			if !errors.Is(err, auth.ErrUnavailable) {
				c.Header("WWW-Authenticate", `Bearer realm="labauth"`)
			}
			abortWithError(c, auth.ToAppError(err))
			return
		}

		c.Request = c.Request.WithContext(authctx.Set(ctx, p))
		c.Next()
	}
}
