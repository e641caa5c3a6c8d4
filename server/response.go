package server

import (
	"net/http"

	"github.com/gin-gonic/gin"

	apperrors "github.com/kbukum/labauth/errors"
)

// RespondWithError writes the error envelope. A non-AppError becomes a
// generic 500 so internal messages never reach the client. 401 responses
// carry the bearer challenge.
func RespondWithError(c *gin.Context, err error) {
	appErr, ok := apperrors.AsAppError(err)
	if !ok {
		appErr = apperrors.Internal(err)
	}
	if appErr.HTTPStatus == http.StatusUnauthorized {
		c.Header("WWW-Authenticate", `Bearer realm="labauth"`)
	}
	c.AbortWithStatusJSON(appErr.HTTPStatus, appErr.ToResponse())
}

// RespondText sends a 200 plain-text body.
func RespondText(c *gin.Context, body string) {
	c.String(http.StatusOK, body)
}

// RespondOK sends a 200 JSON body.
func RespondOK(c *gin.Context, data any) {
	c.JSON(http.StatusOK, data)
}
