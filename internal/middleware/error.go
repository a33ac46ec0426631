package middleware

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	apperrors "hisabkitab/internal/errors"
	"hisabkitab/internal/logger"
)

// wantsJSON reports whether a request should receive a JSON error body
// instead of the rendered error page.
func wantsJSON(c *gin.Context) bool {
	return strings.HasPrefix(c.Request.URL.Path, "/api/") ||
		strings.HasPrefix(c.Request.URL.Path, "/transaction_details/")
}

// ErrorHandler returns a Gin middleware that converts errors set on the Gin
// context into responses. AppErrors keep their status; unexpected errors are
// logged and surface as the generic 500 page to avoid leaking details.
func ErrorHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()

		if len(c.Errors) == 0 {
			return
		}

		// Process the last error (most relevant in a middleware chain)
		err := c.Errors.Last().Err

		var appErr *apperrors.AppError
		if errors.As(err, &appErr) {
			if appErr.Internal != nil {
				logger.Get().Errorw("app error",
					"code", appErr.Code,
					"message", appErr.Message,
					"internal", appErr.Internal.Error(),
					"path", c.Request.URL.Path,
				)
			}
			if wantsJSON(c) {
				c.JSON(appErr.StatusCode, gin.H{
					"error": gin.H{
						"code":    appErr.Code,
						"message": appErr.Message,
					},
				})
				return
			}
			if appErr.StatusCode == http.StatusNotFound {
				c.HTML(http.StatusNotFound, "404.html", gin.H{})
				return
			}
			c.HTML(appErr.StatusCode, "500.html", gin.H{})
			return
		}

		// Unexpected error: log full details, return generic page
		logger.Get().Errorw("unexpected error",
			"error", err.Error(),
			"path", c.Request.URL.Path,
			"method", c.Request.Method,
		)
		if wantsJSON(c) {
			c.JSON(http.StatusInternalServerError, gin.H{
				"error": gin.H{
					"code":    apperrors.ErrInternalServer.Code,
					"message": apperrors.ErrInternalServer.Message,
				},
			})
			return
		}
		c.HTML(http.StatusInternalServerError, "500.html", gin.H{})
	}
}

// Recovery returns a Gin middleware that recovers from panics and renders
// the dedicated 500 page.
func Recovery() gin.HandlerFunc {
	return gin.CustomRecovery(func(c *gin.Context, recovered interface{}) {
		logger.Get().Errorw("panic recovered",
			"panic", recovered,
			"path", c.Request.URL.Path,
			"method", c.Request.Method,
		)
		if wantsJSON(c) {
			c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{
				"error": gin.H{
					"code":    apperrors.ErrInternalServer.Code,
					"message": apperrors.ErrInternalServer.Message,
				},
			})
			return
		}
		c.HTML(http.StatusInternalServerError, "500.html", gin.H{})
		c.Abort()
	})
}
