package handlers

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	apperrors "hisabkitab/internal/errors"
	"hisabkitab/internal/logger"
	"hisabkitab/internal/middleware"
	"hisabkitab/internal/models"
)

// getUserID extracts the authenticated user ID from the Gin context.
// Returns ErrUnauthorized if not present.
func getUserID(c *gin.Context) (uint, error) {
	userID, exists := c.Get("userID")
	if !exists {
		return 0, apperrors.ErrUnauthorized
	}
	return userID.(uint), nil
}

// currentUser returns the authenticated user loaded by the auth middleware,
// or nil on public pages.
func currentUser(c *gin.Context) *models.User {
	if user, exists := c.Get("user"); exists {
		return user.(*models.User)
	}
	return nil
}

// parsePathID parses a uint path parameter.
// Returns ErrInvalidInput if the parameter is not a valid positive integer.
func parsePathID(c *gin.Context, param string) (uint, error) {
	id, err := strconv.ParseUint(c.Param(param), 10, 32)
	if err != nil {
		return 0, apperrors.WithMessage(apperrors.ErrInvalidInput, "Invalid "+param)
	}
	return uint(id), nil
}

// parseDateOrNow parses an ISO date string, substituting the current server
// time on failure. The silent fallback is load-bearing observable behavior.
func parseDateOrNow(s string) time.Time {
	date, err := time.Parse("2006-01-02", s)
	if err != nil {
		return time.Now()
	}
	return date
}

// render renders an HTML template with the pending flash message and the
// authenticated user merged into the template data.
func render(c *gin.Context, status int, name string, data gin.H) {
	if data == nil {
		data = gin.H{}
	}
	if flash := middleware.PopFlash(c); flash != nil {
		data["Flash"] = flash
	}
	if user := currentUser(c); user != nil {
		data["User"] = user
	}
	c.HTML(status, name, data)
}

// redirectWithFlash queues a flash message and redirects.
func redirectWithFlash(c *gin.Context, location, category, message string) {
	middleware.SetFlash(c, category, message)
	c.Redirect(http.StatusFound, location)
}

// flashError queues a flash for a failed operation and redirects. AppError
// messages are shown to the user; unexpected errors are logged and replaced
// with a generic message.
func flashError(c *gin.Context, err error, location string) {
	var appErr *apperrors.AppError
	if errors.As(err, &appErr) {
		if appErr.Internal != nil {
			logger.Get().Errorw("app error",
				"code", appErr.Code,
				"internal", appErr.Internal.Error(),
				"path", c.Request.URL.Path,
			)
		}
		redirectWithFlash(c, location, "danger", appErr.Message)
		return
	}

	logger.Get().Errorw("unexpected error",
		"error", err.Error(),
		"path", c.Request.URL.Path,
		"method", c.Request.Method,
	)
	redirectWithFlash(c, location, "danger", apperrors.ErrInternalServer.Message)
}

// notFound renders the dedicated 404 page. Ownership mismatches are
// deliberately reported the same way as nonexistent records.
func notFound(c *gin.Context) {
	render(c, http.StatusNotFound, "404.html", gin.H{})
}

// respondWithError writes a consistent JSON error response for the JSON
// endpoints. If the error is an *AppError it uses the error's status code,
// code, and message. Otherwise it logs the unexpected error and returns a
// generic internal server error.
func respondWithError(c *gin.Context, err error) {
	var appErr *apperrors.AppError
	if errors.As(err, &appErr) {
		if appErr.Internal != nil {
			logger.Get().Errorw("app error",
				"code", appErr.Code,
				"internal", appErr.Internal.Error(),
				"path", c.Request.URL.Path,
			)
		}
		c.JSON(appErr.StatusCode, gin.H{
			"error": gin.H{
				"code":    appErr.Code,
				"message": appErr.Message,
			},
		})
		return
	}

	logger.Get().Errorw("unexpected error",
		"error", err.Error(),
		"path", c.Request.URL.Path,
		"method", c.Request.Method,
	)
	c.JSON(apperrors.ErrInternalServer.StatusCode, gin.H{
		"error": gin.H{
			"code":    apperrors.ErrInternalServer.Code,
			"message": apperrors.ErrInternalServer.Message,
		},
	})
}
