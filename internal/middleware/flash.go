package middleware

import (
	"net/url"
	"strings"

	"github.com/gin-gonic/gin"
)

// flashCookieName is the name of the one-shot flash message cookie.
const flashCookieName = "flash"

// Flash is a one-shot message displayed on the next rendered page.
// Category is one of "success", "danger", or "info".
type Flash struct {
	Category string
	Message  string
}

// SetFlash queues a flash message for the next request.
func SetFlash(c *gin.Context, category, message string) {
	value := url.QueryEscape(category + "|" + message)
	c.SetCookie(flashCookieName, value, 60, "/", "", false, true)
}

// PopFlash returns the pending flash message, if any, and clears it.
func PopFlash(c *gin.Context) *Flash {
	raw, err := c.Cookie(flashCookieName)
	if err != nil || raw == "" {
		return nil
	}
	c.SetCookie(flashCookieName, "", -1, "/", "", false, true)

	value, err := url.QueryUnescape(raw)
	if err != nil {
		return nil
	}
	category, message, found := strings.Cut(value, "|")
	if !found {
		return &Flash{Category: "info", Message: value}
	}
	return &Flash{Category: category, Message: message}
}
