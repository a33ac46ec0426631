package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// About renders the public about page
func About(c *gin.Context) {
	render(c, http.StatusOK, "about.html", gin.H{})
}

// NotFound renders the dedicated 404 page for unknown routes
func NotFound(c *gin.Context) {
	notFound(c)
}
