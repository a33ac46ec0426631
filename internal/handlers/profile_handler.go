package handlers

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"hisabkitab/internal/services"
)

// ProfileHandler handles profile, password, and settings requests
type ProfileHandler struct {
	userService services.UserServicer
}

// NewProfileHandler creates a new ProfileHandler
func NewProfileHandler(userService services.UserServicer) *ProfileHandler {
	return &ProfileHandler{userService: userService}
}

// ProfileForm represents the profile edit form
type ProfileForm struct {
	Email    string `form:"email" binding:"omitempty,email,max=120"`
	DarkMode string `form:"dark_mode"`
}

// ChangePasswordForm represents the password change form
type ChangePasswordForm struct {
	CurrentPassword string `form:"current_password" binding:"required"`
	NewPassword     string `form:"new_password" binding:"required"`
	ConfirmPassword string `form:"confirm_password" binding:"required"`
}

// ShowProfile renders the profile page
func (h *ProfileHandler) ShowProfile(c *gin.Context) {
	render(c, http.StatusOK, "profile.html", gin.H{})
}

// UpdateProfile updates email and the dark-mode preference
func (h *ProfileHandler) UpdateProfile(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		c.Redirect(http.StatusFound, "/login")
		return
	}

	var form ProfileForm
	if err := c.ShouldBind(&form); err != nil {
		redirectWithFlash(c, "/profile", "danger", "Please enter a valid email address.")
		return
	}

	if _, err := h.userService.UpdateProfile(userID, form.Email, form.DarkMode == "on"); err != nil {
		flashError(c, err, "/profile")
		return
	}

	redirectWithFlash(c, "/profile", "success", "Profile updated!")
}

// ShowChangePassword renders the password change page
func (h *ProfileHandler) ShowChangePassword(c *gin.Context) {
	render(c, http.StatusOK, "change_password.html", gin.H{})
}

// ChangePassword verifies the current password and stores the new one
func (h *ProfileHandler) ChangePassword(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		c.Redirect(http.StatusFound, "/login")
		return
	}

	var form ChangePasswordForm
	if err := c.ShouldBind(&form); err != nil {
		redirectWithFlash(c, "/change_password", "danger", "All password fields are required.")
		return
	}

	if err := h.userService.ChangePassword(userID, form.CurrentPassword, form.NewPassword, form.ConfirmPassword); err != nil {
		flashError(c, err, "/change_password")
		return
	}

	redirectWithFlash(c, "/profile", "success", "Password changed successfully!")
}

// ShowSettings renders the settings page
func (h *ProfileHandler) ShowSettings(c *gin.Context) {
	render(c, http.StatusOK, "settings.html", gin.H{})
}

// UpdateSettings is a stub: it acknowledges the submitted currency without
// persisting anything.
func (h *ProfileHandler) UpdateSettings(c *gin.Context) {
	currency := c.PostForm("currency")
	redirectWithFlash(c, "/settings", "success",
		fmt.Sprintf("Settings updated! (Stub: Currency set to %s)", currency))
}
