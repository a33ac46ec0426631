package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	apperrors "hisabkitab/internal/errors"
	"hisabkitab/internal/middleware"
	"hisabkitab/internal/services"
)

// AuthHandler handles authentication-related requests
type AuthHandler struct {
	userService services.UserServicer
}

// NewAuthHandler creates a new AuthHandler
func NewAuthHandler(userService services.UserServicer) *AuthHandler {
	return &AuthHandler{userService: userService}
}

// LoginRequest represents the login form
type LoginRequest struct {
	Username string `form:"username" binding:"required"`
	Password string `form:"password" binding:"required"`
}

// RegisterRequest represents the registration form
type RegisterRequest struct {
	Username string `form:"username" binding:"required,max=64"`
	Email    string `form:"email" binding:"omitempty,email,max=120"`
	Password string `form:"password" binding:"required"`
}

// ShowLogin renders the login page
func (h *AuthHandler) ShowLogin(c *gin.Context) {
	render(c, http.StatusOK, "login.html", gin.H{})
}

// Login authenticates the user and establishes a session cookie. Failures
// never reveal which of username/password was wrong.
func (h *AuthHandler) Login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBind(&req); err != nil {
		redirectWithFlash(c, "/login", "danger", "Invalid credentials")
		return
	}

	user, err := h.userService.Authenticate(req.Username, req.Password)
	if err != nil {
		redirectWithFlash(c, "/login", "danger", "Invalid credentials")
		return
	}

	token, err := middleware.GenerateSessionToken(user)
	if err != nil {
		flashError(c, apperrors.Wrap(apperrors.ErrInternalServer, err), "/login")
		return
	}
	middleware.SetSessionCookie(c, token)
	redirectWithFlash(c, "/", "success", "Logged in successfully!")
}

// ShowRegister renders the registration page
func (h *AuthHandler) ShowRegister(c *gin.Context) {
	render(c, http.StatusOK, "register.html", gin.H{})
}

// Register handles user registration
func (h *AuthHandler) Register(c *gin.Context) {
	var req RegisterRequest
	if err := c.ShouldBind(&req); err != nil {
		redirectWithFlash(c, "/register", "danger", "Username and password are required")
		return
	}

	if _, err := h.userService.CreateUser(req.Username, req.Email, req.Password); err != nil {
		flashError(c, err, "/register")
		return
	}

	redirectWithFlash(c, "/login", "success", "Registration successful! Please log in.")
}

// Logout clears the session cookie
func (h *AuthHandler) Logout(c *gin.Context) {
	middleware.ClearSessionCookie(c)
	redirectWithFlash(c, "/login", "info", "Logged out!")
}

// ResetPassword is a stub: no reset is performed.
func (h *AuthHandler) ResetPassword(c *gin.Context) {
	redirectWithFlash(c, "/login", "info", "Password reset feature coming soon!")
}
