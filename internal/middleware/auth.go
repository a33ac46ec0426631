package middleware

import (
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"

	"hisabkitab/internal/config"
	"hisabkitab/internal/models"
	"hisabkitab/internal/services"
)

// SessionCookieName is the name of the session cookie.
const SessionCookieName = "session"

// getJWTKey returns the session signing key from configuration
func getJWTKey() []byte {
	return []byte(config.Get().SecretKey)
}

// SessionClaims represents the claims carried by the session cookie JWT
type SessionClaims struct {
	UserID   uint   `json:"user_id"`
	Username string `json:"username"`
	jwt.RegisteredClaims
}

// GenerateSessionToken generates a signed JWT identifying the user for the
// lifetime configured by SESSION_EXPIRES_IN.
func GenerateSessionToken(user *models.User) (string, error) {
	claims := &SessionClaims{
		UserID:   user.ID,
		Username: user.Username,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(config.Get().SessionExpiresIn)),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
			NotBefore: jwt.NewNumericDate(time.Now()),
			Issuer:    "hisabkitab",
			Subject:   fmt.Sprintf("%d", user.ID),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(getJWTKey())
}

// ParseSessionToken parses and validates a session token.
func ParseSessionToken(tokenString string) (*SessionClaims, error) {
	claims := &SessionClaims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return getJWTKey(), nil
	})

	if err != nil || !token.Valid {
		return nil, fmt.Errorf("invalid session token")
	}

	return claims, nil
}

// SetSessionCookie establishes the session by storing the token in an
// HttpOnly cookie.
func SetSessionCookie(c *gin.Context, token string) {
	c.SetCookie(SessionCookieName, token, int(config.Get().SessionExpiresIn.Seconds()), "/", "", false, true)
}

// ClearSessionCookie removes the session cookie, logging the user out.
func ClearSessionCookie(c *gin.Context) {
	c.SetCookie(SessionCookieName, "", -1, "/", "", false, true)
}

// AuthMiddleware verifies the session cookie, resolves it to a user record,
// and sets the user in the context. Unauthenticated requests are redirected
// to the login page.
func AuthMiddleware(userService services.UserServicer) gin.HandlerFunc {
	return func(c *gin.Context) {
		tokenString, err := c.Cookie(SessionCookieName)
		if err != nil || tokenString == "" {
			c.Redirect(http.StatusFound, "/login")
			c.Abort()
			return
		}

		claims, err := ParseSessionToken(tokenString)
		if err != nil {
			// Invalid or expired session, clear the cookie
			ClearSessionCookie(c)
			c.Redirect(http.StatusFound, "/login")
			c.Abort()
			return
		}

		user, err := userService.GetUserByID(claims.UserID)
		if err != nil {
			ClearSessionCookie(c)
			c.Redirect(http.StatusFound, "/login")
			c.Abort()
			return
		}

		// Set user ID and user record in the context
		c.Set("userID", user.ID)
		c.Set("user", user)
		c.Next()
	}
}
