package handler

import (
	"errors"
	"net/http"
	"strings"

	"feedbackhub/internal/app/feedback/util"

	"github.com/gin-gonic/gin"
)

// AuthMiddleware gates the mutating and admin endpoints behind the admin
// session token.
type AuthMiddleware struct {
	jwtManager *util.JWTManager
}

func NewAuthMiddleware(jwtManager *util.JWTManager) *AuthMiddleware {
	return &AuthMiddleware{
		jwtManager: jwtManager,
	}
}

// Authorize validates the bearer token and stores the admin identity in the
// Gin context. The "Bearer " prefix is optional.
func (m *AuthMiddleware) Authorize() gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Token is missing"})
			c.Abort()
			return
		}

		tokenString := strings.TrimSpace(strings.TrimPrefix(authHeader, "Bearer "))

		claims, err := m.jwtManager.ValidateToken(tokenString)
		if err != nil {
			if errors.Is(err, util.ErrExpiredToken) {
				c.JSON(http.StatusUnauthorized, gin.H{"error": "Token has expired"})
			} else {
				c.JSON(http.StatusUnauthorized, gin.H{"error": "Token is invalid"})
			}
			c.Abort()
			return
		}

		c.Set("admin_user", claims.Username)

		c.Next()
	}
}
