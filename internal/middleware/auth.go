package middleware

import (
	"net/http"
	"strings"

	"github.com/ndp-coder/Coustmize-ai-backend/internal/auth"

	"github.com/gin-gonic/gin"
)

// Context keys set by AuthMiddleware.
const (
	UserIDKey = "userID"
	EmailKey  = "email"
)

type TokenValidator interface {
	ValidateToken(tokenString string) (*auth.Claims, error)
}

// AuthMiddleware requires a bearer token. A missing token aborts with 401 and
// an unverifiable one with 403, both without a body.
func AuthMiddleware(tokens TokenValidator) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		tokenString := ""
		if scheme, rest, ok := strings.Cut(authHeader, " "); ok && strings.EqualFold(scheme, "Bearer") {
			tokenString = strings.TrimSpace(rest)
		}
		if tokenString == "" {
			c.AbortWithStatus(http.StatusUnauthorized)
			return
		}

		claims, err := tokens.ValidateToken(tokenString)
		if err != nil {
			c.AbortWithStatus(http.StatusForbidden)
			return
		}
		c.Set(UserIDKey, claims.ID)
		c.Set(EmailKey, claims.Email)
		c.Next()
	}
}
