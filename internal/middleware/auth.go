package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/lbrrrrrr/enjoyyoga/internal/models"
	"github.com/lbrrrrrr/enjoyyoga/internal/services"
)

const (
	TokenSubKey    = "token_sub"
	TokenAccessKey = "token_access"
)

func bearerToken(c *gin.Context) string {
	authHeader := c.GetHeader("Authorization")
	parts := strings.SplitN(authHeader, " ", 2)
	if len(parts) != 2 || parts[0] != "Bearer" {
		return ""
	}
	return strings.TrimSpace(parts[1])
}

// AdminAuth guards the back-office routes. It accepts either the master
// token from config or a JWT issued by the login endpoint, and stores the
// subject and access level in the context.
func AdminAuth(tokens *services.TokenService) gin.HandlerFunc {
	return func(c *gin.Context) {
		logger := ContextLogger(c)

		token := bearerToken(c)
		if token == "" {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Authorization header is required"})
			c.Abort()
			return
		}

		if tokens.ValidateMasterToken(token) {
			c.Set(TokenSubKey, "master")
			c.Set(TokenAccessKey, models.AccessLevelAdmin)
			c.Next()
			return
		}

		claims, err := tokens.ValidateJWTToken(token)
		if err != nil {
			logger.Info("rejected admin token", zap.Error(err))
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid or expired token"})
			c.Abort()
			return
		}

		c.Set(TokenSubKey, claims.Sub)
		c.Set(TokenAccessKey, claims.Access)
		c.Next()
	}
}

// RequireAdmin restricts a route to full-admin tokens; staff tokens get a
// 403. Must run after AdminAuth.
func RequireAdmin() gin.HandlerFunc {
	return func(c *gin.Context) {
		access, _ := c.Get(TokenAccessKey)
		if access != models.AccessLevelAdmin {
			c.JSON(http.StatusForbidden, gin.H{"error": "Admin access required"})
			c.Abort()
			return
		}
		c.Next()
	}
}

// TokenSubject returns the authenticated subject set by AdminAuth, or ""
// on unauthenticated routes.
func TokenSubject(c *gin.Context) string {
	return c.GetString(TokenSubKey)
}
