package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/mmynk/hospital-billing/internal/auth"
)

const (
	subjectKey = "auth_subject"
	roleKey    = "auth_role"
)

// GetSubject returns the authenticated token subject, or "" if the request
// was not authenticated.
func GetSubject(c *gin.Context) string {
	return c.GetString(subjectKey)
}

// RequireEditor returns a middleware that validates the Bearer token in the
// Authorization header and requires the editor role.
func RequireEditor(jwtManager *auth.JWTManager) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			abortUnauthorized(c, auth.ErrMissingToken)
			return
		}

		// Parse Bearer token
		parts := strings.Split(authHeader, " ")
		if len(parts) != 2 || parts[0] != "Bearer" {
			abortUnauthorized(c, auth.ErrInvalidToken)
			return
		}

		claims, err := jwtManager.Validate(parts[1])
		if err != nil {
			abortUnauthorized(c, err)
			return
		}
		if claims.Role != auth.RoleEditor {
			abortUnauthorized(c, auth.ErrInvalidToken)
			return
		}

		c.Set(subjectKey, claims.Subject)
		c.Set(roleKey, claims.Role)
		c.Next()
	}
}

func abortUnauthorized(c *gin.Context, err error) {
	_ = c.Error(err)
	c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
		"success": false,
		"error":   "UNAUTHORIZED",
		"message": err.Error(),
	})
}
