package middleware

import (
	"net/http"
	"strings"

	"github.com/kollapso/booking/internal/entity"
	"github.com/kollapso/booking/internal/service"

	"github.com/gin-gonic/gin"
)

const identityKey = "identity"

// Auth verifies the bearer token and stores the validated identity in the
// request context. Every protected route goes through here; the role used by
// later checks comes from the verified claims only.
func Auth(authService service.AuthService) gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		if !strings.HasPrefix(header, "Bearer ") {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "missing bearer token"})
			return
		}

		token := strings.TrimPrefix(header, "Bearer ")
		identity, err := authService.Verify(c.Request.Context(), token)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "invalid or expired token"})
			return
		}

		c.Set(identityKey, identity)
		c.Next()
	}
}

// RequireAdmin allows only callers whose verified role is admin.
func RequireAdmin() gin.HandlerFunc {
	return func(c *gin.Context) {
		caller := Caller(c)
		if caller == nil || !caller.IsAdmin() {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "admin access required"})
			return
		}
		c.Next()
	}
}

// Caller returns the identity stored by Auth, or nil on unprotected routes.
func Caller(c *gin.Context) *entity.Identity {
	v, ok := c.Get(identityKey)
	if !ok {
		return nil
	}
	identity, _ := v.(*entity.Identity)
	return identity
}
