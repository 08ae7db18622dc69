package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/ibp-ai/planning-engine/internal/config"
)

// RoleContextKey is where the authenticated role lands in the gin context.
const RoleContextKey = "role"

// Authenticate validates the X-API-Key header and resolves the caller's role
// from X-Role, falling back to the configured default. Unknown roles are
// rejected even with a valid key.
func Authenticate(cfg config.AuthConfig) gin.HandlerFunc {
	allowed := make(map[string]struct{}, len(cfg.AllowedRoles))
	for _, role := range cfg.AllowedRoles {
		allowed[role] = struct{}{}
	}

	return func(c *gin.Context) {
		apiKey := c.GetHeader("X-API-Key")
		if apiKey == "" || apiKey != cfg.APIKey {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Invalid or missing API key"})
			return
		}

		role := c.GetHeader("X-Role")
		if role == "" {
			role = cfg.DefaultRole
		}
		if _, ok := allowed[role]; !ok {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "Role not allowed"})
			return
		}

		c.Set(RoleContextKey, role)
		c.Next()
	}
}

// RequireRole gates a route to the named roles. It assumes Authenticate has
// already run on the group.
func RequireRole(roles ...string) gin.HandlerFunc {
	required := make(map[string]struct{}, len(roles))
	for _, role := range roles {
		required[role] = struct{}{}
	}

	return func(c *gin.Context) {
		role := c.GetString(RoleContextKey)
		if _, ok := required[role]; !ok {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "Insufficient permissions"})
			return
		}
		c.Next()
	}
}
