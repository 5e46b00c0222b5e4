package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"clinic/internal/domain"
	"clinic/internal/pkg/response"
)

// RequireRole lets the request through when the token role is one of roles.
func RequireRole(roles ...domain.UserRole) gin.HandlerFunc {
	allowed := make(map[domain.UserRole]struct{}, len(roles))
	for _, r := range roles {
		allowed[r] = struct{}{}
	}

	return func(c *gin.Context) {
		if _, exists := c.Get(ctxRole); !exists {
			response.Abort(c, http.StatusUnauthorized, "UNAUTHORIZED", "Role not found in token")
			return
		}

		if _, ok := allowed[Role(c)]; !ok {
			response.Abort(c, http.StatusForbidden, "FORBIDDEN", "Access denied: insufficient permissions")
			return
		}

		c.Next()
	}
}

// AdminOnly middleware requires admin role
func AdminOnly() gin.HandlerFunc {
	return RequireRole(domain.RoleAdmin)
}

// StaffOnly admits every dashboard role.
func StaffOnly() gin.HandlerFunc {
	return RequireRole(domain.RoleAdmin, domain.RoleSupport, domain.RoleEditor, domain.RoleAuthor)
}
