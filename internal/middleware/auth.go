package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"clinic/internal/domain"
	jwtsvc "clinic/internal/pkg/jwt"
	"clinic/internal/pkg/response"
)

const (
	ctxUserID = "user_id"
	ctxRole   = "role"
)

// JWTAuth requires a valid bearer token and stores user_id and role in the
// gin context.
func JWTAuth(jwt *jwtsvc.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		h := c.GetHeader("Authorization")
		if h == "" {
			response.Abort(c, http.StatusUnauthorized, "AUTH_HEADER_MISSING", "Missing Authorization header")
			return
		}

		tokenStr, ok := bearerToken(h)
		if !ok {
			response.Abort(c, http.StatusUnauthorized, "INVALID_AUTH_FORMAT", "Authorization header must be Bearer <token>")
			return
		}

		claims, err := jwt.ValidateToken(tokenStr)
		if err != nil {
			response.Abort(c, http.StatusUnauthorized, "INVALID_TOKEN", "Invalid or expired token")
			return
		}

		c.Set(ctxUserID, claims.UserID)
		c.Set(ctxRole, claims.Role)
		c.Next()
	}
}

// OptionalJWTAuth attaches the caller identity when a valid token is sent and
// lets anonymous requests through. A malformed or invalid token is still
// rejected.
func OptionalJWTAuth(jwt *jwtsvc.Service) gin.HandlerFunc {
	required := JWTAuth(jwt)
	return func(c *gin.Context) {
		if c.GetHeader("Authorization") == "" {
			c.Next()
			return
		}
		required(c)
	}
}

func bearerToken(h string) (string, bool) {
	if !strings.HasPrefix(h, "Bearer ") {
		return "", false
	}
	tokenStr := strings.TrimSpace(strings.TrimPrefix(h, "Bearer "))
	return tokenStr, tokenStr != ""
}

// UserID returns the authenticated user id, or 0 for anonymous requests.
func UserID(c *gin.Context) int64 {
	return c.GetInt64(ctxUserID)
}

// Role returns the role claim of the authenticated user.
func Role(c *gin.Context) domain.UserRole {
	return domain.UserRole(c.GetString(ctxRole))
}
