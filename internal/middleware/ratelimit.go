package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"clinic/internal/pkg/ratelimit"
	"clinic/internal/pkg/response"
)

// RateLimit throttles requests per client IP under scope. When the limiter
// backend fails the request is let through and the failure logged.
func RateLimit(l ratelimit.Limiter, scope string, log zerolog.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		ok, err := l.Allow(c.Request.Context(), scope+":"+c.ClientIP())
		if err != nil {
			log.Warn().Err(err).Str("scope", scope).Msg("rate limiter unavailable")
			c.Next()
			return
		}
		if !ok {
			response.Abort(c, http.StatusTooManyRequests, "RATE_LIMITED", "Too many requests, try again later")
			return
		}
		c.Next()
	}
}
