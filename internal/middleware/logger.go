package middleware

import (
	"fmt"
	"net/http"
	"runtime/debug"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"clinic/internal/pkg/response"
)

const headerRequestID = "X-Request-ID"

// RequestLogger logs every request and recovers from panics. 5xx responses
// and panics are logged at error level with the stack.
func RequestLogger(log zerolog.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		reqID := requestID(c)
		c.Writer.Header().Set(headerRequestID, reqID)

		defer func() {
			if recovered := recover(); recovered != nil {
				response.Abort(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Internal server error")
				event(log.Error(), c, reqID, start).
					Str("panic", fmt.Sprintf("%v", recovered)).
					Bytes("stack", debug.Stack()).
					Msg("request panic")
				return
			}

			status := c.Writer.Status()
			var e *zerolog.Event
			switch {
			case status >= http.StatusInternalServerError:
				e = log.Error()
			case status >= http.StatusBadRequest:
				e = log.Warn()
			default:
				e = log.Info()
			}
			e = event(e, c, reqID, start)
			if len(c.Errors) > 0 {
				e = e.Str("errors", c.Errors.String())
			}
			e.Msg("request")
		}()

		c.Next()
	}
}

func event(e *zerolog.Event, c *gin.Context, reqID string, start time.Time) *zerolog.Event {
	return e.
		Str("request_id", reqID).
		Str("method", c.Request.Method).
		Str("path", c.Request.URL.Path).
		Str("query", c.Request.URL.RawQuery).
		Int("status", c.Writer.Status()).
		Str("client_ip", c.ClientIP()).
		Int64("user_id", UserID(c)).
		Str("role", string(Role(c))).
		Dur("latency", time.Since(start))
}

func requestID(c *gin.Context) string {
	if id := c.GetHeader(headerRequestID); id != "" {
		return id
	}
	return uuid.NewString()
}
