package middleware

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/BruksfildServices01/dental-scheduler/internal/audit"
)

const (
	HeaderRequestID  = "X-Request-ID"
	ContextRequestID = "requestID"
)

// RequestID reuses an incoming X-Request-ID or mints a new one, and exposes
// it on the gin context, the request context and the response.
func RequestID() gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.GetHeader(HeaderRequestID)
		if id == "" || len(id) > 64 {
			id = uuid.NewString()
		}

		c.Set(ContextRequestID, id)
		c.Request = c.Request.WithContext(audit.ContextWithRequestID(c.Request.Context(), id))
		c.Writer.Header().Set(HeaderRequestID, id)

		c.Next()
	}
}
