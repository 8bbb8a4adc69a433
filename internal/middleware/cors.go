package middleware

import (
	"net/http"
	"slices"
	"strings"

	"github.com/gin-gonic/gin"
)

var (
	corsAllowHeaders  = strings.Join([]string{"Content-Type", HeaderRequestID}, ", ")
	corsAllowMethods  = strings.Join([]string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"}, ", ")
	corsExposeHeaders = HeaderRequestID
)

// CORSMiddleware answers cross-origin requests for the reception front end.
// Only origins in allowed are echoed; "*" accepts any origin. Preflight
// requests end here with 204 whether or not the origin matched.
func CORSMiddleware(allowed []string) gin.HandlerFunc {
	anyOrigin := slices.Contains(allowed, "*")
	permitted := func(origin string) bool {
		return origin != "" && (anyOrigin || slices.Contains(allowed, origin))
	}

	return func(c *gin.Context) {
		if origin := c.GetHeader("Origin"); permitted(origin) {
			h := c.Writer.Header()
			h.Set("Access-Control-Allow-Origin", origin)
			h.Add("Vary", "Origin")
			h.Set("Access-Control-Allow-Headers", corsAllowHeaders)
			h.Set("Access-Control-Allow-Methods", corsAllowMethods)
			h.Set("Access-Control-Expose-Headers", corsExposeHeaders)
		}

		if c.Request.Method == http.MethodOptions {
			c.Writer.Header().Set("Access-Control-Max-Age", "600")
			c.AbortWithStatus(http.StatusNoContent)
			return
		}

		c.Next()
	}
}
