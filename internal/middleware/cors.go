package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

const (
	corsAllowHeaders  = "Content-Type, Authorization"
	corsExposeHeaders = "Content-Disposition"
	corsAllowMethods  = "GET, POST, PUT, DELETE, OPTIONS"
)

// CORSMiddleware echoes the request origin when it is allowed. An empty
// allow list accepts every origin.
func CORSMiddleware(allowed []string) gin.HandlerFunc {
	set := make(map[string]struct{}, len(allowed))
	for _, o := range allowed {
		set[o] = struct{}{}
	}

	return func(c *gin.Context) {
		origin := c.GetHeader("Origin")

		if origin != "" && originAllowed(set, origin) {
			h := c.Writer.Header()
			h.Set("Access-Control-Allow-Origin", origin)
			h.Set("Vary", "Origin")
			h.Set("Access-Control-Allow-Credentials", "true")
			h.Set("Access-Control-Allow-Headers", corsAllowHeaders)
			h.Set("Access-Control-Expose-Headers", corsExposeHeaders)
			h.Set("Access-Control-Allow-Methods", corsAllowMethods)
		}

		if c.Request.Method == http.MethodOptions {
			c.AbortWithStatus(http.StatusNoContent)
			return
		}

		c.Next()
	}
}

func originAllowed(set map[string]struct{}, origin string) bool {
	if len(set) == 0 {
		return true
	}
	_, ok := set[origin]
	return ok
}
