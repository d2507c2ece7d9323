package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/kbukum/gladiaflow/util"
)

// DefaultMaxBodySize applies when the configured size cannot be parsed.
const DefaultMaxBodySize = 10 << 20

// BodySizeLimit restricts request bodies to maxSize (e.g. "10MB", "512KB").
// Reads past the limit fail, which surfaces as a bind error in handlers.
func BodySizeLimit(maxSize string) gin.HandlerFunc {
	limit := util.ParseSize(maxSize, DefaultMaxBodySize)
	return func(c *gin.Context) {
		if c.Request.Body != nil {
			c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, limit)
		}
		c.Next()
	}
}
