package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

type SizeLimitConfig struct {
	MaxBodySize   int64
	MaxHeaderSize int
	SkipPaths     []string
}

// DefaultSizeLimitConfig caps bodies well above the largest legitimate
// payload here (a catalog category with its services).
func DefaultSizeLimitConfig() SizeLimitConfig {
	return SizeLimitConfig{
		MaxBodySize:   1 << 20,
		MaxHeaderSize: 1 << 14,
	}
}

// SizeLimit rejects oversized requests before they reach binding.
func SizeLimit(config SizeLimitConfig) gin.HandlerFunc {
	return func(c *gin.Context) {
		for _, path := range config.SkipPaths {
			if c.Request.URL.Path == path {
				c.Next()
				return
			}
		}

		if c.Request.ContentLength > config.MaxBodySize {
			c.AbortWithStatusJSON(http.StatusRequestEntityTooLarge, gin.H{
				"error": "request body too large",
			})
			return
		}

		headerSize := 0
		for name, values := range c.Request.Header {
			headerSize += len(name)
			for _, value := range values {
				headerSize += len(value)
			}
		}
		if headerSize > config.MaxHeaderSize {
			c.AbortWithStatusJSON(http.StatusRequestEntityTooLarge, gin.H{
				"error": "request headers too large",
			})
			return
		}

		// Guards chunked requests that omit Content-Length.
		c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, config.MaxBodySize)

		c.Next()
	}
}
