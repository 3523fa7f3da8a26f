package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/satyaprakrati/cozico/internal/interfaces/http/dto"
)

// DefaultMaxBodyBytes bounds cart and wishlist request bodies
const DefaultMaxBodyBytes int64 = 64 << 10

// BodyLimit rejects requests whose declared body exceeds maxBytes and caps
// streaming bodies at the same size
func BodyLimit(maxBytes int64) gin.HandlerFunc {
	if maxBytes <= 0 {
		maxBytes = DefaultMaxBodyBytes
	}
	return func(c *gin.Context) {
		if c.Request.ContentLength > maxBytes {
			Abort(c, http.StatusRequestEntityTooLarge, dto.ErrCodeRequestTooLarge, "Request body exceeds maximum allowed size")
			return
		}

		c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, maxBytes)
		c.Next()
	}
}
