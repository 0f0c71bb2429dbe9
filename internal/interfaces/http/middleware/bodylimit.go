package middleware

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/openmarket/econbridge/internal/interfaces/http/dto"
)

// BodyLimit rejects payloads larger than maxBytes. Marketplace webhook
// bodies are small JSON documents; anything bigger is a misbehaving sender,
// not a listing.
func BodyLimit(maxBytes int64) gin.HandlerFunc {
	return func(c *gin.Context) {
		if c.Request.ContentLength > maxBytes {
			c.AbortWithStatusJSON(http.StatusRequestEntityTooLarge,
				dto.NewErrorResponse(dto.ErrCodeTooLarge,
					fmt.Sprintf("Request body exceeds %d bytes", maxBytes)))
			return
		}

		// Content-Length can lie or be absent; cap the stream as well.
		c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, maxBytes)
		c.Next()
	}
}
