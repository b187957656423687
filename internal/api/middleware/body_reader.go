package middleware

import (
	"bytes"
	"errors"
	"io"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/osa911/portfolio/internal/api/constants"
	"github.com/osa911/portfolio/internal/api/dto/common"
)

// DefaultMaxBodySize bounds request bodies when no limit is configured
const DefaultMaxBodySize int64 = 64 * 1024

// LimitRequestBody reads the request body once, rejecting anything larger
// than maxBytes with 413. The bytes are stored in the context and restored
// on the request so handlers can read them again.
func LimitRequestBody(maxBytes int64) gin.HandlerFunc {
	if maxBytes <= 0 {
		maxBytes = DefaultMaxBodySize
	}

	return func(c *gin.Context) {
		if c.Request.Body == nil || c.Request.Body == http.NoBody {
			c.Next()
			return
		}

		reader := http.MaxBytesReader(c.Writer, c.Request.Body, maxBytes)
		bodyBytes, err := io.ReadAll(reader)
		if err != nil {
			var maxErr *http.MaxBytesError
			if errors.As(err, &maxErr) {
				c.AbortWithStatusJSON(http.StatusRequestEntityTooLarge, common.NewErrorResponse(common.MessageBodyTooLarge, nil))
				return
			}
			c.AbortWithStatusJSON(http.StatusBadRequest, common.NewErrorResponse(common.MessageInternalError, nil))
			return
		}

		// Restore the body for subsequent handlers
		c.Request.Body = io.NopCloser(bytes.NewReader(bodyBytes))
		c.Set(constants.ContextKeyRawBody, bodyBytes)

		c.Next()
	}
}

// RawBody returns the body stored by LimitRequestBody, reading the request
// directly when the middleware was not installed.
func RawBody(c *gin.Context) ([]byte, error) {
	if raw, ok := c.Get(constants.ContextKeyRawBody); ok {
		if b, ok := raw.([]byte); ok {
			return b, nil
		}
	}
	if c.Request.Body == nil {
		return nil, nil
	}
	return io.ReadAll(c.Request.Body)
}
