package utils

import (
	"github.com/gin-gonic/gin"

	"github.com/osa911/portfolio/internal/api/dto/common"
	"github.com/osa911/portfolio/internal/logging"
)

// HandleAPIError logs err with request context and responds with the
// generic message. Error details never reach the client.
func HandleAPIError(c *gin.Context, logger *logging.Logger, err error, status int, message string) {
	if message == "" {
		message = common.MessageInternalError
	}

	logger.LogHTTPError(
		c.Request.Method,
		c.Request.URL.Path,
		GetRealIP(c),
		status,
		message,
		err,
	)

	c.AbortWithStatusJSON(status, common.NewErrorResponse(message, nil))
}
