package middleware

import (
	"net/http"
	"runtime/debug"

	"github.com/gin-gonic/gin"

	"github.com/osa911/portfolio/internal/api/constants"
	"github.com/osa911/portfolio/internal/api/dto/common"
	"github.com/osa911/portfolio/internal/logging"
	"github.com/osa911/portfolio/internal/utils"
)

// Recovery turns a panic into the generic 500 response and logs the stack.
func Recovery(logger *logging.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		defer func() {
			if err := recover(); err != nil {
				logger.Error("[PANIC] %s %s | %s | %s | %v\n%s",
					c.Request.Method,
					c.Request.URL.Path,
					utils.GetRealIP(c),
					c.GetString(constants.ContextKeyRequestID),
					err,
					debug.Stack(),
				)

				c.AbortWithStatusJSON(http.StatusInternalServerError, common.NewErrorResponse(common.MessageInternalError, nil))
			}
		}()

		c.Next()
	}
}
