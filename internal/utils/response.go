package utils

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/osa911/portfolio/internal/api/dto/common"
	"github.com/osa911/portfolio/internal/api/validation"
)

// HandleSuccess sends a success response with a message and optional data
func HandleSuccess(c *gin.Context, message string, data interface{}) {
	c.JSON(http.StatusOK, common.NewSuccessResponse(message, data))
}

// HandleMessage sends a success response with just a message
func HandleMessage(c *gin.Context, message string) {
	c.JSON(http.StatusOK, common.NewMessageResponse(message))
}

// HandleFieldErrors sends a 400 response carrying per-field messages
func HandleFieldErrors(c *gin.Context, message string, fieldErrors validation.FieldErrors) {
	c.JSON(http.StatusBadRequest, common.NewErrorResponse(message, fieldErrors))
}

// AbortWithMessage stops the chain with an error response and no field errors
func AbortWithMessage(c *gin.Context, status int, message string) {
	c.AbortWithStatusJSON(status, common.NewErrorResponse(message, nil))
}
