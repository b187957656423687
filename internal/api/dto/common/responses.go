package common

import "github.com/osa911/portfolio/internal/api/validation"

// APIResponse is the standard wrapper for all API responses
type APIResponse struct {
	Success     bool                   `json:"success"`
	Message     string                 `json:"message"`
	FieldErrors validation.FieldErrors `json:"fieldErrors,omitempty"`
	Data        interface{}            `json:"data,omitempty"`
}

// Generic messages shared by every endpoint
const (
	MessageInternalError    = "Something went wrong. Please try again."
	MessageMethodNotAllowed = "Method not allowed"
	MessageRateLimited      = "Too many requests. Please try again later."
	MessageBodyTooLarge     = "Request body is too large"
	MessageForbiddenOrigin  = "Origin not allowed"
)

// NewSuccessResponse creates a new successful API response
func NewSuccessResponse(message string, data interface{}) APIResponse {
	return APIResponse{
		Success: true,
		Message: message,
		Data:    data,
	}
}

// NewMessageResponse creates a new success response with a simple message
func NewMessageResponse(message string) APIResponse {
	return NewSuccessResponse(message, nil)
}

// NewErrorResponse creates a new error API response
func NewErrorResponse(message string, fieldErrors validation.FieldErrors) APIResponse {
	return APIResponse{
		Success:     false,
		Message:     message,
		FieldErrors: fieldErrors,
	}
}
