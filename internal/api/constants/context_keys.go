package constants

// Context keys shared between middleware and handlers
const (
	// ContextKeyRequestID holds the request ID assigned by the RequestID middleware
	ContextKeyRequestID = "RequestID"
	// ContextKeyRawBody holds the request body bytes read by LimitRequestBody
	ContextKeyRawBody = "rawBody"
)

// HeaderRequestID carries the request ID in both directions
const HeaderRequestID = "X-Request-ID"
