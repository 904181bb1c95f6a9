package constants

// Context keys for validated requests
const (
	// Contact context keys
	ContextKeyContact = "contact"

	// Request metadata
	ContextKeyRequestID = "RequestID"
)

// Header names
const (
	HeaderRequestID = "X-Request-ID"
)
