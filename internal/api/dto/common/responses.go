package common

// Response is the flat body every endpoint answers with
type Response struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
	Code    string `json:"code,omitempty"`
	Detail  string `json:"detail,omitempty"`
}

// HealthResponse is the liveness probe body
type HealthResponse struct {
	OK bool `json:"ok"`
}

// Define type for error codes to enforce consistency
type ErrorCode string

// Standard error codes
const (
	ErrCodeValidation       ErrorCode = "INVALID_INPUT"
	ErrCodeCaptchaRejected  ErrorCode = "CAPTCHA_REJECTED"
	ErrCodeConfigIncomplete ErrorCode = "CONFIG_INCOMPLETE"
	ErrCodeRelayUnreachable ErrorCode = "RELAY_UNREACHABLE"
	ErrCodeSendFailed       ErrorCode = "SEND_FAILED"
	ErrCodeNotFound         ErrorCode = "NOT_FOUND"
	ErrCodeInternalServer   ErrorCode = "INTERNAL"
	ErrCodeBadRequest       ErrorCode = "BAD_REQUEST"
	ErrCodeTooManyRequests  ErrorCode = "TOO_MANY_REQUESTS"
	ErrCodeTooLarge         ErrorCode = "PAYLOAD_TOO_LARGE"
)

// NewSuccessResponse creates a new successful response with a message
func NewSuccessResponse(message string) Response {
	return Response{
		Success: true,
		Message: message,
	}
}

// NewErrorResponse creates a new error response; detail may be empty
func NewErrorResponse(code ErrorCode, message string, detail string) Response {
	return Response{
		Success: false,
		Message: message,
		Code:    string(code),
		Detail:  detail,
	}
}
