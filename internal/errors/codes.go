package errors

// ErrorCode represents a standardized error code used throughout the client
type ErrorCode string

// Authentication error codes (AUTH_*)
const (
	AuthInvalidCredentials ErrorCode = "AUTH_001"
	AuthSessionExpired     ErrorCode = "AUTH_002"
)

// Validation error codes (VALIDATION_*)
const (
	ValidationGeneral ErrorCode = "VALIDATION_001"
	ValidationField   ErrorCode = "VALIDATION_002"
)

// Permission error codes (PERMISSION_*)
const (
	PermissionDenied ErrorCode = "PERMISSION_001"
)

// Resource error codes (NOT_FOUND_*)
const (
	ResourceNotFound ErrorCode = "NOT_FOUND_001"
)

// Server error codes (SERVER_*)
const (
	ServerInternal ErrorCode = "SERVER_001"
)

// Network error codes (NETWORK_*)
const (
	NetworkUnreachable ErrorCode = "NETWORK_001"
)

// Fallback error codes (UNKNOWN_*)
const (
	UnknownError ErrorCode = "UNKNOWN_001"
)

// errorMessages maps error codes to their default human-readable messages
var errorMessages = map[ErrorCode]string{
	AuthInvalidCredentials: "Invalid email or password.",
	AuthSessionExpired:     "Your session has expired. Please sign in again.",
	ValidationGeneral:      "Please check your input fields.",
	ValidationField:        "Validation failed",
	PermissionDenied:       "You do not have permission to perform this action.",
	ResourceNotFound:       "The requested resource was not found.",
	ServerInternal:         "Server error. Please try again later.",
	NetworkUnreachable:     "Network error. Please check your connection.",
	UnknownError:           "An unexpected error occurred.",
}

// GetErrorMessage returns the default message for a given error code
// If the error code is not found, it returns a generic error message
func GetErrorMessage(code ErrorCode) string {
	if msg, ok := errorMessages[code]; ok {
		return msg
	}
	return "An error occurred"
}

// IsValidErrorCode checks if the provided error code is a valid registered code
func IsValidErrorCode(code ErrorCode) bool {
	_, ok := errorMessages[code]
	return ok
}
