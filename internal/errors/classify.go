package errors

import (
	"encoding/json"
	stderrors "errors"
	"fmt"
	"net/http"
)

// APIError is a failed backend call normalized into the client taxonomy.
// Message is always safe to show to the user verbatim.
type APIError struct {
	Code    ErrorCode
	Message string
	Status  int
}

func (e *APIError) Error() string {
	return e.Message
}

// fieldError mirrors the backend's structured validation error entries:
// {"detail": [{"loc": ["body", "amount"], "msg": "must be positive", ...}]}
type fieldError struct {
	Loc []json.RawMessage `json:"loc"`
	Msg string            `json:"msg"`
}

// errorBody covers the error response shapes the backend produces. Detail
// is either a string or an array of field errors, so it stays raw until
// the classifier decides.
type errorBody struct {
	Detail  json.RawMessage `json:"detail"`
	Message string          `json:"message"`
}

// Classify turns a failed response into a single APIError. Priority order:
// structured field-validation errors, then a string detail message, then a
// generic message field, then a fixed message for known status codes, and
// finally the fallback message. Pass a nil body slice when the body could
// not be read.
func Classify(status int, body []byte) *APIError {
	var parsed errorBody
	if len(body) > 0 {
		// A malformed body falls through to the status-code mapping.
		_ = json.Unmarshal(body, &parsed)
	}

	if status == http.StatusUnprocessableEntity {
		if msg, ok := firstFieldError(parsed.Detail); ok {
			return &APIError{Code: ValidationField, Message: msg, Status: status}
		}
		return &APIError{Code: ValidationGeneral, Message: GetErrorMessage(ValidationGeneral), Status: status}
	}

	if msg, ok := stringDetail(parsed.Detail); ok {
		return &APIError{Code: codeForStatus(status), Message: msg, Status: status}
	}

	if parsed.Message != "" {
		return &APIError{Code: codeForStatus(status), Message: parsed.Message, Status: status}
	}

	code := codeForStatus(status)
	if code != UnknownError {
		return &APIError{Code: code, Message: GetErrorMessage(code), Status: status}
	}

	return &APIError{Code: UnknownError, Message: GetErrorMessage(UnknownError), Status: status}
}

// ClassifyTransport normalizes an error raised before any response arrived.
func ClassifyTransport(err error) *APIError {
	if err == nil {
		return &APIError{Code: UnknownError, Message: GetErrorMessage(UnknownError)}
	}
	return &APIError{Code: NetworkUnreachable, Message: GetErrorMessage(NetworkUnreachable)}
}

// firstFieldError extracts "<field>: <msg>" from the first entry of a
// structured validation detail array. The field name is the last element
// of the loc path, or "field" when the path is empty.
func firstFieldError(detail json.RawMessage) (string, bool) {
	if len(detail) == 0 {
		return "", false
	}

	var fieldErrors []fieldError
	if err := json.Unmarshal(detail, &fieldErrors); err != nil || len(fieldErrors) == 0 {
		return "", false
	}

	first := fieldErrors[0]
	if first.Msg == "" {
		return "", false
	}

	field := "field"
	if len(first.Loc) > 0 {
		var name string
		if err := json.Unmarshal(first.Loc[len(first.Loc)-1], &name); err == nil && name != "" {
			field = name
		}
	}

	return fmt.Sprintf("%s: %s", field, first.Msg), true
}

func stringDetail(detail json.RawMessage) (string, bool) {
	if len(detail) == 0 {
		return "", false
	}
	var s string
	if err := json.Unmarshal(detail, &s); err != nil || s == "" {
		return "", false
	}
	return s, true
}

func codeForStatus(status int) ErrorCode {
	switch status {
	case http.StatusUnauthorized:
		return AuthInvalidCredentials
	case http.StatusForbidden:
		return PermissionDenied
	case http.StatusNotFound:
		return ResourceNotFound
	case http.StatusInternalServerError:
		return ServerInternal
	case http.StatusUnprocessableEntity:
		return ValidationGeneral
	default:
		return UnknownError
	}
}

// Taxonomy predicates

// IsAuthError reports whether err is an authorization failure that should
// force re-authentication.
func IsAuthError(err error) bool {
	return hasCode(err, AuthInvalidCredentials) || hasCode(err, AuthSessionExpired)
}

// IsValidationError reports whether err is a field or input validation failure.
func IsValidationError(err error) bool {
	return hasCode(err, ValidationField) || hasCode(err, ValidationGeneral)
}

// IsNetworkError reports whether err means no response was received at all.
func IsNetworkError(err error) bool {
	return hasCode(err, NetworkUnreachable)
}

// IsNotFoundError reports whether err is a missing-resource failure.
func IsNotFoundError(err error) bool {
	return hasCode(err, ResourceNotFound)
}

func hasCode(err error, code ErrorCode) bool {
	var apiErr *APIError
	return stderrors.As(err, &apiErr) && apiErr.Code == code
}
