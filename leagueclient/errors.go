package leagueclient

import (
	"errors"
	"fmt"
	"net/http"
	"strings"

	sonic "github.com/bytedance/sonic"
)

// Category sentinels for errors.Is checks against *Error.
var (
	ErrInvalidRequest   = errors.New("invalid request")
	ErrUnauthorized     = errors.New("unauthorized")
	ErrPermissionDenied = errors.New("permission denied")
	ErrNotFound         = errors.New("not found")
	ErrServer           = errors.New("server error")
)

// Error is a failed API call. Status and Reason come from the response
// body when the server sent a structured error; Message always holds
// something human readable, falling back to the raw body or HTTP status
// text when the body is unrecognizable.
type Error struct {
	StatusCode int
	Status     string
	Reason     string
	Message    string
}

func (e *Error) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("league api: %s", http.StatusText(e.StatusCode))
	}
	return fmt.Sprintf("league api: %s (status %d)", e.Message, e.StatusCode)
}

// Is maps the HTTP status to a category sentinel so callers can branch
// with errors.Is without inspecting status codes.
func (e *Error) Is(target error) bool {
	switch target {
	case ErrInvalidRequest:
		return e.StatusCode == http.StatusBadRequest
	case ErrUnauthorized:
		return e.StatusCode == http.StatusUnauthorized
	case ErrPermissionDenied:
		return e.StatusCode == http.StatusForbidden
	case ErrNotFound:
		return e.StatusCode == http.StatusNotFound
	case ErrServer:
		return e.StatusCode >= http.StatusInternalServerError
	default:
		return false
	}
}

// The service has shipped two error body shapes: the current envelope
// with a structured error object, and a legacy flat form where "error"
// is a bare string. decodeError accepts both and keeps the raw body as
// the message when neither matches.
type envelopeErrorBody struct {
	Error *struct {
		Code    int    `json:"code"`
		Message string `json:"message"`
		Status  string `json:"status"`
		Errors  []struct {
			Domain  string `json:"domain"`
			Reason  string `json:"reason"`
			Message string `json:"message"`
		} `json:"errors"`
	} `json:"error"`
}

type legacyErrorBody struct {
	Error string `json:"error"`
}

func decodeError(statusCode int, body []byte) *Error {
	apiErr := &Error{StatusCode: statusCode}

	var envelope envelopeErrorBody
	if err := sonic.Unmarshal(body, &envelope); err == nil && envelope.Error != nil && envelope.Error.Message != "" {
		apiErr.Status = envelope.Error.Status
		apiErr.Message = envelope.Error.Message
		if len(envelope.Error.Errors) > 0 {
			apiErr.Reason = envelope.Error.Errors[0].Reason
		}
		return apiErr
	}

	var legacy legacyErrorBody
	if err := sonic.Unmarshal(body, &legacy); err == nil && legacy.Error != "" {
		apiErr.Message = legacy.Error
		return apiErr
	}

	if trimmed := strings.TrimSpace(string(body)); trimmed != "" {
		apiErr.Message = abbreviate(trimmed, 200)
		return apiErr
	}

	apiErr.Message = http.StatusText(statusCode)
	return apiErr
}

func abbreviate(s string, max int) string {
	if len(s) <= max {
		return s
	}
	return s[:max] + "..."
}
