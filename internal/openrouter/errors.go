package openrouter

import (
	"fmt"
	"net/http"
)

// Kind classifies a failed remote call.
type Kind string

const (
	KindTimeout        Kind = "timeout"
	KindRateLimited    Kind = "rate_limited"
	KindInvalidRequest Kind = "invalid_request"
	KindAuthFailure    Kind = "auth_failure"
	KindQuotaExhausted Kind = "quota_exhausted"
	KindTransportError Kind = "transport_error"
	KindUnknown        Kind = "unknown"
)

// APIError is the typed error surfaced by hard-mode calls. Message is
// user-facing; Quota flags credit exhaustion so UIs can special-case it.
type APIError struct {
	Kind    Kind
	Code    int
	Message string
	Quota   bool
}

func (e *APIError) Error() string {
	if e.Code != 0 {
		return fmt.Sprintf("openrouter: %s (%d): %s", e.Kind, e.Code, e.Message)
	}
	return fmt.Sprintf("openrouter: %s: %s", e.Kind, e.Message)
}

// statusError builds an APIError for a non-2xx response. The mapping follows
// the remote API's conventions: 402 means the account is out of credits.
func statusError(model string, status int) *APIError {
	switch status {
	case http.StatusPaymentRequired:
		return &APIError{
			Kind:    KindQuotaExhausted,
			Code:    status,
			Message: "Out of credits: add credits to your OpenRouter account and try again.",
			Quota:   true,
		}
	case http.StatusBadRequest:
		return &APIError{
			Kind:    KindInvalidRequest,
			Code:    status,
			Message: fmt.Sprintf("Invalid request for model %s.", model),
		}
	case http.StatusUnauthorized, http.StatusForbidden:
		return &APIError{
			Kind:    KindAuthFailure,
			Code:    status,
			Message: "Authentication failed: the API key is invalid.",
		}
	case http.StatusTooManyRequests:
		return &APIError{
			Kind:    KindRateLimited,
			Code:    status,
			Message: "Rate limited: too many requests. Wait a moment and retry.",
		}
	default:
		return &APIError{
			Kind:    KindUnknown,
			Code:    status,
			Message: fmt.Sprintf("API error (%d) from model %s.", status, model),
		}
	}
}

// retryable reports whether the error is worth another attempt. Only
// timeouts, transport failures, and rate limiting qualify; every other
// rejection is final.
func retryable(e *APIError) bool {
	switch e.Kind {
	case KindTimeout, KindTransportError, KindRateLimited:
		return true
	default:
		return false
	}
}
