package provider

import (
	"fmt"
)

// ErrorCode classifies a provider failure.
type ErrorCode string

const (
	ErrorCodeAuth           ErrorCode = "authentication_failed"
	ErrorCodeRateLimit      ErrorCode = "rate_limit"
	ErrorCodeInvalidRequest ErrorCode = "invalid_request"
	ErrorCodeContentBlocked ErrorCode = "content_blocked"
	ErrorCodeUnavailable    ErrorCode = "service_unavailable"
	ErrorCodeNetwork        ErrorCode = "network_error"
)

// ProviderError wraps transport and API failures with classification.
// All per-turn provider failures are recoverable at the mediation loop
// boundary; only a missing credential at startup is fatal.
type ProviderError struct {
	Code       ErrorCode
	Message    string
	Underlying error
	Retryable  bool
}

// Error implements the error interface.
func (e *ProviderError) Error() string {
	if e.Underlying != nil {
		return fmt.Sprintf("%s: %s: %v", e.Code, e.Message, e.Underlying)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// Unwrap exposes the underlying error for errors.Is/As.
func (e *ProviderError) Unwrap() error {
	return e.Underlying
}
