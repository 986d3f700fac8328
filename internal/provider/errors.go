// Package provider classifies failures returned by remote model APIs.
package provider

import (
	"errors"
	"fmt"
	"net/http"
	"strings"
)

var (
	// ErrRateLimited is returned when the provider throttled the request.
	ErrRateLimited = errors.New("rate limited")
	// ErrUnauthorized is returned when the provider rejected the credential.
	ErrUnauthorized = errors.New("unauthorized")
)

// rateLimitPatterns and unauthorizedPatterns are matched against lower-cased messages
// for providers that do not set a useful status code.
var (
	rateLimitPatterns = []string{
		"rate limit", "rate_limit", "ratelimit", "too many requests", "throttl",
		"quota", "tokens per", "requests per",
	}
	unauthorizedPatterns = []string{"api key", "api_key", "unauthorized", "authentication"}
)

// Error is a classified provider failure.
type Error struct {
	Provider   string
	StatusCode int
	Message    string
	// Kind is ErrRateLimited, ErrUnauthorized or nil.
	Kind  error
	Cause error
}

func (e *Error) Error() string {
	if e.StatusCode != 0 {
		return fmt.Sprintf("%s: status %d: %s", e.Provider, e.StatusCode, e.Message)
	}
	return fmt.Sprintf("%s: %s", e.Provider, e.Message)
}

// Unwrap exposes both the classification and the underlying SDK error.
func (e *Error) Unwrap() []error {
	errs := make([]error, 0, 2)
	if e.Kind != nil {
		errs = append(errs, e.Kind)
	}
	if e.Cause != nil {
		errs = append(errs, e.Cause)
	}
	return errs
}

// Classify wraps cause in an *Error, tagging it as rate-limited or unauthorized
// from the HTTP status code first and the message second.
func Classify(providerName string, statusCode int, message string, cause error) error {
	if message == "" && cause != nil {
		message = cause.Error()
	}
	e := &Error{
		Provider:   providerName,
		StatusCode: statusCode,
		Message:    message,
		Cause:      cause,
	}

	switch statusCode {
	case http.StatusTooManyRequests:
		e.Kind = ErrRateLimited
	case http.StatusUnauthorized:
		e.Kind = ErrUnauthorized
	default:
		lower := strings.ToLower(message)
		if containsAny(lower, rateLimitPatterns) {
			e.Kind = ErrRateLimited
		} else if containsAny(lower, unauthorizedPatterns) {
			e.Kind = ErrUnauthorized
		}
	}
	return e
}

// IsRateLimited reports whether err was classified as a rate-limit failure.
func IsRateLimited(err error) bool {
	return errors.Is(err, ErrRateLimited)
}

// IsUnauthorized reports whether err was classified as a credential failure.
func IsUnauthorized(err error) bool {
	return errors.Is(err, ErrUnauthorized)
}

func containsAny(s string, patterns []string) bool {
	for _, p := range patterns {
		if strings.Contains(s, p) {
			return true
		}
	}
	return false
}
