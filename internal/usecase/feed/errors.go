package feed

import (
	"errors"
	"fmt"
	"strings"
)

// ErrNoSources indicates that the aggregator was constructed without any
// registered source clients.
var ErrNoSources = errors.New("no sources registered")

// TransportError indicates that a source client failed before the provider
// produced a meaningful response: network failure, timeout, or a response
// body that could not be decoded.
type TransportError struct {
	Source string
	Err    error
}

// Error returns a formatted error message for the transport error.
func (e *TransportError) Error() string {
	return fmt.Sprintf("source %q: transport error: %v", e.Source, e.Err)
}

// Unwrap returns the underlying error, implementing errors.Unwrap.
func (e *TransportError) Unwrap() error { return e.Err }

// APIError indicates that the transport succeeded but the provider reported
// a failure (bad credential, quota exceeded, invalid query). Message holds
// the provider-supplied text when the error body was parseable, otherwise a
// generic status-code message.
type APIError struct {
	Source     string
	StatusCode int
	Message    string
}

// Error returns a formatted error message for the API error.
func (e *APIError) Error() string {
	return fmt.Sprintf("source %q: api error (status %d): %s", e.Source, e.StatusCode, e.Message)
}

// credentialMarkers are substrings of provider error messages that indicate
// a missing or invalid credential.
var credentialMarkers = []string{"api key", "apikey", "token", "unauthorized", "credential"}

// IsCredentialError reports whether err (or any error it wraps) is an
// APIError caused by a missing or invalid credential. The HTTP boundary
// uses this to show an actionable message instead of a generic failure.
func IsCredentialError(err error) bool {
	var apiErr *APIError
	if !errors.As(err, &apiErr) {
		return false
	}
	if apiErr.StatusCode == 401 || apiErr.StatusCode == 403 {
		return true
	}
	msg := strings.ToLower(apiErr.Message)
	for _, marker := range credentialMarkers {
		if strings.Contains(msg, marker) {
			return true
		}
	}
	return false
}
