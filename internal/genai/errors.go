// Package genai talks to the external portrait generation service and the
// QR raster endpoint. All calls are context-aware and go through a shared
// retry policy that distinguishes transient faults, credential problems and
// exhausted quotas.
package genai

import (
	"errors"
	"fmt"
	"net"
	"net/http"
	"strings"
)

var (
	// ErrQuotaExhausted means the service returned 429. The caller should
	// stop and surface the condition; retrying cannot help.
	ErrQuotaExhausted = errors.New("generation quota exhausted")

	// ErrReauthorize means the credentials were rejected (401/403) or the
	// model endpoint disappeared (404). The client refreshes its key once
	// and retries; a second failure is terminal.
	ErrReauthorize = errors.New("reauthorization required")
)

// apiError carries the HTTP status and server message of a failed call.
type apiError struct {
	status int
	body   string
}

func (e *apiError) Error() string {
	return fmt.Sprintf("api error: status %d: %s", e.status, e.body)
}

// classifyStatus maps a response to the error taxonomy. A nil return means
// the status was 2xx.
func classifyStatus(status int, body string) error {
	switch {
	case status >= 200 && status < 300:
		return nil
	case status == http.StatusTooManyRequests:
		return ErrQuotaExhausted
	case status == http.StatusUnauthorized,
		status == http.StatusForbidden,
		status == http.StatusNotFound:
		return fmt.Errorf("%w: status %d", ErrReauthorize, status)
	}
	return &apiError{status: status, body: body}
}

// isTransient reports whether an error is worth retrying: 5xx responses,
// overload messages and network-level failures.
func isTransient(err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, ErrQuotaExhausted) || errors.Is(err, ErrReauthorize) {
		return false
	}

	var ae *apiError
	if errors.As(err, &ae) {
		if ae.status == http.StatusInternalServerError || ae.status == http.StatusServiceUnavailable {
			return true
		}
		return strings.Contains(strings.ToLower(ae.body), "overloaded")
	}

	var ne net.Error
	if errors.As(err, &ne) {
		return true
	}

	msg := strings.ToLower(err.Error())
	return strings.Contains(msg, "connection refused") ||
		strings.Contains(msg, "connection reset") ||
		strings.Contains(msg, "eof") ||
		strings.Contains(msg, "overloaded")
}
