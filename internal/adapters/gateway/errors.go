package gateway

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net"
	"net/http"
	"strings"

	"github.com/bnema/klinik-cli/internal/domain"
)

// Kind classifies a failed call for retry and session handling.
type Kind string

const (
	KindUnauthorized       Kind = "unauthorized"
	KindTimeout            Kind = "timeout"
	KindNetworkUnreachable Kind = "network_unreachable"
	KindServerError        Kind = "server_error"
	KindClientError        Kind = "client_error"
	KindUnknown            Kind = "unknown"
)

func (k Kind) String() string {
	return string(k)
}

// Retryable reports whether a call failing with this kind may be resubmitted.
func (k Kind) Retryable() bool {
	switch k {
	case KindNetworkUnreachable, KindTimeout, KindServerError:
		return true
	default:
		return false
	}
}

const maxErrorBodySnippet = 256

// Error is returned for every failed call. Body holds the raw response body
// when the server answered.
type Error struct {
	Kind       Kind
	Method     string
	Path       string
	StatusCode int
	Body       []byte
	Err        error
}

func (e *Error) Error() string {
	var b strings.Builder
	fmt.Fprintf(&b, "%s %s: %s", e.Method, e.Path, e.Kind)
	if e.StatusCode != 0 {
		fmt.Fprintf(&b, " (status %d)", e.StatusCode)
	}
	if msg := e.Message(); msg != "" {
		b.WriteString(": ")
		b.WriteString(msg)
	}
	return b.String()
}

func (e *Error) Unwrap() error {
	return e.Err
}

// Is lets callers test an unauthorized failure against domain.ErrSessionExpired.
func (e *Error) Is(target error) bool {
	return target == domain.ErrSessionExpired && e.Kind == KindUnauthorized
}

func (e *Error) Retryable() bool {
	return e.Kind.Retryable()
}

// Message extracts a human readable message from the response body. The API
// answers either with plain text or with a JSON object carrying "message" or
// "error".
func (e *Error) Message() string {
	body := strings.TrimSpace(string(e.Body))
	if body == "" {
		if e.Err != nil {
			return e.Err.Error()
		}
		return ""
	}

	var payload struct {
		Message string `json:"message"`
		Error   string `json:"error"`
	}
	if err := json.Unmarshal([]byte(body), &payload); err == nil {
		if payload.Message != "" {
			return payload.Message
		}
		if payload.Error != "" {
			return payload.Error
		}
	}

	if len(body) > maxErrorBodySnippet {
		return body[:maxErrorBodySnippet] + "..."
	}
	return body
}

// KindOf returns the kind of a gateway error anywhere in err's chain, or
// KindUnknown.
func KindOf(err error) Kind {
	var apiErr *Error
	if errors.As(err, &apiErr) {
		return apiErr.Kind
	}
	return KindUnknown
}

// StatusOf returns the HTTP status of a gateway error, or 0.
func StatusOf(err error) int {
	var apiErr *Error
	if errors.As(err, &apiErr) {
		return apiErr.StatusCode
	}
	return 0
}

func classifyStatus(statusCode int) Kind {
	switch {
	case statusCode == http.StatusUnauthorized:
		return KindUnauthorized
	case statusCode >= 500:
		return KindServerError
	case statusCode >= 400:
		return KindClientError
	default:
		return KindUnknown
	}
}

func classifyTransportError(err error) Kind {
	if errors.Is(err, context.Canceled) {
		return KindUnknown
	}
	if errors.Is(err, context.DeadlineExceeded) {
		return KindTimeout
	}

	var netErr net.Error
	if errors.As(err, &netErr) {
		if netErr.Timeout() {
			return KindTimeout
		}
		return KindNetworkUnreachable
	}

	return KindUnknown
}
