package llm

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
)

// Common errors returned by provider adapters.
var (
	// ErrInvalidResponse is returned when the provider answered but the reply
	// has no choices, no candidates, or an empty message.
	ErrInvalidResponse = errors.New("invalid response from language model")

	// ErrInvalidConfig is returned when provider settings are unusable.
	ErrInvalidConfig = errors.New("invalid language model configuration")

	// ErrUnknownProvider is returned by a Factory for an unsupported provider name.
	ErrUnknownProvider = errors.New("unknown language model provider")
)

// Kind classifies a provider failure for retry decisions.
type Kind int

// Failure kinds.
const (
	KindOther Kind = iota
	KindAuthentication
	KindRateLimit
	KindTransient
)

// String returns a short name for logging.
func (k Kind) String() string {
	switch k {
	case KindAuthentication:
		return "authentication"
	case KindRateLimit:
		return "rate_limit"
	case KindTransient:
		return "transient"
	default:
		return "other"
	}
}

// ProviderError is a failed provider call with its classified kind.
type ProviderError struct {
	Kind       Kind
	StatusCode int
	Message    string
	Err        error
}

// Error implements the error interface.
func (e *ProviderError) Error() string {
	msg := e.Message
	if msg == "" && e.Err != nil {
		msg = e.Err.Error()
	}
	if e.StatusCode != 0 {
		return fmt.Sprintf("provider %s error (status %d): %s", e.Kind, e.StatusCode, msg)
	}
	return fmt.Sprintf("provider %s error: %s", e.Kind, msg)
}

// Unwrap returns the underlying error.
func (e *ProviderError) Unwrap() error {
	return e.Err
}

// KindForStatus maps an HTTP status code to a failure kind.
func KindForStatus(status int) Kind {
	switch {
	case status == http.StatusUnauthorized || status == http.StatusForbidden:
		return KindAuthentication
	case status == http.StatusTooManyRequests:
		return KindRateLimit
	case status == http.StatusRequestTimeout || status >= 500:
		return KindTransient
	default:
		return KindOther
	}
}

// NewStatusError builds a ProviderError from a non-2xx HTTP response.
func NewStatusError(status int, message string) *ProviderError {
	return &ProviderError{Kind: KindForStatus(status), StatusCode: status, Message: message}
}

// NewTransportError wraps an error raised before any response arrived.
func NewTransportError(err error) *ProviderError {
	return &ProviderError{Kind: KindOf(err), Err: err}
}

// KindOf classifies err. ProviderErrors report their own kind; network
// failures, timeouts and unexpected EOFs are transient; everything else is
// KindOther.
func KindOf(err error) Kind {
	if err == nil {
		return KindOther
	}

	var pErr *ProviderError
	if errors.As(err, &pErr) {
		return pErr.Kind
	}

	if errors.Is(err, context.DeadlineExceeded) ||
		errors.Is(err, io.EOF) || errors.Is(err, io.ErrUnexpectedEOF) {
		return KindTransient
	}

	var netErr net.Error
	if errors.As(err, &netErr) {
		return KindTransient
	}

	return KindOther
}
