package helix

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/shurizzle/twitch-api2/auth"
)

// Sentinel errors matched with errors.Is against the typed errors below.
var (
	// ErrMissingScope indicates the token lacks a scope the endpoint requires
	ErrMissingScope = errors.New("missing required scope")
	// ErrInvalidURI indicates the request URI could not be built
	ErrInvalidURI = errors.New("invalid request uri")
	// ErrBody indicates the request body could not be built
	ErrBody = errors.New("invalid request body")
)

// ErrorKind classifies a failed call. Exactly one kind applies to an error
// returned by the dispatcher.
type ErrorKind int

const (
	KindUnknown ErrorKind = iota
	// KindScope: the token lacks required scopes. No request was sent.
	KindScope
	// KindCreateRequest: the URI, body or credential could not be built. No request was sent.
	KindCreateRequest
	// KindTransport: the request could not be completed (connection, TLS, timeout, cancellation).
	KindTransport
	// KindDecode: success status, but the body does not match the declared shape.
	KindDecode
	// KindInvalidResponse: success status and valid JSON, but required content is missing.
	KindInvalidResponse
	// KindStatus: Helix answered with a non-success status.
	KindStatus
)

// String returns the kind name
func (k ErrorKind) String() string {
	switch k {
	case KindScope:
		return "scope"
	case KindCreateRequest:
		return "create_request"
	case KindTransport:
		return "transport"
	case KindDecode:
		return "decode"
	case KindInvalidResponse:
		return "invalid_response"
	case KindStatus:
		return "status"
	default:
		return "unknown"
	}
}

// KindOf returns the kind of an error returned by the dispatcher.
func KindOf(err error) ErrorKind {
	var (
		scopeErr   *ScopeError
		createErr  *CreateRequestError
		transErr   *TransportError
		decodeErr  *DecodeError
		invalidErr *InvalidResponseError
		statusErr  *StatusError
	)
	switch {
	case err == nil:
		return KindUnknown
	case errors.As(err, &scopeErr):
		return KindScope
	case errors.As(err, &createErr):
		return KindCreateRequest
	case errors.As(err, &transErr):
		return KindTransport
	case errors.As(err, &decodeErr):
		return KindDecode
	case errors.As(err, &invalidErr):
		return KindInvalidResponse
	case errors.As(err, &statusErr):
		return KindStatus
	default:
		return KindUnknown
	}
}

// IsRetryable reports whether the error is a transport failure. It is the
// only class a caller may reasonably retry; the client never retries. A
// token source that fails on the network is a transport failure too; a
// rejected credential is a create-request failure and is not retryable.
func IsRetryable(err error) bool {
	return KindOf(err) == KindTransport
}

// ScopeError is returned before any request is made when the token does
// not carry every scope the endpoint requires.
type ScopeError struct {
	Path    string
	Missing []auth.Scope
}

func (e *ScopeError) Error() string {
	names := make([]string, len(e.Missing))
	for i, s := range e.Missing {
		names[i] = string(s)
	}
	return fmt.Sprintf("token is missing required scopes for %s: %s", e.Path, strings.Join(names, ", "))
}

func (e *ScopeError) Unwrap() error { return ErrMissingScope }

// InvalidURIError is returned when a request cannot be rendered to a valid URI
type InvalidURIError struct {
	Path   string
	Reason string
	Err    error
}

func (e *InvalidURIError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("invalid uri for %s: %s: %v", e.Path, e.Reason, e.Err)
	}
	return fmt.Sprintf("invalid uri for %s: %s", e.Path, e.Reason)
}

func (e *InvalidURIError) Unwrap() []error {
	if e.Err != nil {
		return []error{ErrInvalidURI, e.Err}
	}
	return []error{ErrInvalidURI}
}

// BodyError is returned when a request body cannot be encoded
type BodyError struct {
	Reason string
	Err    error
}

func (e *BodyError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("could not create body: %s: %v", e.Reason, e.Err)
	}
	return fmt.Sprintf("could not create body: %s", e.Reason)
}

func (e *BodyError) Unwrap() []error {
	if e.Err != nil {
		return []error{ErrBody, e.Err}
	}
	return []error{ErrBody}
}

// CreateRequestError wraps a failure that happened while building the
// request. No network I/O has taken place.
type CreateRequestError struct {
	Method string
	Err    error
}

func (e *CreateRequestError) Error() string {
	return fmt.Sprintf("could not create %s request: %v", e.Method, e.Err)
}

func (e *CreateRequestError) Unwrap() error { return e.Err }

// TransportError wraps a failure of the HTTP transport, including
// cancellation and deadlines carried by the request context.
type TransportError struct {
	Method string
	URI    string
	Err    error
}

func (e *TransportError) Error() string {
	return fmt.Sprintf("%s %s: request failed: %v", e.Method, e.URI, e.Err)
}

func (e *TransportError) Unwrap() error { return e.Err }

// Timeout reports whether the failure was a deadline or timeout
func (e *TransportError) Timeout() bool {
	if errors.Is(e.Err, context.DeadlineExceeded) {
		return true
	}
	var t interface{ Timeout() bool }
	return errors.As(e.Err, &t) && t.Timeout()
}

// DecodeError is returned when a success response does not match the
// declared response shape. The raw status and body are kept for diagnosis.
type DecodeError struct {
	Method string
	URI    string
	Status int
	Body   []byte
	Err    error
}

func (e *DecodeError) Error() string {
	return fmt.Sprintf("could not parse response of %s %s (status %d): %v", e.Method, e.URI, e.Status, e.Err)
}

func (e *DecodeError) Unwrap() error { return e.Err }

// InvalidResponseError is returned when a success response is well formed
// but lacks content the endpoint requires.
type InvalidResponseError struct {
	Method string
	URI    string
	Status int
	Body   []byte
	Reason string
}

func (e *InvalidResponseError) Error() string {
	return fmt.Sprintf("invalid response from %s %s (status %d): %s", e.Method, e.URI, e.Status, e.Reason)
}

// StatusError is returned when Helix answers with a non-success status.
type StatusError struct {
	Method string
	URI    string
	// Status is the HTTP status code.
	Status int
	// Error is the short error name Helix reports, e.g. "Unauthorized".
	ErrorName string
	// Message is the server message, e.g. "Invalid OAuth token".
	Message   string
	Body      []byte
	RateLimit RateLimit
}

func (e *StatusError) Error() string {
	msg := e.Message
	if msg == "" {
		msg = http.StatusText(e.Status)
	}
	return fmt.Sprintf("helix returned error %d: %s when calling `%s %s`", e.Status, msg, e.Method, e.URI)
}

// IsNotFound checks if the error indicates a not found response
func (e *StatusError) IsNotFound() bool {
	return e.Status == http.StatusNotFound
}

// IsUnauthorized checks if the error indicates an authentication failure
func (e *StatusError) IsUnauthorized() bool {
	return e.Status == http.StatusUnauthorized || e.Status == http.StatusForbidden
}

// IsRateLimited checks if the error indicates the rate limit was exceeded
func (e *StatusError) IsRateLimited() bool {
	return e.Status == http.StatusTooManyRequests
}
