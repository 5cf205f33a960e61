package rbxcloud

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"
)

// ErrorKind classifies a failure. The set is closed: every error produced by
// the client core carries exactly one of these kinds.
type ErrorKind string

const (
	// ErrorKindConfig is an invalid or missing credential at construction
	// time. Fatal; no request is attempted.
	ErrorKindConfig ErrorKind = "config"

	// ErrorKindInvalidArgument is a caller-supplied parameter failing local
	// validation. No request is attempted.
	ErrorKindInvalidArgument ErrorKind = "invalid_argument"

	// ErrorKindNetwork is an outbound call that could not complete
	// (connectivity, TLS, timeout). The client performs no automatic retry.
	ErrorKindNetwork ErrorKind = "network"

	// ErrorKindUpstream is a non-2xx response from the remote service.
	ErrorKindUpstream ErrorKind = "upstream"

	// ErrorKindDecode is a 2xx response body that could not be parsed into
	// the expected shape. A data-contract violation, not a user error.
	ErrorKindDecode ErrorKind = "decode"
)

// Error is the single error type surfaced by the client core. It carries the
// request path and, for upstream failures, the status code and best-effort
// message so the CLI can log it and pick a deterministic exit code.
type Error struct {
	Kind       ErrorKind
	StatusCode int
	Path       string
	Message    string
	err        error
}

// Error implements the error interface.
func (e *Error) Error() string {
	switch e.Kind {
	case ErrorKindUpstream:
		return fmt.Sprintf("upstream error %d on %s: %s", e.StatusCode, e.Path, e.Message)
	case ErrorKindNetwork:
		return fmt.Sprintf("network error on %s: %v", e.Path, e.err)
	case ErrorKindDecode:
		return fmt.Sprintf("decoding response from %s: %v", e.Path, e.err)
	default:
		return string(e.Kind) + " error: " + e.Message
	}
}

// Unwrap returns the underlying cause, if any.
func (e *Error) Unwrap() error {
	return e.err
}

// NewConfigError returns a construction-time configuration error.
func NewConfigError(message string) *Error {
	return &Error{Kind: ErrorKindConfig, Message: message}
}

// NewInvalidArgumentError returns a local validation error. No request was
// issued.
func NewInvalidArgumentError(message string) *Error {
	return &Error{Kind: ErrorKindInvalidArgument, Message: message}
}

// NewNetworkError wraps a transport-level failure for the given path.
func NewNetworkError(path string, err error) *Error {
	return &Error{Kind: ErrorKindNetwork, Path: path, Message: err.Error(), err: err}
}

// NewUpstreamError wraps a non-2xx response.
func NewUpstreamError(path string, status int, message string) *Error {
	return &Error{Kind: ErrorKindUpstream, Path: path, StatusCode: status, Message: message}
}

// NewDecodeError wraps a body that failed to decode into the expected shape.
func NewDecodeError(path string, err error) *Error {
	return &Error{Kind: ErrorKindDecode, Path: path, Message: err.Error(), err: err}
}

// kindOf extracts the kind from any error produced by the core.
func kindOf(err error) (ErrorKind, bool) {
	apiErr := &Error{}
	if errors.As(err, &apiErr) {
		return apiErr.Kind, true
	}

	return "", false
}

// IsConfig checks if the error is a configuration error.
func IsConfig(err error) bool {
	kind, ok := kindOf(err)

	return ok && kind == ErrorKindConfig
}

// IsInvalidArgument checks if the error is a local validation error.
func IsInvalidArgument(err error) bool {
	kind, ok := kindOf(err)

	return ok && kind == ErrorKindInvalidArgument
}

// IsNetwork checks if the error is a transport-level failure.
func IsNetwork(err error) bool {
	kind, ok := kindOf(err)

	return ok && kind == ErrorKindNetwork
}

// IsUpstream checks if the error is a non-2xx response from the remote.
func IsUpstream(err error) bool {
	kind, ok := kindOf(err)

	return ok && kind == ErrorKindUpstream
}

// IsDecode checks if the error is a response decoding failure.
func IsDecode(err error) bool {
	kind, ok := kindOf(err)

	return ok && kind == ErrorKindDecode
}

// StatusCode returns the upstream HTTP status carried by the error, or zero.
func StatusCode(err error) int {
	apiErr := &Error{}
	if errors.As(err, &apiErr) {
		return apiErr.StatusCode
	}

	return 0
}

// IsNotFound checks if the error is an upstream 404.
func IsNotFound(err error) bool {
	return IsUpstream(err) && StatusCode(err) == http.StatusNotFound
}

// IsUnauthorized checks if the error is an upstream 401.
func IsUnauthorized(err error) bool {
	return IsUpstream(err) && StatusCode(err) == http.StatusUnauthorized
}

// IsForbidden checks if the error is an upstream 403.
func IsForbidden(err error) bool {
	return IsUpstream(err) && StatusCode(err) == http.StatusForbidden
}

// maxRawMessageLen bounds the raw body carried into an upstream error when
// the body is not a recognizable error document.
const maxRawMessageLen = 512

// UpstreamMessage extracts a human-readable message from a non-2xx response
// body. It understands the Open Cloud {"message": ...} document and the
// legacy {"errors": [{"message"|"detail": ...}]} document; anything else is
// returned raw, truncated. It never fails: an empty or unparseable body
// yields a usable string.
func UpstreamMessage(body []byte) string {
	trimmed := strings.TrimSpace(string(body))
	if trimmed == "" {
		return "no response body"
	}

	var doc struct {
		Message string `json:"message"`
		Errors  []struct {
			Message string `json:"message"`
			Detail  string `json:"detail"`
		} `json:"errors"`
	}

	err := json.Unmarshal(body, &doc)
	if err == nil {
		if doc.Message != "" {
			return doc.Message
		}

		for _, e := range doc.Errors {
			if e.Message != "" {
				return e.Message
			}

			if e.Detail != "" {
				return e.Detail
			}
		}
	}

	if len(trimmed) > maxRawMessageLen {
		trimmed = trimmed[:maxRawMessageLen]
	}

	return trimmed
}
