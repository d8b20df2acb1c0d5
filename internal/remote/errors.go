package remote

import (
	"errors"
	"fmt"
	"net/http"
)

var (
	// ErrNotFound reports that the requested entity has no match upstream.
	ErrNotFound = errors.New("remote: not found")
	// ErrNoBaseURL is returned when the client has no upstream configured.
	ErrNoBaseURL = errors.New("remote: base url not configured")
)

// Failure classes reported by Classify.
const (
	FailureNetwork  = "network"
	FailureHTTP     = "http"
	FailureDecode   = "decode"
	FailureNotFound = "not_found"
	FailureUnknown  = "unknown"
)

// NetworkError means the request did not complete.
type NetworkError struct {
	URL string
	Err error
}

func (e *NetworkError) Error() string {
	return fmt.Sprintf("remote: request %s: %v", e.URL, e.Err)
}

func (e *NetworkError) Unwrap() error { return e.Err }

// HTTPError carries a non-success response status and a truncated body.
type HTTPError struct {
	URL    string
	Status int
	Body   string
}

func (e *HTTPError) Error() string {
	if e.Body == "" {
		return fmt.Sprintf("remote: %s returned %d", e.URL, e.Status)
	}
	return fmt.Sprintf("remote: %s returned %d: %s", e.URL, e.Status, e.Body)
}

// Is lets errors.Is(err, ErrNotFound) hold for 404 responses.
func (e *HTTPError) Is(target error) bool {
	return target == ErrNotFound && e.Status == http.StatusNotFound
}

// DecodeError means the payload was not well-formed.
type DecodeError struct {
	URL string
	Err error
}

func (e *DecodeError) Error() string {
	return fmt.Sprintf("remote: decode %s: %v", e.URL, e.Err)
}

func (e *DecodeError) Unwrap() error { return e.Err }

// Classify maps err onto the failure taxonomy for logs and metrics.
func Classify(err error) string {
	var (
		netErr    *NetworkError
		httpErr   *HTTPError
		decodeErr *DecodeError
	)
	switch {
	case err == nil:
		return ""
	case errors.Is(err, ErrNotFound):
		return FailureNotFound
	case errors.As(err, &httpErr):
		return FailureHTTP
	case errors.As(err, &decodeErr):
		return FailureDecode
	case errors.As(err, &netErr):
		return FailureNetwork
	default:
		return FailureUnknown
	}
}
