package integrations

import (
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/matzehuels/catalogprobe/pkg/buildinfo"
)

// DefaultTimeout is used when a non-positive timeout is passed to [NewHTTPClient].
const DefaultTimeout = 10 * time.Second

// maxRedirects is the number of redirects followed before a request fails.
const maxRedirects = 30

var (
	// ErrNotFound is returned when the requested resource does not exist (HTTP 404).
	ErrNotFound = errors.New("resource not found")

	// ErrNetwork is returned for HTTP failures (timeouts, connection errors, non-2xx responses).
	ErrNetwork = errors.New("network error")

	// ErrDecode is returned when a response body is not the expected JSON.
	ErrDecode = errors.New("invalid response body")

	// ErrTooManyRedirects is returned when a request is redirected more than thirty times.
	ErrTooManyRedirects = errors.New("too many redirects")
)

// NewHTTPClient creates an HTTP client with the given request timeout.
// Redirects are followed up to thirty hops; the next one fails the request
// with [ErrTooManyRedirects].
func NewHTTPClient(timeout time.Duration) *http.Client {
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	return &http.Client{
		Timeout: timeout,
		CheckRedirect: func(req *http.Request, via []*http.Request) error {
			if len(via) > maxRedirects {
				return ErrTooManyRedirects
			}
			return nil
		},
	}
}

// DefaultHeaders returns the headers sent with every catalog request.
func DefaultHeaders() map[string]string {
	return map[string]string{
		"Accept":     "application/json",
		"User-Agent": buildinfo.UserAgent(),
	}
}

// JoinURL appends id to base with exactly one slash between them,
// whether or not base ends with a slash or id starts with one.
func JoinURL(base, id string) string {
	return strings.TrimRight(base, "/") + "/" + strings.TrimLeft(id, "/")
}
