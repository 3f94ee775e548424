package integrations

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/matzehuels/catalogprobe/pkg/errors"
	"github.com/matzehuels/catalogprobe/pkg/observability"
)

// Client provides shared HTTP functionality for catalog API clients.
// It applies default headers and maps every failure to an
// [errors.FetchError] carrying the requested URL.
type Client struct {
	http    *http.Client
	headers map[string]string
}

// NewClient creates a Client whose requests time out after timeout.
// Headers are applied to all requests made through this client.
// Pass nil for headers if no default headers are needed.
func NewClient(timeout time.Duration, headers map[string]string) *Client {
	return &Client{
		http:    NewHTTPClient(timeout),
		headers: headers,
	}
}

// WithHTTPClient returns a copy of c that sends requests through hc.
// The copy keeps c's default headers.
func (c *Client) WithHTTPClient(hc *http.Client) *Client {
	return &Client{http: hc, headers: c.headers}
}

// Get performs an HTTP GET request and JSON-decodes the response into v.
// A body that cannot be decoded into v, or that carries anything but
// whitespace after the first JSON value, is reported as a fetch failure.
// Failures are never retried.
func (c *Client) Get(ctx context.Context, url string, v any) error {
	body, err := c.doRequest(ctx, url)
	if err != nil {
		return err
	}
	defer body.Close()
	dec := json.NewDecoder(body)
	if err := dec.Decode(v); err != nil {
		return &errors.FetchError{URL: url, Status: http.StatusOK, Cause: fmt.Errorf("%w: %v", ErrDecode, err)}
	}
	if err := dec.Decode(&json.RawMessage{}); err != io.EOF {
		return &errors.FetchError{URL: url, Status: http.StatusOK, Cause: fmt.Errorf("%w: trailing data after JSON value", ErrDecode)}
	}
	return nil
}

// Check performs an HTTP GET request and reports whether it succeeded.
// The response body is drained and discarded.
func (c *Client) Check(ctx context.Context, url string) error {
	body, err := c.doRequest(ctx, url)
	if err != nil {
		return err
	}
	defer body.Close()
	_, _ = io.Copy(io.Discard, body)
	return nil
}

func (c *Client) doRequest(ctx context.Context, url string) (io.ReadCloser, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, &errors.FetchError{URL: url, Cause: err}
	}
	for k, v := range c.headers {
		req.Header.Set(k, v)
	}

	hooks := observability.HTTP()
	host, path := req.URL.Host, req.URL.Path
	hooks.OnRequest(ctx, req.Method, host, path)
	start := time.Now()

	resp, err := c.http.Do(req)
	if err != nil {
		hooks.OnError(ctx, req.Method, host, path, err)
		return nil, &errors.FetchError{URL: url, Cause: fmt.Errorf("%w: %w", ErrNetwork, err)}
	}
	hooks.OnResponse(ctx, req.Method, host, path, resp.StatusCode, time.Since(start))

	if err := checkStatus(resp.StatusCode); err != nil {
		resp.Body.Close()
		return nil, &errors.FetchError{URL: url, Status: resp.StatusCode, Cause: err}
	}
	return resp.Body, nil
}

func checkStatus(code int) error {
	switch {
	case code >= 200 && code < 300:
		return nil
	case code == http.StatusNotFound:
		return ErrNotFound
	default:
		return fmt.Errorf("%w: status %d", ErrNetwork, code)
	}
}
