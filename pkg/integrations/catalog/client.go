package catalog

import (
	"context"
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"
	"unicode"

	"github.com/itchyny/timefmt-go"

	"github.com/matzehuels/catalogprobe/pkg/errors"
	"github.com/matzehuels/catalogprobe/pkg/integrations"
)

// DefaultURLTimeout bounds each [Client.IsURLValid] request.
const DefaultURLTimeout = 30 * time.Second

// Document is a decoded catalog entry: JSON object keys mapped to their
// decoded values (string, float64, bool, nil, []any, map[string]any).
type Document map[string]any

// Client holds one catalog entry, fetched when the client is created.
//
// A Client is read-only after construction. It performs no I/O except in
// [Client.IsURLValid], and it is not synchronized for concurrent use.
type Client struct {
	baseURL    string
	catalogID  string
	url        string
	timeout    time.Duration
	urlTimeout time.Duration

	doc     Document
	checker *integrations.Client
	now     func() time.Time
}

type options struct {
	httpClient *http.Client
	urlTimeout time.Duration
	now        func() time.Time
	headers    map[string]string
}

// Option configures a [Client].
type Option func(*options)

// WithHTTPClient sends the catalog fetch and URL checks through hc instead of
// clients built from the configured timeouts.
func WithHTTPClient(hc *http.Client) Option {
	return func(o *options) { o.httpClient = hc }
}

// WithURLTimeout sets the timeout for [Client.IsURLValid] requests.
func WithURLTimeout(d time.Duration) Option {
	return func(o *options) { o.urlTimeout = d }
}

// WithClock replaces time.Now as the reference for [Client.AgeInMonths].
func WithClock(now func() time.Time) Option {
	return func(o *options) { o.now = now }
}

// WithHeaders adds headers to every request, overriding the defaults.
func WithHeaders(h map[string]string) Option {
	return func(o *options) { o.headers = h }
}

// NewClient fetches the entry catalogID from baseURL and returns a Client
// holding it.
//
// The entry URL is baseURL and catalogID joined by exactly one slash. The
// fetch is a single GET bounded by timeout (a non-positive timeout means
// [integrations.DefaultTimeout]).
//
// Returns:
//   - [errors.ErrCodeInvalidInput] if baseURL or catalogID is empty
//   - [*errors.FetchError] for any status, transport, redirect, or decode
//     failure, or when the body is not a JSON object
//
// On error the returned Client is nil.
func NewClient(ctx context.Context, baseURL, catalogID string, timeout time.Duration, opts ...Option) (*Client, error) {
	if baseURL == "" {
		return nil, errors.New(errors.ErrCodeInvalidInput, "base URL is required")
	}
	if catalogID == "" {
		return nil, errors.New(errors.ErrCodeInvalidInput, "catalog id is required")
	}

	o := options{urlTimeout: DefaultURLTimeout, now: time.Now}
	for _, opt := range opts {
		opt(&o)
	}

	headers := integrations.DefaultHeaders()
	for k, v := range o.headers {
		headers[k] = v
	}

	if timeout <= 0 {
		timeout = integrations.DefaultTimeout
	}
	if o.urlTimeout <= 0 {
		o.urlTimeout = DefaultURLTimeout
	}
	fetcher := integrations.NewClient(timeout, headers)
	checker := integrations.NewClient(o.urlTimeout, headers)
	if o.httpClient != nil {
		fetcher = fetcher.WithHTTPClient(o.httpClient)
		checker = checker.WithHTTPClient(o.httpClient)
	}

	c := &Client{
		baseURL:   baseURL,
		catalogID: catalogID,
		url:       integrations.JoinURL(baseURL, catalogID),
		timeout:    timeout,
		urlTimeout: o.urlTimeout,
		checker:    checker,
		now:        o.now,
	}

	var doc Document
	if err := fetcher.Get(ctx, c.url, &doc); err != nil {
		return nil, err
	}
	if doc == nil {
		return nil, &errors.FetchError{URL: c.url, Status: http.StatusOK, Cause: fmt.Errorf("%w: expected a JSON object", integrations.ErrDecode)}
	}
	c.doc = doc
	return c, nil
}

// URL returns the address the entry was fetched from.
func (c *Client) URL() string { return c.url }

// CatalogID returns the identifier of the held entry.
func (c *Client) CatalogID() string { return c.catalogID }

// Timeout returns the timeout used for the catalog fetch.
func (c *Client) Timeout() time.Duration { return c.timeout }

// URLTimeout returns the timeout used for each [Client.IsURLValid] request.
func (c *Client) URLTimeout() time.Duration { return c.urlTimeout }

// Document returns the fetched entry. Callers must not modify it.
func (c *Client) Document() Document { return c.doc }

// Lookup returns the raw value stored under key.
func (c *Client) Lookup(key string) (any, bool) {
	v, ok := c.doc[key]
	return v, ok
}

// HasKey reports whether key is present with a meaningful value.
// Present keys holding null, false, "", 0, [] or {} count as absent.
func (c *Client) HasKey(key string) bool {
	v, ok := c.doc[key]
	return ok && Truthy(v)
}

// IsURLValid treats the value under key as a URL and GETs it.
//
// It returns true when the URL answers with a 2xx status. Any transport
// failure, timeout, or non-2xx status is returned as a [*errors.FetchError]
// naming the URL; that is a probe failure, not a false result. A missing
// key is [errors.ErrCodeKeyNotFound] and a non-string value is
// [errors.ErrCodeInvalidValue].
func (c *Client) IsURLValid(ctx context.Context, key string) (bool, error) {
	raw, err := c.stringValue(key)
	if err != nil {
		return false, err
	}
	if err := c.checker.Check(ctx, raw); err != nil {
		return false, err
	}
	return true, nil
}

// AgeInMonths parses the date under key with the strftime pattern
// dateFormat (e.g. "%Y-%m-%d") and returns the number of calendar months
// between that date and now.
//
// Only year and month take part: a date on the 31st evaluated on the 1st of
// the following month is one month old.
func (c *Client) AgeInMonths(key, dateFormat string) (int, error) {
	raw, err := c.stringValue(key)
	if err != nil {
		return 0, err
	}
	d, err := timefmt.Parse(raw, dateFormat)
	if err != nil {
		return 0, errors.Wrap(errors.ErrCodeInvalidDate, err, "parse %q under key %q with format %q", raw, key, dateFormat)
	}
	if !sameNumbers(raw, timefmt.Format(d, dateFormat)) {
		return 0, errors.New(errors.ErrCodeInvalidDate, "%q under key %q is not a calendar date", raw, key)
	}
	return MonthsBetween(d, c.now()), nil
}

// sameNumbers reports whether the numeric fields of a and b match by value,
// so "2023-1-5" matches "2023-01-05" but "2023-02-30" does not match the
// normalized "2023-03-02". Field layouts that differ (e.g. "+01:00" against
// "+0100") cannot be compared and are accepted.
func sameNumbers(a, b string) bool {
	notDigit := func(r rune) bool { return !unicode.IsDigit(r) }
	as, bs := strings.FieldsFunc(a, notDigit), strings.FieldsFunc(b, notDigit)
	if len(as) != len(bs) {
		return true
	}
	for i := range as {
		x, errX := strconv.Atoi(as[i])
		y, errY := strconv.Atoi(bs[i])
		if errX != nil || errY != nil || x != y {
			return false
		}
	}
	return true
}

func (c *Client) stringValue(key string) (string, error) {
	v, ok := c.doc[key]
	if !ok {
		return "", errors.New(errors.ErrCodeKeyNotFound, "key %q not in catalog entry %s", key, c.catalogID)
	}
	s, ok := v.(string)
	if !ok {
		return "", errors.New(errors.ErrCodeInvalidValue, "value under key %q is %T, want string", key, v)
	}
	return s, nil
}

// MonthsBetween returns (to.Year-from.Year)*12 + to.Month-from.Month.
// Day of month and time of day are ignored.
func MonthsBetween(from, to time.Time) int {
	return (to.Year()-from.Year())*12 + int(to.Month()) - int(from.Month())
}

// Truthy reports whether a decoded JSON value is meaningful: a non-empty
// string, a non-zero number, true, or a non-empty array or object.
func Truthy(v any) bool {
	switch x := v.(type) {
	case nil:
		return false
	case bool:
		return x
	case string:
		return x != ""
	case float64:
		return x != 0
	case []any:
		return len(x) > 0
	case map[string]any:
		return len(x) > 0
	default:
		return true
	}
}
