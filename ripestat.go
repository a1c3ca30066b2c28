// Package ripestat provides a typed client for the RIPEstat Data API.
//
// Each supported data call has one method on Client returning an
// immutable, fully decoded result. Calls are synchronous: one blocking
// HTTP round trip each, no retries and no caching, so callers keep full
// control over retry and backoff policy. Failures surface as one of
// three error types: ValidationError before any request is sent,
// RequestError for transport-level failures, and ResponseError when the
// service answers with an error envelope or an undecodable payload.
package ripestat

import (
	"net/http"
	"strings"
	"time"
)

const (
	// BaseURL is the RIPEstat Data API base URL.
	BaseURL = "https://stat.ripe.net/data"

	// DefaultTimeout for HTTP requests.
	DefaultTimeout = 30 * time.Second
)

// userAgent identifies this client on the wire.
const userAgent = "ripestat-go/1.0"

// Client is a session against the RIPEstat Data API. Two optional
// session parameters ride along on every request: a sourceapp tag
// identifying the calling application, and the data_overload_limit
// override.
type Client struct {
	httpClient        *http.Client
	baseURL           string
	sourceApp         string
	dataOverloadLimit string
}

// Option configures a Client.
type Option func(*Client) error

// WithSourceApp sets the sourceapp tag sent with every request. RIPE
// asks regular users of the API to identify their application this way.
func WithSourceApp(name string) Option {
	return func(c *Client) error {
		c.sourceApp = name
		return nil
	}
}

// WithDataOverloadLimit sets the data_overload_limit session parameter.
// The service throttles heavy responses unless told to ignore the soft
// limit, so the only accepted values are "ignore" and the empty string.
func WithDataOverloadLimit(v string) Option {
	return func(c *Client) error {
		if v != "" && v != "ignore" {
			return validationErrorf("data_overload_limit", `%q: must be "ignore" or empty`, v)
		}
		c.dataOverloadLimit = v
		return nil
	}
}

// WithTimeout replaces the default HTTP timeout.
func WithTimeout(d time.Duration) Option {
	return func(c *Client) error {
		c.httpClient.Timeout = d
		return nil
	}
}

// WithHTTPClient swaps in a caller-owned http.Client. Overrides any
// earlier WithTimeout.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) error {
		c.httpClient = hc
		return nil
	}
}

// WithBaseURL points the client at a different API root, e.g. a local
// fixture server in tests.
func WithBaseURL(u string) Option {
	return func(c *Client) error {
		c.baseURL = strings.TrimRight(u, "/")
		return nil
	}
}

// NewClient creates a client for the RIPEstat Data API. It fails only
// when an option carries an invalid value.
func NewClient(opts ...Option) (*Client, error) {
	c := &Client{
		httpClient: &http.Client{Timeout: DefaultTimeout},
		baseURL:    BaseURL,
	}
	for _, opt := range opts {
		if err := opt(c); err != nil {
			return nil, err
		}
	}
	return c, nil
}
