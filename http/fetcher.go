// Package http provides net/http implementations of miplib.Fetcher and
// miplib.Downloader.
package http

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/fwojciec/miplib"
)

// DefaultFetchTimeout is the default timeout for page requests.
const DefaultFetchTimeout = 30 * time.Second

// DefaultUserAgent identifies the tool in HTTP requests.
const DefaultUserAgent = "miplib2017 (+https://github.com/fwojciec/miplib)"

// Ensure Fetcher implements miplib.Fetcher at compile time.
var _ miplib.Fetcher = (*Fetcher)(nil)

// Fetcher retrieves HTML content from URLs using HTTP requests.
type Fetcher struct {
	client    *http.Client
	userAgent string
}

// Option configures a Fetcher or a Downloader.
type Option func(*options)

type options struct {
	timeout   time.Duration
	userAgent string
	client    *http.Client
}

// WithTimeout sets the timeout for HTTP requests.
// A zero duration disables the timeout.
func WithTimeout(d time.Duration) Option {
	return func(o *options) {
		o.timeout = d
	}
}

// WithUserAgent sets the User-Agent header sent with every request.
func WithUserAgent(ua string) Option {
	return func(o *options) {
		o.userAgent = ua
	}
}

// WithClient replaces the underlying HTTP client. The timeout option is
// ignored when a client is supplied.
func WithClient(c *http.Client) Option {
	return func(o *options) {
		o.client = c
	}
}

func newOptions(defaultTimeout time.Duration, opts []Option) *options {
	o := &options{
		timeout:   defaultTimeout,
		userAgent: DefaultUserAgent,
	}
	for _, opt := range opts {
		opt(o)
	}
	if o.client == nil {
		o.client = &http.Client{Timeout: o.timeout}
	}
	return o
}

// NewFetcher creates a new HTTP-based Fetcher.
func NewFetcher(opts ...Option) *Fetcher {
	o := newOptions(DefaultFetchTimeout, opts)
	return &Fetcher{
		client:    o.client,
		userAgent: o.userAgent,
	}
}

// Fetch retrieves the HTML content from the given URL.
func (f *Fetcher) Fetch(ctx context.Context, url string) (string, error) {
	resp, err := get(ctx, f.client, url, f.userAgent)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", miplib.Errorf(miplib.ETRANSPORT, "reading %s: %v", url, err)
	}

	return string(body), nil
}

// Close releases resources. For HTTP fetcher this is a no-op since
// http.Client doesn't require explicit cleanup.
func (f *Fetcher) Close() error {
	return nil
}

// get performs a GET request and rejects non-2xx responses.
// The caller must close the body of a successful response.
func get(ctx context.Context, client *http.Client, url, userAgent string) (*http.Response, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, miplib.Errorf(miplib.EINVALID, "invalid request URL %q: %v", url, err)
	}
	if userAgent != "" {
		req.Header.Set("User-Agent", userAgent)
	}

	resp, err := client.Do(req)
	if err != nil {
		return nil, miplib.Errorf(miplib.ETRANSPORT, "request failed: %v", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		resp.Body.Close()
		return nil, miplib.Errorf(miplib.ETRANSPORT, "%s", statusMessage(resp.StatusCode, url))
	}

	return resp, nil
}

func statusMessage(code int, url string) string {
	return fmt.Sprintf("HTTP %d for %s", code, url)
}
