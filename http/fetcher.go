// Package http provides an HTTP-based implementation of foerder.Fetcher.
// Each request presents a browser User-Agent picked at random from a pool.
package http

import (
	"context"
	"io"
	"math/rand/v2"
	"net/http"
	"time"

	"github.com/Lechtr/foerder"
)

// DefaultFetchTimeout is the default timeout for HTTP requests.
const DefaultFetchTimeout = 30 * time.Second

// Ensure Fetcher implements foerder.Fetcher at compile time.
var _ foerder.Fetcher = (*Fetcher)(nil)

// Fetcher retrieves HTML content from URLs using plain HTTP requests.
// It performs exactly one attempt per call; retries are the caller's job.
type Fetcher struct {
	client     *http.Client
	timeout    time.Duration
	userAgents []string
	pick       func(n int) int
}

// Option configures a Fetcher.
type Option func(*Fetcher)

// WithTimeout sets the timeout for HTTP requests.
// Defaults to DefaultFetchTimeout (30s) if not specified.
func WithTimeout(d time.Duration) Option {
	return func(f *Fetcher) {
		f.timeout = d
	}
}

// WithUserAgents replaces the User-Agent pool.
// Defaults to foerder.UserAgents.
func WithUserAgents(agents ...string) Option {
	return func(f *Fetcher) {
		f.userAgents = agents
	}
}

// WithClient sets the underlying HTTP client. The client's own timeout
// is left untouched.
func WithClient(c *http.Client) Option {
	return func(f *Fetcher) {
		f.client = c
	}
}

// NewFetcher creates a new HTTP-based Fetcher.
func NewFetcher(opts ...Option) *Fetcher {
	f := &Fetcher{
		timeout:    DefaultFetchTimeout,
		userAgents: foerder.UserAgents,
		pick:       rand.IntN,
	}
	for _, opt := range opts {
		opt(f)
	}

	if f.client == nil {
		f.client = &http.Client{
			Timeout: f.timeout,
		}
	}

	return f
}

// Fetch retrieves the HTML content from the given URL.
// Non-200 responses are returned as *foerder.StatusError.
func (f *Fetcher) Fetch(ctx context.Context, url string) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return "", foerder.Errorf(foerder.EINVALID, "invalid URL %q: %v", url, err)
	}
	if ua := f.userAgent(); ua != "" {
		req.Header.Set("User-Agent", ua)
	}
	req.Header.Set("Accept", "text/html,application/xhtml+xml")
	req.Header.Set("Accept-Language", "de-DE,de;q=0.9,en;q=0.5")

	resp, err := f.client.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		_, _ = io.Copy(io.Discard, resp.Body)
		return "", &foerder.StatusError{URL: url, StatusCode: resp.StatusCode}
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", err
	}

	return string(body), nil
}

func (f *Fetcher) userAgent() string {
	if len(f.userAgents) == 0 {
		return ""
	}
	return f.userAgents[f.pick(len(f.userAgents))]
}

// Close releases resources. For HTTP fetcher this is a no-op since
// http.Client doesn't require explicit cleanup.
func (f *Fetcher) Close() error {
	return nil
}
