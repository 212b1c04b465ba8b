// Package rod provides a headless Chrome implementation of foerder.Fetcher
// for when the funding database turns away plain HTTP clients.
package rod

import (
	"context"
	"math/rand/v2"
	"sync/atomic"
	"time"

	"github.com/Lechtr/foerder"
	"github.com/go-rod/rod/lib/proto"
)

// DefaultFetchTimeout bounds a single page load.
const DefaultFetchTimeout = 30 * time.Second

// Ensure Fetcher implements foerder.Fetcher at compile time.
var _ foerder.Fetcher = (*Fetcher)(nil)

// Fetcher retrieves rendered HTML using Chrome browser automation. Each
// fetch opens a fresh tab with a User-Agent drawn from the pool.
type Fetcher struct {
	manager    *BrowserManager
	timeout    time.Duration
	userAgents []string
	closed     atomic.Bool
}

// Option configures a Fetcher.
type Option func(*Fetcher)

// WithFetchTimeout sets the per-page load timeout.
func WithFetchTimeout(d time.Duration) Option {
	return func(f *Fetcher) {
		f.timeout = d
	}
}

// WithUserAgents replaces the User-Agent pool.
func WithUserAgents(uas ...string) Option {
	return func(f *Fetcher) {
		f.userAgents = uas
	}
}

// WithRecycleAfter sets how many pages the browser serves before it is
// restarted.
func WithRecycleAfter(n int64) Option {
	return func(f *Fetcher) {
		f.manager.maxPages = n
	}
}

// NewFetcher launches a headless browser. Close must be called when the
// Fetcher is no longer needed.
func NewFetcher(opts ...Option) (*Fetcher, error) {
	f := &Fetcher{
		manager:    newBrowserManager(),
		timeout:    DefaultFetchTimeout,
		userAgents: foerder.UserAgents,
	}
	for _, opt := range opts {
		opt(f)
	}
	if err := f.manager.start(); err != nil {
		return nil, err
	}
	return f, nil
}

// Fetch navigates to url and returns the rendered HTML. A document
// response other than 200 is reported as *foerder.StatusError.
func (f *Fetcher) Fetch(ctx context.Context, url string) (string, error) {
	if f.closed.Load() {
		return "", foerder.Errorf(foerder.EINVALID, "fetcher is closed")
	}
	if err := ctx.Err(); err != nil {
		return "", err
	}

	ctx, cancel := context.WithTimeout(ctx, f.timeout)
	defer cancel()

	page, err := f.manager.Browser().Page(proto.TargetCreateTarget{})
	if err != nil {
		return "", err
	}
	defer page.Close()
	defer f.manager.IncrementPageCount()

	page = page.Context(ctx)

	if len(f.userAgents) > 0 {
		ua := f.userAgents[rand.IntN(len(f.userAgents))]
		if err := page.SetUserAgent(&proto.NetworkSetUserAgentOverride{UserAgent: ua, AcceptLanguage: "de-DE,de;q=0.9"}); err != nil {
			return "", err
		}
	}

	status := make(chan int, 1)
	wait := page.EachEvent(func(e *proto.NetworkResponseReceived) bool {
		if e.Type != proto.NetworkResourceTypeDocument {
			return false
		}
		status <- int(e.Response.Status)
		return true
	})
	go wait()

	if err := page.Navigate(url); err != nil {
		return "", contextErr(ctx, err)
	}
	if err := page.WaitLoad(); err != nil {
		return "", contextErr(ctx, err)
	}

	select {
	case code := <-status:
		if code != 200 {
			return "", &foerder.StatusError{URL: url, StatusCode: code}
		}
	case <-ctx.Done():
		return "", ctx.Err()
	}

	return page.HTML()
}

// Close releases browser resources. Close is safe to call multiple times.
func (f *Fetcher) Close() error {
	if !f.closed.CompareAndSwap(false, true) {
		return nil
	}
	return f.manager.Close()
}

// LauncherPID returns the process ID of the browser launcher.
func (f *Fetcher) LauncherPID() int {
	return f.manager.LauncherPID()
}

// contextErr prefers the context's error so callers can match
// context.DeadlineExceeded and context.Canceled.
func contextErr(ctx context.Context, err error) error {
	if ctxErr := ctx.Err(); ctxErr != nil {
		return ctxErr
	}
	return err
}
