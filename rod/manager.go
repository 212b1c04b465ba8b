package rod

import (
	"fmt"
	"sync"
	"sync/atomic"

	"github.com/go-rod/rod"
	"github.com/go-rod/rod/lib/launcher"
)

// DefaultRecycleAfter is the default number of pages before the browser
// is restarted.
const DefaultRecycleAfter = 75

// BrowserManager owns the browser process and restarts it after a fixed
// number of pages, since Chrome's memory use only grows over a long crawl.
// BrowserManager is safe for concurrent use.
type BrowserManager struct {
	browser   *rod.Browser
	launcher  *launcher.Launcher
	pageCount int64
	maxPages  int64
	mu        sync.Mutex
	closed    atomic.Bool
}

// ManagerOption configures a BrowserManager.
type ManagerOption func(*BrowserManager)

// WithMaxPages sets the number of pages before the browser is recycled.
func WithMaxPages(n int64) ManagerOption {
	return func(bm *BrowserManager) {
		bm.maxPages = n
	}
}

// NewBrowserManager launches a headless browser.
func NewBrowserManager(opts ...ManagerOption) (*BrowserManager, error) {
	bm := newBrowserManager()
	for _, opt := range opts {
		opt(bm)
	}
	if err := bm.start(); err != nil {
		return nil, err
	}
	return bm, nil
}

func newBrowserManager() *BrowserManager {
	return &BrowserManager{maxPages: DefaultRecycleAfter}
}

func (bm *BrowserManager) start() error {
	bm.mu.Lock()
	defer bm.mu.Unlock()
	return bm.launchBrowser()
}

// Browser returns the current browser, recycling it first when the page
// count has reached the limit.
func (bm *BrowserManager) Browser() *rod.Browser {
	bm.mu.Lock()
	defer bm.mu.Unlock()

	if bm.maxPages > 0 && atomic.LoadInt64(&bm.pageCount) >= bm.maxPages {
		bm.recycleBrowser()
	}
	return bm.browser
}

// IncrementPageCount records one processed page.
func (bm *BrowserManager) IncrementPageCount() {
	atomic.AddInt64(&bm.pageCount, 1)
}

// Close releases browser resources. Close is safe to call multiple times.
func (bm *BrowserManager) Close() error {
	if !bm.closed.CompareAndSwap(false, true) {
		return nil
	}

	bm.mu.Lock()
	defer bm.mu.Unlock()
	return bm.closeBrowser()
}

// Must be called with mu held.
func (bm *BrowserManager) launchBrowser() error {
	l := launcher.New().
		Set("disable-background-timer-throttling").
		Set("disable-renderer-backgrounding").
		Set("disable-dev-shm-usage").
		Set("lang", "de-DE").
		Leakless(true).
		Headless(true)

	u, err := l.Launch()
	if err != nil {
		return fmt.Errorf("launching browser: %w", err)
	}

	browser := rod.New().ControlURL(u)
	if err := browser.Connect(); err != nil {
		l.Kill()
		return fmt.Errorf("connecting to browser: %w", err)
	}

	bm.browser = browser
	bm.launcher = l
	return nil
}

// Must be called with mu held.
func (bm *BrowserManager) closeBrowser() error {
	var err error
	if bm.browser != nil {
		err = bm.browser.Close()
		bm.browser = nil
	}
	if bm.launcher != nil {
		bm.launcher.Kill()
		bm.launcher = nil
	}
	return err
}

// recycleBrowser swaps in a fresh browser. The old one is kept if the
// launch fails. Must be called with mu held.
func (bm *BrowserManager) recycleBrowser() {
	oldBrowser, oldLauncher := bm.browser, bm.launcher
	if err := bm.launchBrowser(); err != nil {
		bm.browser, bm.launcher = oldBrowser, oldLauncher
		return
	}

	if oldBrowser != nil {
		_ = oldBrowser.Close()
	}
	if oldLauncher != nil {
		oldLauncher.Kill()
	}
	atomic.StoreInt64(&bm.pageCount, 0)
}

// LauncherPID returns the process ID of the browser launcher.
func (bm *BrowserManager) LauncherPID() int {
	bm.mu.Lock()
	defer bm.mu.Unlock()
	if bm.launcher == nil {
		return 0
	}
	return bm.launcher.PID()
}
