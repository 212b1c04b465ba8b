// Package crawl provides the funding program crawl orchestration.
// It pages through search results, fetches each program's detail page,
// merges listing and detail into one record and persists the accumulated
// set after every page. Crawling is strictly sequential.
package crawl

import (
	"context"
	"fmt"
	"math/rand/v2"
	"time"

	"github.com/Lechtr/foerder"
)

// Default politeness bounds for the wait before each listing page.
const (
	DefaultDelayMin = 5 * time.Second
	DefaultDelayMax = 15 * time.Second
)

// Crawler orchestrates a resumable crawl of the funding database.
type Crawler struct {
	Fetcher  foerder.Fetcher
	Listings foerder.ListingParser
	Details  foerder.DetailParser
	Store    foerder.RecordStore

	// Limiter paces detail page fetches per host. Optional.
	Limiter foerder.DomainLimiter

	// StartURL is the first results page. Defaults to foerder.StartURL.
	StartURL string

	// PageSize is the assumed number of cards per page, used to estimate
	// where a resumed crawl continues.
	PageSize int

	// MaxPages is the last page number to crawl. Zero means no limit.
	MaxPages int

	// MaxAttempts bounds fetch attempts per URL. RetryDelays, when set,
	// replaces the exponential schedule derived from MaxAttempts.
	MaxAttempts int
	RetryDelays []time.Duration

	// DelayMin and DelayMax bound the random wait before each listing page.
	// Zero for both disables the wait; callers normally start from
	// DefaultDelayMin and DefaultDelayMax.
	DelayMin time.Duration
	DelayMax time.Duration

	// Rand returns values in [0,1) for backoff jitter and politeness
	// waits. Defaults to math/rand/v2.
	Rand func() float64
}

// State is a step of the crawl state machine.
type State int

const (
	StateInit State = iota
	StateResume
	StateFresh
	StateFetchingListing
	StateFetchingDetails
	StatePersisting
	StateNextPage
	StateDone
	StateAborted
)

var stateNames = [...]string{
	StateInit:            "init",
	StateResume:          "resume",
	StateFresh:           "fresh",
	StateFetchingListing: "fetching_listing",
	StateFetchingDetails: "fetching_details",
	StatePersisting:      "persisting",
	StateNextPage:        "next_page",
	StateDone:            "done",
	StateAborted:         "aborted",
}

func (s State) String() string {
	if s < 0 || int(s) >= len(stateNames) {
		return fmt.Sprintf("state(%d)", int(s))
	}
	return stateNames[s]
}

// Result holds the outcome of a crawl.
type Result struct {
	State      State
	Loaded     int // records found in the store at start
	StartPage  int
	LastPage   int
	Pages      int // listing pages crawled, excluding skipped ones
	Skipped    int // listing pages passed over while resuming
	Saved      int // records added in this run
	Failed     int // added records whose detail page could not be fetched
	Duplicates int // cards already present in the store
	Total      int // records in the store at the end
}

// ProgressEvent reports progress during a crawl.
type ProgressEvent struct {
	Type      ProgressType
	Page      int
	Completed int
	Total     int
	URL       string
	Error     error
}

// ProgressType indicates the type of progress event.
type ProgressType int

const (
	ProgressStarted ProgressType = iota
	ProgressPageSkipped
	ProgressPageFetched
	ProgressCompleted
	ProgressFailed
	ProgressRetry
	ProgressPersisted
	ProgressFinished
)

// ProgressFunc is a callback for reporting crawl progress.
type ProgressFunc func(event ProgressEvent)

// run holds the mutable state of one crawl.
type run struct {
	records []*foerder.Record
	seen    map[string]bool
	page    int
	pageURL string
	listing *foerder.ListingPage
	result  *Result
	err     error
}

// Run crawls from the checkpoint left by a previous run, or from the first
// page if there is none. It returns the result alongside any error that
// aborted the crawl; pages persisted before the error remain in the store.
func (c *Crawler) Run(ctx context.Context, progress ProgressFunc) (*Result, error) {
	if progress == nil {
		progress = func(ProgressEvent) {}
	}

	r := &run{
		seen:   make(map[string]bool),
		page:   1,
		result: &Result{StartPage: 1},
	}
	r.pageURL = c.StartURL
	if r.pageURL == "" {
		r.pageURL = foerder.StartURL
	}

	state := StateInit
	for {
		switch state {
		case StateInit:
			state = c.init(ctx, r)
		case StateResume:
			state = c.resume(ctx, r)
			if state == StateFetchingListing {
				progress(ProgressEvent{Type: ProgressStarted, Page: r.result.StartPage, Total: r.result.Loaded})
			}
		case StateFresh:
			progress(ProgressEvent{Type: ProgressStarted, Page: 1})
			state = StateFetchingListing
		case StateFetchingListing:
			state = c.fetchListing(ctx, r, progress)
		case StateFetchingDetails:
			state = c.fetchDetails(ctx, r, progress)
		case StatePersisting:
			state = c.persist(ctx, r, progress)
		case StateNextPage:
			r.page++
			r.pageURL = r.listing.NextURL
			state = StateFetchingListing
		case StateDone, StateAborted:
			r.result.State = state
			r.result.Total = len(r.records)
			progress(ProgressEvent{Type: ProgressFinished, Page: r.result.LastPage, Completed: r.result.Saved, Total: r.result.Total, Error: r.err})
			return r.result, r.err
		default:
			return r.result, foerder.Errorf(foerder.EINTERNAL, "unknown crawl state %s", state)
		}
	}
}

func (c *Crawler) init(ctx context.Context, r *run) State {
	exists, err := c.Store.Exists(ctx)
	if err != nil {
		r.err = fmt.Errorf("checking record store: %w", err)
		return StateAborted
	}
	if exists {
		return StateResume
	}
	return StateFresh
}

func (c *Crawler) resume(ctx context.Context, r *run) State {
	records, err := c.Store.Load(ctx)
	if err != nil {
		r.err = fmt.Errorf("loading record store: %w", err)
		return StateAborted
	}
	r.records = records
	for _, rec := range records {
		r.markSeen(rec.Link())
	}
	r.result.Loaded = len(records)
	r.result.StartPage = foerder.StartPage(len(records), c.pageSize())

	if c.MaxPages > 0 && r.result.StartPage > c.MaxPages {
		return StateDone
	}
	return StateFetchingListing
}

func (c *Crawler) fetchListing(ctx context.Context, r *run, progress ProgressFunc) State {
	if err := c.politenessWait(ctx); err != nil {
		r.err = err
		return StateAborted
	}

	html, err := c.fetch(ctx, r.pageURL, progress)
	if err != nil {
		r.err = fmt.Errorf("fetching listing page %d: %w", r.page, err)
		return StateAborted
	}

	listing, err := c.Listings.ParseListing(html)
	if err != nil {
		r.err = fmt.Errorf("parsing listing page %d: %w", r.page, err)
		return StateAborted
	}
	r.listing = listing
	r.result.LastPage = r.page

	if r.page < r.result.StartPage {
		r.result.Skipped++
		progress(ProgressEvent{Type: ProgressPageSkipped, Page: r.page, Total: len(listing.Entries), URL: r.pageURL})
		return c.next(r)
	}

	r.result.Pages++
	progress(ProgressEvent{Type: ProgressPageFetched, Page: r.page, Total: len(listing.Entries), URL: r.pageURL})
	return StateFetchingDetails
}

func (c *Crawler) fetchDetails(ctx context.Context, r *run, progress ProgressFunc) State {
	total := len(r.listing.Entries)
	for i, entry := range r.listing.Entries {
		if entry.Link != foerder.NoLink && r.seen[entry.Link] {
			r.result.Duplicates++
			continue
		}

		rec := entry.Record()
		detail, err := c.detail(ctx, entry.Link, progress)
		if ctxErr := ctx.Err(); ctxErr != nil {
			r.err = ctxErr
			return StateAborted
		}
		if err != nil {
			r.result.Failed++
			progress(ProgressEvent{Type: ProgressFailed, Page: r.page, Completed: i + 1, Total: total, URL: entry.Link, Error: err})
			detail = foerder.FailedDetail(entry.Link)
		} else {
			progress(ProgressEvent{Type: ProgressCompleted, Page: r.page, Completed: i + 1, Total: total, URL: entry.Link})
		}
		rec.Augment(detail)

		r.records = append(r.records, rec)
		r.markSeen(entry.Link)
		r.result.Saved++
	}
	return StatePersisting
}

func (c *Crawler) persist(ctx context.Context, r *run, progress ProgressFunc) State {
	if err := c.Store.Save(ctx, r.records); err != nil {
		r.err = fmt.Errorf("saving records after page %d: %w", r.page, err)
		return StateAborted
	}
	progress(ProgressEvent{Type: ProgressPersisted, Page: r.page, Total: len(r.records)})
	return c.next(r)
}

// next decides whether another listing page follows.
func (c *Crawler) next(r *run) State {
	if r.listing.NextURL == "" {
		return StateDone
	}
	if c.MaxPages > 0 && r.page >= c.MaxPages {
		return StateDone
	}
	return StateNextPage
}

// detail fetches and parses one program page into its record columns.
func (c *Crawler) detail(ctx context.Context, link string, progress ProgressFunc) (*foerder.Record, error) {
	if link == foerder.NoLink {
		return nil, foerder.Errorf(foerder.EINVALID, "listing card has no detail link")
	}
	if c.Limiter != nil {
		if err := c.Limiter.Wait(ctx, hostOf(link)); err != nil {
			return nil, err
		}
	}

	html, err := c.fetch(ctx, link, progress)
	if err != nil {
		return nil, err
	}

	detail, err := c.Details.ParseDetail(html)
	if err != nil {
		return nil, err
	}
	return detail.Record(), nil
}

func (c *Crawler) fetch(ctx context.Context, url string, progress ProgressFunc) (string, error) {
	logger := func(format string, args ...any) {
		progress(ProgressEvent{Type: ProgressRetry, URL: url, Error: fmt.Errorf(format, args...)})
	}
	return FetchWithRetryDelays(ctx, url, c.Fetcher.Fetch, logger, c.retryDelays())
}

func (c *Crawler) retryDelays() []time.Duration {
	if c.RetryDelays != nil {
		return c.RetryDelays
	}
	attempts := c.MaxAttempts
	if attempts <= 0 {
		attempts = DefaultMaxAttempts
	}
	return ExponentialDelays(attempts, c.random)
}

// politenessWait sleeps a random duration in [DelayMin, DelayMax].
func (c *Crawler) politenessWait(ctx context.Context) error {
	d := c.DelayMin
	if span := c.DelayMax - c.DelayMin; span > 0 {
		d += time.Duration(c.random() * float64(span))
	}
	if d <= 0 {
		return ctx.Err()
	}

	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}

func (c *Crawler) random() float64 {
	if c.Rand != nil {
		return c.Rand()
	}
	return rand.Float64()
}

func (c *Crawler) pageSize() int {
	if c.PageSize > 0 {
		return c.PageSize
	}
	return foerder.DefaultPageSize
}

func (r *run) markSeen(link string) {
	if link != "" && link != foerder.NoLink {
		r.seen[link] = true
	}
}
