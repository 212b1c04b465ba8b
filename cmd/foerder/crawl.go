package main

import (
	"fmt"

	"github.com/Lechtr/foerder"
	"github.com/Lechtr/foerder/crawl"
)

// Run executes the crawl command.
func (c *CrawlCmd) Run(deps *Dependencies) error {
	if c.DelayMax < c.DelayMin {
		err := foerder.Errorf(foerder.EINVALID, "--delay-max (%s) must not be below --delay-min (%s)", c.DelayMax, c.DelayMin)
		fmt.Fprintf(deps.Stderr, "error: %s\n", foerder.ErrorMessage(err))
		return err
	}

	progress := func(event crawl.ProgressEvent) {
		switch event.Type {
		case crawl.ProgressStarted:
			if event.Total > 0 {
				fmt.Fprintf(deps.Stdout, "Resuming with %d programs in %s, continuing at page %d\n", event.Total, deps.StorePath, event.Page)
			} else {
				fmt.Fprintf(deps.Stdout, "Starting new crawl into %s\n", deps.StorePath)
			}
		case crawl.ProgressPageSkipped:
			fmt.Fprintf(deps.Stdout, "Page %d: skipped (already crawled)\n", event.Page)
		case crawl.ProgressPageFetched:
			fmt.Fprintf(deps.Stdout, "Page %d: %d programs\n", event.Page, event.Total)
		case crawl.ProgressCompleted:
			fmt.Fprintf(deps.Stdout, "  [%d/%d] %s\n", event.Completed, event.Total, crawl.TruncateURL(event.URL, 80))
		case crawl.ProgressFailed:
			fmt.Fprintf(deps.Stderr, "  [%d/%d] failed %s: %v\n", event.Completed, event.Total, crawl.TruncateURL(event.URL, 80), event.Error)
		case crawl.ProgressRetry:
			fmt.Fprintf(deps.Stderr, "  %v\n", event.Error)
		case crawl.ProgressPersisted:
			fmt.Fprintf(deps.Stdout, "Page %d saved (%d programs)\n", event.Page, event.Total)
		case crawl.ProgressFinished:
			// Summary printed after crawl completes
		}
	}

	result, err := deps.Crawler.Run(deps.Ctx, progress)
	if result != nil && result.Loaded > 0 && result.State == crawl.StateDone && result.Pages == 0 && result.Skipped == 0 {
		fmt.Fprintf(deps.Stdout, "Page budget of %d already reached; nothing to do\n", c.MaxPages)
	}
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: crawl aborted: %v\n", err)
		if result != nil && result.Total > 0 {
			fmt.Fprintf(deps.Stderr, "%d programs are kept in %s; run crawl again to resume\n", result.Total, deps.StorePath)
		}
		return err
	}

	fmt.Fprintln(deps.Stdout, crawl.Summary(result))
	return nil
}
