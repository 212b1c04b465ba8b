package crawl

import (
	"fmt"
	"strings"
)

// TruncateURL shortens a URL for display, keeping the end which is more informative.
func TruncateURL(url string, maxLen int) string {
	if maxLen <= 0 {
		return ""
	}
	if maxLen < 4 {
		return url[:min(len(url), maxLen)]
	}
	if len(url) <= maxLen {
		return url
	}
	return "..." + url[len(url)-maxLen+3:]
}

// FormatCount formats n with a singular or plural noun.
func FormatCount(n int, singular, plural string) string {
	if n == 1 {
		return fmt.Sprintf("%d %s", n, singular)
	}
	return fmt.Sprintf("%d %s", n, plural)
}

// Summary describes a crawl result in one line.
func Summary(r *Result) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Saved %s", FormatCount(r.Saved, "new program", "new programs"))
	if r.Failed > 0 {
		fmt.Fprintf(&b, " (%d without details)", r.Failed)
	}
	fmt.Fprintf(&b, " from %s", FormatCount(r.Pages, "page", "pages"))
	if r.Skipped > 0 {
		fmt.Fprintf(&b, ", skipped %s", FormatCount(r.Skipped, "page", "pages"))
	}
	if r.Duplicates > 0 {
		fmt.Fprintf(&b, ", %s already stored", FormatCount(r.Duplicates, "program", "programs"))
	}
	fmt.Fprintf(&b, "; %d total", r.Total)
	return b.String()
}
