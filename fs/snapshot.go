package fs

import (
	"context"
	"os"
	"path/filepath"
	"strconv"

	"github.com/Lechtr/foerder"
	"github.com/cespare/xxhash/v2"
)

// Ensure SnapshotFetcher implements foerder.Fetcher at compile time.
var _ foerder.Fetcher = (*SnapshotFetcher)(nil)

// SnapshotFetcher wraps a Fetcher and writes every successfully fetched
// page to a directory, one file per URL.
type SnapshotFetcher struct {
	next foerder.Fetcher
	dir  string
}

// NewSnapshotFetcher creates a SnapshotFetcher writing into dir.
func NewSnapshotFetcher(next foerder.Fetcher, dir string) *SnapshotFetcher {
	return &SnapshotFetcher{next: next, dir: dir}
}

// SnapshotName returns the file name a URL's snapshot is stored under.
func SnapshotName(url string) string {
	return strconv.FormatUint(xxhash.Sum64String(url), 16) + ".html"
}

// Fetch delegates to the wrapped fetcher and snapshots the result. A
// snapshot that cannot be written fails the fetch.
func (f *SnapshotFetcher) Fetch(ctx context.Context, url string) (string, error) {
	html, err := f.next.Fetch(ctx, url)
	if err != nil {
		return "", err
	}

	if err := os.MkdirAll(f.dir, 0755); err != nil {
		return "", err
	}
	content := "<!-- " + url + " -->\n" + html
	if err := os.WriteFile(filepath.Join(f.dir, SnapshotName(url)), []byte(content), 0644); err != nil {
		return "", err
	}
	return html, nil
}

// Close delegates to the wrapped fetcher.
func (f *SnapshotFetcher) Close() error {
	return f.next.Close()
}
