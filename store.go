package foerder

import "context"

// DefaultPageSize is the assumed number of program cards per listing page.
const DefaultPageSize = 10

// RecordStore persists the accumulated record set. The store doubles as
// the crawl checkpoint: its presence triggers a resume.
type RecordStore interface {
	// Exists reports whether a previous crawl left a store behind.
	Exists(ctx context.Context) (bool, error)

	// Load returns every stored record.
	Load(ctx context.Context) ([]*Record, error)

	// Save replaces the stored set with records.
	Save(ctx context.Context, records []*Record) error
}

// StartPage estimates the page a resumed crawl continues from, given the
// number of stored rows and the assumed page size. The estimate drifts when
// pages hold fewer cards than pageSize.
func StartPage(rows, pageSize int) int {
	if pageSize <= 0 {
		pageSize = DefaultPageSize
	}
	return rows/pageSize + 1
}
