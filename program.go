package foerder

import (
	"context"
	"strings"
)

// ListingEntry is the summary of one funding program as shown on a search
// results card.
type ListingEntry struct {
	Title        string
	Link         string
	WhoIsFunded  string
	WhatIsFunded string
}

// Record converts the entry into a partial output row.
func (e *ListingEntry) Record() *Record {
	r := NewRecord()
	r.Set(ColumnTitle, e.Title)
	r.Set(ColumnLink, e.Link)
	r.Set(ColumnWhoIsFunded, e.WhoIsFunded)
	r.Set(ColumnWhatIsFunded, e.WhatIsFunded)
	return r
}

// ListingPage is the parsed content of one search results page.
// NextURL is empty on the last page.
type ListingPage struct {
	Entries []*ListingEntry
	NextURL string
}

// Link is a hyperlink found in page content.
type Link struct {
	Label string
	URL   string
}

// Field is a labeled metadata value from a detail page.
type Field struct {
	Label string
	Value string
}

// Tab is a named content section of a detail page.
type Tab struct {
	Name    string
	Content []string
	Links   []Link
}

// ProgramDetail is the parsed content of a funding program detail page.
type ProgramDetail struct {
	Title         string
	Metadata      []Field
	ExternalLinks []Link

	// Tabs holds the page's content sections in document order. A page
	// without tab headings has a single General Content tab.
	Tabs []*Tab
}

// Record flattens the detail into output columns.
func (d *ProgramDetail) Record() *Record {
	r := NewRecord()
	r.Set(ColumnDetailTitle, d.Title)
	for _, f := range d.Metadata {
		r.Set(f.Label, f.Value)
	}
	names, urls := splitLinks(d.ExternalLinks)
	r.Set(ColumnLinkNames, JoinValues(names))
	r.Set(ColumnLinkURLs, JoinValues(urls))

	for _, tab := range d.Tabs {
		content := strings.Join(tab.Content, " ")
		if tab.Name == GeneralContentTitle && content == "" {
			content = NotAvailable
		}
		labels, hrefs := splitLinks(tab.Links)
		r.Set(tab.Name+SuffixContent, content)
		r.Set(tab.Name+SuffixLinkLabels, JoinValues(labels))
		r.Set(tab.Name+SuffixLinkURLs, JoinValues(hrefs))
	}
	return r
}

// FailedDetail returns the row used in place of a detail page that could
// not be fetched.
func FailedDetail(url string) *Record {
	r := NewRecord()
	r.Set(ColumnError, "Failed to fetch details from "+url)
	return r
}

func splitLinks(links []Link) (labels, urls []string) {
	for _, l := range links {
		labels = append(labels, l.Label)
		urls = append(urls, l.URL)
	}
	return labels, urls
}

// ListingParser extracts program cards and the next page link from a
// search results page.
type ListingParser interface {
	ParseListing(html string) (*ListingPage, error)
}

// DetailParser extracts the structured content of a program detail page.
// Parsing is best-effort: missing elements produce sentinel values, not errors.
type DetailParser interface {
	ParseDetail(html string) (*ProgramDetail, error)
}

// RecordExporter writes a record set to an external format.
type RecordExporter interface {
	Export(ctx context.Context, records []*Record) error
}
