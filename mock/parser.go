package mock

import "github.com/Lechtr/foerder"

var _ foerder.ListingParser = (*ListingParser)(nil)

// ListingParser is a mock implementation of foerder.ListingParser.
type ListingParser struct {
	ParseListingFn func(html string) (*foerder.ListingPage, error)
}

func (p *ListingParser) ParseListing(html string) (*foerder.ListingPage, error) {
	return p.ParseListingFn(html)
}

var _ foerder.DetailParser = (*DetailParser)(nil)

// DetailParser is a mock implementation of foerder.DetailParser.
type DetailParser struct {
	ParseDetailFn func(html string) (*foerder.ProgramDetail, error)
}

func (p *DetailParser) ParseDetail(html string) (*foerder.ProgramDetail, error) {
	return p.ParseDetailFn(html)
}
