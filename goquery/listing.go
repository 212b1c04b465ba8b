package goquery

import (
	"net/url"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/Lechtr/foerder"
)

const (
	cardSelector     = "div.card.card--horizontal.card--fundingprogram"
	nextSelector     = "a.forward.button"
	nextLabel        = "weiter"
	whoIsFundedLabel = "Wer wird gefördert?"
	whatFundedLabel  = "Was wird gefördert?"
)

// Ensure ListingParser implements foerder.ListingParser at compile time.
var _ foerder.ListingParser = (*ListingParser)(nil)

// ListingParser extracts funding program cards from search result pages.
type ListingParser struct {
	opts options
}

// NewListingParser creates a new ListingParser.
func NewListingParser(opts ...Option) *ListingParser {
	return &ListingParser{opts: newOptions(opts)}
}

// ParseListing returns one entry per program card and the absolute URL of
// the next results page. NextURL is empty when the page has no "weiter"
// button.
func (p *ListingParser) ParseListing(html string) (*foerder.ListingPage, error) {
	base, err := url.Parse(p.opts.baseURL)
	if err != nil {
		return nil, foerder.Errorf(foerder.EINVALID, "invalid base URL: %v", err)
	}

	doc, err := parseDocument(html)
	if err != nil {
		return nil, err
	}

	page := &foerder.ListingPage{}
	doc.Find(cardSelector).Each(func(_ int, card *goquery.Selection) {
		page.Entries = append(page.Entries, parseCard(card, base))
	})

	doc.Find(nextSelector).EachWithBreak(func(_ int, a *goquery.Selection) bool {
		if trimmedText(a) != nextLabel {
			return true
		}
		href, ok := a.Attr("href")
		if !ok {
			return true
		}
		page.NextURL = resolve(base, href)
		return false
	})

	return page, nil
}

func parseCard(card *goquery.Selection, base *url.URL) *foerder.ListingEntry {
	entry := &foerder.ListingEntry{
		Title:        foerder.NoTitle,
		Link:         foerder.NoLink,
		WhoIsFunded:  foerder.NotSpecified,
		WhatIsFunded: foerder.NotSpecified,
	}

	if label := card.Find("span.link--label").First(); label.Length() > 0 {
		entry.Title = trimmedText(label)
	}
	if a := card.Find("a[href]").First(); a.Length() > 0 {
		href, _ := a.Attr("href")
		entry.Link = resolve(base, href)
	}

	card.Find(fundingInfoSelector).Each(func(_ int, dl *goquery.Selection) {
		definitionPairs(dl, func(dt, dd *goquery.Selection) {
			label := dt.Text()
			switch {
			case strings.Contains(label, whoIsFundedLabel):
				entry.WhoIsFunded = trimmedText(dd)
			case strings.Contains(label, whatFundedLabel):
				entry.WhatIsFunded = trimmedText(dd)
			}
		})
	})

	return entry
}
