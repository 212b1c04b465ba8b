package goquery

import (
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/Lechtr/foerder"
)

// Ensure DetailParser implements foerder.DetailParser at compile time.
var _ foerder.DetailParser = (*DetailParser)(nil)

// DetailParser extracts the structured content of a funding program page.
// Hyperlinks found on detail pages are kept as written in the markup.
type DetailParser struct{}

// NewDetailParser creates a new DetailParser.
func NewDetailParser() *DetailParser {
	return &DetailParser{}
}

// ParseDetail extracts the title, the metadata definition lists, the
// external links and the tabbed content sections of a detail page.
func (p *DetailParser) ParseDetail(html string) (*foerder.ProgramDetail, error) {
	doc, err := parseDocument(html)
	if err != nil {
		return nil, err
	}

	detail := &foerder.ProgramDetail{Title: foerder.NoTitle}

	if h1 := doc.Find("h1.title").First(); h1.Length() > 0 {
		detail.Title = trimmedText(h1)
	}

	doc.Find(fundingInfoSelector).Each(func(_ int, dl *goquery.Selection) {
		definitionPairs(dl, func(dt, dd *goquery.Selection) {
			detail.Metadata = append(detail.Metadata, foerder.Field{
				Label: strings.TrimRight(trimmedText(dt), ":"),
				Value: trimmedText(dd),
			})
		})
	})

	doc.Find("dd a.link-external").Each(func(_ int, a *goquery.Selection) {
		href, ok := a.Attr("href")
		if !ok {
			return
		}
		detail.ExternalLinks = append(detail.ExternalLinks, foerder.Link{Label: trimmedText(a), URL: href})
	})

	detail.Tabs = extractTabs(doc)
	if len(detail.Tabs) == 0 {
		detail.Tabs = []*foerder.Tab{generalContent(doc)}
	}

	return detail, nil
}

// extractTabs folds over every element in document order. A tab-opener h2
// selects the current section; each rich text div appends to it. Rich text
// before the first opener belongs to no tab. A heading that repeats an
// earlier name continues that section instead of discarding what was
// collected under it, so a tab split around another pane keeps both parts.
func extractTabs(doc *goquery.Document) []*foerder.Tab {
	var (
		tabs    []*foerder.Tab
		byName  = make(map[string]*foerder.Tab)
		current *foerder.Tab
	)

	doc.Find("*").Each(func(_ int, s *goquery.Selection) {
		switch goquery.NodeName(s) {
		case "h2":
			if !s.HasClass(tabOpenerClass) {
				return
			}
			name := joinedText(s, "")
			if name == "" {
				current = nil
				return
			}
			tab, ok := byName[name]
			if !ok {
				tab = &foerder.Tab{Name: name}
				byName[name] = tab
				tabs = append(tabs, tab)
			}
			current = tab
		case "div":
			if current == nil || !s.HasClass(richTextClass) {
				return
			}
			appendRichText(current, s)
		}
	})

	return tabs
}

func generalContent(doc *goquery.Document) *foerder.Tab {
	tab := &foerder.Tab{Name: foerder.GeneralContentTitle}
	doc.Find("div." + richTextClass).Each(func(_ int, s *goquery.Selection) {
		appendRichText(tab, s)
	})
	return tab
}

func appendRichText(tab *foerder.Tab, s *goquery.Selection) {
	if text := joinedText(s, " "); text != "" {
		tab.Content = append(tab.Content, text)
	}
	tab.Links = append(tab.Links, anchors(s)...)
}
