// Package goquery parses foerderdatenbank.de search result and program
// detail pages using goquery CSS selectors.
package goquery

import (
	"net/url"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/Lechtr/foerder"
	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

// Selectors shared by the listing and detail pages.
const (
	fundingInfoSelector = "dl.grid-modul--two-elements.document-info-fundingprogram"
	richTextClass       = "rich--text"
	tabOpenerClass      = "horizontal--tab-opener"
)

// Option configures a parser.
type Option func(*options)

type options struct {
	baseURL string
}

// WithBaseURL sets the origin relative links are resolved against.
// Defaults to foerder.Origin.
func WithBaseURL(u string) Option {
	return func(o *options) {
		o.baseURL = u
	}
}

func newOptions(opts []Option) options {
	o := options{baseURL: foerder.Origin}
	for _, opt := range opts {
		opt(&o)
	}
	return o
}

func parseDocument(s string) (*goquery.Document, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(s))
	if err != nil {
		return nil, foerder.Errorf(foerder.EINVALID, "failed to parse HTML: %v", err)
	}
	return doc, nil
}

// trimmedText returns the selection's raw text with surrounding whitespace removed.
func trimmedText(sel *goquery.Selection) string {
	return strings.TrimSpace(sel.Text())
}

// joinedText trims every visible text node, drops empty ones and joins
// the rest with sep. Script and style contents are not visible text.
func joinedText(sel *goquery.Selection, sep string) string {
	var parts []string
	for _, n := range sel.Nodes {
		collectText(n, &parts)
	}
	return strings.Join(parts, sep)
}

func collectText(n *html.Node, parts *[]string) {
	switch n.Type {
	case html.TextNode:
		if s := strings.TrimSpace(n.Data); s != "" {
			*parts = append(*parts, s)
		}
		return
	case html.CommentNode:
		return
	case html.ElementNode:
		switch n.DataAtom {
		case atom.Script, atom.Style, atom.Template:
			return
		}
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		collectText(c, parts)
	}
}

// definitionPairs calls fn for each dt/dd pair of the definition list,
// pairing the i-th dt with the i-th dd.
func definitionPairs(dl *goquery.Selection, fn func(dt, dd *goquery.Selection)) {
	dts := dl.Find("dt")
	dds := dl.Find("dd")
	n := min(dts.Length(), dds.Length())
	for i := 0; i < n; i++ {
		fn(dts.Eq(i), dds.Eq(i))
	}
}

// anchors returns label/href pairs of every a[href] inside sel.
func anchors(sel *goquery.Selection) []foerder.Link {
	var links []foerder.Link
	sel.Find("a[href]").Each(func(_ int, a *goquery.Selection) {
		href, _ := a.Attr("href")
		links = append(links, foerder.Link{Label: trimmedText(a), URL: href})
	})
	return links
}

// resolve makes href absolute against base. Unparseable hrefs are
// appended to the base verbatim.
func resolve(base *url.URL, href string) string {
	href = strings.TrimSpace(href)
	ref, err := url.Parse(href)
	if err != nil {
		return strings.TrimSuffix(base.String(), "/") + "/" + strings.TrimPrefix(href, "/")
	}
	return base.ResolveReference(ref).String()
}
