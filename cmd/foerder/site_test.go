package main_test

import (
	"context"
	"fmt"
	"sync"

	"github.com/Lechtr/foerder"
	"github.com/Lechtr/foerder/mock"
)

const (
	startURL = "https://www.foerderdatenbank.de/start"
	page2URL = "https://www.foerderdatenbank.de/SiteGlobals/Suche?gtp=2"
)

func card(slug, title string) string {
	return fmt.Sprintf(`<div class="card card--horizontal card--fundingprogram">
  <a href="FDB/Content/DE/Foerderprogramm/Bund/%s.html"><span class="link--label">%s</span></a>
  <dl class="grid-modul--two-elements document-info-fundingprogram">
    <dt>Wer wird gefördert?</dt><dd>Unternehmen</dd>
    <dt>Was wird gefördert?</dt><dd>%s</dd>
  </dl>
</div>`, slug, title, title)
}

func detail(title string) string {
	return fmt.Sprintf(`<html><body>
<h1 class="title">%s</h1>
<dl class="grid-modul--two-elements document-info-fundingprogram">
  <dt>Förderart:</dt><dd>Zuschuss</dd>
</dl>
<h2 class="horizontal--tab-opener">Kurzzusammenfassung</h2>
<div class="rich--text"><p>%s kurz erklärt.</p></div>
</body></html>`, title, title)
}

func programURL(slug string) string {
	return "https://www.foerderdatenbank.de/FDB/Content/DE/Foerderprogramm/Bund/" + slug + ".html"
}

// site serves a two-page result list with three programs.
func site() map[string]string {
	return map[string]string{
		startURL: `<html><body>` + card("digital-jetzt", "Digital Jetzt") + card("erp-kredit", "ERP-Kredit") +
			`<a class="forward button" href="SiteGlobals/Suche?gtp=2">weiter</a></body></html>`,
		page2URL:                   `<html><body>` + card("exist", "EXIST") + `</body></html>`,
		programURL("digital-jetzt"): detail("Digital Jetzt"),
		programURL("erp-kredit"):    detail("ERP-Kredit"),
		programURL("exist"):         detail("EXIST"),
	}
}

// siteFetcher serves pages from a map. Unknown URLs and URLs listed in
// down answer 404 and 503.
func siteFetcher(pages map[string]string, down ...string) (*mock.Fetcher, *[]string) {
	var mu sync.Mutex
	var fetched []string
	unavailable := make(map[string]bool)
	for _, u := range down {
		unavailable[u] = true
	}

	return &mock.Fetcher{
		FetchFn: func(_ context.Context, url string) (string, error) {
			mu.Lock()
			fetched = append(fetched, url)
			mu.Unlock()
			if unavailable[url] {
				return "", &foerder.StatusError{URL: url, StatusCode: 503}
			}
			html, ok := pages[url]
			if !ok {
				return "", &foerder.StatusError{URL: url, StatusCode: 404}
			}
			return html, nil
		},
		CloseFn: func() error { return nil },
	}, &fetched
}
