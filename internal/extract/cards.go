package extract

import (
	"strings"

	"github.com/PuerkitoBio/goquery"

	"github.com/crelab/dircrawl/internal/config"
	"github.com/crelab/dircrawl/pkg/records"
)

// DirectoryCards harvests (name, url) candidates from one directory page
// snapshot. Resolution precedence per card: explicit link selector → the
// card itself when no link selector is given → the fallback name selector
// for entries without a detail page (name only; such entries are dropped
// because a candidate must carry a URL). Relative hrefs resolve against
// baseURL. Duplicates are NOT removed here; the enumerator dedups across
// pages.
func DirectoryCards(snapshot, baseURL string, sel config.DirectorySelectors) []records.LinkCandidate {
	doc, err := ParseHTML(snapshot)
	if err != nil {
		return nil
	}

	var out []records.LinkCandidate
	doc.Find(sel.Card).Each(func(_ int, card *goquery.Selection) {
		item := records.LinkCandidate{}

		link := card
		if sel.Link != "" {
			link = card.Find(sel.Link).First()
		}

		if href, ok := link.Attr("href"); ok && strings.TrimSpace(href) != "" {
			item.URL = resolveURL(baseURL, href)
			if sel.Name != "" {
				item.Name = flatText(card.Find(sel.Name).First())
			} else if sel.Link != "" {
				item.Name = flatText(link)
			}
		} else if sel.FallbackName != "" {
			// Entry without a detail page: capture the name for the log,
			// but no URL means no candidate.
			item.Name = flatText(card.Find(sel.FallbackName).First())
		}

		if item.Name == "" {
			item.Name = records.UnknownName
		}
		if item.URL != "" {
			out = append(out, item)
		}
	})
	return out
}

// FirstCardText returns the rendered text of the first card on the page,
// used to detect whether a pagination click actually changed the results.
func FirstCardText(snapshot string, cardSel string) string {
	doc, err := ParseHTML(snapshot)
	if err != nil {
		return ""
	}
	return blockText(doc.Find(cardSel).First())
}
